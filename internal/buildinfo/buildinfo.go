// Package buildinfo carries version data stamped in with -ldflags, e.g.
//
//	go build -ldflags "-X montepi/internal/buildinfo.Version=v1.2.0"
package buildinfo

import "fmt"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact build identifier for the window title and logs.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if Commit != "" && Commit != "unknown" {
		if len(Commit) > 7 {
			return Commit[:7]
		}
		return Commit
	}
	return "dev"
}

// String is the full -version line.
func String() string {
	return fmt.Sprintf("montepi %s (commit %s, built %s)", Version, Commit, Date)
}
