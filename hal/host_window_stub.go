//go:build !cgo

package hal

import "errors"

func RunWindow(_ HostConfig, _ func(h HAL) func() error) error {
	return errors.New("window mode requires cgo (build with CGO_ENABLED=1 or run with -headless)")
}
