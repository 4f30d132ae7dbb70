package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"montepi/app"
	"montepi/hal"
	"montepi/internal/buildinfo"
	"montepi/turtle"

	"github.com/sirupsen/logrus"
)

func main() {
	var (
		hc       hal.HeadlessConfig
		cfg      app.Config
		host     hal.HostConfig
		svgPath  string
		logLevel string
		progress bool
		version  bool
	)
	flag.BoolVar(&hc.Enabled, "headless", false, "Run without a window.")
	flag.IntVar(&hc.Hz, "hz", 60, "Tick rate in headless mode.")
	flag.IntVar(&cfg.Darts, "darts", 0, "Darts for the pi estimate (0 = ask on stdin).")
	flag.IntVar(&cfg.TestDarts, "test-darts", 10, "Darts thrown in the part A test loop.")
	flag.IntVar(&cfg.Batch, "batch", 5000, "Redraw the board once per this many drawing updates during the estimate.")
	flag.Int64Var(&cfg.Seed, "seed", 0, "Seed for the dart thrower (default: random).")
	flag.IntVar(&host.Scale, "scale", 2, "Window magnification.")
	flag.StringVar(&svgPath, "svg", "", "Write the final board to this SVG file.")
	flag.StringVar(&logLevel, "log-level", "warn", "Diagnostics level: debug|info|warn|error.")
	flag.BoolVar(&progress, "progress", true, "Show a progress bar on stderr during the estimate.")
	flag.BoolVar(&version, "version", false, "Print the version and exit.")
	flag.Parse()

	if version {
		fmt.Println(buildinfo.String())
		return
	}

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "seed" {
			cfg.Seeded = true
		}
	})

	log := logrus.New()
	log.SetOutput(os.Stderr)
	lvl, err := logrus.ParseLevel(logLevel)
	if err != nil {
		fatalf("bad -log-level: %v", err)
	}
	log.SetLevel(lvl)

	var capture *turtle.SVGSurface
	if svgPath != "" {
		capture = turtle.NewSVGSurface(320)
		cfg.Capture = capture
	}
	if progress {
		cfg.Progress = os.Stderr
	}
	cfg.Log = log
	host.Log = log
	host.Title = "montepi (" + buildinfo.Short() + ")"

	newApp := func(h hal.HAL) func() error {
		return app.NewWithConfig(h, cfg)
	}

	if hc.Enabled {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		err = hal.RunHeadless(ctx, host, newApp, hc)
		if errors.Is(err, context.Canceled) {
			return
		}
	} else {
		cfg.WaitDismiss = true
		err = hal.RunWindow(host, newApp)
	}
	if err != nil {
		fatalf("%v", err)
	}

	if capture != nil {
		if err := writeSVG(svgPath, capture); err != nil {
			fatalf("svg: %v", err)
		}
		log.WithField("path", svgPath).Info("svg written")
	}
}

func writeSVG(path string, s *turtle.SVGSurface) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := s.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func fatalf(format string, args ...any) {
	_, _ = fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
