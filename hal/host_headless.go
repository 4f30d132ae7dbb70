package hal

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// HeadlessConfig controls the no-window host runner.
type HeadlessConfig struct {
	Enabled bool
	Hz      int
	// Ticks stops the run after N ticks (0 = run until the app quits).
	Ticks uint64
}

// RunHeadless runs the app without opening a window. The step function is
// called Hz times per second until it returns ErrQuit or ctx is done.
func RunHeadless(ctx context.Context, cfg HostConfig, newApp func(HAL) func() error, hc HeadlessConfig) error {
	if hc.Hz <= 0 {
		hc.Hz = 60
	}

	cfg.setDefaults()
	h := newHost(cfg)
	step := newApp(h)

	d := time.Second / time.Duration(hc.Hz)
	if d <= 0 {
		return fmt.Errorf("invalid headless hz: %d", hc.Hz)
	}
	t := time.NewTicker(d)
	defer t.Stop()

	h.log.WithField("hz", hc.Hz).Debug("headless: start")

	var tick uint64
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-t.C:
			if step != nil {
				if err := step(); err != nil {
					if errors.Is(err, ErrQuit) {
						return nil
					}
					return err
				}
			}
			tick++
			if hc.Ticks > 0 && tick >= hc.Ticks {
				return nil
			}
		}
	}
}
