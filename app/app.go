package app

import (
	"context"

	"montepi/hal"
	"montepi/turtle"
)

type outcome struct {
	res Result
	err error
}

type runner struct {
	h    hal.HAL
	cfg  Config
	sess *Session

	started bool
	done    chan outcome
	result  *outcome
}

// NewWithConfig builds a session on h's framebuffer and returns the step
// function for hal.RunWindow / hal.RunHeadless. The session runs on its own
// goroutine; the step function reports its error, or hal.ErrQuit once it has
// finished and (with WaitDismiss) the user has dismissed the display.
func NewWithConfig(h hal.HAL, cfg Config) func() error {
	cfg.setDefaults()

	fbs, err := turtle.NewFramebufferSurface(h.Display().Framebuffer())
	if err != nil {
		return func() error { return err }
	}
	var surf turtle.Surface = fbs
	if cfg.Capture != nil {
		surf = turtle.Tee(fbs, cfg.Capture)
	}

	r := &runner{
		h:    h,
		cfg:  cfg,
		sess: NewSession(h.Console(), surf, cfg),
		done: make(chan outcome, 1),
	}
	return r.step
}

func (r *runner) step() error {
	if !r.started {
		r.started = true
		go func() {
			var o outcome
			defer func() { r.done <- o }()
			defer recoverSession(r.cfg.Log, r.sess, &o.err)
			o.res, o.err = r.sess.Run(context.Background())
		}()
	}

	if r.result == nil {
		select {
		case o := <-r.done:
			r.result = &o
			if o.err != nil {
				r.cfg.Log.WithError(o.err).Error("session: failed")
				return o.err
			}
			r.cfg.Log.WithField("estimate", o.res.Estimate).Info("session: finished")
		default:
			r.drainInput()
			return nil
		}
	}

	if !r.cfg.WaitDismiss {
		return hal.ErrQuit
	}
	if r.dismissed() {
		return hal.ErrQuit
	}
	return nil
}

// drainInput discards input that arrives while the session is still running.
func (r *runner) drainInput() {
	r.dismissed()
}

func (r *runner) dismissed() bool {
	in := r.h.Input()
	if in == nil {
		return true
	}
	hit := false
	if p := in.Pointer(); p != nil {
		drain(p.Clicks(), func(hal.PointerEvent) { hit = true })
	}
	if k := in.Keyboard(); k != nil {
		drain(k.Events(), func(ev hal.KeyEvent) {
			if ev.Press && isDismissKey(ev) {
				hit = true
			}
		})
	}
	return hit
}

func drain[T any](ch <-chan T, fn func(T)) {
	for {
		select {
		case v := <-ch:
			fn(v)
		default:
			return
		}
	}
}

func isDismissKey(ev hal.KeyEvent) bool {
	switch ev.Code {
	case hal.KeyEnter, hal.KeyEscape, hal.KeySpace:
		return true
	}
	return ev.Rune == 'q' || ev.Rune == 'Q'
}
