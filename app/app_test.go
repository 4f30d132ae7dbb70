package app

import (
	"bufio"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"montepi/hal"
)

type memFramebuffer struct {
	w, h int
	buf  []byte
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) ClearRGB(_, _, _ uint8)  {}
func (f *memFramebuffer) Present() error          { return nil }

type fakeHAL struct {
	con    *fakeConsole
	fb     *memFramebuffer
	keys   chan hal.KeyEvent
	clicks chan hal.PointerEvent
}

func newFakeHAL(input string) *fakeHAL {
	return &fakeHAL{
		con:    newFakeConsole(input),
		fb:     &memFramebuffer{w: 160, h: 190, buf: make([]byte, 160*190*2)},
		keys:   make(chan hal.KeyEvent, 8),
		clicks: make(chan hal.PointerEvent, 8),
	}
}

func (h *fakeHAL) Console() hal.Console { return h.con }
func (h *fakeHAL) Display() hal.Display { return h }
func (h *fakeHAL) Input() hal.Input     { return h }

func (h *fakeHAL) Framebuffer() hal.Framebuffer { return h.fb }
func (h *fakeHAL) Keyboard() hal.Keyboard       { return h }
func (h *fakeHAL) Pointer() hal.Pointer         { return h }

func (h *fakeHAL) Events() <-chan hal.KeyEvent       { return h.keys }
func (h *fakeHAL) Clicks() <-chan hal.PointerEvent { return h.clicks }

// stepUntil calls step until it returns non-nil or the deadline passes.
func stepUntil(t *testing.T, step func() error, d time.Duration) error {
	t.Helper()
	deadline := time.Now().Add(d)
	for time.Now().Before(deadline) {
		if err := step(); err != nil {
			return err
		}
		time.Sleep(time.Millisecond)
	}
	return nil
}

func TestStepQuitsWhenSessionEnds(t *testing.T) {
	h := newFakeHAL("")
	step := NewWithConfig(h, Config{Darts: 100, Seeded: true, Log: quietLog()})
	if err := stepUntil(t, step, 5*time.Second); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("step err=%v", err)
	}
}

func TestStepWaitsForDismissal(t *testing.T) {
	pr, pw := io.Pipe()
	defer pw.Close()
	h := newFakeHAL("")
	h.con = &fakeConsole{in: bufio.NewReader(pr)}
	step := NewWithConfig(h, Config{Seeded: true, WaitDismiss: true, Log: quietLog()})

	// The session blocks on the dart count prompt; a click now is discarded.
	if err := step(); err != nil {
		t.Fatalf("first step: %v", err)
	}
	h.clicks <- hal.PointerEvent{X: 1, Y: 1}
	if err := step(); err != nil {
		t.Fatalf("step while running: %v", err)
	}

	go func() { _, _ = io.WriteString(pw, "100\n") }()
	if err := stepUntil(t, step, time.Second); err != nil {
		t.Fatalf("step returned %v before dismissal", err)
	}

	h.keys <- hal.KeyEvent{Rune: 'x', Press: true}
	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: false}
	if err := step(); err != nil {
		t.Fatalf("non-dismiss keys ended the run: %v", err)
	}

	h.keys <- hal.KeyEvent{Code: hal.KeyEscape, Press: true}
	if err := step(); !errors.Is(err, hal.ErrQuit) {
		t.Fatalf("step err=%v, want ErrQuit", err)
	}
	if !strings.Contains(h.con.String(), "Part C Complete") {
		t.Fatalf("output=%s", h.con.String())
	}
}

func TestStepReportsSessionError(t *testing.T) {
	h := newFakeHAL("nope\n")
	step := NewWithConfig(h, Config{Log: quietLog()})
	if err := stepUntil(t, step, 5*time.Second); !errors.Is(err, ErrBadDartCount) {
		t.Fatalf("step err=%v", err)
	}
}

func TestStepWithoutFramebuffer(t *testing.T) {
	h := newFakeHAL("")
	h.fb = &memFramebuffer{w: 4, h: 4, buf: make([]byte, 32)}
	step := NewWithConfig(h, Config{Log: quietLog()})
	if err := step(); err == nil {
		t.Fatal("expected error for a framebuffer too small to draw on")
	}
}
