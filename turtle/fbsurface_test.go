package turtle

import (
	"bytes"
	"strings"
	"testing"

	"montepi/hal"
)

type memFramebuffer struct {
	w, h     int
	buf      []byte
	presents int
}

func newMemFramebuffer(w, h int) *memFramebuffer {
	return &memFramebuffer{w: w, h: h, buf: make([]byte, w*h*2)}
}

func (f *memFramebuffer) Width() int              { return f.w }
func (f *memFramebuffer) Height() int             { return f.h }
func (f *memFramebuffer) Format() hal.PixelFormat { return hal.PixelFormatRGB565 }
func (f *memFramebuffer) StrideBytes() int        { return f.w * 2 }
func (f *memFramebuffer) Buffer() []byte          { return f.buf }
func (f *memFramebuffer) Present() error          { f.presents++; return nil }

func (f *memFramebuffer) ClearRGB(r, g, b uint8) {
	p := rgb565From888(r, g, b)
	for i := 0; i+1 < len(f.buf); i += 2 {
		f.buf[i] = byte(p)
		f.buf[i+1] = byte(p >> 8)
	}
}

func (f *memFramebuffer) pixel(x, y int) uint16 {
	off := y*f.w*2 + x*2
	return uint16(f.buf[off]) | uint16(f.buf[off+1])<<8
}

func TestFramebufferSurfaceLineAndDot(t *testing.T) {
	fb := newMemFramebuffer(120, 140)
	s, err := NewFramebufferSurface(fb)
	if err != nil {
		t.Fatalf("NewFramebufferSurface: %v", err)
	}
	board := s.Board()
	white := rgb565From888(0xFF, 0xFF, 0xFF)
	black := rgb565From888(0, 0, 0)
	red := rgb565From888(Red.R, Red.G, Red.B)

	if got := fb.pixel(board.Min.X, board.Min.Y); got != white {
		t.Fatalf("board not cleared: %04x", got)
	}

	// Horizontal axis through the middle row.
	s.Line(-1, 0, 1, 0, Black)
	midY := board.Min.Y + (board.Dy()-1)/2
	for x := board.Min.X; x < board.Max.X; x++ {
		if fb.pixel(x, midY) != black && fb.pixel(x, midY+1) != black {
			t.Fatalf("axis missing at x=%d", x)
		}
	}

	s.Dot(1, 1, 5, Red)
	if got := fb.pixel(board.Max.X-1, board.Min.Y); got != red {
		t.Fatalf("dot centre=%04x, want red", got)
	}

	s.Clear()
	if got := fb.pixel(board.Max.X-1, board.Min.Y); got != white {
		t.Fatalf("clear left %04x", got)
	}

	if err := s.Present(); err != nil || fb.presents != 1 {
		t.Fatalf("present err=%v presents=%d", err, fb.presents)
	}
}

func TestFramebufferSurfaceClipsToBoard(t *testing.T) {
	fb := newMemFramebuffer(100, 130)
	s, err := NewFramebufferSurface(fb)
	if err != nil {
		t.Fatalf("NewFramebufferSurface: %v", err)
	}
	before := append([]byte(nil), fb.buf[100*2*100:]...)

	// Far outside the world window; must not spill into the status strip.
	s.Line(-5, -5, 5, -5, Black)
	s.Dot(0, -3, 9, Red)

	if !bytes.Equal(before, fb.buf[100*2*100:]) {
		t.Fatal("drawing leaked into the status strip")
	}
}

func TestFramebufferSurfaceStatus(t *testing.T) {
	fb := newMemFramebuffer(100, 130)
	s, err := NewFramebufferSurface(fb)
	if err != nil {
		t.Fatalf("NewFramebufferSurface: %v", err)
	}
	bg := rgb565From888(statusBG.R, statusBG.G, statusBG.B)
	if got := fb.pixel(0, 110); got != bg {
		t.Fatalf("status background=%04x", got)
	}

	s.SetStatus("Part C", "pi ~ 3.14")
	black := rgb565From888(0, 0, 0)
	inked := 0
	for y := 100; y < 130; y++ {
		for x := 0; x < 100; x++ {
			if fb.pixel(x, y) == black {
				inked++
			}
		}
	}
	if inked == 0 {
		t.Fatal("status text not drawn")
	}
}

func TestNewFramebufferSurfaceRejectsTinyBuffers(t *testing.T) {
	if _, err := NewFramebufferSurface(newMemFramebuffer(10, 10)); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewFramebufferSurface(nil); err == nil {
		t.Fatal("expected error for nil framebuffer")
	}
}

func TestSVGSurfaceEncode(t *testing.T) {
	s := NewSVGSurface(200)
	scr := NewScreen(s)
	tt := New(scr)
	tt.Goto(1, 0)
	tt.Up()
	tt.Goto(0.5, 0.5)
	tt.Dot(5, Green)
	scr.Surface().(StatusWriter).SetStatus("estimate 3.2")

	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"<svg", "<line", "<circle", "rgb(0,128,0)", "estimate 3.2", "</svg>"} {
		if !strings.Contains(out, want) {
			t.Fatalf("svg missing %q:\n%s", want, out)
		}
	}

	tt.Clear()
	if lines, dots := s.Counts(); lines != 0 || dots != 0 {
		t.Fatalf("after clear lines=%d dots=%d", lines, dots)
	}
	if s.Presents() != 3 {
		t.Fatalf("presents=%d, want 3", s.Presents())
	}
}
