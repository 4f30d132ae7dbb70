package hal

import (
	"errors"
	"io"
)

var (
	ErrNotImplemented = errors.New("not implemented")

	// ErrQuit is returned by an app step function to end the run loop cleanly.
	ErrQuit = errors.New("quit")
)

// Console is the line-oriented conversation with the user.
type Console interface {
	io.Writer
	WriteLineString(s string)
	// ReadLine blocks until a full line is available and returns it without
	// the trailing newline.
	ReadLine() (string, error)
}

// PixelFormat defines the framebuffer pixel encoding.
type PixelFormat uint8

const (
	// PixelFormatRGB565 is 16bpp: rrrrrggggggbbbbb.
	PixelFormatRGB565 PixelFormat = iota + 1
)

// Framebuffer is a pixel buffer plus a "present" hook.
//
// Writes to Buffer are not visible on the display until Present is called.
type Framebuffer interface {
	Width() int
	Height() int
	Format() PixelFormat
	StrideBytes() int
	Buffer() []byte
	ClearRGB(r, g, b uint8)
	Present() error
}

// KeyCode is a minimal key identifier.
type KeyCode uint16

const (
	KeyUnknown KeyCode = iota
	KeyEnter
	KeyEscape
	KeySpace
)

// KeyEvent is a keyboard event.
type KeyEvent struct {
	Code  KeyCode
	Press bool
	Rune  rune
}

// PointerEvent is a mouse button press in framebuffer pixels.
type PointerEvent struct {
	X, Y   int
	Button int
}

// Keyboard provides key events (best-effort on each platform).
type Keyboard interface {
	Events() <-chan KeyEvent
}

// Pointer provides mouse button presses.
type Pointer interface {
	Clicks() <-chan PointerEvent
}

// Display provides access to the framebuffer (if available).
type Display interface {
	Framebuffer() Framebuffer
}

// Input provides access to input devices (if available).
type Input interface {
	Keyboard() Keyboard
	Pointer() Pointer
}

// HAL is the only contact point between the simulation and the outside world.
type HAL interface {
	Console() Console
	Display() Display
	Input() Input
}
