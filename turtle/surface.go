package turtle

import "image/color"

// Surface is a canvas addressed in world coordinates.
//
// Implementations clip anything outside the current world window.
type Surface interface {
	SetWorldCoordinates(llx, lly, urx, ury float64)
	Line(x0, y0, x1, y1 float64, c color.RGBA)
	// Dot draws a filled circle of the given diameter in pixels.
	Dot(x, y float64, size int, c color.RGBA)
	// Clear erases everything drawn since the last Clear.
	Clear()
	// Present makes pending drawing visible.
	Present() error
}

// StatusWriter is implemented by surfaces that can show a few lines of text
// next to the drawing.
type StatusWriter interface {
	SetStatus(lines ...string)
}

// World maps a world window onto a w x h pixel viewport.
type World struct {
	LLX, LLY float64
	URX, URY float64
}

// DefaultWorld is the window used until SetWorldCoordinates is called.
var DefaultWorld = World{LLX: -1, LLY: -1, URX: 1, URY: 1}

// ToPixel maps (x, y) to viewport pixels. The y axis is flipped so that URY is
// the top row.
func (w World) ToPixel(x, y float64, width, height int) (px, py float64) {
	dx := w.URX - w.LLX
	dy := w.URY - w.LLY
	if dx == 0 || dy == 0 || width <= 0 || height <= 0 {
		return 0, 0
	}
	px = (x - w.LLX) / dx * float64(width-1)
	py = (w.URY - y) / dy * float64(height-1)
	return px, py
}

// Colors used by the dartboard.
var (
	Black = color.RGBA{A: 0xFF}
	White = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	Green = color.RGBA{G: 0x80, A: 0xFF}
	Red   = color.RGBA{R: 0xFF, A: 0xFF}
)

// Tee fans every call out to several surfaces. Present returns the first error.
func Tee(surfaces ...Surface) Surface {
	return tee(surfaces)
}

type tee []Surface

func (t tee) SetWorldCoordinates(llx, lly, urx, ury float64) {
	for _, s := range t {
		s.SetWorldCoordinates(llx, lly, urx, ury)
	}
}

func (t tee) Line(x0, y0, x1, y1 float64, c color.RGBA) {
	for _, s := range t {
		s.Line(x0, y0, x1, y1, c)
	}
}

func (t tee) Dot(x, y float64, size int, c color.RGBA) {
	for _, s := range t {
		s.Dot(x, y, size, c)
	}
}

func (t tee) Clear() {
	for _, s := range t {
		s.Clear()
	}
}

func (t tee) Present() error {
	var first error
	for _, s := range t {
		if err := s.Present(); err != nil && first == nil {
			first = err
		}
	}
	return first
}

func (t tee) SetStatus(lines ...string) {
	for _, s := range t {
		if sw, ok := s.(StatusWriter); ok {
			sw.SetStatus(lines...)
		}
	}
}
