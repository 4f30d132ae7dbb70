package turtle

import (
	"fmt"
	"image/color"
	"io"
	"math"

	svg "github.com/ajstarks/svgo"
)

// SVGSurface records drawing and renders it as an SVG document on demand.
// It backs headless runs where there is no window to look at.
type SVGSurface struct {
	size  int
	world World

	lines  []svgLine
	dots   []svgDot
	status []string

	presents int
}

type svgLine struct {
	x0, y0, x1, y1 int
	c              color.RGBA
}

type svgDot struct {
	x, y, r int
	c       color.RGBA
}

// NewSVGSurface returns a surface whose drawing area is size x size pixels.
func NewSVGSurface(size int) *SVGSurface {
	if size <= 2*boardMargin {
		size = 320
	}
	return &SVGSurface{size: size, world: DefaultWorld}
}

func (s *SVGSurface) SetWorldCoordinates(llx, lly, urx, ury float64) {
	s.world = World{LLX: llx, LLY: lly, URX: urx, URY: ury}
}

func (s *SVGSurface) toPixel(x, y float64) (int, int) {
	inner := s.size - 2*boardMargin
	px, py := s.world.ToPixel(x, y, inner, inner)
	return boardMargin + int(math.Round(px)), boardMargin + int(math.Round(py))
}

func (s *SVGSurface) Line(x0, y0, x1, y1 float64, c color.RGBA) {
	ax, ay := s.toPixel(x0, y0)
	bx, by := s.toPixel(x1, y1)
	s.lines = append(s.lines, svgLine{x0: ax, y0: ay, x1: bx, y1: by, c: c})
}

func (s *SVGSurface) Dot(x, y float64, size int, c color.RGBA) {
	px, py := s.toPixel(x, y)
	r := size / 2
	if r < 1 {
		r = 1
	}
	s.dots = append(s.dots, svgDot{x: px, y: py, r: r, c: c})
}

func (s *SVGSurface) Clear() {
	s.lines = s.lines[:0]
	s.dots = s.dots[:0]
}

func (s *SVGSurface) Present() error {
	s.presents++
	return nil
}

func (s *SVGSurface) SetStatus(lines ...string) {
	s.status = append(s.status[:0], lines...)
}

// Presents returns how many times Present was called.
func (s *SVGSurface) Presents() int { return s.presents }

// Counts returns the number of recorded lines and dots.
func (s *SVGSurface) Counts() (lines, dots int) { return len(s.lines), len(s.dots) }

// Encode writes the current drawing as an SVG document.
func (s *SVGSurface) Encode(w io.Writer) error {
	ew := &errWriter{w: w}
	height := s.size + statusLineH*(len(s.status)+1)

	canvas := svg.New(ew)
	canvas.Start(s.size, height)
	canvas.Title("Monte Carlo dartboard")
	canvas.Rect(0, 0, s.size, height, "fill:white")

	canvas.Gstyle("stroke-width:1; fill:none")
	for _, l := range s.lines {
		canvas.Line(l.x0, l.y0, l.x1, l.y1, "stroke:"+rgbString(l.c))
	}
	canvas.Gend()

	canvas.Gstyle("stroke:none")
	for _, d := range s.dots {
		canvas.Circle(d.x, d.y, d.r, "fill:"+rgbString(d.c))
	}
	canvas.Gend()

	if len(s.status) > 0 {
		canvas.Gstyle("font-family:monospace; font-size:10; fill:black")
		y := s.size + statusLineH
		for _, line := range s.status {
			canvas.Text(statusIndent, y, line)
			y += statusLineH
		}
		canvas.Gend()
	}
	canvas.End()
	return ew.err
}

func rgbString(c color.RGBA) string {
	return fmt.Sprintf("rgb(%d,%d,%d)", c.R, c.G, c.B)
}

// errWriter keeps the first write error; svgo does not report them.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) Write(p []byte) (int, error) {
	if e.err != nil {
		return 0, e.err
	}
	n, err := e.w.Write(p)
	e.err = err
	return n, err
}
