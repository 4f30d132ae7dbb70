package turtle

import (
	"errors"
	"image"
	"image/color"
	"math"

	"montepi/hal"

	"tinygo.org/x/drivers"
	"tinygo.org/x/tinyfont"
	"tinygo.org/x/tinyfont/proggy"
)

const (
	boardMargin  = 8
	statusLineH  = 12
	statusIndent = 6
)

var statusBG = color.RGBA{R: 0xE8, G: 0xEC, B: 0xF0, A: 0xFF}

// FramebufferSurface draws into an RGB565 framebuffer. The top square of the
// framebuffer holds the drawing; the rows below it form a status strip.
type FramebufferSurface struct {
	fb    hal.Framebuffer
	d     *fbDisplay
	world World

	board  image.Rectangle
	status image.Rectangle

	font  tinyfont.Fonter
	lines []string
}

// NewFramebufferSurface clears fb and lays out the board and status strip.
func NewFramebufferSurface(fb hal.Framebuffer) (*FramebufferSurface, error) {
	if fb == nil {
		return nil, errors.New("turtle: no framebuffer")
	}
	if fb.Format() != hal.PixelFormatRGB565 {
		return nil, errors.New("turtle: unsupported pixel format")
	}
	w, h := fb.Width(), fb.Height()
	side := w
	if h < side {
		side = h
	}
	if side <= 2*boardMargin {
		return nil, errors.New("turtle: framebuffer too small")
	}

	s := &FramebufferSurface{
		fb:     fb,
		d:      &fbDisplay{fb: fb},
		world:  DefaultWorld,
		board:  image.Rect(boardMargin, boardMargin, side-boardMargin, side-boardMargin),
		status: image.Rect(0, side, w, h),
		font:   &proggy.TinySZ8pt7b,
	}
	fb.ClearRGB(White.R, White.G, White.B)
	s.drawStatus()
	return s, nil
}

// Board returns the pixel rectangle used for the drawing.
func (s *FramebufferSurface) Board() image.Rectangle { return s.board }

func (s *FramebufferSurface) SetWorldCoordinates(llx, lly, urx, ury float64) {
	s.world = World{LLX: llx, LLY: lly, URX: urx, URY: ury}
}

func (s *FramebufferSurface) toPixel(x, y float64) (int, int) {
	px, py := s.world.ToPixel(x, y, s.board.Dx(), s.board.Dy())
	return s.board.Min.X + int(math.Round(px)), s.board.Min.Y + int(math.Round(py))
}

func (s *FramebufferSurface) Line(x0, y0, x1, y1 float64, c color.RGBA) {
	ax, ay := s.toPixel(x0, y0)
	bx, by := s.toPixel(x1, y1)
	s.drawLine(ax, ay, bx, by, rgb565From888(c.R, c.G, c.B))
}

func (s *FramebufferSurface) Dot(x, y float64, size int, c color.RGBA) {
	if size < 1 {
		size = 1
	}
	cx, cy := s.toPixel(x, y)
	s.fillCircle(cx, cy, size/2, rgb565From888(c.R, c.G, c.B))
}

func (s *FramebufferSurface) Clear() {
	s.fillRect(s.board.Inset(-boardMargin), rgb565From888(White.R, White.G, White.B))
}

func (s *FramebufferSurface) Present() error { return s.fb.Present() }

// SetStatus replaces the text shown in the status strip.
func (s *FramebufferSurface) SetStatus(lines ...string) {
	s.lines = append(s.lines[:0], lines...)
	s.drawStatus()
}

func (s *FramebufferSurface) drawStatus() {
	if s.status.Empty() {
		return
	}
	s.fillRect(s.status, rgb565From888(statusBG.R, statusBG.G, statusBG.B))
	y := s.status.Min.Y + statusLineH
	for _, line := range s.lines {
		if y > s.status.Max.Y {
			break
		}
		tinyfont.WriteLine(s.d, s.font, int16(statusIndent), int16(y), line, Black)
		y += statusLineH
	}
}

func (s *FramebufferSurface) setPixel(x, y int, pixel uint16) {
	if !(image.Point{X: x, Y: y}).In(s.board.Inset(-boardMargin)) {
		return
	}
	buf := s.fb.Buffer()
	off := y*s.fb.StrideBytes() + x*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (s *FramebufferSurface) drawLine(x0, y0, x1, y1 int, pixel uint16) {
	dx := absInt(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -absInt(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		s.setPixel(x0, y0, pixel)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (s *FramebufferSurface) fillCircle(cx, cy, r int, pixel uint16) {
	for y := -r; y <= r; y++ {
		dx := int(math.Sqrt(float64(r*r - y*y)))
		for x := cx - dx; x <= cx+dx; x++ {
			s.setPixel(x, cy+y, pixel)
		}
	}
}

func (s *FramebufferSurface) fillRect(r image.Rectangle, pixel uint16) {
	r = r.Intersect(image.Rect(0, 0, s.fb.Width(), s.fb.Height()))
	buf := s.fb.Buffer()
	stride := s.fb.StrideBytes()
	lo, hi := byte(pixel), byte(pixel>>8)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		row := y * stride
		for x := r.Min.X; x < r.Max.X; x++ {
			off := row + x*2
			if off < 0 || off+1 >= len(buf) {
				continue
			}
			buf[off] = lo
			buf[off+1] = hi
		}
	}
}

// fbDisplay lets tinyfont draw into the framebuffer.
type fbDisplay struct {
	fb hal.Framebuffer
}

var _ drivers.Displayer = (*fbDisplay)(nil)

func (d *fbDisplay) Size() (x, y int16) {
	return int16(d.fb.Width()), int16(d.fb.Height())
}

func (d *fbDisplay) SetPixel(x, y int16, c color.RGBA) {
	buf := d.fb.Buffer()
	ix, iy := int(x), int(y)
	if ix < 0 || ix >= d.fb.Width() || iy < 0 || iy >= d.fb.Height() {
		return
	}
	pixel := rgb565From888(c.R, c.G, c.B)
	off := iy*d.fb.StrideBytes() + ix*2
	if off < 0 || off+1 >= len(buf) {
		return
	}
	buf[off] = byte(pixel)
	buf[off+1] = byte(pixel >> 8)
}

func (d *fbDisplay) Display() error { return d.fb.Present() }

func rgb565From888(r, g, b uint8) uint16 {
	return uint16((uint16(r>>3)&0x1F)<<11 | (uint16(g>>2)&0x3F)<<5 | (uint16(b>>3) & 0x1F))
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
