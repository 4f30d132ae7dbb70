package turtle

import (
	"image/color"
	"math"
)

// Turtle is the drawing cursor. It is not safe for concurrent use.
type Turtle struct {
	scr *Screen

	x, y    float64
	heading float64
	down    bool
	color   color.RGBA
}

// New returns a turtle at the origin, facing east, pen down, drawing in black.
func New(scr *Screen) *Turtle {
	return &Turtle{scr: scr, down: true, color: Black}
}

// Screen returns the screen the turtle draws on.
func (t *Turtle) Screen() *Screen { return t.scr }

func (t *Turtle) Up()          { t.down = false }
func (t *Turtle) Down()        { t.down = true }
func (t *Turtle) IsDown() bool { return t.down }

// Pos returns the current position.
func (t *Turtle) Pos() (x, y float64) { return t.x, t.y }
func (t *Turtle) X() float64          { return t.x }
func (t *Turtle) Y() float64          { return t.y }

// Heading returns the heading in degrees in [0, 360).
func (t *Turtle) Heading() float64 { return t.heading }

// SetColor sets the pen colour.
func (t *Turtle) SetColor(c color.RGBA) { t.color = c }

// Goto moves to (x, y), drawing a line when the pen is down.
func (t *Turtle) Goto(x, y float64) {
	if t.down {
		t.scr.surf.Line(t.x, t.y, x, y, t.color)
		t.scr.changed()
	}
	t.x, t.y = x, y
}

// SetX moves horizontally to x.
func (t *Turtle) SetX(x float64) { t.Goto(x, t.y) }

// SetY moves vertically to y.
func (t *Turtle) SetY(y float64) { t.Goto(t.x, y) }

// Forward moves distance units along the heading.
func (t *Turtle) Forward(distance float64) {
	rad := t.heading * math.Pi / 180
	t.Goto(t.x+distance*math.Cos(rad), t.y+distance*math.Sin(rad))
}

// Left turns counter-clockwise by deg degrees.
func (t *Turtle) Left(deg float64) { t.setHeading(t.heading + deg) }

// Right turns clockwise by deg degrees.
func (t *Turtle) Right(deg float64) { t.setHeading(t.heading - deg) }

func (t *Turtle) setHeading(deg float64) {
	deg = math.Mod(deg, 360)
	if deg < 0 {
		deg += 360
	}
	// Snap values that are 360 within rounding error back to zero.
	if 360-deg < 1e-9 {
		deg = 0
	}
	t.heading = deg
}

// Circle draws an arc of the given extent (degrees) as a polygon with steps
// chords. The centre is radius units to the left of the turtle; a full circle
// ends where it started with the original heading.
func (t *Turtle) Circle(radius, extent float64, steps int) {
	if steps < 1 {
		steps = 1
	}
	w := extent / float64(steps)
	w2 := w / 2
	chord := 2 * radius * math.Sin(w2*math.Pi/180)
	if radius < 0 {
		chord, w, w2 = -chord, -w, -w2
	}
	start := t.heading
	t.Left(w2)
	for i := 0; i < steps; i++ {
		t.Forward(chord)
		t.Left(w)
	}
	t.Right(w2)
	if math.Mod(math.Abs(extent), 360) == 0 {
		t.heading = start
	}
}

// Distance returns the Euclidean distance from the turtle to (x, y).
func (t *Turtle) Distance(x, y float64) float64 {
	return math.Hypot(t.x-x, t.y-y)
}

// Dot marks the current position with a filled circle of size pixels.
func (t *Turtle) Dot(size int, c color.RGBA) {
	t.scr.surf.Dot(t.x, t.y, size, c)
	t.scr.changed()
}

// Clear erases the drawing. Position, heading and pen state are kept.
func (t *Turtle) Clear() {
	t.scr.surf.Clear()
	t.scr.changed()
}
