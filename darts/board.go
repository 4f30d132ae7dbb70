// Package darts implements the Monte Carlo dartboard: board drawing, the
// inside-circle predicate, dart throws, the two-player game and the pi
// estimator.
package darts

import "montepi/turtle"

// CircleSegments is the number of chords used to approximate the circle.
const CircleSegments = 30

// GotoOrigin lifts the pen, moves to (0,0) and lowers the pen again.
func GotoOrigin(t *turtle.Turtle) {
	t.Up()
	t.Goto(0, 0)
	t.Down()
}

// DrawSquare traces a square of side width clockwise from its top-left corner,
// assuming the turtle faces east, then returns to the origin.
func DrawSquare(t *turtle.Turtle, width, topLeftX, topLeftY float64) {
	t.Up()
	t.SetX(topLeftX)
	t.SetY(topLeftY)
	t.Down()

	for i := 0; i < 4; i++ {
		t.Forward(width)
		t.Right(90)
	}

	GotoOrigin(t)
}

// DrawLine draws a segment and returns to the origin.
func DrawLine(t *turtle.Turtle, xStart, yStart, xEnd, yEnd float64) {
	t.Up()
	t.Goto(xStart, yStart)
	t.Down()
	t.Goto(xEnd, yEnd)
	GotoOrigin(t)
}

// DrawCircle draws a circle of the given radius centred on the origin and
// returns to the origin.
func DrawCircle(t *turtle.Turtle, radius float64) {
	t.Up()
	GotoOrigin(t)
	x, y := t.Pos()
	t.Up()
	t.Goto(x, y-radius)
	t.Down()
	t.Circle(radius, 360, CircleSegments)
	GotoOrigin(t)
}

// SetUpDartboard maps the screen onto [-1,1]x[-1,1] and draws the 2x2 square,
// both axes and the unit circle. Calling it again redraws over the old lines.
func SetUpDartboard(scr *turtle.Screen, t *turtle.Turtle) {
	scr.SetWorldCoordinates(-1, -1, 1, 1)
	DrawSquare(t, 2, -1, 1)
	DrawLine(t, -1, 0, 1, 0)
	DrawLine(t, 0, 1, 0, -1)
	DrawCircle(t, 1)
}
