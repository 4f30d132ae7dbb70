package darts

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"montepi/turtle"
)

const (
	// DotSize is the diameter of a dart mark in pixels.
	DotSize = 5
	// GameThrows is the number of darts in one scoring game.
	GameThrows = 20
)

var (
	ErrNoDarts  = errors.New("darts: need at least one dart")
	ErrOffBoard = errors.New("darts: point is off the board")
)

// IsInCircle reports whether the turtle is within radius of the origin.
//
// The centre arguments are accepted but not used: distance is always measured
// from (0,0). Every caller passes the origin, so the two agree in practice.
func IsInCircle(t *turtle.Turtle, centerX, centerY, radius float64) bool {
	return t.Distance(0, 0) <= radius
}

// Thrower throws darts at the board with its own random source.
type Thrower struct {
	t    *turtle.Turtle
	rng  *rand.Rand
	seed int64
	hook func(x, y float64, inside bool)
}

// Option configures a Thrower.
type Option func(*Thrower)

// WithSeed makes the throws reproducible.
func WithSeed(seed int64) Option {
	return func(th *Thrower) {
		th.seed = seed
		th.rng = rand.New(rand.NewSource(seed))
	}
}

// WithDartHook registers fn to be called after every dart lands.
func WithDartHook(fn func(x, y float64, inside bool)) Option {
	return func(th *Thrower) { th.hook = fn }
}

// NewThrower returns a thrower drawing with t. Without WithSeed it seeds
// itself from the clock.
func NewThrower(t *turtle.Turtle, opts ...Option) *Thrower {
	th := &Thrower{t: t}
	for _, opt := range opts {
		opt(th)
	}
	if th.rng == nil {
		th.seed = time.Now().UnixNano()
		th.rng = rand.New(rand.NewSource(th.seed))
	}
	return th
}

// Seed returns the seed of the random source.
func (th *Thrower) Seed() int64 { return th.seed }

// Turtle returns the cursor the thrower draws with.
func (th *Thrower) Turtle() *turtle.Turtle { return th.t }

// uniform returns a sample from [lo, hi).
func (th *Thrower) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*th.rng.Float64()
}

// ThrowDart lands a dart at a uniformly random point of the board and marks it
// green inside the unit circle, red outside.
func (th *Thrower) ThrowDart() {
	th.t.Up()
	x := th.uniform(-1, 1)
	y := th.uniform(-1, 1)
	th.land(x, y)
}

// ThrowDartAt lands a dart at (x, y). Points off the 2x2 board are rejected.
func (th *Thrower) ThrowDartAt(x, y float64) error {
	if x < -1 || x > 1 || y < -1 || y > 1 {
		return fmt.Errorf("%w: (%g, %g)", ErrOffBoard, x, y)
	}
	th.t.Up()
	th.land(x, y)
	return nil
}

func (th *Thrower) land(x, y float64) {
	th.t.Goto(x, y)
	inside := IsInCircle(th.t, 0, 0, 1)
	if inside {
		th.t.Dot(DotSize, turtle.Green)
	} else {
		th.t.Dot(DotSize, turtle.Red)
	}
	if th.hook != nil {
		th.hook(x, y, inside)
	}
}

// Score is the result of one game.
type Score struct {
	Player1 int
	Player2 int
}

// Winner returns 1 or 2, or 0 for a tie.
func (s Score) Winner() int {
	switch {
	case s.Player1 > s.Player2:
		return 1
	case s.Player2 > s.Player1:
		return 2
	default:
		return 0
	}
}

func (s Score) String() string {
	switch s.Winner() {
	case 1:
		return fmt.Sprintf("Player 1 wins with: %d points!\nPlayer 2 loses with: %d points!", s.Player1, s.Player2)
	case 2:
		return fmt.Sprintf("Player 2 wins with: %d points!\nPlayer 1 loses with: %d points!", s.Player2, s.Player1)
	default:
		return fmt.Sprintf("There is no winner!\nBoth players scored: %d points!", s.Player1)
	}
}

// PlayDarts plays a 20-dart game: even throws belong to player 1, odd throws to
// player 2, and each dart inside the circle scores a point. The result is
// written to w and returned.
func (th *Thrower) PlayDarts(w io.Writer) Score {
	var s Score
	for i := 0; i < GameThrows; i++ {
		th.ThrowDart()
		if !IsInCircle(th.t, 0, 0, 1) {
			continue
		}
		if i%2 == 0 {
			s.Player1++
		} else {
			s.Player2++
		}
	}
	if w != nil {
		fmt.Fprintln(w, s.String())
	}
	return s
}

// MontePi throws n darts and returns 4 * inside / n.
func (th *Thrower) MontePi(n int) (float64, error) {
	if n < 1 {
		return 0, fmt.Errorf("%w: got %d", ErrNoDarts, n)
	}
	inside := 0
	for i := 0; i < n; i++ {
		th.ThrowDart()
		if IsInCircle(th.t, 0, 0, 1) {
			inside++
		}
	}
	return Estimate(inside, n), nil
}

// Estimate converts an inside count into a pi estimate.
func Estimate(inside, total int) float64 {
	return 4 * float64(inside) / float64(total)
}
