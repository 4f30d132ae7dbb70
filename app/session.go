package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"montepi/darts"
	"montepi/hal"
	"montepi/turtle"

	"github.com/cheggaaa/pb/v3"
	"github.com/sirupsen/logrus"
)

// ErrBadDartCount is returned when the dart count typed at the prompt is not
// an integer.
var ErrBadDartCount = errors.New("dart count must be an integer")

const (
	defaultTestDarts = 10
	defaultBatch     = 5000
)

const intro = "This is a program that simulates throwing darts at a dartboard\n" +
	"in order to approximate pi: The ratio of darts in a unit circle\n" +
	"to the total number of darts in a 2X2 square should be\n" +
	"approximately  equal to pi/4"

const prompt = "\nPlease input the number of darts to be thrown in the simulation:  "

type Config struct {
	// TestDarts is the number of darts thrown in part A.
	TestDarts int
	// Darts is the part C dart count; 0 asks on the console.
	Darts int

	Seed   int64
	Seeded bool

	// Batch is the redraw batch size used in part C.
	Batch int

	// WaitDismiss keeps the display up after part C until the user clicks
	// or presses a key.
	WaitDismiss bool

	// Progress receives a progress bar for part C; nil disables it.
	Progress io.Writer
	// Capture mirrors all drawing onto a second surface.
	Capture turtle.Surface

	Log logrus.FieldLogger
}

func (c *Config) setDefaults() {
	if c.TestDarts < 0 {
		c.TestDarts = 0
	}
	if c.Batch <= 0 {
		c.Batch = defaultBatch
	}
	if c.Log == nil {
		c.Log = logrus.StandardLogger()
	}
}

// Result is what a completed session produced.
type Result struct {
	Score    darts.Score
	Darts    int
	Estimate float64
}

// Session runs the three parts of the program against one board.
type Session struct {
	cfg Config
	con hal.Console
	log logrus.FieldLogger

	scr    *turtle.Screen
	t      *turtle.Turtle
	th     *darts.Thrower
	status turtle.StatusWriter

	onDart func(inside bool)
}

// NewSession prepares a session drawing on surf and talking through con.
func NewSession(con hal.Console, surf turtle.Surface, cfg Config) *Session {
	cfg.setDefaults()
	s := &Session{cfg: cfg, con: con, log: cfg.Log}
	s.scr = turtle.NewScreen(surf)
	s.t = turtle.New(s.scr)
	s.status, _ = surf.(turtle.StatusWriter)

	opts := []darts.Option{darts.WithDartHook(func(_, _ float64, inside bool) {
		if s.onDart != nil {
			s.onDart(inside)
		}
	})}
	if cfg.Seeded {
		opts = append(opts, darts.WithSeed(cfg.Seed))
	}
	s.th = darts.NewThrower(s.t, opts...)
	return s
}

// Thrower exposes the session's dart thrower.
func (s *Session) Thrower() *darts.Thrower { return s.th }

// Run executes part A (test throws), part B (the two-player game) and part C
// (the pi estimate) in order.
func (s *Session) Run(ctx context.Context) (Result, error) {
	var res Result
	s.log.WithField("seed", s.th.Seed()).Info("session: start")

	s.con.WriteLineString(intro)

	s.con.WriteLineString("=========== Part A ===========")
	s.setStatus("Part A: test throws")
	darts.SetUpDartboard(s.scr, s.t)
	for i := 0; i < s.cfg.TestDarts; i++ {
		s.th.ThrowDart()
	}
	if err := s.scr.Update(); err != nil {
		return res, err
	}
	s.con.WriteLineString("\tPart A Complete...")
	if err := ctx.Err(); err != nil {
		return res, err
	}

	s.con.WriteLineString("=========== Part B ===========")
	s.resetBoard("Part B: player 1 vs player 2")
	res.Score = s.th.PlayDarts(s.con)
	s.setStatus("Part B: game over", strings.ReplaceAll(res.Score.String(), "\n", " "))
	if err := s.scr.Update(); err != nil {
		return res, err
	}
	s.log.WithFields(logrus.Fields{"player1": res.Score.Player1, "player2": res.Score.Player2}).Info("session: game finished")
	s.con.WriteLineString("\tPart B Complete...")
	if err := ctx.Err(); err != nil {
		return res, err
	}

	s.con.WriteLineString("=========== Part C ===========")
	s.resetBoard("Part C: waiting for dart count")
	if err := s.scr.Update(); err != nil {
		return res, err
	}
	s.scr.Tracer(s.cfg.Batch)

	n, err := s.dartCount()
	if err != nil {
		return res, err
	}
	res.Darts = n

	est, err := s.estimate(n)
	if err != nil {
		return res, err
	}
	res.Estimate = est

	s.con.WriteLineString(fmt.Sprintf("\nThe estimation of pi using %d virtual darts is %s", n, formatFloat(est)))
	s.setStatus(fmt.Sprintf("Part C: %d darts", n), "pi ~ "+formatFloat(est), "click or press a key to close")
	if err := s.scr.Update(); err != nil {
		return res, err
	}
	s.con.WriteLineString("\tPart C Complete...")

	return res, s.scr.Err()
}

func (s *Session) resetBoard(status string) {
	s.t.Clear()
	s.setStatus(status)
	darts.SetUpDartboard(s.scr, s.t)
}

func (s *Session) setStatus(lines ...string) {
	if s.status != nil {
		s.status.SetStatus(lines...)
	}
}

func (s *Session) dartCount() (int, error) {
	if s.cfg.Darts != 0 {
		return s.cfg.Darts, nil
	}
	if _, err := io.WriteString(s.con, prompt); err != nil {
		return 0, err
	}
	line, err := s.con.ReadLine()
	if err != nil {
		return 0, fmt.Errorf("read dart count: %w", err)
	}
	return parseDartCount(line)
}

func parseDartCount(line string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(line))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadDartCount, line)
	}
	return n, nil
}

func (s *Session) estimate(n int) (float64, error) {
	log := s.log.WithFields(logrus.Fields{"darts": n, "batch": s.scr.Batch()})
	log.Info("session: estimating")

	var bar *pb.ProgressBar
	if s.cfg.Progress != nil && n > 0 {
		bar = pb.New(n)
		bar.SetWriter(s.cfg.Progress)
		bar.Start()
	}

	thrown, inside := 0, 0
	s.onDart = func(in bool) {
		thrown++
		if in {
			inside++
		}
		if bar != nil {
			bar.Increment()
		}
		if thrown%s.cfg.Batch == 0 {
			s.setStatus(fmt.Sprintf("Part C: %d/%d darts", thrown, n), "pi ~ "+formatFloat(darts.Estimate(inside, thrown)))
		}
	}
	defer func() { s.onDart = nil }()

	est, err := s.th.MontePi(n)
	if bar != nil {
		bar.Finish()
	}
	if err != nil {
		return 0, err
	}
	log.WithField("estimate", est).Info("session: estimate done")
	return est, nil
}

// formatFloat prints the shortest representation that round-trips, always
// with a decimal point.
func formatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsAny(s, ".eEnN") {
		s += ".0"
	}
	return s
}
