package turtle

import (
	"golang.org/x/time/rate"
)

// Screen owns the world window and decides when drawing reaches the display.
type Screen struct {
	surf  Surface
	world World

	batch  int
	tracer *rate.Sometimes
	err    error
}

// NewScreen returns a screen that presents after every drawing update.
func NewScreen(surf Surface) *Screen {
	s := &Screen{surf: surf, world: DefaultWorld}
	s.Tracer(1)
	surf.SetWorldCoordinates(s.world.LLX, s.world.LLY, s.world.URX, s.world.URY)
	return s
}

// Surface returns the underlying canvas.
func (s *Screen) Surface() Surface { return s.surf }

// World returns the current world window.
func (s *Screen) World() World { return s.world }

// SetWorldCoordinates sets the world window: (llx, lly) is the lower-left
// corner and (urx, ury) the upper-right one.
func (s *Screen) SetWorldCoordinates(llx, lly, urx, ury float64) {
	s.world = World{LLX: llx, LLY: lly, URX: urx, URY: ury}
	s.surf.SetWorldCoordinates(llx, lly, urx, ury)
}

// Tracer batches redraws: only every n-th drawing update is presented.
// n <= 1 presents every update.
func (s *Screen) Tracer(n int) {
	if n < 1 {
		n = 1
	}
	s.batch = n
	s.tracer = &rate.Sometimes{Every: n}
}

// Batch returns the current tracer setting.
func (s *Screen) Batch() int { return s.batch }

// Update presents pending drawing immediately.
func (s *Screen) Update() error {
	err := s.surf.Present()
	s.keep(err)
	return err
}

// Err returns the first present error seen by a batched update.
func (s *Screen) Err() error { return s.err }

// changed is called after each visible drawing update.
func (s *Screen) changed() {
	s.tracer.Do(func() {
		s.keep(s.surf.Present())
	})
}

func (s *Screen) keep(err error) {
	if err != nil && s.err == nil {
		s.err = err
	}
}
