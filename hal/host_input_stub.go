//go:build !cgo

package hal

type hostInput struct {
	keys   chan KeyEvent
	clicks chan PointerEvent
}

func newHostInput() *hostInput {
	return &hostInput{
		keys:   make(chan KeyEvent, 64),
		clicks: make(chan PointerEvent, 16),
	}
}

func (in *hostInput) Keyboard() Keyboard { return hostKeyboard{ch: in.keys} }
func (in *hostInput) Pointer() Pointer   { return hostPointer{ch: in.clicks} }

func (in *hostInput) poll() {
	// No input devices without the window backend.
}

type hostKeyboard struct{ ch chan KeyEvent }

func (k hostKeyboard) Events() <-chan KeyEvent { return k.ch }

type hostPointer struct{ ch chan PointerEvent }

func (p hostPointer) Clicks() <-chan PointerEvent { return p.ch }
