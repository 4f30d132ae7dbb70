//go:build cgo

package hal

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

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
	emit := func(ev KeyEvent) {
		select {
		case in.keys <- ev:
		default:
		}
	}

	for _, r := range ebiten.AppendInputChars(nil) {
		emit(KeyEvent{Press: true, Rune: r})
	}

	for _, k := range []struct {
		key  ebiten.Key
		code KeyCode
	}{
		{ebiten.KeyEnter, KeyEnter},
		{ebiten.KeyEscape, KeyEscape},
		{ebiten.KeySpace, KeySpace},
	} {
		if inpututil.IsKeyJustPressed(k.key) {
			emit(KeyEvent{Code: k.code, Press: true})
		}
		if inpututil.IsKeyJustReleased(k.key) {
			emit(KeyEvent{Code: k.code, Press: false})
		}
	}

	for _, b := range []ebiten.MouseButton{ebiten.MouseButtonLeft, ebiten.MouseButtonRight} {
		if !inpututil.IsMouseButtonJustPressed(b) {
			continue
		}
		x, y := ebiten.CursorPosition()
		select {
		case in.clicks <- PointerEvent{X: x, Y: y, Button: int(b)}:
		default:
		}
	}
}

type hostKeyboard struct{ ch chan KeyEvent }

func (k hostKeyboard) Events() <-chan KeyEvent { return k.ch }

type hostPointer struct{ ch chan PointerEvent }

func (p hostPointer) Clicks() <-chan PointerEvent { return p.ch }
