package game

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// input is one tick's worth of pointer and keyboard state.
type input struct {
	x, y         int
	pressed      bool
	justPressed  bool
	justReleased bool
	wheel        float64
	chars        []rune
	backspace    bool
	enter        bool
	tab          bool
	escape       bool
	quit         bool
}

// keyRepeat reports a press on the first tick and then every few ticks while held.
func keyRepeat(k ebiten.Key) bool {
	d := inpututil.KeyPressDuration(k)
	return d == 1 || (d >= 30 && d%4 == 0)
}

func readInput(chars []rune) input {
	x, y := ebiten.CursorPosition()
	_, wy := ebiten.Wheel()
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	return input{
		x:            x,
		y:            y,
		pressed:      ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft),
		justPressed:  inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		justReleased: inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft),
		wheel:        wy,
		chars:        ebiten.AppendInputChars(chars[:0]),
		backspace:    keyRepeat(ebiten.KeyBackspace),
		enter:        inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		tab:          inpututil.IsKeyJustPressed(ebiten.KeyTab),
		escape:       inpututil.IsKeyJustPressed(ebiten.KeyEscape),
		quit:         ctrl && inpututil.IsKeyJustPressed(ebiten.KeyQ),
	}
}
