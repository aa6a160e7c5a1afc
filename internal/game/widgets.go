package game

import (
	"image"
	"image/color"
	"unicode"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/iburimskiy/time-estimator/internal/config"
)

const glyphWidth = 6 // debug font advance

var (
	colorButton        = color.RGBA{R: 120, G: 62, B: 48, A: 255}
	colorButtonHover   = color.RGBA{R: 142, G: 76, B: 58, A: 255}
	colorButtonPressed = color.RGBA{R: 92, G: 46, B: 36, A: 255}
	colorBorder        = color.RGBA{R: 212, G: 170, B: 120, A: 255}
	colorField         = color.RGBA{R: 40, G: 24, B: 20, A: 230}
	colorFieldFocus    = color.RGBA{R: 230, G: 190, B: 130, A: 255}
	colorTrack         = color.RGBA{R: 70, G: 42, B: 34, A: 255}
	colorKnob          = color.RGBA{R: 240, G: 210, B: 160, A: 255}
)

func contains(r image.Rectangle, x, y int) bool {
	return image.Pt(x, y).In(r)
}

func drawRect(dst *ebiten.Image, r image.Rectangle, fill color.Color) {
	vector.DrawFilledRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), fill, false)
}

func strokeRect(dst *ebiten.Image, r image.Rectangle, width float32, clr color.Color) {
	vector.StrokeRect(dst, float32(r.Min.X), float32(r.Min.Y), float32(r.Dx()), float32(r.Dy()), width, clr, false)
}

// printCentered draws text centered in r with the debug font.
func printCentered(dst *ebiten.Image, text string, r image.Rectangle) {
	textWidth := len(text) * glyphWidth
	ebitenutil.DebugPrintAt(dst, text, r.Min.X+(r.Dx()-textWidth)/2, r.Min.Y+(r.Dy()-16)/2)
}

// button is a click target that fires on release over the same widget it was pressed on.
type button struct {
	label   string
	rect    image.Rectangle
	hovered bool
	pressed bool
}

func (b *button) update(in input) bool {
	b.hovered = contains(b.rect, in.x, in.y)
	if b.hovered && in.justPressed {
		b.pressed = true
	}
	if in.justReleased {
		clicked := b.pressed && b.hovered
		b.pressed = false
		return clicked
	}
	return false
}

func (b *button) draw(dst *ebiten.Image) {
	var bg color.Color
	if b.pressed {
		bg = colorButtonPressed
	} else if b.hovered {
		bg = colorButtonHover
	} else {
		bg = colorButton
	}
	drawRect(dst, b.rect, bg)
	strokeRect(dst, b.rect, 1, colorBorder)
	printCentered(dst, b.label, b.rect)
}

// slider picks a value in a Range by dragging along its track.
type slider struct {
	rng      config.Range
	value    float64
	rect     image.Rectangle
	dragging bool
}

func newSlider(r config.Range) *slider {
	return &slider{rng: r, value: snapToStep(r.Default, r)}
}

func (s *slider) update(in input) bool {
	if in.justPressed && contains(s.rect, in.x, in.y) {
		s.dragging = true
	}
	if !s.dragging {
		return false
	}
	if in.justReleased || !in.pressed {
		s.dragging = false
	}
	if s.rect.Dx() <= 0 {
		return false
	}
	t := clamp01(float64(in.x-s.rect.Min.X) / float64(s.rect.Dx()))
	v := snapToStep(s.rng.Min+t*(s.rng.Max-s.rng.Min), s.rng)
	if v == s.value {
		return false
	}
	s.value = v
	return true
}

func (s *slider) draw(dst *ebiten.Image) {
	cy := float32(s.rect.Min.Y + s.rect.Dy()/2)
	vector.StrokeLine(dst, float32(s.rect.Min.X), cy, float32(s.rect.Max.X), cy, 4, colorTrack, true)
	span := s.rng.Max - s.rng.Min
	t := 0.0
	if span > 0 {
		t = (s.value - s.rng.Min) / span
	}
	kx := float32(s.rect.Min.X) + float32(t)*float32(s.rect.Dx())
	vector.StrokeLine(dst, float32(s.rect.Min.X), cy, kx, cy, 4, colorBorder, true)
	vector.DrawFilledCircle(dst, kx, cy, 7, colorKnob, true)
}

// choice cycles through named options: the left third steps back, the rest forward.
type choice struct {
	options []config.Option
	index   int
	rect    image.Rectangle
	hovered bool
}

func (c *choice) selected() config.Option { return c.options[c.index] }

func (c *choice) update(in input) bool {
	c.hovered = contains(c.rect, in.x, in.y)
	if !c.hovered || !in.justPressed || len(c.options) == 0 {
		return false
	}
	if in.x < c.rect.Min.X+c.rect.Dx()/3 {
		c.index = (c.index + len(c.options) - 1) % len(c.options)
	} else {
		c.index = (c.index + 1) % len(c.options)
	}
	return true
}

func (c *choice) draw(dst *ebiten.Image) {
	bg := colorField
	drawRect(dst, c.rect, bg)
	border := colorBorder
	if c.hovered {
		border = colorFieldFocus
	}
	strokeRect(dst, c.rect, 1, border)
	ebitenutil.DebugPrintAt(dst, "<", c.rect.Min.X+8, c.rect.Min.Y+(c.rect.Dy()-16)/2)
	ebitenutil.DebugPrintAt(dst, ">", c.rect.Max.X-14, c.rect.Min.Y+(c.rect.Dy()-16)/2)
	printCentered(dst, c.selected().Name, c.rect)
}

// textField is a single-line ASCII entry box.
type textField struct {
	placeholder string
	value       []rune
	max         int
	rect        image.Rectangle
	focused     bool
}

func (f *textField) text() string { return string(f.value) }

func (f *textField) reset() { f.value = f.value[:0] }

func (f *textField) update(in input) {
	if in.justPressed {
		f.focused = contains(f.rect, in.x, in.y)
	}
	if !f.focused {
		return
	}
	for _, r := range in.chars {
		// The debug font only carries printable ASCII.
		if r > unicode.MaxASCII || !unicode.IsPrint(r) || len(f.value) >= f.max {
			continue
		}
		f.value = append(f.value, r)
	}
	if in.backspace && len(f.value) > 0 {
		f.value = f.value[:len(f.value)-1]
	}
}

func (f *textField) draw(dst *ebiten.Image, blink bool) {
	drawRect(dst, f.rect, colorField)
	border := colorBorder
	if f.focused {
		border = colorFieldFocus
	}
	strokeRect(dst, f.rect, 1, border)

	shown := f.text()
	if len(f.value) == 0 && !f.focused {
		shown = f.placeholder
	}
	fit := (f.rect.Dx() - 12) / glyphWidth
	if f.focused && blink {
		shown += "_"
	}
	ebitenutil.DebugPrintAt(dst, tail(shown, fit), f.rect.Min.X+6, f.rect.Min.Y+(f.rect.Dy()-16)/2)
}
