package game

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/estimate"
	"github.com/iburimskiy/time-estimator/internal/export"
)

const (
	headerScale = 2
	blinkPeriod = 500 * time.Millisecond
)

var (
	headerFace = text.NewGoXFace(basicfont.Face7x13)

	colorCard     = color.RGBA{R: 52, G: 32, B: 26, A: 235}
	colorPanel    = color.RGBA{R: 34, G: 20, B: 17, A: 245}
	colorRow      = color.RGBA{R: 62, G: 38, B: 30, A: 220}
	colorHeader   = color.RGBA{R: 246, G: 222, B: 180, A: 255}
	colorMeter    = color.RGBA{R: 230, G: 170, B: 90, A: 255}
	colorMeterBg  = color.RGBA{R: 40, G: 24, B: 20, A: 200}
	colorErrorBar = color.RGBA{R: 120, G: 30, B: 24, A: 220}
)

// drawer is implemented by canvases that can be composited onto the screen.
type drawer interface {
	DrawTo(dst *ebiten.Image, x, y int)
}

func (g *Game) Draw(screen *ebiten.Image) {
	now := g.loop.Now()
	g.drawBackground(screen, now)

	if g.ready {
		g.drawHeader(screen, now)
		g.drawCard(screen)
		g.drawHistory(screen)
		if g.panelOpen {
			g.drawPanel(screen, now)
		} else {
			g.fab.draw(screen)
		}
		g.drawStatus(screen)
		g.drawMeter(screen)
	}

	if d, ok := g.burstCanvas.(drawer); ok && g.engine.Burst.Active() {
		s := g.engine.Burst.Surface
		d.DrawTo(screen, s.Left, s.Top)
	}
	g.drawLoading(screen, now)
}

func (g *Game) drawBackground(screen *ebiten.Image, now time.Time) {
	t := now.Sub(g.started).Seconds()
	h := max(g.height, 1)
	for y := 0; y < g.height; y += 2 {
		ratio := float64(y) / float64(h)
		r := uint8(28 + 14*math.Sin(t*0.2+ratio*math.Pi))
		gv := uint8(18 + 8*math.Cos(t*0.15+ratio*math.Pi))
		b := uint8(14 + 6*math.Sin(t*0.1+ratio*math.Pi))
		vector.StrokeLine(screen, 0, float32(y)+1, float32(g.width), float32(y)+1, 2, color.RGBA{R: r, G: gv, B: b, A: 255}, false)
	}
}

// drawHeader lays the title out letter by letter so each rune follows its own carve.
func (g *Game) drawHeader(screen *ebiten.Image, now time.Time) {
	if g.carve == nil {
		return
	}
	runes := []rune(g.carve.Text)
	advance := float64(basicfont.Face7x13.Advance * headerScale)
	x := float64(g.lay.header.Min.X) + (float64(g.lay.header.Dx())-advance*float64(len(runes)))/2
	y := float64(g.lay.header.Min.Y)
	for i, r := range runes {
		alpha, offset := g.carve.Letter(i, now)
		if alpha > 0 {
			op := &text.DrawOptions{}
			op.GeoM.Scale(headerScale, headerScale)
			op.GeoM.Translate(x, y+offset)
			op.ColorScale.ScaleWithColor(colorHeader)
			op.ColorScale.ScaleAlpha(float32(alpha))
			text.Draw(screen, string(r), headerFace, op)
		}
		x += advance
	}
}

func (g *Game) drawCard(screen *ebiten.Image) {
	card := g.lay.card
	if card.Empty() {
		return
	}
	drawRect(screen, card, colorCard)
	if d, ok := g.ambientCanvas.(drawer); ok {
		s := g.engine.Ambient.Surface
		d.DrawTo(screen, s.Left, s.Top)
	}
	strokeRect(screen, card, 2, colorBorder)

	label := func(s string, r image.Rectangle) {
		ebitenutil.DebugPrintAt(screen, s, r.Min.X, r.Min.Y-config.LabelOffset-4)
	}
	label("Wood type", g.wood.rect)
	label("Complexity: "+estimate.ComplexityLabel(g.complexity.value), g.complexity.rect)
	label("Size: "+estimate.SizeLabel(g.size.value), g.size.rect)
	label("Tool", g.tool.rect)

	g.wood.draw(screen)
	g.complexity.draw(screen)
	g.size.draw(screen)
	g.tool.draw(screen)
	g.calc.draw(screen)
	g.copy.draw(screen)
	g.export.draw(screen)

	if g.result != "" {
		ebitenutil.DebugPrintAt(screen, g.result, g.lay.result.X, g.lay.result.Y)
	}
}

func (g *Game) drawHistory(screen *ebiten.Image) {
	h := g.lay.history
	if h.Empty() {
		return
	}
	ebitenutil.DebugPrintAt(screen, "History", h.Min.X, h.Min.Y+6)
	g.historyClear.draw(screen)

	list := g.lay.historyList
	estimates := g.store.Estimates()
	if len(estimates) == 0 {
		ebitenutil.DebugPrintAt(screen, "No estimates yet.", list.Min.X+4, list.Min.Y+4)
		return
	}
	sub := screen.SubImage(list).(*ebiten.Image)
	fit := (list.Dx() - 110) / glyphWidth
	for i, e := range estimates {
		row := rowAt(list, i, g.historyScroll)
		if row.Max.Y < list.Min.Y || row.Min.Y > list.Max.Y {
			continue
		}
		drawRect(sub, row, colorRow)
		ebitenutil.DebugPrintAt(sub, truncate(asciiOnly(export.EstimateText(e)), fit), row.Min.X+8, row.Min.Y+(row.Dy()-16)/2)
		cp, del := rowButtons(row)
		drawRowButton(sub, "Copy", cp)
		drawRowButton(sub, "Del", del)
	}
}

func drawRowButton(dst *ebiten.Image, label string, r image.Rectangle) {
	drawRect(dst, r, colorButton)
	strokeRect(dst, r, 1, colorBorder)
	printCentered(dst, label, r)
}

func (g *Game) drawPanel(screen *ebiten.Image, now time.Time) {
	p := g.lay.panel
	drawRect(screen, p, colorPanel)
	vector.StrokeLine(screen, float32(p.Min.X), 0, float32(p.Min.X), float32(p.Max.Y), 2, colorBorder, false)
	ebitenutil.DebugPrintAt(screen, "Feedback", p.Min.X+config.Padding, 20)
	g.panelClose.draw(screen)

	blink := (now.Sub(g.started)/blinkPeriod)%2 == 0
	ebitenutil.DebugPrintAt(screen, "Name", g.name.rect.Min.X, g.name.rect.Min.Y-config.LabelOffset)
	g.name.draw(screen, blink)
	ebitenutil.DebugPrintAt(screen, "Message", g.message.rect.Min.X, g.message.rect.Min.Y-config.LabelOffset)
	g.message.draw(screen, blink)
	ebitenutil.DebugPrintAt(screen, "Rating", g.rating.rect.Min.X, g.rating.rect.Min.Y-config.LabelOffset)
	g.rating.draw(screen)
	g.submit.draw(screen)
	g.fbExport.draw(screen)
	g.fbClear.draw(screen)

	list := g.lay.feedbackList
	feedbacks := g.store.Feedbacks()
	if len(feedbacks) == 0 {
		ebitenutil.DebugPrintAt(screen, "No feedback yet.", list.Min.X+4, list.Min.Y+4)
		return
	}
	sub := screen.SubImage(list).(*ebiten.Image)
	fit := (list.Dx() - 62) / glyphWidth
	for i, f := range feedbacks {
		row := rowAt(list, i, g.feedbackScroll)
		if row.Max.Y < list.Min.Y || row.Min.Y > list.Max.Y {
			continue
		}
		drawRect(sub, row, colorRow)
		line := fmt.Sprintf("%s (%d/%d): %s", f.Name, f.Rating, config.MaxRating, f.Message)
		ebitenutil.DebugPrintAt(sub, truncate(asciiOnly(line), fit), row.Min.X+8, row.Min.Y+(row.Dy()-16)/2)
		_, del := rowButtons(row)
		drawRowButton(sub, "Del", del)
	}
}

func (g *Game) drawStatus(screen *ebiten.Image) {
	status := g.status
	if g.lastErr != nil {
		if status != "" {
			status += " | "
		}
		status += "Error: " + g.lastErr.Error()
		drawRect(screen, box(0, g.lay.status.Y-4, g.width, 22), colorErrorBar)
	}
	if status == "" {
		return
	}
	fit := (g.width - 24) / glyphWidth
	ebitenutil.DebugPrintAt(screen, truncate(asciiOnly(status), fit), g.lay.status.X, g.lay.status.Y)
}

// drawMeter shows the speaker output level under the card.
func (g *Game) drawMeter(screen *ebiten.Image) {
	level := clamp01(g.sounds.Level())
	r := box(g.lay.card.Min.X, g.lay.card.Max.Y+10, g.lay.card.Dx(), 4)
	if r.Empty() {
		return
	}
	drawRect(screen, r, colorMeterBg)
	if level > 0 {
		drawRect(screen, box(r.Min.X, r.Min.Y, int(float64(r.Dx())*level), r.Dy()), colorMeter)
	}
}

// drawLoading covers the window until the viewport is ready, then fades out.
func (g *Game) drawLoading(screen *ebiten.Image, now time.Time) {
	alpha := 1.0
	if g.ready {
		alpha = 1 - clamp01(float64(now.Sub(g.readyAt))/float64(config.LoadingFade))
	}
	if alpha <= 0 {
		return
	}
	drawRect(screen, box(0, 0, g.width, g.height), color.NRGBA{R: 20, G: 12, B: 10, A: uint8(alpha * 255)})
	if !g.ready {
		printCentered(screen, "Loading...", box(0, 0, g.width, g.height))
	}
}
