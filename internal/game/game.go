// Package game is the estimator window: the form, the history and feedback lists, and
// the glue that feeds UI events into the effects engine.
package game

import (
	"fmt"
	"image"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/fx"
	"github.com/iburimskiy/time-estimator/internal/sched"
	"github.com/iburimskiy/time-estimator/internal/store"
)

const (
	statusTTL     = 4 * time.Second
	nameMaxLen    = 40
	messageMaxLen = 240
	rowScrollStep = 19 // pixels per wheel notch
)

// Options carries the game's collaborators. Zero fields get working defaults, except
// Config and Store which are required.
type Options struct {
	Config    *config.Config
	Store     *store.Store
	Sounds    Sounds
	Prompter  Prompter
	Clipboard Clipboard
	Logger    *zap.Logger
	Clock     sched.Clock
	Rand      *rand.Rand

	// Drawing surfaces for the ambient field and the burst. Nil selects offscreen
	// ebiten images.
	AmbientCanvas fx.Canvas
	BurstCanvas   fx.Canvas
}

type silentSounds struct{}

func (silentSounds) Click()         {}
func (silentSounds) Success()       {}
func (silentSounds) Feedback()      {}
func (silentSounds) Level() float64 { return 0 }

// Game implements ebiten.Game.
type Game struct {
	cfg    *config.Config
	logger *zap.Logger
	store  *store.Store
	sounds Sounds
	prompt Prompter
	clip   Clipboard

	loop          *sched.Loop
	engine        *fx.Engine
	ambientCanvas fx.Canvas
	burstCanvas   fx.Canvas
	carve         *fx.Carve

	// viewport
	width, height int
	resized       bool
	lay           layout

	// lifecycle
	started time.Time
	readyAt time.Time
	ready   bool

	// estimator card
	wood       *choice
	tool       *choice
	complexity *slider
	size       *slider
	calc       *button
	copy       *button
	export     *button
	result     string

	// history list
	historyClear  *button
	historyScroll int

	// feedback panel
	panelOpen      bool
	fab            *button
	panelClose     *button
	name           *textField
	message        *textField
	rating         *choice
	submit         *button
	fbExport       *button
	fbClear        *button
	feedbackScroll int

	// pointer target of the current press on a list row
	pressTarget string

	chars       []rune
	status      string
	statusUntil time.Time
	lastErr     error
}

// New builds the window state. Nothing touches the GPU until the first Draw.
func New(opts Options) (*Game, error) {
	if opts.Config == nil || opts.Store == nil {
		return nil, fmt.Errorf("game: config and store are required")
	}
	g := &Game{
		cfg:           opts.Config,
		logger:        opts.Logger,
		store:         opts.Store,
		sounds:        opts.Sounds,
		prompt:        opts.Prompter,
		clip:          opts.Clipboard,
		ambientCanvas: opts.AmbientCanvas,
		burstCanvas:   opts.BurstCanvas,
		width:         opts.Config.Window.Width,
		height:        opts.Config.Window.Height,
	}
	if g.logger == nil {
		g.logger = zap.NewNop()
	}
	if g.sounds == nil {
		g.sounds = silentSounds{}
	}
	if g.prompt == nil {
		g.prompt = NewZenityPrompter()
	}
	if g.clip == nil {
		g.clip = SystemClipboard
	}
	if g.ambientCanvas == nil {
		g.ambientCanvas = fx.NewImageCanvas()
	}
	if g.burstCanvas == nil {
		g.burstCanvas = fx.NewImageCanvas()
	}

	g.loop = sched.NewLoop(opts.Clock)
	g.started = g.loop.Now()
	sizer := fx.Sizer{
		Viewport: func() (int, int) { return g.width, g.height },
		Anchor:   func() image.Rectangle { return g.lay.card },
	}
	g.engine = fx.NewEngine(g.cfg, g.loop, sizer, g.ambientCanvas, g.burstCanvas, opts.Rand)

	est := g.cfg.Estimator
	g.wood = &choice{options: est.Woods}
	g.tool = &choice{options: est.Tools}
	g.complexity = newSlider(est.Complexity)
	g.size = newSlider(est.Size)
	g.calc = &button{label: "Calculate"}
	g.copy = &button{label: "Copy"}
	g.export = &button{label: "Export"}
	g.historyClear = &button{label: "Clear"}

	g.fab = &button{label: "Feedback"}
	g.panelClose = &button{label: "X"}
	g.name = &textField{placeholder: "Your name", max: nameMaxLen}
	g.message = &textField{placeholder: "Your feedback", max: messageMaxLen}
	ratings := make([]config.Option, 0, config.MaxRating)
	for r := 1; r <= config.MaxRating; r++ {
		ratings = append(ratings, config.Option{Name: fmt.Sprintf("%d / %d stars", r, config.MaxRating), Factor: float64(r)})
	}
	g.rating = &choice{options: ratings, index: len(ratings) - 1}
	g.submit = &button{label: "Submit"}
	g.fbExport = &button{label: "Export"}
	g.fbClear = &button{label: "Clear"}

	g.relayout()
	return g, nil
}

func (g *Game) relayout() {
	g.lay = computeLayout(g.width, g.height)
	g.wood.rect = g.lay.wood
	g.tool.rect = g.lay.tool
	g.complexity.rect = g.lay.complexity
	g.size.rect = g.lay.size
	g.calc.rect = g.lay.calc
	g.copy.rect = g.lay.copy
	g.export.rect = g.lay.export
	g.historyClear.rect = g.lay.historyClear
	g.fab.rect = g.lay.fab
	g.panelClose.rect = g.lay.panelClose
	g.name.rect = g.lay.name
	g.message.rect = g.lay.message
	g.rating.rect = g.lay.rating
	g.submit.rect = g.lay.submit
	g.fbExport.rect = g.lay.fbExport
	g.fbClear.rect = g.lay.fbClear
}

// SyncTicksToDisplay runs Update once per displayed frame, so frame callbacks follow
// the refresh rate. Interval callbacks keep wall-clock time either way.
func SyncTicksToDisplay() {
	ebiten.SetTPS(ebiten.SyncWithFPS)
}

// Engine exposes the effects engine.
func (g *Game) Engine() *fx.Engine { return g.engine }

// Ready reports whether the loading screen is gone.
func (g *Game) Ready() bool { return g.ready }

func (g *Game) Update() error {
	in := readInput(g.chars)
	g.chars = in.chars
	if in.quit {
		return ebiten.Termination
	}
	return g.update(in)
}

func (g *Game) update(in input) error {
	now := g.loop.Now()
	g.relayout()

	if !g.ready && now.Sub(g.started) >= config.LoadingDelay {
		g.ready = true
		g.readyAt = now
		g.resized = false
		g.carve = fx.NewCarve(g.cfg.Window.Title, now, config.LetterStagger, config.LetterDuration, config.LetterRise)
		g.engine.OnViewportReady()
		g.logger.Debug("viewport ready", zap.Int("width", g.width), zap.Int("height", g.height))
	}
	if g.ready && g.resized {
		g.resized = false
		g.engine.OnViewportResized()
	}
	if g.ready {
		g.handle(in)
	}
	if g.status != "" && now.After(g.statusUntil) {
		g.status = ""
	}

	g.loop.Pump()
	return nil
}

// masked hides the pointer position while keeping button transitions, so widgets
// covered by the panel release their pressed state without firing.
func masked(in input) input {
	in.x, in.y = -1, -1
	in.wheel = 0
	return in
}

func (g *Game) handle(in input) {
	if in.escape && g.panelOpen {
		g.setPanel(false)
		return
	}

	behind := in
	if g.panelOpen && contains(g.lay.panel, in.x, in.y) {
		behind = masked(in)
	}
	g.handleCard(behind)
	g.handleHistory(behind)

	if g.panelOpen {
		g.handlePanel(in)
	} else if g.fab.update(behind) {
		g.setPanel(true)
	}

	if in.justReleased {
		g.pressTarget = ""
	}
}

// rowClick fires when a press and its release both land on target.
func (g *Game) rowClick(in input, key string, target, visible image.Rectangle) bool {
	if !contains(target, in.x, in.y) || !contains(visible, in.x, in.y) {
		return false
	}
	if in.justPressed {
		g.pressTarget = key
	}
	return in.justReleased && g.pressTarget == key
}

func clampScroll(scroll, rows int, list image.Rectangle) int {
	limit := max(rows*config.RowHeight-list.Dy(), 0)
	return max(0, min(scroll, limit))
}

func (g *Game) setStatus(msg string) {
	g.status = msg
	g.statusUntil = g.loop.Now().Add(statusTTL)
}

func (g *Game) fail(what string, err error) {
	g.logger.Error(what, zap.Error(err))
	g.lastErr = fmt.Errorf("%s: %w", what, err)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		g.resized = true
	}
	return g.width, g.height
}

// Close flushes the store.
func (g *Game) Close() error {
	if err := g.store.Flush(); err != nil {
		return fmt.Errorf("flushing store: %w", err)
	}
	return nil
}
