package game

import (
	"errors"
	"image"
	"image/color"
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/fx"
	"github.com/iburimskiy/time-estimator/internal/sched"
	"github.com/iburimskiy/time-estimator/internal/store"
)

type fakePrompter struct {
	confirm  bool
	confirms []string
	alerts   []string
	savePath string
	saveErr  error
}

func (p *fakePrompter) Confirm(title, message string) bool {
	p.confirms = append(p.confirms, message)
	return p.confirm
}

func (p *fakePrompter) Alert(title, message string) {
	p.alerts = append(p.alerts, message)
}

func (p *fakePrompter) SaveFile(title, filename string) (string, bool, error) {
	if p.saveErr != nil {
		return "", false, p.saveErr
	}
	return p.savePath, p.savePath != "", nil
}

type fakeSounds struct {
	clicks, successes, feedbacks int
}

func (s *fakeSounds) Click()         { s.clicks++ }
func (s *fakeSounds) Success()       { s.successes++ }
func (s *fakeSounds) Feedback()      { s.feedbacks++ }
func (s *fakeSounds) Level() float64 { return 0 }

type nullCanvas struct{ w, h int }

func (c *nullCanvas) Reset(w, h int)                                      { c.w, c.h = w, h }
func (c *nullCanvas) FillCircle(x, y, r float64, clr color.Color)         {}
func (c *nullCanvas) FillRect(cx, cy, w, h, deg float64, clr color.Color) {}

type harness struct {
	g       *Game
	clock   *sched.ManualClock
	prompt  *fakePrompter
	sounds  *fakeSounds
	copied  []string
	ambient *nullCanvas
	burst   *nullCanvas
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		clock:   sched.NewManualClock(time.Unix(1700000000, 0)),
		prompt:  &fakePrompter{confirm: true},
		sounds:  &fakeSounds{},
		ambient: &nullCanvas{},
		burst:   &nullCanvas{},
	}
	logger := zaptest.NewLogger(t)
	g, err := New(Options{
		Config:   config.Default(),
		Store:    store.Open(nil, logger),
		Sounds:   h.sounds,
		Prompter: h.prompt,
		Clipboard: ClipboardFunc(func(s string) error {
			h.copied = append(h.copied, s)
			return nil
		}),
		Logger:        logger,
		Clock:         h.clock,
		Rand:          rand.New(rand.NewPCG(7, 11)),
		AmbientCanvas: h.ambient,
		BurstCanvas:   h.burst,
	})
	require.NoError(t, err)
	h.g = g
	return h
}

// boot advances past the loading delay and runs one tick.
func (h *harness) boot(t *testing.T) {
	t.Helper()
	h.clock.Advance(config.LoadingDelay)
	require.NoError(t, h.g.update(input{}))
	require.True(t, h.g.Ready())
}

// click presses and releases the left button at p.
func (h *harness) click(t *testing.T, p image.Point) {
	t.Helper()
	require.NoError(t, h.g.update(input{x: p.X, y: p.Y, pressed: true, justPressed: true}))
	require.NoError(t, h.g.update(input{x: p.X, y: p.Y, justReleased: true}))
}

func center(r image.Rectangle) image.Point {
	return image.Pt(r.Min.X+r.Dx()/2, r.Min.Y+r.Dy()/2)
}

func TestNewRequiresConfigAndStore(t *testing.T) {
	_, err := New(Options{})
	assert.Error(t, err)
}

func TestLoadingDelay(t *testing.T) {
	h := newHarness(t)

	require.NoError(t, h.g.update(input{}))
	assert.False(t, h.g.Ready())
	assert.False(t, h.g.Engine().Ambient.Running())

	h.boot(t)
	assert.True(t, h.g.Engine().Ambient.Running())
	assert.Equal(t, fx.Surface{Width: config.CardWidth, Height: config.CardHeight, Left: config.CardX, Top: config.CardY}, h.g.Engine().Ambient.Surface)
	assert.Equal(t, fx.Surface{Width: 1024, Height: 640}, h.g.Engine().Burst.Surface)
	assert.Equal(t, config.CardWidth, h.ambient.w)
}

func TestClicksIgnoredWhileLoading(t *testing.T) {
	h := newHarness(t)
	h.click(t, center(h.g.lay.calc))
	assert.Empty(t, h.g.store.Estimates())
	assert.Zero(t, h.sounds.clicks)
}

func TestCalculateButton(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.click(t, center(h.g.lay.calc))

	assert.Equal(t, "Estimated Time: 0 hours 42 minutes", h.g.result)
	list := h.g.store.Estimates()
	require.Len(t, list, 1)
	assert.Equal(t, "Pine", list[0].Wood)
	assert.Equal(t, "Hand Tools", list[0].Tool)
	assert.Equal(t, 42, list[0].Minutes)
	assert.Equal(t, 1, h.sounds.clicks)
	assert.Equal(t, 1, h.sounds.successes)
	assert.False(t, h.g.Engine().Burst.Active())
}

func TestCopyLastEstimate(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.g.copyLastEstimate()
	assert.Equal(t, []string{"No estimate yet"}, h.prompt.alerts)
	assert.Empty(t, h.copied)

	h.g.calculate()
	h.g.copyLastEstimate()
	require.Len(t, h.copied, 1)
	assert.Contains(t, h.copied[0], "Pine")
	assert.Contains(t, h.copied[0], "0h 42m")
	assert.Contains(t, h.copied[0], "1.4 complexity")
	assert.Equal(t, "Copied to clipboard", h.g.status)
}

func TestClipboardFailureIsQuiet(t *testing.T) {
	h := newHarness(t)
	h.g.clip = ClipboardFunc(func(string) error { return errors.New("no display") })
	h.boot(t)

	h.g.calculate()
	h.g.copyLastEstimate()
	assert.Empty(t, h.g.status)
	assert.NoError(t, h.g.lastErr)
}

func TestStatusExpires(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.g.setStatus("hello")
	h.clock.Advance(statusTTL - time.Millisecond)
	require.NoError(t, h.g.update(input{}))
	assert.Equal(t, "hello", h.g.status)

	h.clock.Advance(2 * time.Millisecond)
	require.NoError(t, h.g.update(input{}))
	assert.Empty(t, h.g.status)
}

func TestDeleteEstimateRow(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	h.g.calculate()

	_, del := rowButtons(rowAt(h.g.lay.historyList, 0, 0))

	h.prompt.confirm = false
	h.click(t, center(del))
	assert.Equal(t, []string{"Delete this estimate?"}, h.prompt.confirms)
	assert.Len(t, h.g.store.Estimates(), 1)

	h.prompt.confirm = true
	h.click(t, center(del))
	assert.Empty(t, h.g.store.Estimates())
}

func TestCopyEstimateRow(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	h.g.calculate()

	cp, _ := rowButtons(rowAt(h.g.lay.historyList, 0, 0))
	h.click(t, center(cp))
	require.Len(t, h.copied, 1)
	assert.Contains(t, h.copied[0], "Hand Tools")
	assert.Contains(t, h.copied[0], "complexity 1.4")
}

func TestClearEstimates(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	h.g.calculate()
	h.g.calculate()

	h.click(t, center(h.g.lay.historyClear))
	assert.Equal(t, []string{"Clear all estimates?"}, h.prompt.confirms)
	assert.Empty(t, h.g.store.Estimates())
}

func TestExportEstimates(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.g.exportEstimates()
	assert.Equal(t, []string{"No history to export"}, h.prompt.alerts)

	h.g.calculate()
	h.prompt.savePath = filepath.Join(t.TempDir(), "out.csv")
	h.g.exportEstimates()

	data, err := os.ReadFile(h.prompt.savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "wood,size,complexity,tool,hours,minutes,created")
	assert.Contains(t, string(data), "Pine")
	assert.Contains(t, h.g.status, "Exported 1 estimates")
}

func TestExportCancelled(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	h.g.calculate()

	h.g.exportEstimates()
	assert.Empty(t, h.g.status)
	assert.NoError(t, h.g.lastErr)

	h.prompt.saveErr = errors.New("dialog broke")
	h.g.exportEstimates()
	assert.ErrorContains(t, h.g.lastErr, "dialog broke")
}

func fillFeedback(g *Game, name, message string, rating int) {
	g.name.value = []rune(name)
	g.message.value = []rune(message)
	g.rating.index = rating - 1
}

func TestMaximumRatingTriggersBurst(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	fillFeedback(h.g, "Ana", "Great tool", 5)
	h.g.submitFeedback()

	assert.True(t, h.g.Engine().Burst.Active())
	assert.Equal(t, 1, h.sounds.clicks)
	assert.Equal(t, 1, h.sounds.feedbacks)
	assert.Equal(t, 1, h.sounds.successes)

	list := h.g.store.Feedbacks()
	require.Len(t, list, 1)
	assert.Equal(t, 5, list[0].Rating)
	assert.Empty(t, h.g.name.text())
	assert.Equal(t, 4, h.g.rating.index)

	h.clock.Advance(h.g.cfg.Burst.Duration() + 20*time.Millisecond)
	require.NoError(t, h.g.update(input{}))
	assert.False(t, h.g.Engine().Burst.Active())
}

func TestLowerRatingDoesNotBurst(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	fillFeedback(h.g, "Ben", "Decent", 4)
	h.g.submitFeedback()

	assert.False(t, h.g.Engine().Burst.Active())
	assert.Equal(t, 1, h.sounds.feedbacks)
	assert.Zero(t, h.sounds.successes)
	require.Len(t, h.g.store.Feedbacks(), 1)
}

func TestStoredMaximumDoesNotBurstOnRedraw(t *testing.T) {
	h := newHarness(t)
	_, err := h.g.store.AddFeedback(store.Feedback{Name: "Old", Message: "Loved it", Rating: 5})
	require.NoError(t, err)

	h.boot(t)
	h.g.setPanel(true)
	for range 3 {
		require.NoError(t, h.g.update(input{}))
	}
	assert.False(t, h.g.Engine().Burst.Active())
}

func TestFeedbackValidation(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	fillFeedback(h.g, "   ", "text", 5)
	h.g.submitFeedback()

	assert.Equal(t, []string{"Please fill name & feedback"}, h.prompt.alerts)
	assert.Empty(t, h.g.store.Feedbacks())
	assert.False(t, h.g.Engine().Burst.Active())
}

func TestPanelFlow(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.click(t, center(h.g.lay.fab))
	require.True(t, h.g.panelOpen)
	assert.True(t, h.g.name.focused)

	require.NoError(t, h.g.update(input{chars: []rune("Cy")}))
	require.NoError(t, h.g.update(input{tab: true}))
	require.NoError(t, h.g.update(input{chars: []rune("Nice")}))
	assert.Equal(t, "Cy", h.g.name.text())
	assert.Equal(t, "Nice", h.g.message.text())

	require.NoError(t, h.g.update(input{enter: true}))
	require.Len(t, h.g.store.Feedbacks(), 1)
	assert.True(t, h.g.Engine().Burst.Active())

	require.NoError(t, h.g.update(input{escape: true}))
	assert.False(t, h.g.panelOpen)
}

func TestPanelMasksWidgetsBehind(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	h.g.calculate()

	_, del := rowButtons(rowAt(h.g.lay.historyList, 0, 0))
	p := center(del)
	require.True(t, contains(h.g.lay.panel, p.X, p.Y))

	h.g.setPanel(true)
	h.click(t, p)
	assert.Empty(t, h.prompt.confirms)
	assert.Len(t, h.g.store.Estimates(), 1)
}

func TestDeleteFeedbackRow(t *testing.T) {
	h := newHarness(t)
	h.boot(t)
	fillFeedback(h.g, "Dee", "ok", 3)
	h.g.submitFeedback()
	h.g.setPanel(true)

	_, del := rowButtons(rowAt(h.g.lay.feedbackList, 0, 0))
	h.click(t, center(del))
	assert.Equal(t, []string{"Delete this feedback?"}, h.prompt.confirms)
	assert.Empty(t, h.g.store.Feedbacks())
}

func TestExportFeedback(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	h.g.exportFeedback()
	assert.Equal(t, []string{"No feedback to export"}, h.prompt.alerts)

	fillFeedback(h.g, "Eve", "Sharp", 2)
	h.g.submitFeedback()
	h.prompt.savePath = filepath.Join(t.TempDir(), "fb.csv")
	h.g.exportFeedback()

	data, err := os.ReadFile(h.prompt.savePath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "name,rating,message,created")
	assert.Contains(t, string(data), "Eve")
}

func TestResizeUpdatesSurfaces(t *testing.T) {
	h := newHarness(t)
	h.boot(t)

	w, ht := h.g.Layout(800, 600)
	assert.Equal(t, 800, w)
	assert.Equal(t, 600, ht)
	require.NoError(t, h.g.update(input{}))

	assert.Equal(t, fx.Surface{Width: 800, Height: 600}, h.g.Engine().Burst.Surface)
	assert.Equal(t, fx.Surface{Width: config.CardWidth, Height: config.CardHeight, Left: config.CardX, Top: config.CardY}, h.g.Engine().Ambient.Surface)

	h.g.Layout(300, 200)
	require.NoError(t, h.g.update(input{}))
	amb := h.g.Engine().Ambient.Surface
	assert.Equal(t, 300-2*config.CardX, amb.Width)
	assert.Equal(t, 200-config.CardY-config.Padding, amb.Height)
}

func TestSyncTicksToDisplay(t *testing.T) {
	t.Cleanup(func() { ebiten.SetTPS(ebiten.DefaultTPS) })

	SyncTicksToDisplay()
	assert.Equal(t, ebiten.SyncWithFPS, ebiten.TPS())
}

func TestCloseFlushes(t *testing.T) {
	h := newHarness(t)
	assert.NoError(t, h.g.Close())
}
