package game

import (
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/iburimskiy/time-estimator/internal/export"
	"github.com/iburimskiy/time-estimator/internal/store"
)

func (g *Game) setPanel(open bool) {
	g.sounds.Click()
	g.panelOpen = open
	g.name.focused = open
	g.message.focused = false
	g.fab.pressed = false
}

func (g *Game) handlePanel(in input) {
	if g.panelClose.update(in) {
		g.setPanel(false)
		return
	}

	g.name.update(in)
	g.message.update(in)
	if in.tab {
		switch {
		case g.name.focused:
			g.name.focused, g.message.focused = false, true
		default:
			g.name.focused, g.message.focused = true, false
		}
	}
	g.rating.update(in)

	if g.submit.update(in) || (in.enter && (g.name.focused || g.message.focused)) {
		g.submitFeedback()
	}
	if g.fbExport.update(in) {
		g.exportFeedback()
	}
	if g.fbClear.update(in) {
		g.clearFeedback()
		return
	}

	list := g.lay.feedbackList
	feedbacks := g.store.Feedbacks()
	if in.wheel != 0 && contains(list, in.x, in.y) {
		g.feedbackScroll -= int(in.wheel * float64(rowScrollStep))
	}
	g.feedbackScroll = clampScroll(g.feedbackScroll, len(feedbacks), list)
	for i, f := range feedbacks {
		row := rowAt(list, i, g.feedbackScroll)
		if row.Max.Y < list.Min.Y || row.Min.Y > list.Max.Y {
			continue
		}
		_, del := rowButtons(row)
		if g.rowClick(in, "fb-del:"+f.ID, del, list) {
			g.deleteFeedback(f.ID)
			return
		}
	}
}

// submitFeedback validates and stores the panel form. A top rating plays the burst;
// stored entries never do when the list is redrawn.
func (g *Game) submitFeedback() {
	g.sounds.Click()
	name := strings.TrimSpace(g.name.text())
	msg := strings.TrimSpace(g.message.text())
	if name == "" || msg == "" {
		g.prompt.Alert("Feedback", "Please fill name & feedback")
		return
	}

	f, err := g.store.AddFeedback(store.Feedback{
		Name:    name,
		Message: msg,
		Rating:  int(g.rating.selected().Factor),
	})
	if err != nil {
		g.fail("saving feedback", err)
	}
	g.name.reset()
	g.message.reset()
	g.rating.index = len(g.rating.options) - 1
	g.name.focused, g.message.focused = true, false
	g.feedbackScroll = 0
	g.logger.Debug("feedback saved", zap.Int("rating", f.Rating))

	g.sounds.Feedback()
	if f.IsMaximum() {
		g.celebrate()
	}
}

func (g *Game) celebrate() {
	g.sounds.Success()
	g.engine.OnMaximumRating()
}

func (g *Game) deleteFeedback(id string) {
	if !g.prompt.Confirm("Delete", "Delete this feedback?") {
		return
	}
	if err := g.store.DeleteFeedback(id); err != nil {
		g.fail("deleting feedback", err)
	}
}

func (g *Game) clearFeedback() {
	if !g.prompt.Confirm("Clear feedback", "Clear all feedback?") {
		return
	}
	if err := g.store.ClearFeedbacks(); err != nil {
		g.fail("clearing feedback", err)
	}
	g.feedbackScroll = 0
}

func (g *Game) exportFeedback() {
	all := g.store.AllFeedbacks()
	if len(all) == 0 {
		g.prompt.Alert("Export", "No feedback to export")
		return
	}
	g.exportCSV("Export feedback", export.FeedbackFile, len(all), "feedback entries", func(w io.Writer) error {
		return export.WriteFeedback(w, all)
	})
}
