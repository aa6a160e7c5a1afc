package game

import (
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/iburimskiy/time-estimator/internal/estimate"
	"github.com/iburimskiy/time-estimator/internal/export"
	"github.com/iburimskiy/time-estimator/internal/store"
)

func (g *Game) handleCard(in input) {
	g.wood.update(in)
	g.tool.update(in)
	g.complexity.update(in)
	g.size.update(in)

	if g.calc.update(in) {
		g.calculate()
	}
	if g.copy.update(in) {
		g.copyLastEstimate()
	}
	if g.export.update(in) {
		g.exportEstimates()
	}
}

func (g *Game) handleHistory(in input) {
	if g.historyClear.update(in) {
		g.clearEstimates()
		return
	}

	list := g.lay.historyList
	estimates := g.store.Estimates()
	if in.wheel != 0 && contains(list, in.x, in.y) {
		g.historyScroll -= int(in.wheel * float64(rowScrollStep))
	}
	g.historyScroll = clampScroll(g.historyScroll, len(estimates), list)

	for i, e := range estimates {
		row := rowAt(list, i, g.historyScroll)
		if row.Max.Y < list.Min.Y || row.Min.Y > list.Max.Y {
			continue
		}
		cp, del := rowButtons(row)
		if g.rowClick(in, "est-copy:"+e.ID, cp, list) {
			g.copyEstimate(e)
			return
		}
		if g.rowClick(in, "est-del:"+e.ID, del, list) {
			g.deleteEstimate(e.ID)
			return
		}
	}
}

func (g *Game) currentInput() estimate.Input {
	return estimate.Input{
		Wood:       g.wood.selected().Factor,
		Complexity: g.complexity.value,
		Size:       g.size.value,
		Tool:       g.tool.selected().Factor,
	}
}

// calculate computes the estimate from the form, shows it and appends it to history.
func (g *Game) calculate() {
	g.sounds.Click()
	in := g.currentInput()
	res, err := estimate.Compute(in)
	if err != nil {
		g.fail("computing estimate", err)
		return
	}
	g.result = res.String()

	_, err = g.store.AddEstimate(store.Estimate{
		Wood:       g.wood.selected().Name,
		Complexity: in.Complexity,
		Size:       in.Size,
		Tool:       g.tool.selected().Name,
		Hours:      res.Hours,
		Minutes:    res.Minutes,
	})
	if err != nil {
		g.fail("saving estimate", err)
	}
	g.historyScroll = 0
	g.logger.Debug("estimate computed",
		zap.Float64("minutes", res.Raw),
		zap.String("wood", g.wood.selected().Name),
		zap.String("tool", g.tool.selected().Name))
	g.sounds.Success()
}

func (g *Game) copyText(text string) {
	if err := g.clip.WriteAll(text); err != nil {
		g.logger.Debug("clipboard unavailable", zap.Error(err))
		return
	}
	g.setStatus("Copied to clipboard")
	g.sounds.Success()
}

func (g *Game) copyLastEstimate() {
	e, ok := g.store.LastEstimate()
	if !ok {
		g.prompt.Alert("Copy", "No estimate yet")
		return
	}
	g.copyText(export.LatestText(e))
}

func (g *Game) copyEstimate(e store.Estimate) {
	g.copyText(export.EstimateText(e))
}

func (g *Game) deleteEstimate(id string) {
	if !g.prompt.Confirm("Delete", "Delete this estimate?") {
		return
	}
	if err := g.store.DeleteEstimate(id); err != nil {
		g.fail("deleting estimate", err)
	}
}

func (g *Game) clearEstimates() {
	if !g.prompt.Confirm("Clear history", "Clear all estimates?") {
		return
	}
	if err := g.store.ClearEstimates(); err != nil {
		g.fail("clearing estimates", err)
	}
	g.historyScroll = 0
}

func (g *Game) exportEstimates() {
	all := g.store.AllEstimates()
	if len(all) == 0 {
		g.prompt.Alert("Export", "No history to export")
		return
	}
	g.exportCSV("Export estimates", export.EstimatesFile, len(all), "estimates", func(w io.Writer) error {
		return export.WriteEstimates(w, all)
	})
}

// exportCSV asks for a destination and writes the file there.
func (g *Game) exportCSV(title, filename string, n int, noun string, write func(io.Writer) error) {
	path, ok, err := g.prompt.SaveFile(title, filename)
	if err != nil {
		g.fail("choosing export file", err)
		return
	}
	if !ok {
		return
	}
	if err := export.ToFile(path, write); err != nil {
		if errors.Is(err, export.ErrEmpty) {
			return
		}
		g.fail("exporting "+noun, err)
		return
	}
	g.logger.Info("exported csv", zap.String("path", path), zap.Int("rows", n))
	g.setStatus(fmt.Sprintf("Exported %d %s to %s", n, noun, path))
}
