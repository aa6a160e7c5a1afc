package game

import (
	"image"

	"github.com/iburimskiy/time-estimator/internal/config"
)

// layout is every widget rectangle for one viewport size.
type layout struct {
	header image.Rectangle
	card   image.Rectangle

	wood       image.Rectangle
	complexity image.Rectangle
	size       image.Rectangle
	tool       image.Rectangle
	calc       image.Rectangle
	copy       image.Rectangle
	export     image.Rectangle
	result     image.Point

	history      image.Rectangle
	historyList  image.Rectangle
	historyClear image.Rectangle

	fab          image.Rectangle
	panel        image.Rectangle
	panelClose   image.Rectangle
	name         image.Rectangle
	message      image.Rectangle
	rating       image.Rectangle
	submit       image.Rectangle
	fbExport     image.Rectangle
	fbClear      image.Rectangle
	feedbackList image.Rectangle

	status image.Point
}

func box(x, y, w, h int) image.Rectangle {
	return image.Rect(x, y, x+max(w, 0), y+max(h, 0))
}

func computeLayout(w, h int) layout {
	var l layout
	l.header = box(0, 20, w, 40)

	cw := min(config.CardWidth, max(w-2*config.CardX, 0))
	ch := min(config.CardHeight, max(h-config.CardY-config.Padding, 0))
	l.card = box(config.CardX, config.CardY, cw, ch)

	x0 := l.card.Min.X + config.Padding
	y0 := l.card.Min.Y
	iw := cw - 2*config.Padding
	l.wood = box(x0, y0+34, iw, 28)
	l.complexity = box(x0+8, y0+96, iw-16, 16)
	l.size = box(x0+8, y0+146, iw-16, 16)
	l.tool = box(x0, y0+198, iw, 28)
	l.calc = box(x0, y0+246, config.ButtonWidth, config.ButtonHeight)
	l.copy = box(l.calc.Max.X+10, y0+246, 80, config.ButtonHeight)
	l.export = box(l.copy.Max.X+10, y0+246, 80, config.ButtonHeight)
	l.result = image.Pt(x0, y0+300)

	hx := l.card.Max.X + 24
	l.history = box(hx, config.CardY, w-hx-config.CardX, h-config.CardY-config.HistoryHeadroom-config.FabHeight)
	l.historyClear = box(l.history.Max.X-70, l.history.Min.Y+4, 70, 22)
	l.historyList = image.Rect(l.history.Min.X, l.history.Min.Y+32, l.history.Max.X, max(l.history.Max.Y, l.history.Min.Y+32))

	l.fab = box(w-config.FabWidth-24, h-config.FabHeight-24, config.FabWidth, config.FabHeight)

	px := w - config.PanelWidth
	pw := config.PanelWidth
	l.panel = box(px, 0, pw, h)
	fx0 := px + config.Padding
	fw := pw - 2*config.Padding
	l.panelClose = box(l.panel.Max.X-config.Padding-config.SmallButton, 16, config.SmallButton, 22)
	l.name = box(fx0, 70, fw, 28)
	l.message = box(fx0, 122, fw, 28)
	l.rating = box(fx0, 174, fw, 28)
	l.submit = box(fx0, 216, 90, config.ButtonHeight)
	l.fbExport = box(l.submit.Max.X+10, 216, 80, config.ButtonHeight)
	l.fbClear = box(l.fbExport.Max.X+10, 216, 70, config.ButtonHeight)
	l.feedbackList = image.Rect(fx0, 264, fx0+fw, max(h-config.Padding, 264))

	l.status = image.Pt(12, h-20)
	return l
}

// rowAt returns the i-th list row inside list, shifted up by scroll pixels.
func rowAt(list image.Rectangle, i int, scroll int) image.Rectangle {
	y := list.Min.Y + i*config.RowHeight - scroll
	return image.Rect(list.Min.X, y, list.Max.X, y+config.RowHeight-4)
}

// rowButtons returns the copy and delete targets of a row. Rows without a copy action
// only use the second.
func rowButtons(row image.Rectangle) (image.Rectangle, image.Rectangle) {
	del := box(row.Max.X-44, row.Min.Y+7, 40, 22)
	cp := box(del.Min.X-48, row.Min.Y+7, 44, 22)
	return cp, del
}
