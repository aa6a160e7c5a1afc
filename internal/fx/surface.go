// Package fx is the decorative animation engine: an ambient dust field pinned to the
// estimator card, a time-bounded celebration burst over the whole viewport, and the
// header carve-in. Animators draw into Canvas values they own exclusively.
package fx

import (
	"image"
	"image/color"
)

// Surface is the pixel geometry of a drawing area. Left and Top are only meaningful for
// surfaces anchored over another element.
type Surface struct {
	Width, Height int
	Left, Top     int
}

// Bounds returns the surface rectangle in screen coordinates.
func (s Surface) Bounds() image.Rectangle {
	return image.Rect(s.Left, s.Top, s.Left+s.Width, s.Top+s.Height)
}

// Empty reports whether the surface has no drawable area.
func (s Surface) Empty() bool { return s.Width <= 0 || s.Height <= 0 }

// Canvas is a 2D drawing context. A nil Canvas means no context is available and every
// animator operation becomes a no-op.
type Canvas interface {
	// Reset clears everything and sizes the backing store to w×h.
	Reset(w, h int)
	// FillCircle draws a filled circle centered at (x, y).
	FillCircle(x, y, r float64, clr color.Color)
	// FillRect draws a w×h rectangle centered at (cx, cy), rotated by deg degrees.
	FillRect(cx, cy, w, h, deg float64, clr color.Color)
}
