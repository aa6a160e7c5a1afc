package fx

import "image"

// Sizer syncs surface geometry with the viewport and the anchor element. It reads both
// through callbacks and keeps no reference to the surfaces it writes.
type Sizer struct {
	Viewport func() (w, h int)
	Anchor   func() image.Rectangle
}

// Resize gives burst the full viewport and pins ambient over the anchor rectangle.
// Either surface may be nil.
func (s Sizer) Resize(ambient, burst *Surface) {
	if burst != nil && s.Viewport != nil {
		w, h := s.Viewport()
		burst.Width, burst.Height = max(w, 0), max(h, 0)
	}
	if ambient != nil && s.Anchor != nil {
		r := s.Anchor().Canon()
		ambient.Width, ambient.Height = r.Dx(), r.Dy()
		ambient.Left, ambient.Top = r.Min.X, r.Min.Y
	}
}
