package fx

import (
	"image/color"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// ImageCanvas is a Canvas backed by an offscreen ebiten image. The image is allocated
// lazily on the first Reset with a non-empty size.
type ImageCanvas struct {
	img   *ebiten.Image
	pixel *ebiten.Image
}

// NewImageCanvas returns an empty canvas.
func NewImageCanvas() *ImageCanvas {
	return &ImageCanvas{}
}

func (c *ImageCanvas) Reset(w, h int) {
	if w <= 0 || h <= 0 {
		if c.img != nil {
			c.img.Deallocate()
			c.img = nil
		}
		return
	}
	if c.img != nil {
		if b := c.img.Bounds(); b.Dx() == w && b.Dy() == h {
			c.img.Clear()
			return
		}
		c.img.Deallocate()
	}
	c.img = ebiten.NewImage(w, h)
}

func (c *ImageCanvas) FillCircle(x, y, r float64, clr color.Color) {
	if c.img == nil {
		return
	}
	vector.DrawFilledCircle(c.img, float32(x), float32(y), float32(r), clr, true)
}

func (c *ImageCanvas) FillRect(cx, cy, w, h, deg float64, clr color.Color) {
	if c.img == nil {
		return
	}
	if c.pixel == nil {
		c.pixel = ebiten.NewImage(1, 1)
		c.pixel.Fill(color.White)
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(w, h)
	op.GeoM.Translate(-w/2, -h/2)
	op.GeoM.Rotate(deg * math.Pi / 180)
	op.GeoM.Translate(cx, cy)
	op.ColorScale.ScaleWithColor(clr)
	c.img.DrawImage(c.pixel, op)
}

// DrawTo composites the canvas onto dst at (x, y).
func (c *ImageCanvas) DrawTo(dst *ebiten.Image, x, y int) {
	if c.img == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(x), float64(y))
	dst.DrawImage(c.img, op)
}
