package fx

import (
	"time"
)

// CubicBezier is a CSS-style timing function through (0,0), (X1,Y1), (X2,Y2), (1,1).
type CubicBezier struct {
	X1, Y1, X2, Y2 float64
}

// CarveEase is the snappy overshoot-free curve the header letters use.
var CarveEase = CubicBezier{X1: 0.2, Y1: 0.9, X2: 0.3, Y2: 1}

func bezierAxis(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*u*p1 + 3*v*u*u*p2 + u*u*u
}

func bezierSlope(p1, p2, u float64) float64 {
	v := 1 - u
	return 3*v*v*p1 + 6*v*u*(p2-p1) + 3*u*u*(1-p2)
}

// At maps progress t in [0, 1] to eased progress.
func (c CubicBezier) At(t float64) float64 {
	if t <= 0 {
		return 0
	}
	if t >= 1 {
		return 1
	}
	// Newton first, bisection if the slope flattens out.
	u := t
	for i := 0; i < 8; i++ {
		x := bezierAxis(c.X1, c.X2, u) - t
		if x > -1e-7 && x < 1e-7 {
			return bezierAxis(c.Y1, c.Y2, u)
		}
		d := bezierSlope(c.X1, c.X2, u)
		if d > -1e-6 && d < 1e-6 {
			break
		}
		u -= x / d
		if u < 0 || u > 1 {
			break
		}
	}
	lo, hi := 0.0, 1.0
	u = t
	for i := 0; i < 32; i++ {
		x := bezierAxis(c.X1, c.X2, u)
		if x < t {
			lo = u
		} else {
			hi = u
		}
		u = (lo + hi) / 2
	}
	return bezierAxis(c.Y1, c.Y2, u)
}

// Carve reveals a line of text one letter at a time. Each letter fades in while rising
// Rise pixels into place.
type Carve struct {
	Text     string
	Start    time.Time
	Stagger  time.Duration
	Duration time.Duration
	Rise     float64
	Ease     CubicBezier
}

// NewCarve returns a carve for text beginning at start.
func NewCarve(text string, start time.Time, stagger, duration time.Duration, rise float64) *Carve {
	return &Carve{
		Text:     text,
		Start:    start,
		Stagger:  stagger,
		Duration: duration,
		Rise:     rise,
		Ease:     CarveEase,
	}
}

// Letter returns the opacity and downward offset of the i-th rune at now.
func (c *Carve) Letter(i int, now time.Time) (alpha, offset float64) {
	elapsed := now.Sub(c.Start) - time.Duration(i)*c.Stagger
	if elapsed <= 0 {
		return 0, c.Rise
	}
	t := 1.0
	if c.Duration > 0 {
		t = clamp01(float64(elapsed) / float64(c.Duration))
	}
	e := c.Ease.At(t)
	return e, c.Rise * (1 - e)
}

// Done reports whether every letter has settled.
func (c *Carve) Done(now time.Time) bool {
	n := len([]rune(c.Text))
	if n == 0 {
		return true
	}
	return now.Sub(c.Start) >= time.Duration(n-1)*c.Stagger+c.Duration
}
