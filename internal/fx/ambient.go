package fx

import (
	"math"
	"math/rand/v2"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/sched"
)

const (
	// ambientMargin is how far past an edge a mote travels before it is recycled.
	ambientMargin = 6
	swayAmplitude = 0.3
	swayFrequency = 0.01
)

const dustR, dustG, dustB = 255, 240, 220

// AmbientParticle is a single dust mote. Only X and Y change after creation.
type AmbientParticle struct {
	X, Y   float64
	Radius float64
	Drift  float64
	Alpha  float64
}

// Ambient keeps a fixed set of motes rising slowly through its surface. Once started it
// steps on every display refresh for as long as the loop is pumped.
type Ambient struct {
	Surface Surface

	cfg       config.AmbientConfig
	canvas    Canvas
	loop      *sched.Loop
	rng       *rand.Rand
	particles []AmbientParticle
	frame     sched.Handle
}

// NewAmbient returns a stopped animator. canvas may be nil.
func NewAmbient(cfg config.AmbientConfig, loop *sched.Loop, canvas Canvas, rng *rand.Rand) *Ambient {
	return &Ambient{
		cfg:       cfg,
		canvas:    canvas,
		loop:      loop,
		rng:       rng,
		particles: make([]AmbientParticle, cfg.Count),
	}
}

// Start scatters a fresh particle set over the current surface and begins stepping.
// Calling it again resets the set without adding a second frame loop.
func (a *Ambient) Start() {
	if a.canvas == nil {
		return
	}
	a.loop.Cancel(a.frame)
	w, h := float64(a.Surface.Width), float64(a.Surface.Height)
	for i := range a.particles {
		a.particles[i] = AmbientParticle{
			X:      a.rng.Float64() * w,
			Y:      a.rng.Float64() * h,
			Radius: uniform(a.rng, a.cfg.MinRadius, a.cfg.MaxRadius),
			Drift:  uniform(a.rng, a.cfg.MinDrift, a.cfg.MaxDrift),
			Alpha:  uniform(a.rng, a.cfg.MinAlpha, a.cfg.MaxAlpha),
		}
	}
	a.frame = a.loop.RequestFrame(a.Step)
}

// Running reports whether a frame is queued.
func (a *Ambient) Running() bool {
	return a.frame != 0 && a.loop.Scheduled(a.frame)
}

// Step redraws the whole surface, moves every mote up one frame and recycles the
// ones that left through the top edge.
func (a *Ambient) Step() {
	if a.canvas == nil {
		return
	}
	w, h := a.Surface.Width, a.Surface.Height
	a.canvas.Reset(w, h)
	for i := range a.particles {
		p := &a.particles[i]
		if w > 0 && h > 0 {
			a.canvas.FillCircle(p.X, p.Y, p.Radius, nrgba(dustR, dustG, dustB, p.Alpha))
		}
		p.Y -= p.Drift
		p.X += math.Sin(p.Y*swayFrequency) * swayAmplitude
		if p.Y < -ambientMargin {
			p.Y = float64(h) + ambientMargin
			p.X = a.rng.Float64() * float64(w)
		}
	}
	a.frame = a.loop.RequestFrame(a.Step)
}

// Particles exposes the live set. Callers must not retain or mutate it.
func (a *Ambient) Particles() []AmbientParticle { return a.particles }
