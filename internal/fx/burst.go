package fx

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/sched"
)

const (
	burstMargin    = 30
	burstReentryY  = -10
	burstAspect    = 1.4
	burstLightness = 0.6
)

// BurstParticle is one falling rectangle. Rotation is the only field besides the
// position that changes between recycles.
type BurstParticle struct {
	X, Y     float64
	VX, VY   float64
	Size     float64
	Hue      float64
	Color    color.RGBA
	Rotation float64
	Spin     float64
}

// Burst plays a one-shot shower of spinning rectangles across the viewport on a fixed
// interval, then clears itself.
type Burst struct {
	Surface Surface

	cfg       config.BurstConfig
	canvas    Canvas
	loop      *sched.Loop
	rng       *rand.Rand
	particles []BurstParticle
	tick      sched.Handle
	start     time.Time
	duration  time.Duration
}

// NewBurst returns an idle animator with its particle arena preallocated.
func NewBurst(cfg config.BurstConfig, loop *sched.Loop, canvas Canvas, rng *rand.Rand) *Burst {
	return &Burst{
		cfg:       cfg,
		canvas:    canvas,
		loop:      loop,
		rng:       rng,
		particles: make([]BurstParticle, cfg.Count),
	}
}

// Trigger starts a burst lasting d (the configured duration when d <= 0). A burst that
// is still playing is dropped: its interval is cancelled before the new one starts.
func (b *Burst) Trigger(d time.Duration) {
	if b.canvas == nil {
		return
	}
	if d <= 0 {
		d = b.cfg.Duration()
	}
	b.loop.Cancel(b.tick)
	b.tick = 0
	for i := range b.particles {
		b.spawn(&b.particles[i])
	}
	b.start = b.loop.Now()
	b.duration = d
	b.tick = b.loop.Every(b.cfg.Interval(), b.Step)
}

func (b *Burst) spawn(p *BurstParticle) {
	w, h := float64(b.Surface.Width), float64(b.Surface.Height)
	hue := b.rng.Float64() * 360
	r, g, bl := hslToRGB(hue, 1, burstLightness)
	*p = BurstParticle{
		X:        b.rng.Float64() * w,
		Y:        -b.rng.Float64() * h,
		VX:       uniform(b.rng, -2, 2),
		VY:       uniform(b.rng, 2, 5),
		Size:     uniform(b.rng, 4, 12),
		Hue:      hue,
		Color:    color.RGBA{R: r, G: g, B: bl, A: 0xff},
		Rotation: b.rng.Float64() * 360,
		Spin:     uniform(b.rng, -3, 3),
	}
}

// Active reports whether a burst is playing.
func (b *Burst) Active() bool {
	return b.tick != 0 && b.loop.Scheduled(b.tick)
}

// Step advances and redraws every particle, recycling those that fell out of view, and
// ends the burst once its duration has elapsed.
func (b *Burst) Step() {
	if b.canvas == nil {
		return
	}
	w, h := b.Surface.Width, b.Surface.Height
	b.canvas.Reset(w, h)
	for i := range b.particles {
		p := &b.particles[i]
		p.X += p.VX
		p.Y += p.VY
		p.Rotation += p.Spin
		b.canvas.FillRect(p.X, p.Y, p.Size, p.Size*burstAspect, p.Rotation, p.Color)
		if p.Y > float64(h)+burstMargin {
			b.spawn(p)
			p.Y = burstReentryY
		}
	}
	if b.loop.Now().Sub(b.start) > b.duration {
		b.loop.Cancel(b.tick)
		b.tick = 0
		b.canvas.Reset(w, h)
	}
}

// Particles exposes the live set. Callers must not retain or mutate it.
func (b *Burst) Particles() []BurstParticle { return b.particles }
