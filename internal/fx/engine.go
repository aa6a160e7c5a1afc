package fx

import (
	"math/rand/v2"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/sched"
)

// Engine bundles the animators and the sizer behind the three events the UI raises.
// It never looks at estimates or feedback.
type Engine struct {
	Ambient *Ambient
	Burst   *Burst
	Sizer   Sizer

	cfg *config.Config
}

// NewEngine wires both animators to loop. Either canvas may be nil, which silences the
// matching animator.
func NewEngine(cfg *config.Config, loop *sched.Loop, sizer Sizer, ambient, burst Canvas, rng *rand.Rand) *Engine {
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &Engine{
		Ambient: NewAmbient(cfg.Ambient, loop, ambient, rng),
		Burst:   NewBurst(cfg.Burst, loop, burst, rng),
		Sizer:   sizer,
		cfg:     cfg,
	}
}

// OnViewportReady sizes both surfaces and starts the ambient field.
func (e *Engine) OnViewportReady() {
	e.resize()
	e.Ambient.Start()
}

// OnViewportResized resizes the surfaces. Ambient motes keep their positions.
func (e *Engine) OnViewportResized() {
	e.resize()
}

// OnMaximumRating plays the celebration burst.
func (e *Engine) OnMaximumRating() {
	e.Burst.Trigger(e.cfg.Burst.Duration())
}

func (e *Engine) resize() {
	e.Sizer.Resize(&e.Ambient.Surface, &e.Burst.Surface)
}
