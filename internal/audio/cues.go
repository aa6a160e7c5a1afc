// Package audio plays the short synthesized cues that accompany clicks, saves and
// feedback. Every cue is silently dropped when no audio device is available.
package audio

import (
	"math"
	"sync"
	"time"

	"github.com/faiface/beep"
	"github.com/faiface/beep/effects"
	"github.com/faiface/beep/speaker"
	"go.uber.org/zap"

	"github.com/iburimskiy/time-estimator/internal/config"
)

const (
	sampleRate  = beep.SampleRate(44100)
	ringSize    = 4096
	levelWindow = 1024
)

// Cues owns the speaker output: a mixer behind a volume stage and a level tap.
type Cues struct {
	mu          sync.Mutex
	cfg         config.AudioConfig
	logger      *zap.Logger
	mixer       *beep.Mixer
	volume      *effects.Volume
	tap         *levelTap
	initialized bool
}

// NewCues returns cues that stay silent until Init succeeds.
func NewCues(cfg config.AudioConfig, logger *zap.Logger) *Cues {
	if logger == nil {
		logger = zap.NewNop()
	}
	mixer := &beep.Mixer{}
	volume := &effects.Volume{
		Streamer: mixer,
		Base:     2,
		Volume:   gainToVolume(cfg.Volume),
		Silent:   cfg.Volume <= 0,
	}
	return &Cues{
		cfg:    cfg,
		logger: logger,
		mixer:  mixer,
		volume: volume,
		tap:    newLevelTap(volume, ringSize),
	}
}

// gainToVolume maps a linear 0..1 gain onto beep's base-2 volume scale.
func gainToVolume(gain float64) float64 {
	if gain <= 0 {
		return 0
	}
	return math.Log2(gain)
}

// Init opens the speaker. Calling it twice is a no-op; disabled audio never opens it.
func (c *Cues) Init() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.cfg.Enabled {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/20)); err != nil {
		return err
	}
	speaker.Play(c.tap)
	c.initialized = true
	c.logger.Debug("audio cues ready", zap.Int("sample_rate", int(sampleRate)))
	return nil
}

// Close silences everything still queued.
func (c *Cues) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Clear()
	speaker.Unlock()
	speaker.Clear()
	c.initialized = false
}

func (c *Cues) play(s beep.Streamer) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Lock()
	c.mixer.Add(s)
	speaker.Unlock()
}

// Click is the short knock played on button presses.
func (c *Cues) Click() {
	c.play(phrase(sampleRate, 0.35, note{freq: 1320, len: 45 * time.Millisecond, decay: 12 * time.Millisecond}))
}

// Success is the rising two-note chime for saves and copies.
func (c *Cues) Success() {
	c.play(phrase(sampleRate, 0.3,
		note{freq: 660, len: 110 * time.Millisecond, decay: 60 * time.Millisecond},
		note{freq: 990, len: 220 * time.Millisecond, decay: 110 * time.Millisecond},
	))
}

// Feedback is the arpeggio played after a feedback entry is saved.
func (c *Cues) Feedback() {
	c.play(phrase(sampleRate, 0.28,
		note{freq: 523.25, len: 90 * time.Millisecond, decay: 50 * time.Millisecond},
		note{freq: 659.25, len: 90 * time.Millisecond, decay: 50 * time.Millisecond},
		note{freq: 783.99, len: 240 * time.Millisecond, decay: 120 * time.Millisecond},
	))
}

// Level is the loudness of the most recent output, in [0, 1].
func (c *Cues) Level() float64 {
	c.mu.Lock()
	ready := c.initialized
	c.mu.Unlock()
	if !ready {
		return 0
	}
	return c.tap.level(levelWindow)
}

// Ready reports whether cues reach the speaker.
func (c *Cues) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}
