package audio

import (
	"math"
	"time"

	"github.com/faiface/beep"
)

// toneGenerator is a sine partial with a soft attack and exponential decay.
type toneGenerator struct {
	sr     beep.SampleRate
	freq   float64
	gain   float64
	decay  float64 // seconds for the envelope to fall to 1/e
	attack float64
	pos    int
}

func newTone(sr beep.SampleRate, freq, gain float64, decay time.Duration) *toneGenerator {
	return &toneGenerator{
		sr:     sr,
		freq:   freq,
		gain:   gain,
		decay:  decay.Seconds(),
		attack: 0.004,
	}
}

func (g *toneGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Min(t/g.attack, 1) * math.Exp(-t/g.decay)
		// A quiet octave above gives the tone a wooden knock.
		sample := g.gain * env * (0.8*math.Sin(2*math.Pi*g.freq*t) + 0.2*math.Sin(4*math.Pi*g.freq*t))
		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *toneGenerator) Err() error {
	return nil
}

type note struct {
	freq  float64
	len   time.Duration
	decay time.Duration
}

// phrase plays notes back to back.
func phrase(sr beep.SampleRate, gain float64, notes ...note) beep.Streamer {
	parts := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		parts = append(parts, beep.Take(sr.N(n.len), newTone(sr, n.freq, gain, n.decay)))
	}
	return beep.Seq(parts...)
}
