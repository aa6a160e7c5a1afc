package fx

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/iburimskiy/time-estimator/internal/config"
	"github.com/iburimskiy/time-estimator/internal/sched"
)

// recorder is a Canvas that counts what it was asked to draw since the last Reset.
type recorder struct {
	w, h    int
	resets  int
	circles int
	rects   int
	colors  []color.Color
}

func (r *recorder) Reset(w, h int) {
	r.w, r.h = w, h
	r.resets++
	r.circles, r.rects = 0, 0
	r.colors = r.colors[:0]
}

func (r *recorder) FillCircle(x, y, rad float64, clr color.Color) {
	r.circles++
	r.colors = append(r.colors, clr)
}

func (r *recorder) FillRect(cx, cy, w, h, deg float64, clr color.Color) {
	r.rects++
	r.colors = append(r.colors, clr)
}

func (r *recorder) empty() bool { return r.circles == 0 && r.rects == 0 }

func testRNG(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func testLoop() (*sched.Loop, *sched.ManualClock) {
	clock := sched.NewManualClock(time.Unix(1700000000, 0))
	return sched.NewLoop(clock), clock
}

func testConfig() *config.Config {
	return config.Default()
}
