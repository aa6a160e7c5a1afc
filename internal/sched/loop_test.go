package sched

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newTestLoop() (*Loop, *ManualClock) {
	clock := NewManualClock(time.Unix(1700000000, 0))
	return NewLoop(clock), clock
}

func TestRequestFrameRunsOnce(t *testing.T) {
	l, _ := newTestLoop()
	calls := 0
	l.RequestFrame(func() { calls++ })

	assert.Equal(t, 1, l.Frames())
	l.Pump()
	l.Pump()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, l.Frames())
}

func TestRequestFrameFromCallbackWaitsForNextPump(t *testing.T) {
	l, _ := newTestLoop()
	calls := 0
	var step func()
	step = func() {
		calls++
		l.RequestFrame(step)
	}
	l.RequestFrame(step)

	for i := 0; i < 10; i++ {
		l.Pump()
	}
	assert.Equal(t, 10, calls)
	assert.Equal(t, 1, l.Frames())
}

func TestEveryFiresOnSchedule(t *testing.T) {
	l, clock := newTestLoop()
	calls := 0
	l.Every(16*time.Millisecond, func() { calls++ })

	l.Pump()
	assert.Equal(t, 0, calls, "nothing is due before the first interval")

	clock.Advance(16 * time.Millisecond)
	l.Pump()
	assert.Equal(t, 1, calls)

	clock.Advance(32 * time.Millisecond)
	l.Pump()
	assert.Equal(t, 3, calls, "missed ticks are replayed")
}

func TestEveryCatchUpIsBounded(t *testing.T) {
	l, clock := newTestLoop()
	calls := 0
	l.Every(10*time.Millisecond, func() { calls++ })

	clock.Advance(time.Second)
	l.Pump()
	assert.Equal(t, maxCatchUp, calls)

	clock.Advance(10 * time.Millisecond)
	l.Pump()
	assert.Equal(t, maxCatchUp+1, calls, "resynced to now after a long stall")
}

func TestCancel(t *testing.T) {
	l, clock := newTestLoop()
	calls := 0
	h := l.Every(16*time.Millisecond, func() { calls++ })
	f := l.RequestFrame(func() { calls += 100 })

	assert.True(t, l.Scheduled(h))
	assert.True(t, l.Scheduled(f))
	l.Cancel(h)
	l.Cancel(f)
	l.Cancel(h)
	l.Cancel(0)

	clock.Advance(time.Second)
	l.Pump()
	assert.Equal(t, 0, calls)
	assert.Equal(t, 0, l.Pending())
	assert.False(t, l.Scheduled(h))
}

func TestCancelSelfStopsCatchUp(t *testing.T) {
	l, clock := newTestLoop()
	calls := 0
	var h Handle
	h = l.Every(16*time.Millisecond, func() {
		calls++
		l.Cancel(h)
	})

	clock.Advance(64 * time.Millisecond)
	l.Pump()
	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, l.Pending())
}

func TestCallbackAddingIntervalDuringPump(t *testing.T) {
	l, clock := newTestLoop()
	inner := 0
	l.Every(16*time.Millisecond, func() {
		if l.Pending() == 1 {
			l.Every(16*time.Millisecond, func() { inner++ })
		}
	})

	clock.Advance(16 * time.Millisecond)
	l.Pump()
	assert.Equal(t, 2, l.Pending())
	assert.Equal(t, 0, inner, "new interval starts a full period later")
}
