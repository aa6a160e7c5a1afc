// Package sched is a single-threaded cooperative scheduler. It offers the two timing
// primitives the effects need: callbacks run once per pump, and callbacks repeating on
// a fixed wall-clock interval. The host pumps it once per displayed frame.
package sched

import (
	"sort"
	"time"
)

// maxCatchUp bounds how many missed interval ticks a single pump replays.
const maxCatchUp = 5

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// Handle identifies a scheduled callback. The zero Handle is never issued.
type Handle uint64

type interval struct {
	every time.Duration
	next  time.Time
	fn    func()
}

// Loop owns every pending callback. It is not safe for concurrent use; all calls come
// from the host's update goroutine.
type Loop struct {
	clock     Clock
	nextID    Handle
	frames    map[Handle]func()
	intervals map[Handle]*interval
}

// NewLoop returns a Loop reading time from clock; nil means SystemClock.
func NewLoop(clock Clock) *Loop {
	if clock == nil {
		clock = SystemClock
	}
	return &Loop{
		clock:     clock,
		frames:    map[Handle]func(){},
		intervals: map[Handle]*interval{},
	}
}

// Now returns the loop's notion of the current time.
func (l *Loop) Now() time.Time { return l.clock.Now() }

func (l *Loop) issue() Handle {
	l.nextID++
	return l.nextID
}

// RequestFrame runs fn once at the next pump. Callbacks requested while a pump is
// running wait for the following one.
func (l *Loop) RequestFrame(fn func()) Handle {
	h := l.issue()
	l.frames[h] = fn
	return h
}

// Every runs fn each time d elapses, starting d from now.
func (l *Loop) Every(d time.Duration, fn func()) Handle {
	if d <= 0 {
		d = time.Millisecond
	}
	h := l.issue()
	l.intervals[h] = &interval{every: d, next: l.clock.Now().Add(d), fn: fn}
	return h
}

// Cancel drops the callback behind h. Unknown and already cancelled handles are ignored.
func (l *Loop) Cancel(h Handle) {
	delete(l.frames, h)
	delete(l.intervals, h)
}

// Scheduled reports whether h is still pending.
func (l *Loop) Scheduled(h Handle) bool {
	if _, ok := l.frames[h]; ok {
		return true
	}
	_, ok := l.intervals[h]
	return ok
}

// Pending returns the number of live repeating callbacks.
func (l *Loop) Pending() int { return len(l.intervals) }

// Frames returns the number of frame callbacks waiting for the next pump.
func (l *Loop) Frames() int { return len(l.frames) }

// Pump runs the frame callbacks queued before the call, then every interval that is due.
// An interval that fell more than maxCatchUp ticks behind is resynchronised to now.
func (l *Loop) Pump() {
	if len(l.frames) > 0 {
		due := l.frames
		l.frames = map[Handle]func(){}
		for _, h := range sortedHandles(due) {
			due[h]()
		}
	}

	now := l.clock.Now()
	for _, h := range sortedHandles(l.intervals) {
		for n := 0; ; n++ {
			iv, ok := l.intervals[h]
			if !ok || now.Before(iv.next) {
				break
			}
			if n == maxCatchUp {
				iv.next = now.Add(iv.every)
				break
			}
			iv.next = iv.next.Add(iv.every)
			iv.fn()
		}
	}
}

// sortedHandles keeps execution order equal to registration order.
func sortedHandles[V any](m map[Handle]V) []Handle {
	hs := make([]Handle, 0, len(m))
	for h := range m {
		hs = append(hs, h)
	}
	sort.Slice(hs, func(i, j int) bool { return hs[i] < hs[j] })
	return hs
}
