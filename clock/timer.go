// Package clock provides the frame timer that paces the render loop.
//
// A Timer tracks the boundary of the most recent tick and the number of ticks
// completed. Tick blocks until the next boundary; Skip moves the boundary
// without blocking, which is how benchmark mode runs unthrottled. Both count
// exactly one tick.
package clock

import "time"

// Timer paces a loop to a fixed interval
type Timer struct {
	provider TimeProvider
	interval time.Duration
	lastTick time.Time
	ticks    uint64
}

// NewTimer creates a timer ticking every interval; zero never blocks
func NewTimer(interval time.Duration) *Timer {
	return NewTimerWithProvider(interval, NewMonotonicTimeProvider())
}

// NewTimerWithProvider creates a timer reading time from provider
func NewTimerWithProvider(interval time.Duration, provider TimeProvider) *Timer {
	if interval < 0 {
		interval = 0
	}
	return &Timer{
		provider: provider,
		interval: interval,
		lastTick: provider.Now(),
	}
}

// FromFramerate creates a timer with interval 1s/framerate
// A non-positive framerate yields a zero interval
func FromFramerate(framerate int) *Timer {
	return NewTimer(FramerateInterval(framerate))
}

// FramerateInterval converts frames per second to a tick interval
func FramerateInterval(framerate int) time.Duration {
	if framerate <= 0 {
		return 0
	}
	return time.Second / time.Duration(framerate)
}

// Interval returns the target duration between ticks
func (t *Timer) Interval() time.Duration {
	return t.interval
}

// Ticks returns the number of completed ticks since creation
func (t *Timer) Ticks() uint64 {
	return t.ticks
}

// Left returns the time until the next tick boundary, never negative
func (t *Timer) Left() time.Duration {
	took := t.provider.Now().Sub(t.lastTick)
	if took < 0 {
		took = 0
	}
	left := t.interval - took
	if left < 0 {
		return 0
	}
	return left
}

// Tick blocks until the next boundary, then records it
func (t *Timer) Tick() {
	if left := t.Left(); left > 0 {
		t.provider.Sleep(left)
	}
	t.mark()
}

// Skip records a new boundary immediately
func (t *Timer) Skip() {
	t.mark()
}

// mark is the single point where a tick is counted
func (t *Timer) mark() {
	t.ticks++
	t.lastTick = t.provider.Now()
}
