// Package timing schedules fixed-rate camera ticks and frame pacing.
package timing

import "time"

// maxCatchUp bounds the ticks run after a stall so a long pause does not
// fling the camera.
const maxCatchUp = 4

// Ticker splits wall-clock time into fixed camera steps, independent of the
// frame rate.
type Ticker struct {
	interval time.Duration
	pending  time.Duration
}

// NewTicker returns a ticker firing maxFPS times per second.
func NewTicker(maxFPS int) *Ticker {
	if maxFPS <= 0 {
		maxFPS = 1
	}
	return &Ticker{interval: time.Second / time.Duration(maxFPS)}
}

// Interval returns the step length.
func (t *Ticker) Interval() time.Duration {
	return t.interval
}

// Step returns the step length in seconds, the dt passed to each tick.
func (t *Ticker) Step() float64 {
	return t.interval.Seconds()
}

// Advance accounts for elapsed time and returns the number of steps due.
func (t *Ticker) Advance(elapsed time.Duration) int {
	if elapsed > 0 {
		t.pending += elapsed
	}
	n := int(t.pending / t.interval)
	t.pending -= time.Duration(n) * t.interval
	if n > maxCatchUp {
		n = maxCatchUp
	}
	return n
}

// FrameDelay returns how long to sleep so a frame that took frameTime lasts
// at least one interval.
func (t *Ticker) FrameDelay(frameTime time.Duration) time.Duration {
	if frameTime >= t.interval {
		return 0
	}
	return t.interval - frameTime
}
