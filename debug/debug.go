// Package debug provides frame time statistics.
//
package debug

import (
	"time"
)

const samples = 32

// Timer keeps a moving average of the last 32 frame times.
//
type Timer struct {
	times [samples]time.Duration
	index int
	count int
	last  time.Time
}

// Add records a frame time.
//
func (t *Timer) Add(dt time.Duration) {
	t.times[t.index] = dt
	t.index = (t.index + 1) & (samples - 1)
	if t.count < samples {
		t.count++
	}
}

// Tick records the time elapsed since the previous call to Tick. The first
// call only sets the reference time.
//
func (t *Timer) Tick(now time.Time) {
	if !t.last.IsZero() {
		t.Add(now.Sub(t.last))
	}
	t.last = now
}

// Average returns the average frame time, or 0 if no frame time has been
// recorded yet.
//
func (t *Timer) Average() time.Duration {
	if t.count == 0 {
		return 0
	}
	var avg time.Duration
	for _, dt := range t.times[:t.count] {
		avg += dt
	}
	return avg / time.Duration(t.count)
}

// AveragePerSecond returns the average number of frames per second.
//
func (t *Timer) AveragePerSecond() float64 {
	avg := t.Average()
	if avg == 0 {
		return 0
	}
	return float64(time.Second) / float64(avg)
}
