package debug

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimer(t *testing.T) {
	var tm Timer
	assert.Zero(t, tm.Average())
	assert.Zero(t, tm.AveragePerSecond())

	tm.Add(10 * time.Millisecond)
	tm.Add(30 * time.Millisecond)
	assert.Equal(t, 20*time.Millisecond, tm.Average())
	assert.InDelta(t, 50.0, tm.AveragePerSecond(), 1e-9)
}

func TestTimerWraps(t *testing.T) {
	var tm Timer
	for i := 0; i < samples; i++ {
		tm.Add(time.Second)
	}
	for i := 0; i < samples; i++ {
		tm.Add(time.Millisecond)
	}
	assert.Equal(t, time.Millisecond, tm.Average())
}

func TestTick(t *testing.T) {
	var tm Timer
	t0 := time.Unix(1000, 0)
	tm.Tick(t0)
	assert.Zero(t, tm.Average())
	tm.Tick(t0.Add(16 * time.Millisecond))
	tm.Tick(t0.Add(32 * time.Millisecond))
	assert.Equal(t, 16*time.Millisecond, tm.Average())
}
