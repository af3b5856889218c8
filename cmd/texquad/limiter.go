package main

import (
	"image"
	"strconv"

	"github.com/db47h/texquad/loop"
)

// frameReader is implemented by *texquad.Renderer.
type frameReader interface {
	Snapshot() *image.RGBA
}

// limiter stops the loop after max frames. If snapshot is set, the last frame
// is read back before buffers are swapped.
type limiter struct {
	loop.EventProcessor
	r        frameReader
	max      int
	n        int
	snapshot bool
	snap     *image.RGBA
}

func (l *limiter) ProcessEvents() bool {
	l.n++
	if l.max > 0 && l.n >= l.max {
		if l.snapshot {
			l.snap = l.r.Snapshot()
		}
		l.EventProcessor.ProcessEvents()
		return true
	}
	return l.EventProcessor.ProcessEvents()
}

// float32Value is a flag.Value for float32 variables.
type float32Value struct {
	p *float32
}

func (v float32Value) String() string {
	if v.p == nil {
		return "0"
	}
	return strconv.FormatFloat(float64(*v.p), 'g', -1, 32)
}

func (v float32Value) Set(s string) error {
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return err
	}
	*v.p = float32(f)
	return nil
}
