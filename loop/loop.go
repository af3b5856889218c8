// The loop package provides a simple frame loop, calling Update and Draw
// once per display refresh until the application quits or the context is
// canceled.
//
package loop

import (
	"context"
	"time"
)

// EventProcessor wraps the ProcessEvents method.
//
// Graphical applications that need to swap buffers should swap their buffers in
// their ProcessEvents method, before actually processing events. With vsync
// enabled, this is what paces the loop to the display refresh rate.
//
type EventProcessor interface {
	ProcessEvents() (quit bool)
}

// FrameStarter is the interface implemented by any App that wants the time
// stamp at the beginning of each loop iteration.
//
type FrameStarter interface {
	FrameStart(time.Time)
}

type SimpleUpdater interface {
	EventProcessor
	Update()
	Draw()
}

// Simple provides a very simple frame loop.
//
type Simple struct {
	ticker *time.Ticker
	minFT  time.Duration
	frames uint64
}

// MinFrameTime sets the minimum frame time.
//
// If the t value is greater than 0, the frame rate will be clamped
// to time.Second/t.
//
func (l *Simple) MinFrameTime(t time.Duration) {
	if t == l.minFT {
		return
	}
	l.stopTicker()
	l.minFT = t
	if l.minFT > 0 {
		l.ticker = time.NewTicker(l.minFT)
	}
}

// Frames returns the number of frames drawn by the last call to Run.
//
func (l *Simple) Frames() uint64 {
	return l.frames
}

func (l *Simple) now(ctx context.Context) (time.Time, error) {
	if l.ticker != nil {
		select {
		case t := <-l.ticker.C:
			return t, nil
		case <-ctx.Done():
			return time.Time{}, ctx.Err()
		}
	}
	return time.Now(), ctx.Err()
}

func (l *Simple) stopTicker() {
	if l.ticker != nil {
		l.ticker.Stop()
		l.ticker = nil
	}
}

// Run calls a's Update and Draw methods in a loop until a.ProcessEvents
// returns true or ctx is done. The first frame is drawn before any event is
// processed.
//
// Run returns ctx.Err() if the loop was stopped by ctx, nil otherwise.
//
func (l *Simple) Run(ctx context.Context, a SimpleUpdater) error {
	if l.minFT > 0 && l.ticker == nil {
		l.ticker = time.NewTicker(l.minFT)
	}
	defer l.stopTicker()
	fStart, _ := a.(FrameStarter)
	l.frames = 0
	for {
		now, err := l.now(ctx)
		if err != nil {
			return err
		}
		if fStart != nil {
			fStart.FrameStart(now)
		}
		a.Update()
		a.Draw()
		l.frames++
		if a.ProcessEvents() {
			return nil
		}
	}
}
