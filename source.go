package texquad

import (
	"image"
	"image/gif"
	"time"

	"github.com/db47h/texquad/debug"
	"github.com/db47h/texquad/loop"
	"golang.org/x/image/draw"
)

// A Source supplies the image drawn on each frame. The returned image must not
// change while Draw is uploading it.
//
type Source interface {
	Frame() image.Image
}

// An Advancer is a Source whose content changes over time. Advance is called
// once per frame, before Frame, with the frame's time stamp.
//
type Advancer interface {
	Advance(now time.Time)
}

// Static is a Source that always returns the same image.
//
type Static struct {
	image.Image
}

// Frame implements Source.
//
func (s Static) Frame() image.Image { return s.Image }

// Animation is a Source cycling through the frames of an animated GIF.
//
type Animation struct {
	frames []*image.RGBA
	delays []time.Duration
	cur    int
	next   time.Time
}

// minDelay is used for GIF frames with a zero delay, like most browsers do.
const minDelay = 100 * time.Millisecond

// NewAnimation composes the frames of g. Frame disposal methods are honored.
//
func NewAnimation(g *gif.GIF) *Animation {
	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() && len(g.Image) > 0 {
		bounds = g.Image[0].Bounds()
	}
	a := &Animation{}
	canvas := image.NewRGBA(bounds)
	for i, p := range g.Image {
		var prev *image.RGBA
		disposal := byte(0)
		if i < len(g.Disposal) {
			disposal = g.Disposal[i]
		}
		if disposal == gif.DisposalPrevious {
			prev = clone(canvas)
		}
		draw.Draw(canvas, p.Bounds(), p, p.Bounds().Min, draw.Over)
		a.frames = append(a.frames, clone(canvas))

		d := minDelay
		if i < len(g.Delay) && g.Delay[i] > 0 {
			d = time.Duration(g.Delay[i]) * 10 * time.Millisecond
		}
		a.delays = append(a.delays, d)

		switch disposal {
		case gif.DisposalBackground:
			draw.Draw(canvas, p.Bounds(), image.Transparent, image.Point{}, draw.Src)
		case gif.DisposalPrevious:
			canvas = prev
		}
	}
	return a
}

func clone(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Rect)
	copy(dst.Pix, src.Pix)
	return dst
}

// Len returns the number of frames.
//
func (a *Animation) Len() int { return len(a.frames) }

// Frame implements Source.
//
func (a *Animation) Frame() image.Image {
	if len(a.frames) == 0 {
		return image.Transparent
	}
	return a.frames[a.cur]
}

// Advance implements Advancer. It moves to the next frame once the current
// frame's delay has elapsed. Frames are not skipped when called late.
//
func (a *Animation) Advance(now time.Time) {
	if len(a.frames) < 2 {
		return
	}
	if a.next.IsZero() {
		a.next = now.Add(a.delays[a.cur])
		return
	}
	if now.Before(a.next) {
		return
	}
	a.cur = (a.cur + 1) % len(a.frames)
	a.next = now.Add(a.delays[a.cur])
}

// Animator drives a Renderer from a loop.Simple. It implements
// loop.SimpleUpdater and loop.FrameStarter.
//
type Animator struct {
	loop.EventProcessor
	r   *Renderer
	src Source
	now time.Time

	// Timer, if not nil, records frame times.
	Timer *debug.Timer
}

// Animate returns an Animator that draws src with r on every iteration of a
// loop. ep processes events and swaps buffers between frames.
//
func Animate(r *Renderer, src Source, ep loop.EventProcessor) *Animator {
	return &Animator{EventProcessor: ep, r: r, src: src}
}

// FrameStart implements loop.FrameStarter.
//
func (a *Animator) FrameStart(t time.Time) {
	if a.Timer != nil {
		a.Timer.Tick(t)
	}
	a.now = t
}

// Update advances the source if it implements Advancer.
//
func (a *Animator) Update() {
	if adv, ok := a.src.(Advancer); ok {
		adv.Advance(a.now)
	}
}

// Draw renders the current frame of the source.
//
func (a *Animator) Draw() {
	a.r.Draw(a.src.Frame())
}
