package texquad

import (
	"context"
	"image"
	"image/color"
	"image/gif"
	"testing"
	"time"

	"github.com/db47h/texquad/debug"
	"github.com/db47h/texquad/gl/gltest"
	"github.com/db47h/texquad/loop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var palette = color.Palette{color.Transparent, color.RGBA{R: 255, A: 255}, color.RGBA{B: 255, A: 255}}

func paletted(r image.Rectangle, idx uint8) *image.Paletted {
	p := image.NewPaletted(r, palette)
	for i := range p.Pix {
		p.Pix[i] = idx
	}
	return p
}

func testGIF() *gif.GIF {
	return &gif.GIF{
		Image: []*image.Paletted{
			paletted(image.Rect(0, 0, 4, 4), 1),
			paletted(image.Rect(0, 0, 2, 2), 2),
			paletted(image.Rect(2, 2, 4, 4), 2),
		},
		Delay:    []int{5, 0, 2},
		Disposal: []byte{gif.DisposalNone, gif.DisposalBackground, gif.DisposalNone},
		Config:   image.Config{Width: 4, Height: 4},
	}
}

func TestAnimationCompose(t *testing.T) {
	a := NewAnimation(testGIF())
	require.Equal(t, 3, a.Len())

	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}

	f1 := a.frames[1]
	assert.Equal(t, blue, f1.RGBAAt(0, 0))
	assert.Equal(t, red, f1.RGBAAt(3, 3))

	// frame 1 is disposed to background before frame 2 is drawn.
	f2 := a.frames[2]
	assert.Equal(t, color.RGBA{}, f2.RGBAAt(0, 0))
	assert.Equal(t, blue, f2.RGBAAt(3, 3))
	assert.Equal(t, red, f2.RGBAAt(3, 0))

	assert.Equal(t, []time.Duration{50 * time.Millisecond, minDelay, 20 * time.Millisecond}, a.delays)
}

func TestAnimationAdvance(t *testing.T) {
	a := NewAnimation(testGIF())
	t0 := time.Unix(0, 0)
	assert.Same(t, a.frames[0], a.Frame())

	a.Advance(t0)
	assert.Same(t, a.frames[0], a.Frame())
	a.Advance(t0.Add(49 * time.Millisecond))
	assert.Same(t, a.frames[0], a.Frame())
	a.Advance(t0.Add(50 * time.Millisecond))
	assert.Same(t, a.frames[1], a.Frame())
	a.Advance(t0.Add(150 * time.Millisecond))
	assert.Same(t, a.frames[2], a.Frame())
	a.Advance(t0.Add(170 * time.Millisecond))
	assert.Same(t, a.frames[0], a.Frame())
}

func TestAnimationEmpty(t *testing.T) {
	a := NewAnimation(&gif.GIF{})
	assert.Zero(t, a.Len())
	a.Advance(time.Now())
	assert.NotNil(t, a.Frame())
}

type events struct {
	n, quit int
}

func (e *events) ProcessEvents() bool {
	e.n++
	return e.n >= e.quit
}

func TestAnimate(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, c, 8, 8)
	var (
		l  loop.Simple
		ev = &events{quit: 4}
		a  = Animate(r, NewAnimation(testGIF()), ev)
	)
	a.Timer = new(debug.Timer)
	l.MinFrameTime(time.Millisecond)
	require.NoError(t, l.Run(context.Background(), a))
	assert.Equal(t, 4, c.Draws)
	assert.Equal(t, uint64(4), l.Frames())
	assert.NotZero(t, a.Timer.Average())
}

func TestAnimateStatic(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, c, 8, 8)
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	a := Animate(r, Static{img}, &events{quit: 2})
	a.FrameStart(time.Now())
	a.Update()
	a.Draw()
	assert.Equal(t, 1, c.Draws)
	assert.False(t, a.ProcessEvents())
}
