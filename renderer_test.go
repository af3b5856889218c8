package texquad

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"strings"
	"testing"

	"github.com/db47h/texquad/gl"
	"github.com/db47h/texquad/gl/gltest"
	"github.com/db47h/texquad/srgb"
	"github.com/db47h/texquad/texture"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type surface struct {
	c        gl.Context
	err      error
	w, h     int
	versions []APIVersion
}

func (s *surface) Context(v APIVersion) (gl.Context, error) {
	s.versions = append(s.versions, v)
	if s.err != nil {
		return nil, s.err
	}
	return s.c, nil
}

func (s *surface) SetSize(w, h int) { s.w, s.h = w, h }

// hidpi is a surface whose frame buffer is scale times its size.
type hidpi struct {
	*surface
	scale int
}

func (s hidpi) FrameBufferSize() (int, int) { return s.w * s.scale, s.h * s.scale }

type logger struct {
	msgs []string
}

func (l *logger) Printf(format string, v ...interface{}) {
	l.msgs = append(l.msgs, fmt.Sprintf(format, v...))
}

// legacy hides the vertex array methods of the fake, like an OpenGL 2.1
// context.
type legacy struct {
	gl.Context
}

func newTest(t *testing.T, c gl.Context, w, h int, opts ...Option) (*Renderer, *surface, *logger) {
	t.Helper()
	s := &surface{c: c}
	l := &logger{}
	r, err := New(s, w, h, append([]Option{WithLogger(l)}, opts...)...)
	require.NoError(t, err)
	require.NotNil(t, r)
	return r, s, l
}

func uniform(img *image.RGBA, c color.Color) *image.RGBA {
	for y := img.Rect.Min.Y; y < img.Rect.Max.Y; y++ {
		for x := img.Rect.Min.X; x < img.Rect.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

func TestNewDefaults(t *testing.T) {
	c := gltest.New()
	r, s, l := newTest(t, c, 320, 200)

	assert.Equal(t, []APIVersion{V1}, s.versions)
	assert.Equal(t, 320, s.w)
	assert.Equal(t, 200, s.h)
	assert.Equal(t, [4]int32{0, 0, 320, 200}, c.ViewportRect())
	assert.Empty(t, l.msgs)

	cfg := r.Config()
	assert.Equal(t, V1, cfg.APIVersion)
	assert.Equal(t, float32(3), cfg.Repeat)
	assert.Equal(t, Linear, cfg.ColorSpace)
	assert.True(t, cfg.Mipmaps)

	assert.False(t, c.Enabled(gl.GL_DEPTH_TEST))
	assert.True(t, c.Enabled(gl.GL_BLEND))
	sRGB, dRGB, sA, dA := c.BlendFunc()
	assert.Equal(t, []uint32{gl.GL_SRC_ALPHA, gl.GL_ONE_MINUS_SRC_ALPHA, gl.GL_ONE, gl.GL_ONE_MINUS_SRC_ALPHA},
		[]uint32{sRGB, dRGB, sA, dA})

	unit, ok := c.Uniform(uint32(r.program), uniformTexture)
	assert.True(t, ok)
	assert.Equal(t, int32(0), unit)
	assert.True(t, c.Encodes(uint32(r.program)))

	assert.Equal(t, texture.LinearMipmapLinear, r.Texture().MinFilter())
	assert.Equal(t, texture.Nearest, r.Texture().MagFilter())
	ws, wt := r.Texture().Wrap()
	assert.Equal(t, texture.Repeat, ws)
	assert.Equal(t, texture.Repeat, wt)
	assert.Equal(t, texture.RGBA8, r.Texture().Format())
	assert.NotZero(t, r.vao)
}

func TestGeometry(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, c, 16, 16)
	assert.Equal(t, quadVertices[:], c.Float32s(r.vertices))
	assert.Equal(t, []uint16{0, 1, 2, 0, 2, 3}, c.Uint16s(r.indices))
}

func TestTexCoords(t *testing.T) {
	for _, rep := range []float32{0.25, 1, 3, 7.5, 1000} {
		c := gltest.New()
		r, _, _ := newTest(t, c, 16, 16, Repeat(rep))
		assert.Equal(t, []float32{0, 0, rep, 0, rep, rep, 0, rep}, c.Float32s(r.texCoords), "repeat %v", rep)
	}
}

func TestMipmapFilter(t *testing.T) {
	img := uniform(image.NewRGBA(image.Rect(0, 0, 8, 8)), color.White)
	for _, mip := range []bool{false, true} {
		c := gltest.New()
		r, _, _ := newTest(t, c, 16, 16, Mipmaps(mip))
		r.Draw(img)
		r.Draw(img)
		st := c.Texture(r.Texture().NativeID())
		if mip {
			assert.Equal(t, texture.LinearMipmapLinear, r.Texture().MinFilter())
			assert.Equal(t, 2, st.Mipmaps)
		} else {
			assert.Equal(t, texture.Linear, r.Texture().MinFilter())
			assert.Zero(t, st.Mipmaps)
		}
		assert.Equal(t, 2, st.Uploads)
	}
}

func TestContextUnavailable(t *testing.T) {
	c := gltest.New()
	s := &surface{c: c, err: errors.New("no GL 3.3 support")}
	l := &logger{}
	r, err := New(s, 256, 256, WithLogger(l))
	assert.Nil(t, r)
	assert.Equal(t, ErrContextUnavailable, errors.Cause(err))
	require.Len(t, l.msgs, 1)
	assert.Contains(t, l.msgs[0], "no GL 3.3 support")
	assert.Zero(t, c.Allocated())
	assert.Zero(t, s.w)
}

func TestCompileAndLinkFailures(t *testing.T) {
	for _, tc := range []struct {
		name     string
		vertex   string
		fragment string
		link     string
		want     error
	}{
		{name: "ok"},
		{name: "vertex", vertex: "0:2(1): error: syntax error", want: ErrShaderCompile},
		{name: "fragment", fragment: "0:12(3): error: undeclared identifier", want: ErrShaderCompile},
		{name: "link", link: "error: too many varyings", want: ErrProgramLink},
	} {
		t.Run(tc.name, func(t *testing.T) {
			c := gltest.New()
			c.FailCompile = map[uint32]string{}
			if tc.vertex != "" {
				c.FailCompile[gl.GL_VERTEX_SHADER] = tc.vertex
			}
			if tc.fragment != "" {
				c.FailCompile[gl.GL_FRAGMENT_SHADER] = tc.fragment
			}
			c.FailLink = tc.link
			l := &logger{}
			r, err := New(&surface{c: c}, 64, 64, WithLogger(l))
			if tc.want == nil {
				assert.NoError(t, err)
				assert.NotNil(t, r)
				assert.Empty(t, l.msgs)
				return
			}
			assert.Nil(t, r)
			assert.Equal(t, tc.want, errors.Cause(err))
			require.Len(t, l.msgs, 1)
			assert.Contains(t, l.msgs[0], tc.vertex+tc.fragment+tc.link)
			assert.Zero(t, c.Live())
		})
	}
}

func TestInvalidArguments(t *testing.T) {
	for _, tc := range []struct {
		name string
		w, h int
		opts []Option
		want error
	}{
		{"zero width", 0, 10, nil, ErrInvalidSize},
		{"negative height", 10, -1, nil, ErrInvalidSize},
		{"zero repeat", 10, 10, []Option{Repeat(0)}, ErrInvalidConfig},
		{"negative repeat", 10, 10, []Option{Repeat(-2)}, ErrInvalidConfig},
		{"NaN repeat", 10, 10, []Option{Repeat(float32(math.NaN()))}, ErrInvalidConfig},
		{"bad version", 10, 10, []Option{Version(7)}, ErrInvalidConfig},
		{"bad color space", 10, 10, []Option{Space(9)}, ErrInvalidConfig},
	} {
		t.Run(tc.name, func(t *testing.T) {
			s := &surface{c: gltest.New()}
			l := &logger{}
			r, err := New(s, tc.w, tc.h, append(tc.opts, WithLogger(l))...)
			assert.Nil(t, r)
			assert.Equal(t, tc.want, errors.Cause(err))
			assert.Len(t, l.msgs, 1)
			assert.Empty(t, s.versions)
		})
	}
}

func TestNilLogger(t *testing.T) {
	r, err := New(&surface{c: gltest.New()}, 0, 0, WithLogger(nil))
	assert.Nil(t, r)
	assert.Error(t, err)
}

func TestDraw256(t *testing.T) {
	for _, col := range []color.RGBA{
		{R: 255, A: 255},
		{R: 100, G: 100, B: 100, A: 255},
	} {
		c := gltest.New()
		r, _, _ := newTest(t, c, 256, 256, Version(V2), Repeat(3), Space(SRGB), Mipmaps(true))
		r.Draw(uniform(image.NewRGBA(image.Rect(0, 0, 256, 256)), col))

		// the sRGB sampler decodes, the shader encodes back.
		got := r.Snapshot().RGBAAt(128, 128)
		assert.InDelta(t, col.R, got.R, 1, "%v", col)
		assert.InDelta(t, col.G, got.G, 1, "%v", col)
		assert.InDelta(t, col.B, got.B, 1, "%v", col)
		assert.Equal(t, uint8(255), got.A)
		assert.Equal(t, 1, c.Draws)

		// with a linear texture, the image is encoded.
		c = gltest.New()
		r, _, _ = newTest(t, legacy{c}, 256, 256, Version(V1))
		r.Draw(uniform(image.NewRGBA(image.Rect(0, 0, 256, 256)), col))
		want := srgb.EncodeColor(col)
		got = r.Snapshot().RGBAAt(128, 128)
		assert.Equal(t, want, color.NRGBA{R: got.R, G: got.G, B: got.B, A: got.A}, "%v", col)
	}
}

func gradient(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 255 / w), G: uint8(y * 255 / h), B: 64, A: 255})
		}
	}
	return img
}

func TestDrawIdempotent(t *testing.T) {
	for _, v := range []APIVersion{V1, V2} {
		c := gltest.New()
		var ctx gl.Context = c
		if v == V1 {
			ctx = legacy{c}
		}
		r, _, _ := newTest(t, ctx, 64, 48, Version(v))
		img := gradient(20, 10)
		r.Draw(img)
		first := r.Snapshot()
		r.Draw(img)
		second := r.Snapshot()
		assert.Equal(t, first.Pix, second.Pix, "version %v", v)
		assert.Equal(t, 2, c.Clears)
	}
}

func TestDrawOrientation(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, c, 32, 32, Repeat(1), Space(Linear))
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	uniform(img.SubImage(image.Rect(0, 0, 4, 2)).(*image.RGBA), color.RGBA{R: 255, A: 255})
	uniform(img.SubImage(image.Rect(0, 2, 4, 4)).(*image.RGBA), color.RGBA{B: 255, A: 255})
	r.Draw(img)
	snap := r.Snapshot()
	assert.Equal(t, color.RGBA{R: 255, A: 255}, snap.RGBAAt(16, 2))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, snap.RGBAAt(16, 29))
}

func TestDrawBlending(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, c, 8, 8, Space(Linear))
	img := image.NewNRGBA(image.Rect(0, 0, 2, 2))
	img.SetNRGBA(0, 0, color.NRGBA{A: 128})
	img.SetNRGBA(1, 0, color.NRGBA{A: 128})
	img.SetNRGBA(0, 1, color.NRGBA{A: 128})
	img.SetNRGBA(1, 1, color.NRGBA{A: 128})
	r.Draw(img)
	assert.Equal(t, color.RGBA{R: 127, G: 127, B: 127, A: 255}, r.Snapshot().RGBAAt(4, 4))

	r.Draw(image.NewNRGBA(image.Rect(0, 0, 2, 2)))
	assert.Equal(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, r.Snapshot().RGBAAt(4, 4))
}

func TestColorSpaces(t *testing.T) {
	for _, tc := range []struct {
		v      APIVersion
		cs     ColorSpace
		format texture.Format
	}{
		{V1, Linear, texture.RGBA8},
		{V1, SRGB, texture.RGBA8},
		{V2, Linear, texture.RGBA8},
		{V2, SRGB, texture.SRGB8Alpha},
	} {
		c := gltest.New()
		var ctx gl.Context = c
		if tc.v == V1 {
			ctx = legacy{c}
		}
		r, _, _ := newTest(t, ctx, 16, 16, Version(tc.v), Space(tc.cs))
		assert.Equal(t, tc.format, r.Texture().Format(), "%v %v", tc.v, tc.cs)
		assert.True(t, c.Encodes(uint32(r.program)), "%v %v", tc.v, tc.cs)

		grey := color.RGBA{R: 100, G: 150, B: 200, A: 255}
		r.Draw(uniform(image.NewRGBA(image.Rect(0, 0, 4, 4)), grey))
		got := r.Snapshot().RGBAAt(8, 8)
		want := [3]uint8{srgb.Encode8(grey.R), srgb.Encode8(grey.G), srgb.Encode8(grey.B)}
		if tc.format == texture.SRGB8Alpha {
			// decoding by the sRGB sampler and encoding in the shader cancel out.
			want = [3]uint8{grey.R, grey.G, grey.B}
		}
		assert.InDelta(t, want[0], got.R, 1, "%v %v", tc.v, tc.cs)
		assert.InDelta(t, want[1], got.G, 1, "%v %v", tc.v, tc.cs)
		assert.InDelta(t, want[2], got.B, 1, "%v %v", tc.v, tc.cs)
	}
}

func TestLegacyContext(t *testing.T) {
	c := gltest.New()
	r, _, _ := newTest(t, legacy{c}, 16, 16, Version(V1))
	assert.Zero(t, r.vao)
	r.Draw(uniform(image.NewRGBA(image.Rect(0, 0, 2, 2)), color.RGBA{G: 255, A: 255}))
	assert.Equal(t, color.RGBA{G: 255, A: 255}, r.Snapshot().RGBAAt(8, 8))
}

func TestShaderSources(t *testing.T) {
	vs, fs := shaderSources(V1)
	assert.True(t, strings.HasPrefix(vs, "#version 120"))
	assert.Contains(t, fs, "texture2D(")
	assert.Contains(t, fs, `
vec3 encodeSRGB(vec3 c)
{
	vec3 lo = 12.92 * c;
	vec3 hi = 1.055 * pow(c, vec3(1.0 / 2.4)) - 0.055;
	return mix(lo, hi, 1.0 - step(c, vec3(0.0031308)));
}
`)
	assert.Contains(t, fs, "gl_FragColor = vec4(encodeSRGB(c.rgb), c.a);")

	vs, fs = shaderSources(V2)
	assert.True(t, strings.HasPrefix(vs, "#version 330 core"))
	assert.True(t, strings.HasPrefix(fs, "#version 330 core"))
	assert.Contains(t, fs, "texture(uTexture")
	assert.Contains(t, fs, encodeFunc)
	assert.Contains(t, fs, "fragColor = vec4(encodeSRGB(c.rgb), c.a);")
	for _, name := range []string{attribPosition, attribTexCoord} {
		assert.Contains(t, vs, name)
	}
	assert.Contains(t, fs, uniformTexture)
}

func TestGLSLFloat(t *testing.T) {
	assert.Equal(t, "12.92", glslFloat(12.92))
	assert.Equal(t, "2.0", glslFloat(2))
	assert.Equal(t, "0.0031308", glslFloat(0.0031308))
	assert.Equal(t, "1e-05", glslFloat(0.00001))
}

func TestFrameBufferSize(t *testing.T) {
	c := gltest.New()
	s := hidpi{&surface{c: c}, 2}
	r, err := New(s, 32, 16, WithLogger(nil), Repeat(1))
	require.NoError(t, err)
	assert.Equal(t, image.Pt(32, 16), r.Size())
	assert.Equal(t, image.Pt(64, 32), r.FrameBufferSize())
	assert.Equal(t, [4]int32{0, 0, 64, 32}, c.ViewportRect())

	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	uniform(img.SubImage(image.Rect(0, 0, 2, 1)).(*image.RGBA), color.RGBA{R: 255, A: 255})
	uniform(img.SubImage(image.Rect(0, 1, 2, 2)).(*image.RGBA), color.RGBA{B: 255, A: 255})
	r.Draw(img)
	snap := r.Snapshot()
	assert.Equal(t, image.Rect(0, 0, 64, 32), snap.Bounds())
	// the quad covers the whole frame buffer, not its lower left quarter.
	assert.Equal(t, color.RGBA{R: 255, A: 255}, snap.RGBAAt(60, 2))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, snap.RGBAAt(60, 29))
	assert.Equal(t, color.RGBA{B: 255, A: 255}, snap.RGBAAt(2, 29))
}

func TestDelete(t *testing.T) {
	c := gltest.New()
	s := &surface{c: c}
	for i := 0; i < 3; i++ {
		r, err := New(s, 16, 16, WithLogger(nil))
		require.NoError(t, err)
		r.Draw(image.NewRGBA(image.Rect(0, 0, 1, 1)))
		r.Delete()
		r.Delete()
	}
	assert.Zero(t, c.Live())
}
