package gltest

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/db47h/texquad/gl"
	"github.com/db47h/texquad/srgb"
)

type vertex struct {
	x, y float64
	u, v float64
}

func (c *Context) fetch(a attribPointer, i int) []float64 {
	b := c.buffers[a.buffer]
	stride := int(a.stride)
	if stride == 0 {
		stride = int(a.size) * 4
	}
	off := a.offset + i*stride
	v := make([]float64, a.size)
	for k := range v {
		v[k] = float64(math.Float32frombits(binary.NativeEndian.Uint32(b[off+k*4:])))
	}
	return v
}

func (c *Context) vertices() (pos, tex attribPointer, ok bool) {
	var havePos, haveTex bool
	for _, a := range c.attribs {
		if !a.enabled {
			continue
		}
		switch a.size {
		case 3:
			pos, havePos = a, true
		case 2:
			tex, haveTex = a, true
		}
	}
	return pos, tex, havePos && haveTex
}

func (c *Context) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	c.Draws++
	if mode != gl.GL_TRIANGLES || typ != gl.GL_UNSIGNED_SHORT {
		panic(fmt.Sprintf("gltest: unsupported draw %#x/%#x", mode, typ))
	}
	pos, tex, ok := c.vertices()
	if !ok {
		return
	}
	indices := c.Uint16s(c.elementBuffer[c.vertexArray])
	indices = indices[offset/2 : offset/2+int(count)]
	vs := make([]vertex, len(indices))
	for i, idx := range indices {
		p := c.fetch(pos, int(idx))
		t := c.fetch(tex, int(idx))
		vs[i] = vertex{x: p[0], y: p[1], u: t[0], v: t[1]}
	}
	// pixels on edges shared by two triangles are shaded once.
	covered := make([]bool, len(c.fb)/4)
	for i := 0; i+2 < len(vs); i += 3 {
		c.rasterize(covered, vs[i], vs[i+1], vs[i+2])
	}
}

func edge(a, b vertex, x, y float64) float64 {
	return (b.x-a.x)*(y-a.y) - (b.y-a.y)*(x-a.x)
}

func (c *Context) rasterize(covered []bool, a, b, d vertex) {
	area := edge(a, b, d.x, d.y)
	if area == 0 {
		return
	}
	vx, vy, vw, vh := int(c.viewport[0]), int(c.viewport[1]), int(c.viewport[2]), int(c.viewport[3])
	stride := vx + vw
	for py := vy; py < vy+vh; py++ {
		ny := 2*(float64(py-vy)+0.5)/float64(vh) - 1
		for px := vx; px < vx+vw; px++ {
			nx := 2*(float64(px-vx)+0.5)/float64(vw) - 1
			w0 := edge(b, d, nx, ny) / area
			w1 := edge(d, a, nx, ny) / area
			w2 := edge(a, b, nx, ny) / area
			if w0 < 0 || w1 < 0 || w2 < 0 || covered[py*stride+px] {
				continue
			}
			covered[py*stride+px] = true
			u := w0*a.u + w1*b.u + w2*d.u
			v := w0*a.v + w1*b.v + w2*d.v
			c.shade(c.fb[(py*stride+px)*4:], u, v)
		}
	}
}

func wrap(t float64, n int, mode int32) int {
	if mode == gl.GL_CLAMP_TO_EDGE {
		t = math.Min(math.Max(t, 0), 1)
	} else {
		t -= math.Floor(t)
	}
	i := int(t * float64(n))
	if i >= n {
		i = n - 1
	}
	return i
}

func (c *Context) shade(dst []byte, u, v float64) {
	t := c.textures[c.units[0]]
	if t == nil || t.Width == 0 || t.Height == 0 {
		return
	}
	x := wrap(u, t.Width, t.Params[gl.GL_TEXTURE_WRAP_S])
	y := wrap(v, t.Height, t.Params[gl.GL_TEXTURE_WRAP_T])
	texel := t.Pix[(y*t.Width+x)*4:]
	var src [4]float64
	for i := range src {
		src[i] = float64(texel[i]) / 255
	}
	if t.InternalFormat == gl.GL_SRGB8_ALPHA8 {
		for i := 0; i < 3; i++ {
			src[i] = srgb.Decode(src[i])
		}
	}
	if c.Encodes(c.program) {
		for i := 0; i < 3; i++ {
			src[i] = srgb.Encode(src[i])
		}
	}
	if !c.caps[gl.GL_BLEND] {
		for i := range src {
			dst[i] = quantize(src[i])
		}
		return
	}
	var d [4]float64
	for i := range d {
		d[i] = float64(dst[i]) / 255
	}
	for i := 0; i < 3; i++ {
		dst[i] = quantize(src[i]*c.factor(c.blend[0], src, d) + d[i]*c.factor(c.blend[1], src, d))
	}
	dst[3] = quantize(src[3]*c.factor(c.blend[2], src, d) + d[3]*c.factor(c.blend[3], src, d))
}

func (c *Context) factor(f uint32, src, dst [4]float64) float64 {
	switch f {
	case gl.GL_ZERO:
		return 0
	case gl.GL_ONE:
		return 1
	case gl.GL_SRC_ALPHA:
		return src[3]
	case gl.GL_ONE_MINUS_SRC_ALPHA:
		return 1 - src[3]
	}
	panic(fmt.Sprintf("gltest: unsupported blend factor %#x", f))
}
