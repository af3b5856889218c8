package texture

import (
	"image"

	"github.com/db47h/texquad/gl"
	"golang.org/x/image/draw"
)

// FilterMode selects how to filter textures.
//
type FilterMode int32

// FilterMode values map directly to their OpenGL equivalents.
//
const (
	Nearest              FilterMode = gl.GL_NEAREST
	Linear               FilterMode = gl.GL_LINEAR
	NearestMipmapNearest FilterMode = gl.GL_NEAREST_MIPMAP_NEAREST
	NearestMipmapLinear  FilterMode = gl.GL_NEAREST_MIPMAP_LINEAR
	LinearMipmapNearest  FilterMode = gl.GL_LINEAR_MIPMAP_NEAREST
	LinearMipmapLinear   FilterMode = gl.GL_LINEAR_MIPMAP_LINEAR
)

// Mipmap reports whether the filter mode uses mipmaps.
//
func (f FilterMode) Mipmap() bool {
	switch f {
	case NearestMipmapNearest, NearestMipmapLinear, LinearMipmapNearest, LinearMipmapLinear:
		return true
	}
	return false
}

// WrapMode selects how textures wrap when texture coordinates get outside of
// the range [0, 1].
//
type WrapMode int32

// WrapMode values map directly to their OpenGL equivalents.
//
const (
	Repeat         WrapMode = gl.GL_REPEAT
	MirroredRepeat WrapMode = gl.GL_MIRRORED_REPEAT
	ClampToEdge    WrapMode = gl.GL_CLAMP_TO_EDGE
)

// Format is a texture internal format.
//
type Format int32

// Supported internal formats. Pixel data is always uploaded as 8 bit RGBA.
//
const (
	RGBA8      Format = gl.GL_RGBA8
	SRGB8Alpha Format = gl.GL_SRGB8_ALPHA8
)

// A Texture is an OpenGL texture whose content is replaced as a whole by
// Upload.
//
type Texture struct {
	c      gl.Context
	glID   uint32
	width  int
	height int
	format Format
	flipY  bool
	mipmap bool
	buf    *image.RGBA
}

type tp struct {
	wrapS, wrapT         WrapMode
	minFilter, magFilter FilterMode
	format               Format
	flipY                *bool
}

// Parameter is implemented by functions setting texture parameters. See New.
//
type Parameter interface {
	set(*tp)
}

type optionFunc func(*tp)

func (f optionFunc) set(p *tp) {
	f(p)
}

// Wrap sets the GL_TEXTURE_WRAP_S and GL_TEXTURE_WRAP_T texture parameters.
//
func Wrap(wrapS, wrapT WrapMode) Parameter {
	return optionFunc(func(p *tp) {
		p.wrapS = wrapS
		p.wrapT = wrapT
	})
}

// Filter sets the GL_TEXTURE_MIN_FILTER and GL_TEXTURE_MAG_FILTER texture parameters.
// A mipmap minification filter makes Upload regenerate the mipmap chain.
//
func Filter(min, mag FilterMode) Parameter {
	return optionFunc(func(p *tp) {
		p.minFilter = min
		p.magFilter = mag
	})
}

// InternalFormat sets the internal format used by Upload. The default is RGBA8.
//
func InternalFormat(f Format) Parameter {
	return optionFunc(func(p *tp) {
		p.format = f
	})
}

// FlipY sets whether rows are flipped on upload, so that row 0 of an image
// ends up at texture coordinate v = 1.
//
func FlipY(flip bool) Parameter {
	return optionFunc(func(p *tp) {
		p.flipY = &flip
	})
}

// New returns a new empty texture. The texture is left bound to the active
// texture unit.
//
func New(c gl.Context, params ...Parameter) *Texture {
	t := &Texture{c: c, glID: c.GenTexture(), format: RGBA8}
	c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	t.setParams(params...)
	return t
}

// Parameters sets the given texture parameters.
//
func (t *Texture) Parameters(params ...Parameter) {
	if len(params) == 0 {
		return
	}
	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	t.setParams(params...)
}

func (t *Texture) setParams(params ...Parameter) {
	var tp tp
	for _, p := range params {
		p.set(&tp)
	}
	if tp.wrapS != 0 {
		t.c.TexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_WRAP_S, int32(tp.wrapS))
	}
	if tp.wrapT != 0 {
		t.c.TexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_WRAP_T, int32(tp.wrapT))
	}
	if tp.minFilter != 0 {
		t.c.TexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_MIN_FILTER, int32(tp.minFilter))
		t.mipmap = tp.minFilter.Mipmap()
	}
	if tp.magFilter != 0 {
		t.c.TexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_MAG_FILTER, int32(tp.magFilter))
	}
	if tp.format != 0 {
		t.format = tp.format
	}
	if tp.flipY != nil {
		t.flipY = *tp.flipY
	}
}

// MinFilter returns the minification filter as reported by OpenGL.
//
func (t *Texture) MinFilter() FilterMode {
	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	return FilterMode(t.c.GetTexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_MIN_FILTER))
}

// MagFilter returns the magnification filter as reported by OpenGL.
//
func (t *Texture) MagFilter() FilterMode {
	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	return FilterMode(t.c.GetTexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_MAG_FILTER))
}

// Wrap returns the wrap modes as reported by OpenGL.
//
func (t *Texture) Wrap() (s, u WrapMode) {
	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	return WrapMode(t.c.GetTexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_WRAP_S)),
		WrapMode(t.c.GetTexParameteri(gl.GL_TEXTURE_2D, gl.GL_TEXTURE_WRAP_T))
}

// Format returns the internal format used by Upload.
//
func (t *Texture) Format() Format {
	return t.format
}

// Bind binds the texture to the active texture unit.
//
func (t *Texture) Bind() {
	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
}

// Upload replaces the texture content with src and regenerates mipmaps if the
// minification filter uses them. The texture takes the size of src.
//
func (t *Texture) Upload(src image.Image) {
	pix := t.pixels(src)
	sz := src.Bounds().Size()
	t.width, t.height = sz.X, sz.Y

	t.c.BindTexture(gl.GL_TEXTURE_2D, t.glID)
	t.c.PixelStorei(gl.GL_UNPACK_ALIGNMENT, 4)
	t.c.TexImage2D(gl.GL_TEXTURE_2D, 0, int32(t.format), int32(sz.X), int32(sz.Y), gl.GL_RGBA, gl.GL_UNSIGNED_BYTE, pix)
	if t.mipmap {
		t.c.GenerateMipmap(gl.GL_TEXTURE_2D)
	}
}

// pixels returns the pixels of src as tightly packed RGBA rows, flipped if
// needed. The returned slice may alias src or an internal buffer.
//
func (t *Texture) pixels(src image.Image) []byte {
	sr := src.Bounds()
	if i, ok := src.(*image.RGBA); ok && !t.flipY && i.Stride == 4*sr.Dx() {
		return i.Pix[:4*sr.Dx()*sr.Dy()]
	}
	dr := image.Rectangle{Max: sr.Size()}
	if t.buf == nil || t.buf.Rect != dr {
		t.buf = image.NewRGBA(dr)
	}
	if !t.flipY {
		draw.Draw(t.buf, dr, src, sr.Min, draw.Src)
		return t.buf.Pix
	}
	row := image.Rect(0, 0, dr.Dx(), 1)
	for y := 0; y < dr.Dy(); y++ {
		draw.Draw(t.buf, row.Add(image.Pt(0, dr.Dy()-1-y)), src, image.Pt(sr.Min.X, sr.Min.Y+y), draw.Src)
	}
	return t.buf.Pix
}

// Size returns the size of the last uploaded image.
//
func (t *Texture) Size() image.Point {
	return image.Point{t.width, t.height}
}

// NativeID returns the native identifier of the texture.
//
func (t *Texture) NativeID() uint32 {
	return t.glID
}

// Delete deletes the texture.
//
func (t *Texture) Delete() {
	if t.glID != 0 {
		t.c.DeleteTexture(t.glID)
		t.glID = 0
	}
}
