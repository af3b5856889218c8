package texquad

import (
	"image"

	"github.com/db47h/texquad/gl"
	"github.com/db47h/texquad/texture"
	"github.com/pkg/errors"
)

// Unit quad in normalized device coordinates, drawn as two counter-clockwise
// triangles.
var (
	quadVertices = [...]float32{
		-1, -1, 0,
		1, -1, 0,
		1, 1, 0,
		-1, 1, 0,
	}
	quadIndices = [...]uint16{0, 1, 2, 0, 2, 3}
)

// TexCoords returns the texture coordinates of the quad vertices for the
// given repeat factor.
//
func TexCoords(repeat float32) [8]float32 {
	r := repeat
	return [8]float32{
		0, 0,
		r, 0,
		r, r,
		0, r,
	}
}

// A Renderer draws images on a full-viewport quad. All OpenGL objects it uses
// are owned by the Renderer and released by Delete.
//
type Renderer struct {
	c      gl.Context
	cfg    Config
	width  int
	height int
	fbSize image.Point

	program   gl.Program
	aPos      uint32
	aTexCoord uint32
	vao       uint32
	vertices  uint32
	indices   uint32
	texCoords uint32
	tex       *texture.Texture
}

// New sets up a Renderer for the given surface. The surface is resized to
// width×height. If s implements FrameBufferSizer, the viewport covers the
// frame buffer size it reports after resizing, otherwise width×height.
//
// Errors are reported once on the configured Logger and returned. They wrap
// ErrInvalidConfig, ErrInvalidSize, ErrContextUnavailable, ErrShaderCompile or
// ErrProgramLink. No OpenGL object is left allocated on failure.
//
func New(s Surface, width, height int, opts ...Option) (*Renderer, error) {
	cfg := DefaultConfig()
	for _, o := range opts {
		o.set(&cfg)
	}
	if cfg.Logger == nil {
		cfg.Logger = nopLogger{}
	}
	fail := func(err error) (*Renderer, error) {
		cfg.Logger.Printf("%v", err)
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return fail(err)
	}
	if width <= 0 || height <= 0 {
		return fail(errors.Wrapf(ErrInvalidSize, "%dx%d", width, height))
	}
	c, err := s.Context(cfg.APIVersion)
	if err != nil {
		return fail(errors.Wrapf(ErrContextUnavailable, "%v context: %v", cfg.APIVersion, err))
	}

	r := &Renderer{c: c, cfg: cfg, width: width, height: height, fbSize: image.Pt(width, height)}
	s.SetSize(width, height)
	if fs, ok := s.(FrameBufferSizer); ok {
		if w, h := fs.FrameBufferSize(); w > 0 && h > 0 {
			r.fbSize = image.Pt(w, h)
		}
	}
	c.Viewport(0, 0, int32(r.fbSize.X), int32(r.fbSize.Y))
	if err = r.init(); err != nil {
		r.Delete()
		return fail(err)
	}
	return r, nil
}

func (r *Renderer) init() error {
	c := r.c
	vsrc, fsrc := shaderSources(r.cfg.APIVersion)
	vs, err := gl.NewShader(c, gl.GL_VERTEX_SHADER, vsrc)
	if err != nil {
		return errors.Wrapf(ErrShaderCompile, "vertex shader: %v", err)
	}
	defer vs.Delete(c)
	fs, err := gl.NewShader(c, gl.GL_FRAGMENT_SHADER, fsrc)
	if err != nil {
		return errors.Wrapf(ErrShaderCompile, "fragment shader: %v", err)
	}
	defer fs.Delete(c)
	if r.program, err = gl.NewProgram(c, vs, fs); err != nil {
		return errors.Wrapf(ErrProgramLink, "%v", err)
	}
	if r.aPos, err = r.program.AttribLocation(c, attribPosition); err != nil {
		return err
	}
	if r.aTexCoord, err = r.program.AttribLocation(c, attribTexCoord); err != nil {
		return err
	}

	if vc, ok := c.(gl.VertexArrayContext); ok {
		r.vao = vc.GenVertexArray()
		vc.BindVertexArray(r.vao)
	}
	tc := TexCoords(r.cfg.Repeat)
	r.vertices = r.newBuffer(gl.GL_ARRAY_BUFFER, gl.Bytes(quadVertices[:]))
	r.texCoords = r.newBuffer(gl.GL_ARRAY_BUFFER, gl.Bytes(tc[:]))
	r.indices = r.newBuffer(gl.GL_ELEMENT_ARRAY_BUFFER, gl.Bytes(quadIndices[:]))
	r.bindAttribs()

	minFilter := texture.Linear
	if r.cfg.Mipmaps {
		minFilter = texture.LinearMipmapLinear
	}
	format := texture.RGBA8
	if r.cfg.SRGBTexture() {
		format = texture.SRGB8Alpha
	}
	c.ActiveTexture(gl.GL_TEXTURE0)
	r.tex = texture.New(c,
		texture.Filter(minFilter, texture.Nearest),
		texture.Wrap(texture.Repeat, texture.Repeat),
		texture.InternalFormat(format),
		texture.FlipY(true))

	r.program.Use(c)
	c.Uniform1i(r.program.UniformLocation(c, uniformTexture), 0)

	c.Disable(gl.GL_DEPTH_TEST)
	c.Enable(gl.GL_BLEND)
	c.BlendFuncSeparate(gl.GL_SRC_ALPHA, gl.GL_ONE_MINUS_SRC_ALPHA, gl.GL_ONE, gl.GL_ONE_MINUS_SRC_ALPHA)
	return nil
}

func (r *Renderer) newBuffer(target uint32, data []byte) uint32 {
	b := r.c.GenBuffer()
	r.c.BindBuffer(target, b)
	r.c.BufferData(target, data, gl.GL_STATIC_DRAW)
	return b
}

// bindAttribs sets up the vertex attributes and the element buffer. With a
// vertex array object, this is recorded once in the VAO.
//
func (r *Renderer) bindAttribs() {
	c := r.c
	c.BindBuffer(gl.GL_ARRAY_BUFFER, r.vertices)
	c.EnableVertexAttribArray(r.aPos)
	c.VertexAttribPointer(r.aPos, 3, gl.GL_FLOAT, false, 0, 0)
	c.BindBuffer(gl.GL_ARRAY_BUFFER, r.texCoords)
	c.EnableVertexAttribArray(r.aTexCoord)
	c.VertexAttribPointer(r.aTexCoord, 2, gl.GL_FLOAT, false, 0, 0)
	c.BindBuffer(gl.GL_ELEMENT_ARRAY_BUFFER, r.indices)
}

// Draw renders one frame showing img. img is uploaded as a whole into the
// renderer's texture, replacing the previous frame's content.
//
// Draw does not swap buffers nor schedule the next frame, see Animate and
// the loop package.
//
func (r *Renderer) Draw(img image.Image) {
	c := r.c
	r.program.Use(c)
	if r.vao != 0 {
		c.(gl.VertexArrayContext).BindVertexArray(r.vao)
	} else {
		r.bindAttribs()
	}
	c.ActiveTexture(gl.GL_TEXTURE0)
	r.tex.Bind()

	c.ClearColor(1, 1, 1, 1)
	c.Clear(gl.GL_COLOR_BUFFER_BIT | gl.GL_DEPTH_BUFFER_BIT)
	r.tex.Upload(img)
	c.DrawElements(gl.GL_TRIANGLES, int32(len(quadIndices)), gl.GL_UNSIGNED_SHORT, 0)
}

// Snapshot reads back the current frame buffer content. The returned image
// has the frame buffer's size and row 0 is the top of the surface.
//
func (r *Renderer) Snapshot() *image.RGBA {
	w, h := r.fbSize.X, r.fbSize.Y
	pix := make([]byte, 4*w*h)
	r.c.ReadPixels(0, 0, int32(w), int32(h), pix)
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		copy(img.Pix[y*img.Stride:(y+1)*img.Stride], pix[(h-1-y)*4*w:(h-y)*4*w])
	}
	return img
}

// Config returns the renderer's configuration.
//
func (r *Renderer) Config() Config {
	return r.cfg
}

// Size returns the size of the rendering surface, as requested from New.
//
func (r *Renderer) Size() image.Point {
	return image.Pt(r.width, r.height)
}

// FrameBufferSize returns the size in pixels of the viewport.
//
func (r *Renderer) FrameBufferSize() image.Point {
	return r.fbSize
}

// Texture returns the texture images are uploaded to.
//
func (r *Renderer) Texture() *texture.Texture {
	return r.tex
}

// Delete releases all OpenGL objects owned by the renderer. The renderer
// must not be used afterwards.
//
func (r *Renderer) Delete() {
	c := r.c
	if r.tex != nil {
		r.tex.Delete()
		r.tex = nil
	}
	for _, b := range []*uint32{&r.vertices, &r.texCoords, &r.indices} {
		if *b != 0 {
			c.DeleteBuffer(*b)
			*b = 0
		}
	}
	if r.vao != 0 {
		c.(gl.VertexArrayContext).DeleteVertexArray(r.vao)
		r.vao = 0
	}
	if r.program != 0 {
		r.program.Delete(c)
		r.program = 0
	}
}
