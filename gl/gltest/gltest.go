// Package gltest provides a software gl.Context for tests.
//
// The fake keeps track of every object and state change so that tests can
// query them, and rasterizes indexed triangle draws into an in-memory RGBA
// frame buffer. Rasterization understands the vertex layout and fragment
// uniforms used by texquad: the 3-component vertex attribute holds positions
// in normalized device coordinates, the 2-component one holds texture
// coordinates. Textures are sampled from level 0 with nearest filtering. When
// the fragment shader calls encodeSRGB, fragment colors are sRGB encoded.
//
package gltest

import (
	"encoding/binary"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/db47h/texquad/gl"
)

// EncodeFunc is the name of the GLSL function that sRGB encodes fragment
// colors.
//
const EncodeFunc = "encodeSRGB"

// Texture is the state of a texture object.
//
type Texture struct {
	Width, Height  int
	InternalFormat int32
	Pix            []byte // level 0, bottom row first
	Params         map[uint32]int32
	Uploads        int // number of TexImage2D calls
	Mipmaps        int // number of GenerateMipmap calls
}

type shader struct {
	typ      uint32
	src      string
	compiled bool
	log      string
}

type program struct {
	shaders  []uint32
	linked   bool
	log      string
	attribs  map[string]int32
	uniforms map[string]int32
	values   map[int32]int32
	encode   bool
}

type attribPointer struct {
	enabled bool
	buffer  uint32
	size    int32
	stride  int32
	offset  int
}

// Context is a fake gl.VertexArrayContext. The zero value is not usable, use
// New.
//
type Context struct {
	// FailCompile maps shader types to the compiler log returned when
	// compiling a shader of that type. Shaders of types not in the map
	// compile successfully.
	FailCompile map[uint32]string
	// FailLink, if not empty, makes every link fail with that log.
	FailLink string
	// Version is returned by GetString(GL_VERSION).
	Version string

	names     uint32
	allocated int

	shaders      map[uint32]*shader
	programs     map[uint32]*program
	buffers      map[uint32][]byte
	textures     map[uint32]*Texture
	vertexArrays map[uint32]bool

	arrayBuffer   uint32
	elementBuffer map[uint32]uint32 // per vertex array
	vertexArray   uint32
	attribs       map[uint32]attribPointer
	activeUnit    uint32
	units         map[uint32]uint32
	program       uint32

	caps       map[uint32]bool
	blend      [4]uint32
	clearColor [4]float32
	viewport   [4]int32
	unpack     int32
	fb         []byte

	// Draws and Clears count DrawElements and Clear calls.
	Draws  int
	Clears int
}

var _ gl.VertexArrayContext = (*Context)(nil)

// New returns a new fake context.
//
func New() *Context {
	return &Context{
		Version:       "3.3 gltest",
		shaders:       make(map[uint32]*shader),
		programs:      make(map[uint32]*program),
		buffers:       make(map[uint32][]byte),
		textures:      make(map[uint32]*Texture),
		vertexArrays:  make(map[uint32]bool),
		elementBuffer: make(map[uint32]uint32),
		attribs:       make(map[uint32]attribPointer),
		units:         make(map[uint32]uint32),
		caps:          map[uint32]bool{gl.GL_DEPTH_TEST: false, gl.GL_BLEND: false},
		blend:         [4]uint32{gl.GL_ONE, gl.GL_ZERO, gl.GL_ONE, gl.GL_ZERO},
		unpack:        4,
	}
}

func (c *Context) gen() uint32 {
	c.names++
	c.allocated++
	return c.names
}

// Allocated returns the number of objects created so far.
//
func (c *Context) Allocated() int { return c.allocated }

// Live returns the number of objects created and not yet deleted.
//
func (c *Context) Live() int {
	return len(c.shaders) + len(c.programs) + len(c.buffers) + len(c.textures) + len(c.vertexArrays)
}

// Buffer returns the contents of the named buffer object.
//
func (c *Context) Buffer(name uint32) []byte { return c.buffers[name] }

// Float32s returns the contents of the named buffer object as float32 values.
//
func (c *Context) Float32s(name uint32) []float32 {
	b := c.buffers[name]
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.NativeEndian.Uint32(b[i*4:]))
	}
	return v
}

// Uint16s returns the contents of the named buffer object as uint16 values.
//
func (c *Context) Uint16s(name uint32) []uint16 {
	b := c.buffers[name]
	v := make([]uint16, len(b)/2)
	for i := range v {
		v[i] = binary.NativeEndian.Uint16(b[i*2:])
	}
	return v
}

// Texture returns the state of the named texture, or nil if no such texture
// exists.
//
func (c *Context) Texture(name uint32) *Texture { return c.textures[name] }

// Enabled reports whether the given capability is enabled.
//
func (c *Context) Enabled(cap uint32) bool { return c.caps[cap] }

// BlendFunc returns the blend factors set by BlendFuncSeparate.
//
func (c *Context) BlendFunc() (srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	return c.blend[0], c.blend[1], c.blend[2], c.blend[3]
}

// ViewportRect returns the current viewport.
//
func (c *Context) ViewportRect() [4]int32 { return c.viewport }

// CurrentProgram returns the program in use.
//
func (c *Context) CurrentProgram() uint32 { return c.program }

// Encodes reports whether the given program sRGB encodes fragment colors.
//
func (c *Context) Encodes(prog uint32) bool {
	p := c.programs[prog]
	return p != nil && p.linked && p.encode
}

// Uniform returns the value of the named uniform of the given program and
// whether it is an active uniform.
//
func (c *Context) Uniform(prog uint32, name string) (int32, bool) {
	p := c.programs[prog]
	if p == nil {
		return 0, false
	}
	loc, ok := p.uniforms[name]
	if !ok {
		return 0, false
	}
	return p.values[loc], true
}

func (c *Context) GetString(name uint32) string {
	switch name {
	case gl.GL_VERSION:
		return c.Version
	case gl.GL_VENDOR:
		return "gltest"
	case gl.GL_RENDERER:
		return "software"
	}
	return ""
}

func (c *Context) Viewport(x, y, width, height int32) {
	c.viewport = [4]int32{x, y, width, height}
	c.fb = make([]byte, 4*int(x+width)*int(y+height))
}

func (c *Context) Enable(cap uint32)  { c.caps[cap] = true }
func (c *Context) Disable(cap uint32) { c.caps[cap] = false }

func (c *Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	c.blend = [4]uint32{srcRGB, dstRGB, srcAlpha, dstAlpha}
}

func (c *Context) ClearColor(r, g, b, a float32) { c.clearColor = [4]float32{r, g, b, a} }

func (c *Context) Clear(mask uint32) {
	c.Clears++
	if mask&gl.GL_COLOR_BUFFER_BIT == 0 {
		return
	}
	var px [4]byte
	for i, v := range c.clearColor {
		px[i] = quantize(float64(v))
	}
	for i := 0; i < len(c.fb); i += 4 {
		copy(c.fb[i:], px[:])
	}
}

func (c *Context) CreateShader(typ uint32) uint32 {
	s := c.gen()
	c.shaders[s] = &shader{typ: typ}
	return s
}

func (c *Context) ShaderSource(s uint32, src string) {
	if sh := c.shaders[s]; sh != nil {
		sh.src = src
	}
}

func (c *Context) CompileShader(s uint32) {
	sh := c.shaders[s]
	if sh == nil {
		return
	}
	if log, ok := c.FailCompile[sh.typ]; ok {
		sh.compiled, sh.log = false, log
		return
	}
	sh.compiled, sh.log = true, ""
}

func (c *Context) GetShaderi(s uint32, pname uint32) int32 {
	sh := c.shaders[s]
	if sh == nil || pname != gl.GL_COMPILE_STATUS || !sh.compiled {
		return gl.GL_FALSE
	}
	return gl.GL_TRUE
}

func (c *Context) GetShaderInfoLog(s uint32) string {
	if sh := c.shaders[s]; sh != nil {
		return sh.log
	}
	return ""
}

func (c *Context) DeleteShader(s uint32) { delete(c.shaders, s) }

func (c *Context) CreateProgram() uint32 {
	p := c.gen()
	c.programs[p] = &program{}
	return p
}

func (c *Context) AttachShader(prog, s uint32) {
	if p := c.programs[prog]; p != nil {
		p.shaders = append(p.shaders, s)
	}
}

var (
	reAttrib  = regexp.MustCompile(`(?m)^\s*(?:attribute|in)\s+\w+\s+(\w+)\s*;`)
	reUniform = regexp.MustCompile(`(?m)^\s*uniform\s+\w+\s+(\w+)\s*;`)
)

func (c *Context) LinkProgram(prog uint32) {
	p := c.programs[prog]
	if p == nil {
		return
	}
	p.linked, p.log, p.encode = false, "", false
	if c.FailLink != "" {
		p.log = c.FailLink
		return
	}
	p.attribs = make(map[string]int32)
	p.uniforms = make(map[string]int32)
	p.values = make(map[int32]int32)
	for _, s := range p.shaders {
		sh := c.shaders[s]
		if sh == nil || !sh.compiled {
			p.log = fmt.Sprintf("shader %d not compiled", s)
			return
		}
		if sh.typ == gl.GL_VERTEX_SHADER {
			for _, m := range reAttrib.FindAllStringSubmatch(sh.src, -1) {
				p.attribs[m[1]] = int32(len(p.attribs))
			}
		} else if strings.Contains(sh.src, EncodeFunc+"(") {
			p.encode = true
		}
		for _, m := range reUniform.FindAllStringSubmatch(sh.src, -1) {
			if _, ok := p.uniforms[m[1]]; !ok {
				p.uniforms[m[1]] = int32(len(p.uniforms))
			}
		}
	}
	p.linked = true
}

func (c *Context) GetProgrami(prog uint32, pname uint32) int32 {
	p := c.programs[prog]
	if p == nil || pname != gl.GL_LINK_STATUS || !p.linked {
		return gl.GL_FALSE
	}
	return gl.GL_TRUE
}

func (c *Context) GetProgramInfoLog(prog uint32) string {
	if p := c.programs[prog]; p != nil {
		return p.log
	}
	return ""
}

func (c *Context) DeleteProgram(prog uint32) { delete(c.programs, prog) }
func (c *Context) UseProgram(prog uint32)    { c.program = prog }

func (c *Context) GetAttribLocation(prog uint32, name string) int32 {
	if p := c.programs[prog]; p != nil && p.linked {
		if loc, ok := p.attribs[name]; ok {
			return loc
		}
	}
	return -1
}

func (c *Context) GetUniformLocation(prog uint32, name string) int32 {
	if p := c.programs[prog]; p != nil && p.linked {
		if loc, ok := p.uniforms[name]; ok {
			return loc
		}
	}
	return -1
}

func (c *Context) Uniform1i(location int32, v int32) {
	if p := c.programs[c.program]; p != nil && p.linked && location >= 0 {
		p.values[location] = v
	}
}

func (c *Context) GenBuffer() uint32 {
	b := c.gen()
	c.buffers[b] = nil
	return b
}

func (c *Context) BindBuffer(target, buffer uint32) {
	switch target {
	case gl.GL_ARRAY_BUFFER:
		c.arrayBuffer = buffer
	case gl.GL_ELEMENT_ARRAY_BUFFER:
		c.elementBuffer[c.vertexArray] = buffer
	}
}

func (c *Context) BufferData(target uint32, data []byte, usage uint32) {
	var b uint32
	switch target {
	case gl.GL_ARRAY_BUFFER:
		b = c.arrayBuffer
	case gl.GL_ELEMENT_ARRAY_BUFFER:
		b = c.elementBuffer[c.vertexArray]
	}
	if _, ok := c.buffers[b]; ok && b != 0 {
		c.buffers[b] = append([]byte(nil), data...)
	}
}

func (c *Context) DeleteBuffer(buffer uint32) { delete(c.buffers, buffer) }

func (c *Context) EnableVertexAttribArray(index uint32) {
	a := c.attribs[index]
	a.enabled = true
	c.attribs[index] = a
}

func (c *Context) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int) {
	a := c.attribs[index]
	a.buffer, a.size, a.stride, a.offset = c.arrayBuffer, size, stride, offset
	c.attribs[index] = a
}

func (c *Context) GenTexture() uint32 {
	t := c.gen()
	c.textures[t] = &Texture{Params: map[uint32]int32{
		gl.GL_TEXTURE_MIN_FILTER: gl.GL_NEAREST_MIPMAP_LINEAR,
		gl.GL_TEXTURE_MAG_FILTER: gl.GL_LINEAR,
		gl.GL_TEXTURE_WRAP_S:     gl.GL_REPEAT,
		gl.GL_TEXTURE_WRAP_T:     gl.GL_REPEAT,
	}}
	return t
}

func (c *Context) ActiveTexture(unit uint32)         { c.activeUnit = unit - gl.GL_TEXTURE0 }
func (c *Context) BindTexture(target, texture uint32) { c.units[c.activeUnit] = texture }

func (c *Context) bound() *Texture { return c.textures[c.units[c.activeUnit]] }

func (c *Context) TexParameteri(target, pname uint32, param int32) {
	if t := c.bound(); t != nil {
		t.Params[pname] = param
	}
}

func (c *Context) GetTexParameteri(target, pname uint32) int32 {
	if t := c.bound(); t != nil {
		return t.Params[pname]
	}
	return 0
}

func (c *Context) PixelStorei(pname uint32, param int32) {
	if pname == gl.GL_UNPACK_ALIGNMENT {
		c.unpack = param
	}
}

func (c *Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pix []byte) {
	t := c.bound()
	if t == nil || level != 0 {
		return
	}
	if format != gl.GL_RGBA || typ != gl.GL_UNSIGNED_BYTE {
		panic(fmt.Sprintf("gltest: unsupported pixel format %#x/%#x", format, typ))
	}
	n := 4 * int(width) * int(height)
	if pix != nil && len(pix) < n {
		panic(fmt.Sprintf("gltest: pixel buffer too small: %d < %d", len(pix), n))
	}
	t.Width, t.Height, t.InternalFormat = int(width), int(height), internalFormat
	t.Pix = make([]byte, n)
	if pix != nil {
		copy(t.Pix, pix)
	}
	t.Uploads++
}

func (c *Context) GenerateMipmap(target uint32) {
	if t := c.bound(); t != nil {
		t.Mipmaps++
	}
}

func (c *Context) DeleteTexture(texture uint32) { delete(c.textures, texture) }

func (c *Context) GenVertexArray() uint32 {
	a := c.gen()
	c.vertexArrays[a] = true
	return a
}

func (c *Context) BindVertexArray(array uint32) { c.vertexArray = array }

func (c *Context) DeleteVertexArray(array uint32) { delete(c.vertexArrays, array) }

func (c *Context) ReadPixels(x, y, width, height int32, pix []byte) {
	vw := int(c.viewport[0] + c.viewport[2])
	i := 0
	for py := int(y); py < int(y+height); py++ {
		for px := int(x); px < int(x+width); px++ {
			copy(pix[i:i+4], c.fb[(py*vw+px)*4:])
			i += 4
		}
	}
}

func quantize(v float64) byte {
	switch {
	case v <= 0:
		return 0
	case v >= 1:
		return 255
	}
	return byte(math.Round(v * 255))
}
