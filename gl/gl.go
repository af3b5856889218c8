// Package gl defines the subset of OpenGL used by texquad as an interface, so
// that the renderer can run on top of different binding versions (see the gl21
// and gl33 sub-packages) or on a software fake in tests (see gltest).
//
package gl

// OpenGL enum values. Only the ones used by texquad are defined.
//
const (
	GL_FALSE = 0
	GL_TRUE  = 1

	GL_ZERO                = 0
	GL_ONE                 = 1
	GL_SRC_ALPHA           = 0x0302
	GL_ONE_MINUS_SRC_ALPHA = 0x0303

	GL_TRIANGLES = 0x0004

	GL_DEPTH_BUFFER_BIT = 0x00000100
	GL_COLOR_BUFFER_BIT = 0x00004000

	GL_DEPTH_TEST = 0x0B71
	GL_BLEND      = 0x0BE2

	GL_UNPACK_ALIGNMENT = 0x0CF5
	GL_PACK_ALIGNMENT   = 0x0D05

	GL_TEXTURE_2D = 0x0DE1
	GL_TEXTURE0   = 0x84C0

	GL_UNSIGNED_BYTE  = 0x1401
	GL_UNSIGNED_SHORT = 0x1403
	GL_FLOAT          = 0x1406

	GL_RGBA         = 0x1908
	GL_RGBA8        = 0x8058
	GL_SRGB8_ALPHA8 = 0x8C43

	GL_VENDOR   = 0x1F00
	GL_RENDERER = 0x1F01
	GL_VERSION  = 0x1F02

	GL_NEAREST                = 0x2600
	GL_LINEAR                 = 0x2601
	GL_NEAREST_MIPMAP_NEAREST = 0x2700
	GL_LINEAR_MIPMAP_NEAREST  = 0x2701
	GL_NEAREST_MIPMAP_LINEAR  = 0x2702
	GL_LINEAR_MIPMAP_LINEAR   = 0x2703
	GL_TEXTURE_MAG_FILTER     = 0x2800
	GL_TEXTURE_MIN_FILTER     = 0x2801
	GL_TEXTURE_WRAP_S         = 0x2802
	GL_TEXTURE_WRAP_T         = 0x2803
	GL_REPEAT                 = 0x2901
	GL_CLAMP_TO_EDGE          = 0x812F
	GL_MIRRORED_REPEAT        = 0x8370

	GL_ARRAY_BUFFER         = 0x8892
	GL_ELEMENT_ARRAY_BUFFER = 0x8893
	GL_STATIC_DRAW          = 0x88E4

	GL_FRAGMENT_SHADER = 0x8B30
	GL_VERTEX_SHADER   = 0x8B31
	GL_COMPILE_STATUS  = 0x8B81
	GL_LINK_STATUS     = 0x8B82
)

// Context is an OpenGL context made current on the calling thread.
//
// Method names follow their OpenGL counterparts. Object creation functions
// return a single name instead of filling a slice, and data is passed as byte
// slices rather than raw pointers.
//
type Context interface {
	GetString(name uint32) string

	Viewport(x, y, width, height int32)
	Enable(cap uint32)
	Disable(cap uint32)
	BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32)
	ClearColor(r, g, b, a float32)
	Clear(mask uint32)

	CreateShader(typ uint32) uint32
	ShaderSource(shader uint32, src string)
	CompileShader(shader uint32)
	GetShaderi(shader uint32, pname uint32) int32
	GetShaderInfoLog(shader uint32) string
	DeleteShader(shader uint32)

	CreateProgram() uint32
	AttachShader(program, shader uint32)
	LinkProgram(program uint32)
	GetProgrami(program uint32, pname uint32) int32
	GetProgramInfoLog(program uint32) string
	DeleteProgram(program uint32)
	UseProgram(program uint32)
	GetAttribLocation(program uint32, name string) int32
	GetUniformLocation(program uint32, name string) int32
	Uniform1i(location int32, v int32)

	GenBuffer() uint32
	BindBuffer(target, buffer uint32)
	BufferData(target uint32, data []byte, usage uint32)
	DeleteBuffer(buffer uint32)
	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int)

	GenTexture() uint32
	ActiveTexture(unit uint32)
	BindTexture(target, texture uint32)
	TexParameteri(target, pname uint32, param int32)
	GetTexParameteri(target, pname uint32) int32
	PixelStorei(pname uint32, param int32)
	TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pix []byte)
	GenerateMipmap(target uint32)
	DeleteTexture(texture uint32)

	DrawElements(mode uint32, count int32, typ uint32, offset int)

	// ReadPixels reads a block of RGBA, unsigned byte pixels from the frame
	// buffer into pix. len(pix) must be at least 4*width*height.
	ReadPixels(x, y, width, height int32, pix []byte)
}

// VertexArrayContext is implemented by contexts that require a vertex array
// object to be bound before drawing, like OpenGL 3.x core profiles.
//
type VertexArrayContext interface {
	Context
	GenVertexArray() uint32
	BindVertexArray(array uint32)
	DeleteVertexArray(array uint32)
}
