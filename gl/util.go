package gl

import (
	"strings"
	"unsafe"

	"github.com/pkg/errors"
)

// Bytes returns a byte view of the contents of v, which must be a slice of
// fixed size numeric values. The returned slice shares memory with v and uses
// the machine's native byte order, as expected by OpenGL.
//
func Bytes(v interface{}) []byte {
	n := Sizeof(v)
	if n == 0 {
		return nil
	}
	var p unsafe.Pointer
	switch v := v.(type) {
	case []int8:
		p = unsafe.Pointer(&v[0])
	case []uint8:
		return v
	case []int16:
		p = unsafe.Pointer(&v[0])
	case []uint16:
		p = unsafe.Pointer(&v[0])
	case []int32:
		p = unsafe.Pointer(&v[0])
	case []uint32:
		p = unsafe.Pointer(&v[0])
	case []float32:
		p = unsafe.Pointer(&v[0])
	case []float64:
		p = unsafe.Pointer(&v[0])
	default:
		panic(errors.Errorf("bytes: invalid type %T", v))
	}
	return unsafe.Slice((*byte)(p), n)
}

// Sizeof returns the size in bytes of v. v must be a fixed size numeric value
// or a slice of such values.
//
func Sizeof(v interface{}) int {
	switch v := v.(type) {
	case []int8:
		return len(v)
	case []uint8:
		return len(v)
	case []int16:
		return len(v) * 2
	case []uint16:
		return len(v) * 2
	case []int32:
		return len(v) * 4
	case []uint32:
		return len(v) * 4
	case []float32:
		return len(v) * 4
	case []float64:
		return len(v) * 8
	case int8, uint8:
		return 1
	case int16, uint16:
		return 2
	case int32, uint32, float32:
		return 4
	case int64, uint64, float64:
		return 8
	default:
		panic(errors.Errorf("sizeof: invalid type %T", v))
	}
}

// Shader is a compiled shader object.
//
type Shader uint32

// NewShader compiles source into a new shader of the given type. On failure,
// the shader object is deleted and the returned error carries the compiler
// log.
//
func NewShader(c Context, typ uint32, source string) (Shader, error) {
	s := c.CreateShader(typ)
	c.ShaderSource(s, source)
	c.CompileShader(s)
	if c.GetShaderi(s, GL_COMPILE_STATUS) == GL_FALSE {
		log := strings.TrimRight(c.GetShaderInfoLog(s), "\x00\n")
		c.DeleteShader(s)
		return 0, errors.New(log)
	}
	return Shader(s), nil
}

// Delete deletes the shader.
//
func (s Shader) Delete(c Context) {
	c.DeleteShader(uint32(s))
}

// Program is a linked shader program.
//
type Program uint32

// NewProgram links the given shaders into a new program. On failure, the
// program object is deleted and the returned error carries the linker log.
//
func NewProgram(c Context, shaders ...Shader) (Program, error) {
	p := c.CreateProgram()
	for _, s := range shaders {
		c.AttachShader(p, uint32(s))
	}
	c.LinkProgram(p)
	if c.GetProgrami(p, GL_LINK_STATUS) == GL_FALSE {
		log := strings.TrimRight(c.GetProgramInfoLog(p), "\x00\n")
		c.DeleteProgram(p)
		return 0, errors.New(log)
	}
	return Program(p), nil
}

// Delete deletes the program.
//
func (p Program) Delete(c Context) {
	c.DeleteProgram(uint32(p))
}

// Use installs the program as part of the current rendering state.
//
func (p Program) Use(c Context) {
	c.UseProgram(uint32(p))
}

// AttribLocation returns the location of the named vertex attribute.
//
func (p Program) AttribLocation(c Context, name string) (uint32, error) {
	r := c.GetAttribLocation(uint32(p), name)
	if r < 0 {
		return ^uint32(0), errors.Errorf("unknown attribute %s", name)
	}
	return uint32(r), nil
}

// UniformLocation returns the location of the named uniform, or -1 if the
// program has no active uniform with that name.
//
func (p Program) UniformLocation(c Context, name string) int32 {
	return c.GetUniformLocation(uint32(p), name)
}
