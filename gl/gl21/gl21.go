// Package gl21 implements gl.Context on top of the OpenGL 2.1 bindings from
// github.com/go-gl/gl. OpenGL 2.1 has no core GenerateMipmap, the
// EXT_framebuffer_object entry point is used instead.
//
package gl21

import (
	"strings"
	"unsafe"

	"github.com/db47h/texquad/gl"
	gogl "github.com/go-gl/gl/v2.1/gl"
	"github.com/pkg/errors"
)

// Context is a gl.Context for an OpenGL 2.1 context.
//
type Context struct{}

var _ gl.Context = (*Context)(nil)

// New loads the OpenGL 2.1 function pointers with getProcAddr and returns a
// new Context. The OpenGL context must be current on the calling thread.
//
func New(getProcAddr func(name string) unsafe.Pointer) (*Context, error) {
	if err := gogl.InitWithProcAddrFunc(getProcAddr); err != nil {
		return nil, errors.Wrap(err, "OpenGL 2.1 init")
	}
	return &Context{}, nil
}

func ptr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gogl.Ptr(data)
}

func cstr(s string) *uint8 {
	return gogl.Str(s + "\x00")
}

func (*Context) GetString(name uint32) string {
	p := gogl.GetString(name)
	if p == nil {
		return ""
	}
	return gogl.GoStr(p)
}

func (*Context) Viewport(x, y, width, height int32) { gogl.Viewport(x, y, width, height) }
func (*Context) Enable(cap uint32)                  { gogl.Enable(cap) }
func (*Context) Disable(cap uint32)                 { gogl.Disable(cap) }
func (*Context) ClearColor(r, g, b, a float32)      { gogl.ClearColor(r, g, b, a) }
func (*Context) Clear(mask uint32)                  { gogl.Clear(mask) }

func (*Context) BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha uint32) {
	gogl.BlendFuncSeparate(srcRGB, dstRGB, srcAlpha, dstAlpha)
}

func (*Context) CreateShader(typ uint32) uint32 { return gogl.CreateShader(typ) }

func (*Context) ShaderSource(shader uint32, src string) {
	csrc, free := gogl.Strs(src + "\x00")
	gogl.ShaderSource(shader, 1, csrc, nil)
	free()
}

func (*Context) CompileShader(shader uint32) { gogl.CompileShader(shader) }

func (*Context) GetShaderi(shader uint32, pname uint32) int32 {
	var v int32
	gogl.GetShaderiv(shader, pname, &v)
	return v
}

func (*Context) GetShaderInfoLog(shader uint32) string {
	var n int32
	gogl.GetShaderiv(shader, gogl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gogl.GetShaderInfoLog(shader, n, nil, gogl.Str(log))
	return log
}

func (*Context) DeleteShader(shader uint32)          { gogl.DeleteShader(shader) }
func (*Context) CreateProgram() uint32               { return gogl.CreateProgram() }
func (*Context) AttachShader(program, shader uint32) { gogl.AttachShader(program, shader) }
func (*Context) LinkProgram(program uint32)          { gogl.LinkProgram(program) }

func (*Context) GetProgrami(program uint32, pname uint32) int32 {
	var v int32
	gogl.GetProgramiv(program, pname, &v)
	return v
}

func (*Context) GetProgramInfoLog(program uint32) string {
	var n int32
	gogl.GetProgramiv(program, gogl.INFO_LOG_LENGTH, &n)
	if n <= 0 {
		return ""
	}
	log := strings.Repeat("\x00", int(n+1))
	gogl.GetProgramInfoLog(program, n, nil, gogl.Str(log))
	return log
}

func (*Context) DeleteProgram(program uint32) { gogl.DeleteProgram(program) }
func (*Context) UseProgram(program uint32)    { gogl.UseProgram(program) }

func (*Context) GetAttribLocation(program uint32, name string) int32 {
	return gogl.GetAttribLocation(program, cstr(name))
}

func (*Context) GetUniformLocation(program uint32, name string) int32 {
	return gogl.GetUniformLocation(program, cstr(name))
}

func (*Context) Uniform1i(location int32, v int32) { gogl.Uniform1i(location, v) }

func (*Context) GenBuffer() uint32 {
	var b uint32
	gogl.GenBuffers(1, &b)
	return b
}

func (*Context) BindBuffer(target, buffer uint32) { gogl.BindBuffer(target, buffer) }

func (*Context) BufferData(target uint32, data []byte, usage uint32) {
	gogl.BufferData(target, len(data), ptr(data), usage)
}

func (*Context) DeleteBuffer(buffer uint32)           { gogl.DeleteBuffers(1, &buffer) }
func (*Context) EnableVertexAttribArray(index uint32) { gogl.EnableVertexAttribArray(index) }

func (*Context) VertexAttribPointer(index uint32, size int32, typ uint32, normalized bool, stride int32, offset int) {
	gogl.VertexAttribPointer(index, size, typ, normalized, stride, gogl.PtrOffset(offset))
}

func (*Context) GenTexture() uint32 {
	var t uint32
	gogl.GenTextures(1, &t)
	return t
}

func (*Context) ActiveTexture(unit uint32)                       { gogl.ActiveTexture(unit) }
func (*Context) BindTexture(target, texture uint32)              { gogl.BindTexture(target, texture) }
func (*Context) TexParameteri(target, pname uint32, param int32) { gogl.TexParameteri(target, pname, param) }

func (*Context) GetTexParameteri(target, pname uint32) int32 {
	var v int32
	gogl.GetTexParameteriv(target, pname, &v)
	return v
}

func (*Context) PixelStorei(pname uint32, param int32) { gogl.PixelStorei(pname, param) }

func (*Context) TexImage2D(target uint32, level, internalFormat, width, height int32, format, typ uint32, pix []byte) {
	gogl.TexImage2D(target, level, internalFormat, width, height, 0, format, typ, ptr(pix))
}

func (*Context) GenerateMipmap(target uint32) { gogl.GenerateMipmapEXT(target) }
func (*Context) DeleteTexture(texture uint32) { gogl.DeleteTextures(1, &texture) }

func (*Context) DrawElements(mode uint32, count int32, typ uint32, offset int) {
	gogl.DrawElements(mode, count, typ, gogl.PtrOffset(offset))
}

func (*Context) ReadPixels(x, y, width, height int32, pix []byte) {
	gogl.PixelStorei(gogl.PACK_ALIGNMENT, 1)
	gogl.ReadPixels(x, y, width, height, gogl.RGBA, gogl.UNSIGNED_BYTE, ptr(pix))
}

