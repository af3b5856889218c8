package app

import (
	"fmt"

	"github.com/db47h/texquad"
	"github.com/db47h/texquad/gl"
	"github.com/db47h/texquad/gl/gl21"
	"github.com/db47h/texquad/gl/gl33"
	"github.com/go-gl/glfw/v3.2/glfw"
	"github.com/pkg/errors"
)

// Init initializes glfw. It must be called from the main goroutine before
// creating any window.
//
func Init() error {
	return glfw.Init()
}

// Terminate destroys all remaining windows and releases glfw resources.
//
func Terminate() {
	glfw.Terminate()
}

// A Window is a glfw window. The native window and its OpenGL context are
// created on the first call to Context.
//
type Window struct {
	cfg  winCfg
	glfw *glfw.Window
	ctx  gl.Context
	ver  texquad.APIVersion
}

var (
	_ texquad.Surface          = (*Window)(nil)
	_ texquad.FrameBufferSizer = (*Window)(nil)
)

// NewWindow returns a new window with the given options.
//
func NewWindow(opts ...WindowOption) *Window {
	return &Window{cfg: newWinCfg(opts...)}
}

// Context implements texquad.Surface. V1 requests an OpenGL 2.1 context, V2 an
// OpenGL 3.3 forward compatible core profile context.
//
func (w *Window) Context(v texquad.APIVersion) (gl.Context, error) {
	if w.glfw != nil {
		if v != w.ver {
			return nil, errors.Errorf("window already has a %v context", w.ver)
		}
		return w.ctx, nil
	}

	glfw.DefaultWindowHints()
	glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
	switch v {
	case texquad.V1:
		glfw.WindowHint(glfw.ContextVersionMajor, 2)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
	case texquad.V2:
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	default:
		return nil, errors.Errorf("unsupported API version %v", v)
	}
	if err := w.createWindow(); err != nil {
		return nil, err
	}

	var (
		ctx gl.Context
		err error
	)
	if v == texquad.V1 {
		ctx, err = gl21.New(glfw.GetProcAddress)
	} else {
		ctx, err = gl33.New(glfw.GetProcAddress)
	}
	if err != nil {
		w.Destroy()
		return nil, err
	}
	w.ctx, w.ver = ctx, v
	return ctx, nil
}

func (w *Window) createWindow() error {
	cfg := w.cfg
	var (
		monitor *glfw.Monitor
		width   = cfg.w
		height  = cfg.h
	)
	if cfg.fullScreen {
		monitor = glfw.GetPrimaryMonitor()
		mode := monitor.GetVideoMode()
		glfw.WindowHint(glfw.RedBits, mode.RedBits)
		glfw.WindowHint(glfw.GreenBits, mode.GreenBits)
		glfw.WindowHint(glfw.BlueBits, mode.BlueBits)
		glfw.WindowHint(glfw.RefreshRate, mode.RefreshRate)
		width = mode.Width
		height = mode.Height
	}
	if cfg.hidden || (!cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0) {
		glfw.WindowHint(glfw.Visible, glfw.False)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.True)
	}
	win, err := glfw.CreateWindow(width, height, cfg.title, monitor, nil)
	if err != nil {
		return errors.Wrap(err, "create window")
	}
	if !cfg.fullScreen && cfg.x >= 0 && cfg.y >= 0 {
		win.SetPos(cfg.x, cfg.y)
		if !cfg.hidden {
			win.Show()
		}
	}

	win.MakeContextCurrent()
	if cfg.vsync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}
	w.glfw = win
	return nil
}

// SetSize implements texquad.Surface. Before the native window is created,
// it only changes the initial size.
//
func (w *Window) SetSize(width, height int) {
	w.cfg.w, w.cfg.h = width, height
	if w.glfw != nil && !w.cfg.fullScreen {
		w.glfw.SetSize(width, height)
	}
}

// FrameBufferSize implements texquad.FrameBufferSizer. It returns the size of
// the window's frame buffer in pixels, which is larger than the window size on
// high density displays.
//
func (w *Window) FrameBufferSize() (width, height int) {
	if w.glfw == nil {
		return w.cfg.w, w.cfg.h
	}
	return w.glfw.GetFramebufferSize()
}

// ProcessEvents implements loop.EventProcessor. It swaps buffers, then polls
// events and reports whether the window should close.
//
func (w *Window) ProcessEvents() (quit bool) {
	if w.glfw == nil {
		return true
	}
	w.glfw.SwapBuffers()
	glfw.PollEvents()
	return w.glfw.ShouldClose()
}

// Close requests the window to close. ProcessEvents returns true afterwards.
//
func (w *Window) Close() {
	if w.glfw != nil {
		w.glfw.SetShouldClose(true)
	}
}

// NativeHandle returns the underlying *glfw.Window, or nil.
//
func (w *Window) NativeHandle() interface{} {
	return w.glfw
}

// Destroy destroys the native window and its OpenGL context.
//
func (w *Window) Destroy() {
	if w.glfw != nil {
		w.glfw.Destroy()
		w.glfw = nil
		w.ctx = nil
	}
}

// DriverVersion returns a description of the glfw and OpenGL versions in use.
//
func (w *Window) DriverVersion() string {
	s := "GLFW " + glfw.GetVersionString()
	if w.ctx != nil {
		s += fmt.Sprintf(" - %s %s (%s)", w.ctx.GetString(gl.GL_VENDOR), w.ctx.GetString(gl.GL_VERSION), w.ctx.GetString(gl.GL_RENDERER))
	}
	return s
}
