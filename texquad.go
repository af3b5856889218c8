// Package texquad renders a full-viewport textured quad with OpenGL and
// re-renders an image source on every frame.
//
// A Renderer is created once for a Surface with New, then Draw is called for
// each frame, usually from a loop.Simple driven by Animate:
//
//	r, err := texquad.New(win, 512, 512, texquad.Repeat(3), texquad.Mipmaps(true))
//	if err != nil {
//		return err
//	}
//	defer r.Delete()
//	var l loop.Simple
//	return l.Run(ctx, texquad.Animate(r, texquad.Static{Image: img}, win))
//
package texquad

import (
	"log"
	"math"
	"strconv"
	"strings"

	"github.com/db47h/texquad/gl"
	"github.com/pkg/errors"
)

// Errors returned by New. The returned errors wrap these values, use
// errors.Cause to test for them.
//
var (
	ErrContextUnavailable = errors.New("graphics context unavailable")
	ErrShaderCompile      = errors.New("shader compilation failed")
	ErrProgramLink        = errors.New("program link failed")
	ErrInvalidSize        = errors.New("invalid size")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// APIVersion selects the OpenGL flavor used for rendering.
//
type APIVersion int

// Supported API versions.
//
const (
	V1 APIVersion = iota + 1 // OpenGL 2.1, GLSL 1.20
	V2                       // OpenGL 3.3 core, GLSL 3.30, sRGB textures
)

func (v APIVersion) String() string {
	switch v {
	case V1:
		return "v1"
	case V2:
		return "v2"
	}
	return "APIVersion(" + strconv.Itoa(int(v)) + ")"
}

// ParseAPIVersion parses "v1" or "v2".
//
func ParseAPIVersion(s string) (APIVersion, error) {
	switch strings.ToLower(s) {
	case "v1", "1":
		return V1, nil
	case "v2", "2":
		return V2, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown API version %q", s)
}

// ColorSpace is the color space of the uploaded images.
//
type ColorSpace int

// Supported color spaces.
//
const (
	Linear ColorSpace = iota
	SRGB
)

func (cs ColorSpace) String() string {
	switch cs {
	case Linear:
		return "linear"
	case SRGB:
		return "srgb"
	}
	return "ColorSpace(" + strconv.Itoa(int(cs)) + ")"
}

// ParseColorSpace parses "linear" or "srgb".
//
func ParseColorSpace(s string) (ColorSpace, error) {
	switch strings.ToLower(s) {
	case "linear":
		return Linear, nil
	case "srgb":
		return SRGB, nil
	}
	return 0, errors.Wrapf(ErrInvalidConfig, "unknown color space %q", s)
}

// Logger is the diagnostic sink. *log.Logger implements it.
//
type Logger interface {
	Printf(format string, v ...interface{})
}

// Config is the configuration of a Renderer.
//
type Config struct {
	APIVersion APIVersion
	Repeat     float32 // texture coordinate multiplier
	ColorSpace ColorSpace
	Mipmaps    bool
	Logger     Logger
}

// Default configuration values.
//
const (
	DefaultAPIVersion = V1
	DefaultRepeat     = 3.0
	DefaultColorSpace = Linear
	DefaultMipmaps    = true
)

// DefaultConfig returns the default configuration.
//
func DefaultConfig() Config {
	return Config{
		APIVersion: DefaultAPIVersion,
		Repeat:     DefaultRepeat,
		ColorSpace: DefaultColorSpace,
		Mipmaps:    DefaultMipmaps,
		Logger:     log.New(log.Writer(), "texquad: ", log.Flags()),
	}
}

// SRGBTexture reports whether textures are stored in sRGB format, which is
// the case for V2 with the SRGB color space only. The sampler then decodes
// texels to linear before the fragment shader encodes them to sRGB.
//
func (c *Config) SRGBTexture() bool {
	return c.APIVersion == V2 && c.ColorSpace == SRGB
}

func (c *Config) validate() error {
	switch c.APIVersion {
	case V1, V2:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown API version %v", c.APIVersion)
	}
	if !(c.Repeat > 0) || math.IsInf(float64(c.Repeat), 0) {
		return errors.Wrapf(ErrInvalidConfig, "repeat must be a positive number, got %v", c.Repeat)
	}
	switch c.ColorSpace {
	case Linear, SRGB:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown color space %v", c.ColorSpace)
	}
	return nil
}

// Option is implemented by functions setting configuration values. See New.
//
type Option interface {
	set(*Config)
}

type optionFunc func(*Config)

func (f optionFunc) set(c *Config) {
	f(c)
}

// Version sets the API version.
//
func Version(v APIVersion) Option {
	return optionFunc(func(c *Config) {
		c.APIVersion = v
	})
}

// Repeat sets the number of times the image is repeated along each axis.
//
func Repeat(r float32) Option {
	return optionFunc(func(c *Config) {
		c.Repeat = r
	})
}

// Space sets the color space of source images.
//
func Space(cs ColorSpace) Option {
	return optionFunc(func(c *Config) {
		c.ColorSpace = cs
	})
}

// Mipmaps enables or disables mipmap generation.
//
func Mipmaps(enable bool) Option {
	return optionFunc(func(c *Config) {
		c.Mipmaps = enable
	})
}

// WithLogger sets the diagnostic sink. A nil logger discards diagnostics.
//
func WithLogger(l Logger) Option {
	return optionFunc(func(c *Config) {
		c.Logger = l
	})
}

// WithConfig replaces the whole configuration. A nil Logger in cfg keeps the
// current one.
//
func WithConfig(cfg Config) Option {
	return optionFunc(func(c *Config) {
		l := c.Logger
		*c = cfg
		if c.Logger == nil {
			c.Logger = l
		}
	})
}

type nopLogger struct{}

func (nopLogger) Printf(string, ...interface{}) {}

// A Surface is a drawable surface able to provide an OpenGL context.
//
type Surface interface {
	// Context returns an OpenGL context of the requested version, current on
	// the calling thread.
	Context(v APIVersion) (gl.Context, error)
	// SetSize resizes the surface.
	SetSize(width, height int)
}

// FrameBufferSizer is implemented by surfaces whose frame buffer size in
// pixels may differ from their size, like windows on high density displays.
//
type FrameBufferSizer interface {
	FrameBufferSize() (width, height int)
}
