package main

import (
	"io"

	"github.com/db47h/texquad"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// config is the demo configuration, read from a YAML file and overridden by
// command line flags.
type config struct {
	API        string  `yaml:"api"`
	Repeat     float32 `yaml:"repeat"`
	ColorSpace string  `yaml:"colorspace"`
	Mipmaps    bool    `yaml:"mipmaps"`
	Width      int     `yaml:"width"`
	Height     int     `yaml:"height"`
	FPS        int     `yaml:"fps"`
	Assets     string  `yaml:"assets"`
}

// defaultConfig returns the demo defaults. Unlike the library, the demo
// prefers OpenGL 3.3 with sRGB textures.
func defaultConfig() config {
	cfg := texquad.DefaultConfig()
	return config{
		API:        texquad.V2.String(),
		Repeat:     cfg.Repeat,
		ColorSpace: texquad.SRGB.String(),
		Mipmaps:    cfg.Mipmaps,
		Width:      512,
		Height:     512,
		Assets:     ".",
	}
}

// load reads YAML from r on top of the current values.
func (c *config) load(r io.Reader) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && err != io.EOF {
		return errors.Wrap(err, "decode config")
	}
	return nil
}

// options converts the configuration into renderer options.
func (c *config) options() ([]texquad.Option, error) {
	v, err := texquad.ParseAPIVersion(c.API)
	if err != nil {
		return nil, err
	}
	cs, err := texquad.ParseColorSpace(c.ColorSpace)
	if err != nil {
		return nil, err
	}
	return []texquad.Option{
		texquad.Version(v),
		texquad.Repeat(c.Repeat),
		texquad.Space(cs),
		texquad.Mipmaps(c.Mipmaps),
	}, nil
}
