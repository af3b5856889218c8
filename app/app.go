// Package app provides a glfw window implementing texquad.Surface and
// loop.EventProcessor.
//
package app

import (
	"runtime"
)

func init() {
	runtime.LockOSThread()
}

type WindowOption interface {
	set(*winCfg)
}

type winCfg struct {
	fullScreen bool
	hidden     bool
	vsync      bool
	x, y, w, h int
	title      string
}

type winOption func(*winCfg)

func (f winOption) set(cfg *winCfg) {
	f(cfg)
}

func Title(title string) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.title = title
	})
}

func Pos(x, y int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.x, cfg.y = x, y
	})
}

func Size(w, h int) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.w, cfg.h = w, h
	})
}

func FullScreen() WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.fullScreen = true
	})
}

func Visible(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.hidden = !b
	})
}

// VSync enables or disables synchronization of buffer swaps with the display
// refresh. It is enabled by default.
//
func VSync(b bool) WindowOption {
	return winOption(func(cfg *winCfg) {
		cfg.vsync = b
	})
}

func newWinCfg(opts ...WindowOption) winCfg {
	cfg := winCfg{title: "texquad", x: -1, y: -1, w: 800, h: 600, vsync: true}
	for _, o := range opts {
		o.set(&cfg)
	}
	return cfg
}
