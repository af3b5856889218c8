package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindowOptions(t *testing.T) {
	cfg := newWinCfg()
	assert.Equal(t, winCfg{title: "texquad", x: -1, y: -1, w: 800, h: 600, vsync: true}, cfg)

	cfg = newWinCfg(Title("demo"), Pos(10, 20), Size(256, 128), Visible(false), VSync(false), FullScreen())
	assert.Equal(t, winCfg{title: "demo", x: 10, y: 20, w: 256, h: 128, hidden: true, fullScreen: true}, cfg)
}
