// Command texquad displays an image on a repeated, textured full-window quad.
//
// Usage:
//
//	texquad [flags] image
//
// The image is looked up in the assets directory, then in the current
// directory. PNG, JPEG, GIF (animated), BMP and WebP images are supported.
//
package main

import (
	"context"
	"flag"
	"image"
	"image/png"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/db47h/ofs"
	"github.com/db47h/texquad"
	"github.com/db47h/texquad/app"
	"github.com/db47h/texquad/assets"
	"github.com/db47h/texquad/debug"
	"github.com/db47h/texquad/loop"
	"github.com/pkg/errors"
)

func main() {
	log.SetFlags(0)
	log.SetPrefix("texquad: ")
	if err := run(); err != nil {
		if err != errReported {
			log.Print(err)
		}
		os.Exit(1)
	}
}

// errReported is returned by run for errors already logged.
var errReported = errors.New("error already reported")

func run() error {
	var (
		cfg      = defaultConfig()
		cfgFile  string
		snapshot string
		frames   int
	)
	flag.StringVar(&cfgFile, "config", "", "YAML configuration `file`")
	flag.StringVar(&cfg.API, "api", cfg.API, "OpenGL API version: v1 (OpenGL 2.1) or v2 (OpenGL 3.3 core)")
	flag.Var(float32Value{&cfg.Repeat}, "repeat", "texture repeat factor")
	flag.StringVar(&cfg.ColorSpace, "colorspace", cfg.ColorSpace, "image color space: linear or srgb")
	flag.BoolVar(&cfg.Mipmaps, "mipmaps", cfg.Mipmaps, "generate mipmaps")
	flag.IntVar(&cfg.Width, "width", cfg.Width, "window width")
	flag.IntVar(&cfg.Height, "height", cfg.Height, "window height")
	flag.IntVar(&cfg.FPS, "fps", cfg.FPS, "maximum frame rate, 0 for the display refresh rate")
	flag.StringVar(&cfg.Assets, "assets", cfg.Assets, "assets `directory`")
	flag.IntVar(&frames, "frames", 0, "quit after `n` frames, 0 to run until the window is closed")
	flag.StringVar(&snapshot, "snapshot", "", "save the last frame as PNG to `file`")
	flag.Parse()
	if cfgFile != "" {
		f, err := os.Open(cfgFile)
		if err != nil {
			return err
		}
		err = cfg.load(f)
		f.Close()
		if err != nil {
			return errors.Wrap(err, cfgFile)
		}
		// command line flags take precedence over the file.
		flag.Parse()
	}
	if flag.NArg() != 1 {
		flag.Usage()
		return errors.New("missing image name")
	}
	opts, err := cfg.options()
	if err != nil {
		return err
	}

	var ovl ofs.Overlay
	if err := ovl.Add(false, cfg.Assets, "."); err != nil {
		return err
	}
	// decode the image while the window and renderer are set up.
	mgr := assets.NewManager(&ovl, "", 1)
	defer mgr.Close()
	mgr.Preload(flag.Arg(0))

	if err := app.Init(); err != nil {
		return err
	}
	defer app.Terminate()
	win := app.NewWindow(app.Title("texquad - "+flag.Arg(0)), app.Size(cfg.Width, cfg.Height))
	defer win.Destroy()

	r, err := texquad.New(win, cfg.Width, cfg.Height, opts...)
	if err != nil {
		return errReported
	}
	defer r.Delete()
	log.Print(win.DriverVersion())

	src, err := mgr.Source(flag.Arg(0))
	if err != nil {
		return err
	}

	if snapshot != "" && frames == 0 {
		frames = 1
	}
	var (
		l   loop.Simple
		lim = &limiter{EventProcessor: win, r: r, max: frames, snapshot: snapshot != ""}
		a   = texquad.Animate(r, src, lim)
	)
	a.Timer = new(debug.Timer)
	if cfg.FPS > 0 {
		l.MinFrameTime(time.Second / time.Duration(cfg.FPS))
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	if err := l.Run(ctx, a); err != nil && err != context.Canceled {
		return err
	}
	log.Printf("%d frames, %.1f fps", l.Frames(), a.Timer.AveragePerSecond())

	if lim.snap != nil {
		return writePNG(snapshot, lim.snap)
	}
	return nil
}

func writePNG(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err = png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
