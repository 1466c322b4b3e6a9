package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/atomview/engine/assets"
	"github.com/hubastard/atomview/engine/colors"
	"github.com/hubastard/atomview/engine/core"
	glbackend "github.com/hubastard/atomview/engine/gfx/gl"
	"github.com/hubastard/atomview/engine/gfx/renderer2d"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/platform"
	"github.com/hubastard/atomview/engine/text"
	"golang.org/x/image/font/gofont/goregular"
)

const (
	// gap is the spacing between thumbnails in window pixels; captions sit
	// in it.
	gap         = 24
	captionSize = 14
)

type source struct {
	name string
	text string
}

type App struct {
	sources []source
	size    int
	cols    int

	r2d    *renderer2d.Renderer2D
	sphere *glbackend.SphereBackend
	layer  *ViewsLayer
}

func (a *App) OnStart(e *core.Engine) {
	vs, fs, err := assets.LoadProgram("quad")
	if err != nil {
		fatal(err)
	}
	a.r2d, err = renderer2d.New(e.Device, vs, fs, 1024)
	if err != nil {
		fatal(err)
	}
	a.sphere, err = glbackend.NewSphereBackend()
	if err != nil {
		fatal(err)
	}
	font, err := text.NewAtlas(e.Device, goregular.TTF, captionSize)
	if err != nil {
		fatal(err)
	}

	a.layer = &ViewsLayer{
		sources:   a.sources,
		size:      a.size,
		cols:      a.cols,
		renderer:  spheres.New(a.sphere, nil),
		presenter: renderer2d.NewPresenter(e.Device, a.r2d),
		r2d:       a.r2d,
		font:      font,
	}
	e.Layers.Push(e, a.layer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64)    {}
func (a *App) OnRender(e *core.Engine, alpha float64) {}

func (a *App) OnEvent(e *core.Engine, ev core.Event) {
	if _, ok := ev.(core.EventCloseRequested); ok {
		e.Window.RequestClose()
	}
}

// OnShutdown has nothing to release: the layer closes the sphere backend
// and the device owns everything else.
func (a *App) OnShutdown(e *core.Engine) {}

func main() {
	size := flag.Int("size", 256, "thumbnail size in pixels")
	cols := flag.Int("cols", 4, "thumbnails per row")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.xyz...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	core.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}
	var sources []source
	for _, path := range flag.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			fatal(err)
		}
		sources = append(sources, source{name: filepath.Base(path), text: string(b)})
	}

	n := len(sources)
	c := max(1, min(*cols, n))
	rows := (n + c - 1) / c
	cfg := core.Config{
		Title:      "atomview",
		Width:      gap + c*(*size+gap),
		Height:     gap + rows*(*size+gap),
		VSync:      true,
		ClearColor: colors.DarkGray,
	}
	app := &App{sources: sources, size: *size, cols: *cols}

	newWindow := func(cfg core.Config) (core.Window, error) {
		return platform.NewGLFWWindow(cfg, nil)
	}
	newDevice := func(win core.Window, cfg core.Config) (core.Device, error) {
		return glbackend.NewDeviceGL(win, cfg)
	}

	if err := core.Run(app, cfg, newWindow, newDevice); err != nil {
		fatal(err)
	}
}

func fatal(err error) {
	core.Logger().Error("atomview: fatal", "err", err)
	os.Exit(1)
}
