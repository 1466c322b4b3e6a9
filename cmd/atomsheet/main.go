// Command atomsheet renders every frame of one or more XYZ files into a
// captioned contact sheet, without a window or GPU.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/soft"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/views"
)

func main() {
	out := flag.String("o", "sheet.png", "output PNG")
	var opts options
	flag.IntVar(&opts.size, "size", 192, "thumbnail size in pixels")
	flag.IntVar(&opts.cols, "cols", 6, "thumbnails per row")
	flag.Float64Var(&opts.rx, "rx", 0, "rotation about the screen X axis, degrees")
	flag.Float64Var(&opts.ry, "ry", 0, "rotation about the screen Y axis, degrees")
	flag.Float64Var(&opts.zoom, "zoom", 1, "zoom factor (>1 shows more space around the molecule)")
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
	if err := run(*out, flag.Args(), opts); err != nil {
		core.Logger().Error("atomsheet: failed", "err", err)
		os.Exit(1)
	}
}

func run(out string, paths []string, opts options) error {
	doc := surface.NewDocument()
	renderer := spheres.New(soft.New(), nil)
	defer renderer.Close()
	mgr := views.New(doc, renderer, views.WithSurfaceSize(opts.size, opts.size))

	sh := newSheet(mgr, doc, opts)
	for _, path := range paths {
		b, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		frames, err := xyz.Parse(string(b))
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
		if err := sh.add(filepath.Base(path), frames); err != nil {
			return err
		}
	}
	if len(sh.entries) == 0 {
		return views.ErrNoStructure
	}

	dc, err := sh.compose()
	if err != nil {
		return err
	}
	defer dc.Close()
	if err := dc.SavePNG(out); err != nil {
		return fmt.Errorf("save %s: %w", out, err)
	}
	core.Logger().Info("atomsheet: wrote", "path", out)
	return nil
}
