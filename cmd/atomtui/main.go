// Command atomtui shows molecule thumbnails in the terminal. Spheres are
// drawn by the software rasterizer and printed as half-block cells.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/soft"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/views"
)

func main() {
	size := flag.Int("size", 24, "thumbnail width in cells")
	cols := flag.Int("cols", 4, "thumbnails per row")
	logPath := flag.String("log", "", "write logs to this file")
	verbose := flag.Bool("v", false, "debug logging (needs -log)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] file.xyz...\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()
	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	// The terminal belongs to the program, so logs go to a file or nowhere.
	if *logPath != "" {
		f, err := os.OpenFile(*logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		level := slog.LevelInfo
		if *verbose {
			level = slog.LevelDebug
		}
		core.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: level})))
	}

	// Keep the width even so a thumbnail is a whole number of cells tall.
	edge := max(2, *size&^1)
	doc := surface.NewDocument()
	renderer := spheres.New(soft.New(), nil)
	defer renderer.Close()
	mgr := views.New(doc, renderer, views.WithSurfaceSize(edge, edge))

	for _, path := range flag.Args() {
		b, err := os.ReadFile(path)
		if err != nil {
			log.Fatal(err)
		}
		s, err := mgr.AddView(string(b))
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			continue
		}
		doc.Append(s)
	}
	if mgr.Len() == 0 {
		log.Fatal("no structures to show")
	}

	m := newModel(doc, mgr, edge, max(1, *cols))
	if _, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion()).Run(); err != nil {
		log.Fatal(err)
	}
}
