package main

import (
	"fmt"
	"slices"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/surface"
	"github.com/hubastard/atomview/engine/views"
)

const (
	// mouse is the pointer id of the terminal mouse.
	mouse = 1
	// gap separates thumbnails, in pixels. Even, so rows stay aligned to
	// half-block cells.
	gap          = 2
	headerHeight = 1
)

type model struct {
	width  int
	height int

	size int // thumbnail edge in pixels (= cells wide)
	cols int

	doc   *surface.Document
	views *views.Manager
	focus *surface.Surface

	help   help.Model
	status string
}

func newModel(doc *surface.Document, mgr *views.Manager, size, cols int) model {
	m := model{
		size:   size,
		cols:   cols,
		doc:    doc,
		views:  mgr,
		help:   help.New(),
		status: fmt.Sprintf("%d views", mgr.Len()),
	}
	if c := doc.Children(); len(c) > 0 {
		m.focus = c[0]
	}
	return m
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.layout()
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.help.ShowAll = !m.help.ShowAll
		case key.Matches(msg, keys.Next):
			m.focusNext()
		case key.Matches(msg, keys.ZoomIn):
			m.onFocused("zoom", func(s *surface.Surface) error { return m.views.Zoom(s, -1) })
		case key.Matches(msg, keys.ZoomOut):
			m.onFocused("zoom", func(s *surface.Surface) error { return m.views.Zoom(s, 1) })
		case key.Matches(msg, keys.Up):
			m.onFocused("rotate", func(s *surface.Surface) error { return m.views.Rotate(s, 0, -rotateStep) })
		case key.Matches(msg, keys.Down):
			m.onFocused("rotate", func(s *surface.Surface) error { return m.views.Rotate(s, 0, rotateStep) })
		case key.Matches(msg, keys.Left):
			m.onFocused("rotate", func(s *surface.Surface) error { return m.views.Rotate(s, -rotateStep, 0) })
		case key.Matches(msg, keys.Right):
			m.onFocused("rotate", func(s *surface.Surface) error { return m.views.Rotate(s, rotateStep, 0) })
		case key.Matches(msg, keys.Reset):
			m.onFocused("reset", m.views.Reset)
		case key.Matches(msg, keys.Remove):
			m.remove()
		}
	case tea.MouseMsg:
		m.mouse(msg)
	}
	return m, nil
}

// pixel maps a terminal cell to document pixels. Each cell holds two
// pixels stacked vertically.
func pixel(x, y int) (float64, float64) {
	return float64(x), float64((y - headerHeight) * 2)
}

func (m *model) mouse(msg tea.MouseMsg) {
	x, y := pixel(msg.X, msg.Y)
	switch {
	case msg.Button == tea.MouseButtonWheelUp:
		m.doc.Wheel(x, y, 0, -1)
	case msg.Button == tea.MouseButtonWheelDown:
		m.doc.Wheel(x, y, 0, 1)
	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		if s := m.doc.SurfaceAt(x, y); s != nil {
			m.focus = s
		}
		m.doc.PointerDown(mouse, x, y)
	case msg.Action == tea.MouseActionMotion:
		m.doc.PointerMove(mouse, x, y)
	case msg.Action == tea.MouseActionRelease:
		m.doc.PointerUp(mouse, x, y)
	}
}

func (m *model) onFocused(what string, fn func(*surface.Surface) error) {
	if m.focus == nil {
		return
	}
	if err := fn(m.focus); err != nil {
		core.Logger().Error("atomtui: "+what, "err", err)
		m.status = what + ": " + err.Error()
	}
}

func (m *model) focusNext() {
	children := m.doc.Children()
	if len(children) == 0 {
		return
	}
	i := slices.Index(children, m.focus)
	m.focus = children[(i+1)%len(children)]
}

func (m *model) remove() {
	if m.focus == nil {
		return
	}
	children := m.doc.Children()
	i := slices.Index(children, m.focus)
	m.views.RemoveView(m.focus, true)
	m.focus = nil
	if children = m.doc.Children(); len(children) > 0 {
		m.focus = children[min(max(i, 0), len(children)-1)]
	}
	m.status = fmt.Sprintf("%d views", m.views.Len())
	m.layout()
}

// layout fits as many columns as the terminal allows, up to -cols.
func (m *model) layout() {
	if m.width == 0 {
		return
	}
	fit := max(1, (m.width-gap)/(m.size+gap))
	m.doc.Grid(m.size, m.size, min(m.cols, fit), gap)
}
