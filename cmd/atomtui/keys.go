package main

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	ZoomIn  key.Binding
	ZoomOut key.Binding
	Up      key.Binding
	Down    key.Binding
	Left    key.Binding
	Right   key.Binding
	Next    key.Binding
	Reset   key.Binding
	Remove  key.Binding
	Help    key.Binding
	Quit    key.Binding
}

// rotateStep is the drag distance, in pixels, of one arrow key press.
const rotateStep = 10

var keys = keyMap{
	ZoomIn:  key.NewBinding(key.WithKeys("+", "="), key.WithHelp("+", "zoom in")),
	ZoomOut: key.NewBinding(key.WithKeys("-", "_"), key.WithHelp("-", "zoom out")),
	Up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "tilt up")),
	Down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "tilt down")),
	Left:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "turn left")),
	Right:   key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "turn right")),
	Next:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next view")),
	Reset:   key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
	Remove:  key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "remove")),
	Help:    key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
	Quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.ZoomIn, k.ZoomOut, k.Next, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.ZoomIn, k.ZoomOut, k.Reset},
		{k.Next, k.Remove, k.Help, k.Quit},
	}
}
