package core

import "time"

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)                 // called once after window/device init
	OnUpdate(e *Engine, dt float64)    // called at a fixed tick (60Hz by default)
	OnRender(e *Engine, alpha float64) // render with interpolation alpha [0..1]
	OnEvent(e *Engine, ev Event)       // input/window events
	OnShutdown(e *Engine)              // before exit
}

// Engine exposes core services to the App.
type Engine struct {
	Window Window
	Device Device
	Layers LayerStack
	Input  *Input
	start  time.Time
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	RequestClose()
	FramebufferSize() (int, int)
	Size() (int, int)
	SetTitle(title string)
	SetCursorVisible(visible bool)
	SetEventCallback(cb func(Event))
}

// Config for the engine run.
type Config struct {
	Title      string
	Width      int
	Height     int
	VSync      bool
	Hidden     bool       // offscreen context, no visible window
	ClearColor [4]float32 // RGBA
}
