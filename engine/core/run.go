package core

import (
	"runtime"
	"time"
)

// Run wires the platform window + device and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newDevice func(Window, Config) (Device, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	dev, err := newDevice(win, cfg)
	if err != nil {
		return err
	}
	defer dev.Shutdown()

	w, h := win.FramebufferSize()
	dev.Resize(w, h)

	eng := &Engine{Window: win, Device: dev, Input: NewInput(), start: time.Now()}
	win.SetEventCallback(func(ev Event) {
		eng.Input.Handle(ev)
		if r, ok := ev.(EventResize); ok {
			if r.W < 1 || r.H < 1 {
				return
			}
			dev.Resize(r.W, r.H)
		}
		if eng.Layers.Dispatch(eng, ev) {
			return
		}
		app.OnEvent(eng, ev)
	})

	app.OnStart(eng)
	info := dev.Info()
	Logger().Info("engine started", "gl", info.Version, "renderer", info.Renderer, "layers", eng.Layers.Len())

	// Fixed-timestep (60 Hz) with interpolation
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		clear   = cfg.ClearColor
		maxStep = 10 // prevent spiral of death
	)

	for !win.ShouldClose() {
		now := time.Now()
		accum += now.Sub(prev)
		prev = now

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		alpha := float64(accum) / float64(tick)

		dev.Clear(clear[0], clear[1], clear[2], clear[3])
		app.OnRender(eng, alpha)
		eng.Layers.ForEach(func(l Layer) { l.OnRender(eng, alpha) })

		win.SwapBuffers()
	}

	for eng.Layers.Len() > 0 {
		eng.Layers.Pop(eng)
	}
	app.OnShutdown(eng)
	Logger().Info("engine exit", "uptime", eng.Uptime())
	return nil
}
