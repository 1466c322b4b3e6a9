// Package views keeps one shared sphere renderer drawing many independent
// molecule thumbnails. Each view owns a surface, a framing of its structure
// and an orbit driven by pointer input on that surface.
package views

import (
	"errors"
	"fmt"
	"slices"

	"github.com/hubastard/atomview/engine/chem/xyz"
	"github.com/hubastard/atomview/engine/core"
	"github.com/hubastard/atomview/engine/gfx/spheres"
	"github.com/hubastard/atomview/engine/scene"
	"github.com/hubastard/atomview/engine/surface"
)

var (
	// ErrNoStructure is returned when the input holds no structure.
	ErrNoStructure = errors.New("views: no structure in input")
	// ErrEmptyStructure is returned for a structure without atoms.
	ErrEmptyStructure = errors.New("views: structure has no atoms")
	// ErrMismatch is returned when positions and element numbers disagree.
	ErrMismatch = errors.New("views: positions and numbers differ in length")
)

// DefaultSize is the backing and displayed size of new surfaces.
const DefaultSize = 128

// Parser turns XYZ text into structures.
type Parser func(text string) ([]xyz.Structure, error)

type config struct {
	parse Parser
	w, h  int
}

// Option configures a Manager.
type Option func(*config)

// WithParser replaces xyz.Parse.
func WithParser(p Parser) Option { return func(c *config) { c.parse = p } }

// WithSurfaceSize sets the initial size of new surfaces.
func WithSurfaceSize(w, h int) Option {
	return func(c *config) { c.w, c.h = w, h }
}

// Manager owns the views of one document. It is not safe for concurrent
// use; hosts drive it from their event loop.
type Manager struct {
	doc      *surface.Document
	renderer *spheres.Renderer
	cfg      config
	views    []*View
}

func New(doc *surface.Document, r *spheres.Renderer, opts ...Option) *Manager {
	cfg := config{parse: xyz.Parse, w: DefaultSize, h: DefaultSize}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Manager{doc: doc, renderer: r, cfg: cfg}
}

// AddView parses text and shows its first structure on a new detached
// surface. The caller attaches the surface; attaching renders it.
func (m *Manager) AddView(text string) (*surface.Surface, error) {
	structures, err := m.cfg.parse(text)
	if err != nil {
		return nil, fmt.Errorf("views: parse: %w", err)
	}
	if len(structures) == 0 {
		return nil, ErrNoStructure
	}
	return m.AddStructure(structures[0])
}

// AddStructure is AddView for an already parsed structure.
func (m *Manager) AddStructure(st xyz.Structure) (*surface.Surface, error) {
	if len(st.Numbers) == 0 {
		return nil, ErrEmptyStructure
	}
	if len(st.Positions) != 3*len(st.Numbers) {
		return nil, fmt.Errorf("%w: %d coordinates for %d atoms",
			ErrMismatch, len(st.Positions), len(st.Numbers))
	}

	s := m.doc.CreateSurface(m.cfg.w, m.cfg.h)
	v := newView(s, st)
	v.Framing.AtomRadius = m.renderer.MaxDrawnRadius(st.Numbers)
	m.bind(v)
	m.views = append(m.views, v)

	core.Logger().Info("views: added",
		"atoms", st.Len(), "diagonal", v.Framing.Diagonal, "views", len(m.views))
	return s, nil
}

func (m *Manager) bind(v *View) {
	s := v.Surface
	on := func(typ core.EventType, fn surface.Listener) {
		id := s.AddEventListener(typ, fn)
		v.unbind = append(v.unbind, func() { s.RemoveEventListener(id) })
	}

	on(core.TypePointerDown, func(ev core.Event) {
		p := ev.(core.EventPointerDown)
		s.SetPointerCapture(p.PointerID)
		m.doc.SetCursor(surface.CursorNone)
		v.dragging = true
		v.lastX, v.lastY = p.X, p.Y
	})
	on(core.TypePointerUp, func(ev core.Event) {
		p := ev.(core.EventPointerUp)
		s.ReleasePointerCapture(p.PointerID)
		m.doc.SetCursor(surface.CursorDefault)
		v.dragging = false
	})
	on(core.TypePointerMove, func(ev core.Event) {
		if !v.dragging {
			return
		}
		p := ev.(core.EventPointerMove)
		dx, dy := p.X-v.lastX, p.Y-v.lastY
		v.lastX, v.lastY = p.X, p.Y
		v.Orbit.Drag(dx, dy)
		m.renderLogged(v)
	})
	on(core.TypeWheel, func(ev core.Event) {
		w := ev.(*core.EventWheel)
		w.PreventDefault()
		v.Orbit.Wheel(w.DeltaY)
		m.renderLogged(v)
	})
	on(core.TypeResize, func(core.Event) { m.renderLogged(v) })
	on(core.TypeAttached, func(core.Event) { m.renderLogged(v) })
}

// RemoveView unregisters the view shown on s and, if detach is set,
// removes s from its document. The cursor is restored even when s is not a
// view of m.
func (m *Manager) RemoveView(s *surface.Surface, detach bool) {
	m.doc.SetCursor(surface.CursorDefault)
	i := m.index(s)
	if i < 0 {
		return
	}
	v := m.views[i]
	for _, fn := range v.unbind {
		fn()
	}
	v.unbind = nil
	v.dragging = false
	m.views = slices.Delete(m.views, i, i+1)
	if detach && s.Parent() != nil {
		s.Parent().RemoveChild(s)
	}
	core.Logger().Info("views: removed", "views", len(m.views))
}

// Close removes and detaches every view.
func (m *Manager) Close() {
	for len(m.views) > 0 {
		m.RemoveView(m.views[len(m.views)-1].Surface, true)
	}
}

// Lookup returns the view shown on s.
func (m *Manager) Lookup(s *surface.Surface) (*View, bool) {
	if i := m.index(s); i >= 0 {
		return m.views[i], true
	}
	return nil, false
}

// Views returns the views in insertion order.
func (m *Manager) Views() []*View { return slices.Clone(m.views) }

func (m *Manager) Len() int { return len(m.views) }

// Rotate applies a drag of dx, dy pixels to the view on s and renders it.
func (m *Manager) Rotate(s *surface.Surface, dx, dy float64) error {
	return m.apply(s, func(v *View) { v.Orbit.Drag(dx, dy) })
}

// Zoom applies one wheel step in the direction of deltaY and renders.
func (m *Manager) Zoom(s *surface.Surface, deltaY float64) error {
	return m.apply(s, func(v *View) { v.Orbit.Wheel(deltaY) })
}

// SetZoom sets the zoom of the view on s, clamped like wheel zoom, and
// renders.
func (m *Manager) SetZoom(s *surface.Surface, zoom float64) error {
	return m.apply(s, func(v *View) { v.Orbit.SetZoom(zoom) })
}

// Reset restores zoom 1 and no rotation, then renders.
func (m *Manager) Reset(s *surface.Surface) error {
	return m.apply(s, func(v *View) { v.Orbit.Reset() })
}

// Refresh renders the view on s without changing it.
func (m *Manager) Refresh(s *surface.Surface) error {
	return m.apply(s, func(*View) {})
}

func (m *Manager) apply(s *surface.Surface, fn func(*View)) error {
	v, ok := m.Lookup(s)
	if !ok {
		return nil
	}
	fn(v)
	return m.render(v)
}

func (m *Manager) index(s *surface.Surface) int {
	return slices.IndexFunc(m.views, func(v *View) bool { return v.Surface == s })
}

// renderLogged is render for event handlers, which have nowhere to return
// an error to.
func (m *Manager) renderLogged(v *View) {
	if err := m.render(v); err != nil {
		core.Logger().Error("views: render failed", "err", err)
	}
}

// render frames the view for its displayed size and draws it into its
// surface through the shared renderer.
func (m *Manager) render(v *View) error {
	s := v.Surface
	cw, ch := s.ClientSize()
	if bw, bh := s.Size(); bw != cw || bh != ch {
		s.SetSize(cw, ch)
	}
	if cw == 0 || ch == 0 {
		core.Logger().Warn("views: skipped render of zero-area surface")
		return nil
	}

	hw, hh := v.HalfExtents()
	m.renderer.SetOrthoProjection(
		spheres.Bounds(float32(-hw), float32(hw), float32(-hh), float32(hh)),
		spheres.Depth(scene.Near, scene.Far),
	)
	m.renderer.SetModelMatrix(v.Orbit.Model(v.Framing.Centroid))
	m.renderer.SetAtomPositions(v.positions)
	m.renderer.SetAtomLabels(v.Structure.Numbers)
	return m.renderer.RenderInto(s)
}
