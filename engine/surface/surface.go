// Package surface is a minimal retained document of pixel surfaces. Hosts
// feed it pointer and wheel input; surfaces hand it to their listeners.
//
// A Surface has two sizes. The backing size is the resolution of its RGBA
// buffer. The client size is how large it is displayed. Renderers bring the
// backing size in line with the client size before drawing.
package surface

import (
	"image"

	"github.com/hubastard/atomview/engine/core"
)

// ListenerID identifies a registered listener for removal.
type ListenerID uint64

// Listener receives events dispatched to a surface.
type Listener func(ev core.Event)

type listener struct {
	id      ListenerID
	typ     core.EventType
	fn      Listener
	removed bool
}

// Surface is a drawable rectangle owned by a Document.
type Surface struct {
	owner  *Document
	parent *Document

	img *image.RGBA
	gen uint64

	x, y   int
	cw, ch int

	listeners []*listener
	nextID    ListenerID
}

// Size returns the backing buffer size in pixels.
func (s *Surface) Size() (w, h int) { return s.img.Rect.Dx(), s.img.Rect.Dy() }

// SetSize replaces the backing buffer with a cleared one of w×h pixels,
// even when the size does not change.
func (s *Surface) SetSize(w, h int) {
	s.img = image.NewRGBA(image.Rect(0, 0, max(w, 0), max(h, 0)))
	s.gen++
}

// Image returns the backing buffer. It is replaced by SetSize.
func (s *Surface) Image() *image.RGBA { return s.img }

// Generation counts backing buffer replacements. Presenters use it to know
// when to upload again.
func (s *Surface) Generation() uint64 { return s.gen }

// ClientSize returns the displayed size.
func (s *Surface) ClientSize() (w, h int) { return s.cw, s.ch }

// SetClientSize changes the displayed size and dispatches EventResize if it
// differs from the current one.
func (s *Surface) SetClientSize(w, h int) {
	w, h = max(w, 0), max(h, 0)
	if w == s.cw && h == s.ch {
		return
	}
	s.cw, s.ch = w, h
	s.Dispatch(core.EventResize{W: w, H: h})
}

// Position returns the top-left corner in document coordinates.
func (s *Surface) Position() (x, y int) { return s.x, s.y }

func (s *Surface) SetPosition(x, y int) { s.x, s.y = x, y }

// Bounds is the displayed rectangle in document coordinates.
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(s.x, s.y, s.x+s.cw, s.y+s.ch)
}

// Parent returns the document the surface is attached to, or nil.
func (s *Surface) Parent() *Document { return s.parent }

// AddEventListener registers fn for events of type typ.
func (s *Surface) AddEventListener(typ core.EventType, fn Listener) ListenerID {
	s.nextID++
	s.listeners = append(s.listeners, &listener{id: s.nextID, typ: typ, fn: fn})
	return s.nextID
}

// RemoveEventListener unregisters a listener. A listener removed while an
// event is being dispatched is not called for the rest of that dispatch.
func (s *Surface) RemoveEventListener(id ListenerID) {
	for i, l := range s.listeners {
		if l.id == id {
			l.removed = true
			s.listeners = append(s.listeners[:i:i], s.listeners[i+1:]...)
			return
		}
	}
}

// ListenerCount reports how many listeners are registered.
func (s *Surface) ListenerCount() int { return len(s.listeners) }

// Dispatch calls every listener registered for ev's type in registration
// order.
func (s *Surface) Dispatch(ev core.Event) {
	typ := ev.Type()
	snapshot := append([]*listener(nil), s.listeners...)
	for _, l := range snapshot {
		if l.typ == typ && !l.removed {
			l.fn(ev)
		}
	}
}

// SetPointerCapture routes every later event of pointer id to s until it is
// released.
func (s *Surface) SetPointerCapture(id int) {
	if s.owner != nil {
		s.owner.capture[id] = s
	}
}

// ReleasePointerCapture ends a capture held by s. Captures held by other
// surfaces are left alone.
func (s *Surface) ReleasePointerCapture(id int) {
	if s.owner != nil && s.owner.capture[id] == s {
		delete(s.owner.capture, id)
	}
}

// HasPointerCapture reports whether s holds the capture of pointer id.
func (s *Surface) HasPointerCapture(id int) bool {
	return s.owner != nil && s.owner.capture[id] == s
}
