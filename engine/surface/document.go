package surface

import (
	"image"
	"slices"

	"github.com/hubastard/atomview/engine/core"
)

// Cursor is the pointer appearance requested by the document.
type Cursor int

const (
	CursorDefault Cursor = iota
	CursorNone
)

func (c Cursor) String() string {
	if c == CursorNone {
		return "none"
	}
	return "default"
}

// Document owns surfaces and routes host input to them.
type Document struct {
	children []*Surface
	capture  map[int]*Surface
	cursor   Cursor

	// OnCursorChange is called when SetCursor changes the cursor.
	OnCursorChange func(Cursor)
}

func NewDocument() *Document {
	return &Document{capture: make(map[int]*Surface)}
}

// CreateSurface returns a detached surface whose backing and client size
// are both w×h.
func (d *Document) CreateSurface(w, h int) *Surface {
	w, h = max(w, 0), max(h, 0)
	return &Surface{
		owner: d,
		img:   image.NewRGBA(image.Rect(0, 0, w, h)),
		cw:    w,
		ch:    h,
	}
}

// Append attaches s as the last child and dispatches EventAttached to it.
// A surface attached elsewhere is moved.
func (d *Document) Append(s *Surface) {
	if s.parent != nil {
		s.parent.RemoveChild(s)
	}
	s.parent = d
	d.children = append(d.children, s)
	s.Dispatch(core.EventAttached{})
}

// RemoveChild detaches s. It reports false if s is not a child of d.
func (d *Document) RemoveChild(s *Surface) bool {
	i := slices.Index(d.children, s)
	if i < 0 {
		return false
	}
	d.children = slices.Delete(d.children, i, i+1)
	s.parent = nil
	for id, c := range d.capture {
		if c == s {
			delete(d.capture, id)
		}
	}
	return true
}

// Children returns the attached surfaces in document order.
func (d *Document) Children() []*Surface { return slices.Clone(d.children) }

func (d *Document) Len() int { return len(d.children) }

func (d *Document) Cursor() Cursor { return d.cursor }

func (d *Document) SetCursor(c Cursor) {
	if c == d.cursor {
		return
	}
	d.cursor = c
	if d.OnCursorChange != nil {
		d.OnCursorChange(c)
	}
}

// SurfaceAt returns the topmost attached surface containing the point.
func (d *Document) SurfaceAt(x, y float64) *Surface {
	p := image.Pt(int(x), int(y))
	if x < 0 {
		p.X = -1
	}
	if y < 0 {
		p.Y = -1
	}
	for i := len(d.children) - 1; i >= 0; i-- {
		if p.In(d.children[i].Bounds()) {
			return d.children[i]
		}
	}
	return nil
}

// target resolves the receiver of a pointer event: the capturing surface,
// else the surface under the pointer.
func (d *Document) target(id int, x, y float64) *Surface {
	if s, ok := d.capture[id]; ok {
		return s
	}
	return d.SurfaceAt(x, y)
}

// PointerDown dispatches to the surface under the pointer and reports
// whether one received it.
func (d *Document) PointerDown(id int, x, y float64) bool {
	s := d.target(id, x, y)
	if s == nil {
		return false
	}
	s.Dispatch(core.EventPointerDown{PointerEvent: core.PointerEvent{PointerID: id, X: x, Y: y}})
	return true
}

func (d *Document) PointerMove(id int, x, y float64) bool {
	s := d.target(id, x, y)
	if s == nil {
		return false
	}
	s.Dispatch(core.EventPointerMove{PointerEvent: core.PointerEvent{PointerID: id, X: x, Y: y}})
	return true
}

// PointerUp dispatches and then drops any capture of the pointer.
func (d *Document) PointerUp(id int, x, y float64) bool {
	s := d.target(id, x, y)
	defer delete(d.capture, id)
	if s == nil {
		return false
	}
	s.Dispatch(core.EventPointerUp{PointerEvent: core.PointerEvent{PointerID: id, X: x, Y: y}})
	return true
}

// Wheel dispatches to the surface under the pointer and reports whether a
// listener prevented the default action.
func (d *Document) Wheel(x, y, dx, dy float64) bool {
	s := d.SurfaceAt(x, y)
	if s == nil {
		return false
	}
	ev := &core.EventWheel{X: x, Y: y, DeltaX: dx, DeltaY: dy}
	s.Dispatch(ev)
	return ev.DefaultPrevented()
}

// Grid lays the attached surfaces out in rows of columns cells of
// width×height, separated by gap. Surfaces whose client size changes get
// EventResize.
func (d *Document) Grid(width, height, columns, gap int) {
	columns = max(columns, 1)
	for i, s := range d.Children() {
		col, row := i%columns, i/columns
		s.SetPosition(gap+col*(width+gap), gap+row*(height+gap))
		s.SetClientSize(width, height)
	}
}

// Extent is the size needed to show every attached surface.
func (d *Document) Extent() (w, h int) {
	var r image.Rectangle
	for _, s := range d.children {
		r = r.Union(s.Bounds())
	}
	return r.Max.X, r.Max.Y
}
