package core

// Event model shared by the platform layer and surfaces.
type Event interface{ Type() EventType }

type EventType int

const (
	TypeUnknown EventType = iota
	TypeCloseRequested
	TypeResize
	TypeKey
	TypeMouseMove
	TypeMouseButton
	TypeScroll
	TypePointerDown
	TypePointerMove
	TypePointerUp
	TypeWheel
	TypeAttached
)

var eventTypeNames = [...]string{
	TypeUnknown:        "unknown",
	TypeCloseRequested: "close",
	TypeResize:         "resize",
	TypeKey:            "key",
	TypeMouseMove:      "mousemove",
	TypeMouseButton:    "mousebutton",
	TypeScroll:         "scroll",
	TypePointerDown:    "pointerdown",
	TypePointerMove:    "pointermove",
	TypePointerUp:      "pointerup",
	TypeWheel:          "wheel",
	TypeAttached:       "attached",
}

func (t EventType) String() string {
	if t < 0 || int(t) >= len(eventTypeNames) {
		return eventTypeNames[TypeUnknown]
	}
	return eventTypeNames[t]
}

// --- window events ---

type EventCloseRequested struct{}

func (EventCloseRequested) Type() EventType { return TypeCloseRequested }

// EventResize reports a new size in pixels. Windows emit it for the
// framebuffer, surfaces for their displayed size.
type EventResize struct{ W, H int }

func (EventResize) Type() EventType { return TypeResize }

type EventKey struct {
	Key  Key
	Down bool
	Mods Mod
}

func (EventKey) Type() EventType { return TypeKey }

type EventMouseMove struct{ X, Y float64 }

func (EventMouseMove) Type() EventType { return TypeMouseMove }

type EventMouseButton struct {
	Button MouseButton
	Down   bool
	X, Y   float64
	Mods   Mod
}

func (EventMouseButton) Type() EventType { return TypeMouseButton }

type EventScroll struct{ Xoff, Yoff float64 }

func (EventScroll) Type() EventType { return TypeScroll }

// --- surface events ---

// PointerEvent carries document coordinates of a pointer.
type PointerEvent struct {
	PointerID int
	X, Y      float64
}

type EventPointerDown struct{ PointerEvent }

func (EventPointerDown) Type() EventType { return TypePointerDown }

type EventPointerMove struct{ PointerEvent }

func (EventPointerMove) Type() EventType { return TypePointerMove }

type EventPointerUp struct{ PointerEvent }

func (EventPointerUp) Type() EventType { return TypePointerUp }

// EventWheel is dispatched by pointer so listeners can cancel the host's
// default scroll handling.
type EventWheel struct {
	X, Y           float64
	DeltaX, DeltaY float64

	prevented bool
}

func (*EventWheel) Type() EventType { return TypeWheel }

func (e *EventWheel) PreventDefault()        { e.prevented = true }
func (e *EventWheel) DefaultPrevented() bool { return e.prevented }

// EventAttached fires when a surface is inserted into a document.
type EventAttached struct{}

func (EventAttached) Type() EventType { return TypeAttached }

// Key/mod enums (subset; add as needed).
type Key int

const (
	KeyUnknown Key = iota
	KeyEscape
	KeySpace
	KeyDelete
	KeyR
	KeyS
	KeyW
	KeyA
	KeyD
)

type Mod int

const (
	ModNone  Mod = 0
	ModShift Mod = 1 << 0
	ModCtrl  Mod = 1 << 1
	ModAlt   Mod = 1 << 2
	ModSuper Mod = 1 << 3
)

type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseRight
	MouseMiddle
)
