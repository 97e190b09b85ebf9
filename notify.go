package tacmap

import "github.com/google/uuid"

// EventType identifies a kind of change notification.
type EventType uint8

const (
	EventContextChange EventType = iota // a MapContext field changed
	EventTokenChange                    // a token's attribute changed
	EventZoneChange                     // a zone's attribute changed
	EventTokenAdded                     // a token joined the session
	EventTokenRemoved                   // a token left the session
	EventZoneAdded                      // a zone joined the session
	EventZoneRemoved                    // a zone left the session
	EventDragStart                      // pointer movement exceeded the dead zone
	EventDrag                           // fires each frame while dragging
	EventDragEnd                        // pointer released after dragging
)

// ContextField names the MapContext field carried by a change notification.
type ContextField uint8

const (
	ContextGridCellSize    ContextField = iota // grid cell size in map pixels
	ContextProjection                          // projection mode
	ContextGridVisible                         // grid overlay toggle
	ContextGridType                            // grid overlay style
	ContextPan                                 // camera pan
	ContextZoom                                // camera zoom
	ContextRotation                            // camera rotation
	ContextMapImage                            // background image path
	ContextBackgroundLayer                     // active background layer index
)

// geometric reports whether a change to f invalidates entity screen caches.
func (f ContextField) geometric() bool {
	return f == ContextGridCellSize || f == ContextProjection
}

// persisted reports whether f is part of the saved map record.
func (f ContextField) persisted() bool {
	switch f {
	case ContextGridCellSize, ContextProjection, ContextMapImage:
		return true
	}
	return false
}

// EntityField names the token or zone attribute carried by a change notification.
type EntityField uint8

const (
	EntityPosition  EntityField = iota // logical x and/or y
	EntityElevation                    // logical elevation
	EntitySize                         // zone width and/or height
	EntityScale                        // token scale
	EntityName                         // display name
	EntityDetails                      // hover details
	EntityKind                         // token kind
	EntityImage                        // token image path
	EntityColor                        // zone color
	EntityOpacity                      // zone opacity
	EntityShape                        // zone shape kind
	EntityPoints                       // zone polygon points
)

// geometric reports whether a change to f invalidates the entity's screen cache.
func (f EntityField) geometric() bool {
	return f == EntityPosition || f == EntityElevation || f == EntitySize
}

// MapEvent carries a change notification for the optional ECS bridge.
type MapEvent struct {
	Type     EventType
	EntityID uuid.UUID
	Context  ContextField // valid for EventContextChange
	Field    EntityField  // valid for token and zone changes
	// Logical position after the change; the pointer's surface position
	// for drag events.
	X, Y float64
	// Elevation after the change.
	Elevation int
	// Drag fields (valid for EventDragStart, EventDrag, EventDragEnd)
	DeltaX float64
	DeltaY float64
}

// EventStore is the interface for optional ECS integration.
// When set on a Session, map changes are forwarded to it.
type EventStore interface {
	EmitEvent(event MapEvent)
}

// --- Handler registry ---

type handler[F any] struct {
	id uint32
	fn F
}

type handlerRegistry struct {
	context   []handler[func(ContextField)]
	token     []handler[func(*Token, EntityField)]
	zone      []handler[func(*Zone, EntityField)]
	dragStart []handler[func(DragContext)]
	drag      []handler[func(DragContext)]
	dragEnd   []handler[func(DragContext)]
	nextID    uint32
}

func (r *handlerRegistry) newID() uint32 {
	r.nextID++
	return r.nextID
}

// CallbackHandle allows removing a registered callback.
type CallbackHandle struct {
	id    uint32
	reg   *handlerRegistry
	event EventType
}

// Remove unregisters this callback so it no longer fires.
func (h CallbackHandle) Remove() {
	if h.reg == nil {
		return
	}
	switch h.event {
	case EventContextChange:
		h.reg.context = removeHandler(h.reg.context, h.id)
	case EventTokenChange:
		h.reg.token = removeHandler(h.reg.token, h.id)
	case EventZoneChange:
		h.reg.zone = removeHandler(h.reg.zone, h.id)
	case EventDragStart:
		h.reg.dragStart = removeHandler(h.reg.dragStart, h.id)
	case EventDrag:
		h.reg.drag = removeHandler(h.reg.drag, h.id)
	case EventDragEnd:
		h.reg.dragEnd = removeHandler(h.reg.dragEnd, h.id)
	}
}

// removeHandler builds a new slice so that a dispatch loop already ranging
// over the old one is unaffected.
func removeHandler[F any](s []handler[F], id uint32) []handler[F] {
	for i := range s {
		if s[i].id == id {
			out := make([]handler[F], 0, len(s)-1)
			out = append(out, s[:i]...)
			return append(out, s[i+1:]...)
		}
	}
	return s
}
