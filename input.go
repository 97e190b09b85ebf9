package tacmap

import (
	"math"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// --- Constants ---

const (
	defaultDragDeadZone = 4.0 // pixels
	defaultMinZoom      = 0.25
	defaultMaxZoom      = 8.0
	defaultZoomStep     = 1.1 // zoom factor per wheel notch
)

// --- Pointer state ---

// pointerState tracks the mouse (or injected pointer) in surface pixels.
type pointerState struct {
	down     bool
	startX   float64
	startY   float64
	lastX    float64
	lastY    float64
	dragging bool
	button   MouseButton // button captured at press time

	// Entity grabbed at press time; both nil when the drag pans the view.
	dragToken *Token
	dragZone  *Zone
}

// DragContext describes a drag in progress. Positions are in surface pixels;
// the delta is in map pixels.
type DragContext struct {
	Token    *Token // dragged token, or nil
	Zone     *Zone  // dragged zone, or nil
	EntityID uuid.UUID
	ScreenX  float64 // current pointer X in surface pixels
	ScreenY  float64 // current pointer Y in surface pixels
	StartX   float64 // surface X at press time
	StartY   float64 // surface Y at press time
	DeltaX   float64 // map-space X movement since the previous drag event
	DeltaY   float64 // map-space Y movement since the previous drag event
	Button   MouseButton
}

// Panning reports whether the drag moves the view rather than an entity.
func (c DragContext) Panning() bool {
	return c.Token == nil && c.Zone == nil
}

// --- Registration ---

// OnDragStart registers a callback for drag start events.
func (s *Session) OnDragStart(fn func(DragContext)) CallbackHandle {
	id := s.handlers.newID()
	s.handlers.dragStart = append(s.handlers.dragStart, handler[func(DragContext)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragStart}
}

// OnDrag registers a callback fired for every pointer movement while dragging.
func (s *Session) OnDrag(fn func(DragContext)) CallbackHandle {
	id := s.handlers.newID()
	s.handlers.drag = append(s.handlers.drag, handler[func(DragContext)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDrag}
}

// OnDragEnd registers a callback for drag end events.
func (s *Session) OnDragEnd(fn func(DragContext)) CallbackHandle {
	id := s.handlers.newID()
	s.handlers.dragEnd = append(s.handlers.dragEnd, handler[func(DragContext)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventDragEnd}
}

// SetDragDeadZone sets the minimum movement in pixels before a drag starts.
func (s *Session) SetDragDeadZone(pixels float64) {
	s.dragDeadZone = pixels
}

// SetZoomLimits sets the range wheel zoom is clamped to.
func (s *Session) SetZoomLimits(minZoom, maxZoom float64) {
	if minZoom <= 0 || maxZoom < minZoom {
		return
	}
	s.minZoom, s.maxZoom = minZoom, maxZoom
}

// SetSnapToGrid makes dropped entities snap to whole grid cells.
func (s *Session) SetSnapToGrid(snap bool) {
	s.snapToGrid = snap
}

// SetInputEnabled toggles polling of the real mouse. Injected input is
// processed either way.
func (s *Session) SetInputEnabled(enabled bool) {
	s.inputEnabled = enabled
}

// --- Hit testing ---

// hitTest finds the topmost entity at surface position (sx, sy): tokens
// before zones, highest depth key first.
func (s *Session) hitTest(sx, sy float64) (*Token, *Zone) {
	if !s.camera.valid() {
		return nil, nil
	}
	wx, wy := s.camera.ScreenToWorld(sx, sy)

	var hitT *Token
	for _, t := range s.tokens {
		if t.Bounds().Contains(wx, wy) && (hitT == nil || t.DepthKey() >= hitT.DepthKey()) {
			hitT = t
		}
	}
	if hitT != nil {
		return hitT, nil
	}
	var hitZ *Zone
	for _, z := range s.zones {
		if z.Bounds().Contains(wx, wy) && (hitZ == nil || z.DepthKey() >= hitZ.DepthKey()) {
			hitZ = z
		}
	}
	return nil, hitZ
}

// --- Input processing ---

// processInput is called from Session.Update to handle mouse and wheel input.
func (s *Session) processInput() {
	if s.processInjectedInput() {
		return
	}
	if !s.inputEnabled {
		return
	}
	s.processMousePointer()
	s.processWheel()
}

// processMousePointer handles the real mouse.
func (s *Session) processMousePointer() {
	mx, my := ebiten.CursorPosition()

	// If the pointer is already down, keep the stored button so it cannot
	// change mid-interaction.
	var pressed bool
	var button MouseButton
	left := ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft)
	right := ebiten.IsMouseButtonPressed(ebiten.MouseButtonRight)
	middle := ebiten.IsMouseButtonPressed(ebiten.MouseButtonMiddle)

	if left || right || middle {
		pressed = true
		if left {
			button = MouseButtonLeft
		} else if right {
			button = MouseButtonRight
		} else {
			button = MouseButtonMiddle
		}
	}

	s.processPointer(float64(mx), float64(my), pressed, button)
}

func (s *Session) processWheel() {
	_, wy := ebiten.Wheel()
	if wy == 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	s.wheelZoom(float64(mx), float64(my), wy)
}

// wheelZoom zooms about (sx, sy) by zoomStep per notch, clamped to the
// session's zoom limits.
func (s *Session) wheelZoom(sx, sy, notches float64) {
	z := s.ctx.zoom * math.Pow(s.zoomStep, notches)
	z = math.Max(s.minZoom, math.Min(s.maxZoom, z))
	if z == s.ctx.zoom {
		return
	}
	s.camera.ZoomAt(sx, sy, z)
}

// processPointer runs the pointer state machine. Coordinates are in surface
// pixels.
func (s *Session) processPointer(sx, sy float64, pressed bool, button MouseButton) {
	ps := &s.pointer

	switch {
	case pressed && !ps.down:
		ps.down = true
		ps.button = button
		ps.startX, ps.startY = sx, sy
		ps.lastX, ps.lastY = sx, sy
		ps.dragging = false
		ps.dragToken, ps.dragZone = nil, nil
		if button == MouseButtonLeft {
			ps.dragToken, ps.dragZone = s.hitTest(sx, sy)
		}

	case !pressed && ps.down:
		if ps.dragging {
			s.finishDrag(sx, sy)
		} else if ps.button == MouseButtonLeft {
			s.clickSelect(sx, sy)
		}
		ps.down = false
		ps.dragging = false
		ps.dragToken, ps.dragZone = nil, nil

	case pressed && ps.down:
		if sx == ps.lastX && sy == ps.lastY {
			return
		}
		if !ps.dragging {
			dx := sx - ps.startX
			dy := sy - ps.startY
			if math.Sqrt(dx*dx+dy*dy) <= s.dragDeadZone {
				return
			}
			ps.dragging = true
			// Movement inside the dead zone is applied with the first step.
			ps.lastX, ps.lastY = ps.startX, ps.startY
			s.fireDrag(EventDragStart, s.handlers.dragStart, s.dragContext(sx, sy, 0, 0))
		}
		s.dragStep(sx, sy)
		ps.lastX, ps.lastY = sx, sy
	}
}

// dragStep applies pointer movement from the last position to (sx, sy).
func (s *Session) dragStep(sx, sy float64) {
	ps := &s.pointer
	if ps.dragToken == nil && ps.dragZone == nil {
		s.camera.PanBy(sx-ps.lastX, sy-ps.lastY)
		s.fireDrag(EventDrag, s.handlers.drag, s.dragContext(sx, sy, 0, 0))
		return
	}
	if !s.camera.valid() {
		return
	}
	x0, y0 := s.camera.ScreenToWorld(ps.lastX, ps.lastY)
	x1, y1 := s.camera.ScreenToWorld(sx, sy)
	dx, dy := x1-x0, y1-y0
	if ps.dragToken != nil {
		s.DragToken(ps.dragToken, dx, dy)
	} else {
		s.DragZone(ps.dragZone, dx, dy)
	}
	s.fireDrag(EventDrag, s.handlers.drag, s.dragContext(sx, sy, dx, dy))
}

func (s *Session) finishDrag(sx, sy float64) {
	ps := &s.pointer
	if s.snapToGrid {
		if ps.dragToken != nil {
			s.SnapToken(ps.dragToken)
		}
		if ps.dragZone != nil {
			s.SnapZone(ps.dragZone)
		}
	}
	s.fireDrag(EventDragEnd, s.handlers.dragEnd, s.dragContext(sx, sy, 0, 0))
}

// clickSelect selects the entity under (sx, sy), or clears the selection.
func (s *Session) clickSelect(sx, sy float64) {
	t, z := s.hitTest(sx, sy)
	switch {
	case t != nil:
		s.Select(t.id)
	case z != nil:
		s.Select(z.id)
	default:
		s.Select()
	}
}

func (s *Session) dragContext(sx, sy, dx, dy float64) DragContext {
	ps := &s.pointer
	ctx := DragContext{
		Token:   ps.dragToken,
		Zone:    ps.dragZone,
		ScreenX: sx,
		ScreenY: sy,
		StartX:  ps.startX,
		StartY:  ps.startY,
		DeltaX:  dx,
		DeltaY:  dy,
		Button:  ps.button,
	}
	if ps.dragToken != nil {
		ctx.EntityID = ps.dragToken.id
	} else if ps.dragZone != nil {
		ctx.EntityID = ps.dragZone.id
	}
	return ctx
}

// --- Event dispatch ---

func (s *Session) fireDrag(typ EventType, handlers []handler[func(DragContext)], ctx DragContext) {
	for _, h := range handlers {
		h.fn(ctx)
	}
	s.emit(MapEvent{
		Type:     typ,
		EntityID: ctx.EntityID,
		X:        ctx.ScreenX,
		Y:        ctx.ScreenY,
		DeltaX:   ctx.DeltaX,
		DeltaY:   ctx.DeltaY,
	})
}
