package tacmap

// syntheticPointerEvent represents a single injected pointer event in
// surface pixels, fed through the same state machine as the real mouse.
type syntheticPointerEvent struct {
	screenX, screenY float64
	pressed          bool
	button           MouseButton
	// wheel, when non-zero, is a zoom step at the position instead of a
	// pointer event.
	wheel float64
}

// InjectPress queues a left-button press at the given surface coordinates.
// The event is consumed on the next frame's processInput call.
func (s *Session) InjectPress(x, y float64) {
	s.InjectButtonPress(x, y, MouseButtonLeft)
}

// InjectButtonPress queues a press of button at the given surface coordinates.
func (s *Session) InjectButtonPress(x, y float64, button MouseButton) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
		button:  button,
	})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Session) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		pressed: true,
	})
}

// InjectRelease queues a pointer release at the given surface coordinates.
func (s *Session) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
	})
}

// InjectClick queues a press followed by a release at the same surface
// coordinates. Consumes two frames.
func (s *Session) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectWheel queues a wheel zoom of the given notches about (x, y).
func (s *Session) InjectWheel(x, y, notches float64) {
	if notches == 0 {
		return
	}
	s.injectQueue = append(s.injectQueue, syntheticPointerEvent{
		screenX: x, screenY: y,
		wheel: notches,
	})
}

// InjectDrag queues a full left-button drag: press at (fromX, fromY),
// linearly interpolated moves over frames-2 intermediate frames, and
// release at (toX, toY). The total sequence consumes `frames` frames.
// Minimum frames is 3 (press, one move, release).
func (s *Session) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	s.InjectButtonDrag(fromX, fromY, toX, toY, frames, MouseButtonLeft)
}

// InjectButtonDrag is InjectDrag with an explicit button. A right or middle
// drag pans the view.
func (s *Session) InjectButtonDrag(fromX, fromY, toX, toY float64, frames int, button MouseButton) {
	if frames < 3 {
		frames = 3
	}
	s.InjectButtonPress(fromX, fromY, button)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := fromX + (toX-fromX)*t
		y := fromY + (toY-fromY)*t
		s.InjectMove(x, y)
	}
	s.InjectRelease(toX, toY)
}

// processInjectedInput pops one event from the inject queue and feeds it
// through processPointer. Returns true if an event was consumed (real mouse
// input should be skipped).
func (s *Session) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.wheel != 0 {
		s.wheelZoom(evt.screenX, evt.screenY, evt.wheel)
		return true
	}
	button := evt.button
	if s.pointer.down {
		button = s.pointer.button
	}
	s.processPointer(evt.screenX, evt.screenY, evt.pressed, button)
	return true
}
