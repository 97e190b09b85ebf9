package tacmap

import (
	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// contextChanged is the session's first OnChange subscriber. Cell size and
// projection changes recompute every entity's screen cache before any later
// subscriber runs.
func (s *Session) contextChanged(f ContextField) {
	if f.geometric() {
		s.recomputeAll()
	}
	switch f {
	case ContextPan, ContextZoom, ContextRotation:
		s.camera.markDirty()
	}
	if f.persisted() {
		s.dirty = true
	}
	s.invalidated = true
	s.emit(MapEvent{Type: EventContextChange, Context: f})
}

// recomputeAll refreshes the screen cache of every token and zone.
func (s *Session) recomputeAll() {
	for _, t := range s.tokens {
		t.recompute(s.ctx)
		s.noteRecompute(t.id)
	}
	for _, z := range s.zones {
		z.recompute(s.ctx)
		s.noteRecompute(z.id)
	}
}

// tokenChanged writes f through to the token's record, then refreshes the
// token's own cache if f moved it, then notifies subscribers.
func (s *Session) tokenChanged(t *Token, f EntityField) {
	t.writeThrough(f)
	if f.geometric() {
		t.recompute(s.ctx)
		s.noteRecompute(t.id)
	}
	s.dirty = true
	s.invalidated = true
	for _, h := range s.handlers.token {
		h.fn(t, f)
	}
	s.emit(MapEvent{Type: EventTokenChange, EntityID: t.id, Field: f, X: t.x, Y: t.y, Elevation: t.elevation})
}

// zoneChanged is tokenChanged for zones; size changes also refresh screenSize.
func (s *Session) zoneChanged(z *Zone, f EntityField) {
	z.writeThrough(f)
	if f.geometric() {
		z.recompute(s.ctx)
		s.noteRecompute(z.id)
	}
	s.dirty = true
	s.invalidated = true
	for _, h := range s.handlers.zone {
		h.fn(z, f)
	}
	s.emit(MapEvent{Type: EventZoneChange, EntityID: z.id, Field: f, X: z.x, Y: z.y, Elevation: z.elevation})
}

func (s *Session) noteRecompute(id uuid.UUID) {
	s.recomputeCount++
	s.recomputed.Put(id)
}

// resetRecomputeStats starts a new accounting window. Called after each frame.
func (s *Session) resetRecomputeStats() {
	s.recomputeCount = 0
	s.recomputed = mapset.New[uuid.UUID]()
}

// OnTokenChange registers fn to run after a token attribute changes and its
// cache has been refreshed.
func (s *Session) OnTokenChange(fn func(*Token, EntityField)) CallbackHandle {
	id := s.handlers.newID()
	s.handlers.token = append(s.handlers.token, handler[func(*Token, EntityField)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventTokenChange}
}

// OnZoneChange registers fn to run after a zone attribute changes and its
// caches have been refreshed.
func (s *Session) OnZoneChange(fn func(*Zone, EntityField)) CallbackHandle {
	id := s.handlers.newID()
	s.handlers.zone = append(s.handlers.zone, handler[func(*Zone, EntityField)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &s.handlers, event: EventZoneChange}
}

func (s *Session) emit(e MapEvent) {
	if s.store != nil {
		s.store.EmitEvent(e)
	}
}
