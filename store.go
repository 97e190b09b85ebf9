package tacmap

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/zyedidia/generic/mapset"
)

// Defaults for AddNewToken and AddNewZone.
const (
	defaultTokenImage = "/Assets/default_token.png"
	defaultTokenX     = 2
	defaultTokenY     = 2
	defaultZoneColor  = "#FF0000"
)

// AddToken hydrates a token from rec and adds it to the session. The session
// keeps its own copy of rec as the token's backing record; a nil ID is
// replaced with a fresh one.
func (s *Session) AddToken(rec TokenRecord) *Token {
	r := rec
	t := newToken(&r)
	s.attachToken(t)
	s.dirty = true
	return t
}

// AddNewToken adds a token with placeholder values at (2, 2).
func (s *Session) AddNewToken() *Token {
	return s.AddToken(TokenRecord{
		Name:      fmt.Sprintf("New Token %d", len(s.tokens)+1),
		ImagePath: defaultTokenImage,
		X:         defaultTokenX,
		Y:         defaultTokenY,
		Scale:     1,
		TokenType: TokenPlayer.String(),
	})
}

func (s *Session) attachToken(t *Token) {
	t.session = s
	t.recompute(s.ctx)
	s.noteRecompute(t.id)
	s.tokens = append(s.tokens, t)
	s.invalidated = true
	s.emit(MapEvent{Type: EventTokenAdded, EntityID: t.id, X: t.x, Y: t.y, Elevation: t.elevation})
}

// RemoveToken detaches t from the session. It reports false if t does not
// belong to this session.
func (s *Session) RemoveToken(t *Token) bool {
	for i, c := range s.tokens {
		if c != t {
			continue
		}
		copy(s.tokens[i:], s.tokens[i+1:])
		s.tokens[len(s.tokens)-1] = nil
		s.tokens = s.tokens[:len(s.tokens)-1]
		s.detachToken(t)
		s.dirty = true
		return true
	}
	return false
}

func (s *Session) detachToken(t *Token) {
	if s.pointer.dragToken == t {
		s.pointer.dragToken = nil
	}
	s.selected.Remove(t.id)
	t.session = nil
	t.removed = true
	s.invalidated = true
	s.emit(MapEvent{Type: EventTokenRemoved, EntityID: t.id})
}

// Tokens returns the session's tokens in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Session) Tokens() []*Token {
	return s.tokens
}

// TokenByID returns the token with the given id, or nil.
func (s *Session) TokenByID(id uuid.UUID) *Token {
	for _, t := range s.tokens {
		if t.id == id {
			return t
		}
	}
	return nil
}

// AddZone hydrates a zone from rec and adds it to the session.
func (s *Session) AddZone(rec ZoneRecord) *Zone {
	r := rec
	r.PolygonPoints = append([]PointRecord(nil), rec.PolygonPoints...)
	z := newZone(&r)
	s.attachZone(z)
	s.dirty = true
	return z
}

// AddNewZone adds a one-cell red rectangle at the origin.
func (s *Session) AddNewZone() *Zone {
	return s.AddZone(ZoneRecord{
		Name:      fmt.Sprintf("New Zone %d", len(s.zones)+1),
		Width:     1,
		Height:    1,
		ColorHex:  defaultZoneColor,
		Opacity:   DefaultZoneOpacity,
		ShapeType: ShapeRectangle.String(),
	})
}

func (s *Session) attachZone(z *Zone) {
	z.session = s
	z.recompute(s.ctx)
	s.noteRecompute(z.id)
	s.zones = append(s.zones, z)
	s.invalidated = true
	s.emit(MapEvent{Type: EventZoneAdded, EntityID: z.id, X: z.x, Y: z.y, Elevation: z.elevation})
}

// RemoveZone detaches z from the session. It reports false if z does not
// belong to this session.
func (s *Session) RemoveZone(z *Zone) bool {
	for i, c := range s.zones {
		if c != z {
			continue
		}
		copy(s.zones[i:], s.zones[i+1:])
		s.zones[len(s.zones)-1] = nil
		s.zones = s.zones[:len(s.zones)-1]
		s.detachZone(z)
		s.dirty = true
		return true
	}
	return false
}

func (s *Session) detachZone(z *Zone) {
	if s.pointer.dragZone == z {
		s.pointer.dragZone = nil
	}
	s.selected.Remove(z.id)
	z.session = nil
	z.removed = true
	s.invalidated = true
	s.emit(MapEvent{Type: EventZoneRemoved, EntityID: z.id})
}

// Zones returns the session's zones in insertion order. The returned slice
// MUST NOT be mutated.
func (s *Session) Zones() []*Zone {
	return s.zones
}

// ZoneByID returns the zone with the given id, or nil.
func (s *Session) ZoneByID(id uuid.UUID) *Zone {
	for _, z := range s.zones {
		if z.id == id {
			return z
		}
	}
	return nil
}

// Clear removes every token and zone.
func (s *Session) Clear() {
	for _, t := range s.tokens {
		s.detachToken(t)
	}
	for _, z := range s.zones {
		s.detachZone(z)
	}
	if len(s.tokens) > 0 || len(s.zones) > 0 {
		s.dirty = true
	}
	clear(s.tokens)
	clear(s.zones)
	s.tokens = s.tokens[:0]
	s.zones = s.zones[:0]
}

// Select replaces the selection with the given entity ids.
func (s *Session) Select(ids ...uuid.UUID) {
	s.selected = mapset.New[uuid.UUID]()
	for _, id := range ids {
		s.selected.Put(id)
	}
	s.invalidated = true
}

// Selected reports whether the entity with id is selected.
func (s *Session) Selected(id uuid.UUID) bool {
	return s.selected.Has(id)
}
