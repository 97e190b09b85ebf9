package ecs

import (
	"github.com/google/uuid"
	"github.com/phanxgames/tacmap"

	"github.com/yohamta/donburi"
)

// Kind tells tokens and zones apart in the mirror.
type Kind uint8

const (
	KindToken Kind = iota
	KindZone
)

// MapEntity identifies the tacmap entity a donburi entity mirrors.
type MapEntity struct {
	ID   uuid.UUID
	Kind Kind
}

// Placement is the logical position of a mirrored entity.
type Placement struct {
	X, Y      float64
	Elevation int
}

var (
	MapEntityComponent = donburi.NewComponentType[MapEntity]()
	PlacementComponent = donburi.NewComponentType[Placement]()
)

// Mirror keeps one donburi entity per token and zone, created, moved and
// removed as MapEventType events are processed. Systems can query
// MapEntityComponent and PlacementComponent instead of walking the session.
type Mirror struct {
	world    donburi.World
	entities map[uuid.UUID]donburi.Entity
}

// NewMirror subscribes a Mirror to MapEventType in world. The mirror sees
// events once MapEventType.ProcessEvents runs.
func NewMirror(world donburi.World) *Mirror {
	m := &Mirror{world: world, entities: make(map[uuid.UUID]donburi.Entity)}
	MapEventType.Subscribe(world, m.handle)
	return m
}

// Entity returns the donburi entity mirroring id.
func (m *Mirror) Entity(id uuid.UUID) (donburi.Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

// Len returns the number of mirrored entities.
func (m *Mirror) Len() int {
	return len(m.entities)
}

func (m *Mirror) handle(w donburi.World, e tacmap.MapEvent) {
	switch e.Type {
	case tacmap.EventTokenAdded:
		m.add(w, e, KindToken)
	case tacmap.EventZoneAdded:
		m.add(w, e, KindZone)
	case tacmap.EventTokenChange, tacmap.EventZoneChange:
		ent, ok := m.entities[e.EntityID]
		if !ok || !w.Valid(ent) {
			return
		}
		PlacementComponent.SetValue(w.Entry(ent), Placement{X: e.X, Y: e.Y, Elevation: e.Elevation})
	case tacmap.EventTokenRemoved, tacmap.EventZoneRemoved:
		ent, ok := m.entities[e.EntityID]
		if !ok {
			return
		}
		delete(m.entities, e.EntityID)
		if w.Valid(ent) {
			w.Remove(ent)
		}
	}
}

func (m *Mirror) add(w donburi.World, e tacmap.MapEvent, kind Kind) {
	if _, ok := m.entities[e.EntityID]; ok {
		return
	}
	ent := w.Create(MapEntityComponent, PlacementComponent)
	entry := w.Entry(ent)
	MapEntityComponent.SetValue(entry, MapEntity{ID: e.EntityID, Kind: kind})
	PlacementComponent.SetValue(entry, Placement{X: e.X, Y: e.Y, Elevation: e.Elevation})
	m.entities[e.EntityID] = ent
}
