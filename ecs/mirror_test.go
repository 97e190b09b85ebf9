package ecs

import (
	"testing"

	"github.com/phanxgames/tacmap"
	"github.com/yohamta/donburi"
)

func newMirroredSession() (*tacmap.Session, donburi.World, *Mirror) {
	world := donburi.NewWorld()
	s := tacmap.NewSession()
	s.SetEventStore(NewDonburiStore(world))
	return s, world, NewMirror(world)
}

func TestMirrorTracksEntities(t *testing.T) {
	s, world, m := newMirroredSession()

	tok := s.AddToken(tacmap.TokenRecord{X: 2, Y: 3, Elevation: 1})
	z := s.AddNewZone()
	MapEventType.ProcessEvents(world)

	if m.Len() != 2 || world.Len() != 2 {
		t.Fatalf("mirror = %d, world = %d, want 2, 2", m.Len(), world.Len())
	}
	ent, ok := m.Entity(tok.ID())
	if !ok {
		t.Fatal("token not mirrored")
	}
	entry := world.Entry(ent)
	if got := MapEntityComponent.Get(entry); got.ID != tok.ID() || got.Kind != KindToken {
		t.Errorf("map entity = %+v", *got)
	}
	if got := *PlacementComponent.Get(entry); got != (Placement{X: 2, Y: 3, Elevation: 1}) {
		t.Errorf("placement = %+v, want (2,3,1)", got)
	}
	zent, _ := m.Entity(z.ID())
	if MapEntityComponent.Get(world.Entry(zent)).Kind != KindZone {
		t.Error("zone mirrored with the wrong kind")
	}
}

func TestMirrorFollowsMoves(t *testing.T) {
	s, world, m := newMirroredSession()
	tok := s.AddNewToken()
	tok.SetPosition(7, 1)
	tok.SetElevation(2)
	MapEventType.ProcessEvents(world)

	ent, _ := m.Entity(tok.ID())
	if got := *PlacementComponent.Get(world.Entry(ent)); got != (Placement{X: 7, Y: 1, Elevation: 2}) {
		t.Errorf("placement = %+v, want (7,1,2)", got)
	}
}

func TestMirrorRemoves(t *testing.T) {
	s, world, m := newMirroredSession()
	tok := s.AddNewToken()
	s.AddNewZone()
	MapEventType.ProcessEvents(world)

	ent, _ := m.Entity(tok.ID())
	s.RemoveToken(tok)
	MapEventType.ProcessEvents(world)

	if _, ok := m.Entity(tok.ID()); ok {
		t.Error("removed token still mirrored")
	}
	if world.Valid(ent) {
		t.Error("donburi entity still valid")
	}

	s.Clear()
	MapEventType.ProcessEvents(world)
	if m.Len() != 0 || world.Len() != 0 {
		t.Errorf("after Clear: mirror = %d, world = %d", m.Len(), world.Len())
	}
}
