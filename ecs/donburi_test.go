package ecs

import (
	"testing"

	"github.com/google/uuid"
	"github.com/phanxgames/tacmap"
	"github.com/yohamta/donburi"
)

func TestNewDonburiStore(t *testing.T) {
	world := donburi.NewWorld()
	if store := NewDonburiStore(world); store == nil {
		t.Fatal("NewDonburiStore returned nil")
	}
}

func TestDonburiStore_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	store := NewDonburiStore(world)

	var received []tacmap.MapEvent
	MapEventType.Subscribe(world, func(w donburi.World, e tacmap.MapEvent) {
		received = append(received, e)
	})

	id := uuid.New()
	store.EmitEvent(tacmap.MapEvent{
		Type:      tacmap.EventTokenChange,
		EntityID:  id,
		Field:     tacmap.EntityPosition,
		X:         3,
		Y:         4,
		Elevation: 1,
	})
	store.EmitEvent(tacmap.MapEvent{
		Type:    tacmap.EventContextChange,
		Context: tacmap.ContextProjection,
	})

	// Events are queued until processed.
	if len(received) != 0 {
		t.Fatalf("received %d events before ProcessEvents, want 0", len(received))
	}
	MapEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	e0 := received[0]
	if e0.Type != tacmap.EventTokenChange || e0.EntityID != id || e0.X != 3 || e0.Y != 4 || e0.Elevation != 1 {
		t.Errorf("event 0: %+v", e0)
	}
	if e1 := received[1]; e1.Type != tacmap.EventContextChange || e1.Context != tacmap.ContextProjection {
		t.Errorf("event 1: %+v", e1)
	}
}

func TestDonburiStore_SessionForwarding(t *testing.T) {
	world := donburi.NewWorld()
	s := tacmap.NewSession()
	s.SetEventStore(NewDonburiStore(world))

	var types []tacmap.EventType
	MapEventType.Subscribe(world, func(w donburi.World, e tacmap.MapEvent) {
		types = append(types, e.Type)
	})

	tok := s.AddNewToken()
	tok.SetPosition(5, 6)
	s.Context().SetIsometric(true)
	s.RemoveToken(tok)
	MapEventType.ProcessEvents(world)

	want := []tacmap.EventType{
		tacmap.EventTokenAdded,
		tacmap.EventTokenChange,
		tacmap.EventContextChange,
		tacmap.EventTokenRemoved,
	}
	if len(types) != len(want) {
		t.Fatalf("got %d events %v, want %v", len(types), types, want)
	}
	for i := range want {
		if types[i] != want[i] {
			t.Errorf("event %d = %v, want %v", i, types[i], want[i])
		}
	}
}
