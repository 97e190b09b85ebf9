// Package ecs provides ECS adapters for tacmap.
package ecs

import (
	"github.com/phanxgames/tacmap"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// MapEventType is the Donburi event type for tacmap change events.
// Subscribe to this in your ECS systems to receive context, token, zone and
// drag notifications.
var MapEventType = events.NewEventType[tacmap.MapEvent]()

type donburiStore struct {
	world donburi.World
}

// NewDonburiStore creates an EventStore backed by a Donburi world.
// Map events are published to MapEventType and can be consumed with
// events.Subscribe and ProcessEvents.
func NewDonburiStore(world donburi.World) tacmap.EventStore {
	return &donburiStore{world: world}
}

func (s *donburiStore) EmitEvent(event tacmap.MapEvent) {
	MapEventType.Publish(s.world, event)
}
