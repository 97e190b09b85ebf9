// Package ecs bridges tacmap change notifications into a [Donburi] world.
//
// [NewDonburiStore] returns a tacmap.EventStore that publishes every
// MapEvent (context changes, token and zone edits, additions, removals and
// drags) as a typed Donburi event. Subscribe to [MapEventType] in your
// systems to receive them.
//
// Usage:
//
//	store := ecs.NewDonburiStore(world)
//	session.SetEventStore(store)
//
// [NewMirror] goes one step further and keeps a Donburi entity with
// [MapEntityComponent] and [PlacementComponent] for every token and zone,
// updated whenever MapEventType.ProcessEvents runs.
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
