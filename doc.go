// Package tacmap is the core of a tactical map editor for [Ebitengine].
//
// A [Session] holds one open map: a [MapContext] with the grid and view
// settings, the placed [Token] and [Zone] entities, a stack of background
// layers and a [Camera]. Entities are stored in logical grid units and each
// caches its position in map pixels; the session keeps those caches current
// and redraws whenever anything they depend on changes.
//
// # Quick start
//
// The simplest way to open a window is [Run]:
//
//	s := tacmap.NewSession()
//	if err := s.LoadFile("keep.json"); err != nil {
//		log.Fatal(err)
//	}
//	tacmap.Run(s, tacmap.RunConfig{Title: "Keep", Width: 1280, Height: 800})
//
// For full control, implement [ebiten.Game] yourself and call
// [Session.Update] and [Session.Draw] directly:
//
//	type Game struct{ s *tacmap.Session }
//
//	func (g *Game) Update() error               { g.s.Update(); return nil }
//	func (g *Game) Draw(screen *ebiten.Image)   { g.s.Draw(screen) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Projection
//
// [Project] maps a logical position (x, y, elevation) to map pixels for a
// cell size under [ProjectionOrthogonal] or [ProjectionIsometric]:
//
//	orthogonal: (x*cs, y*cs)
//	isometric:  ((x-y)*0.5*cs, (x+y)*cs - e*0.5*cs)
//
// [Unproject] inverts it at a known elevation. It reports ok == false when
// the cell size is not positive, and callers skip the step.
//
// # Change propagation
//
// Every [MapContext] setter notifies subscribers when the value changes. The
// session subscribes first: a cell size or projection change recomputes the
// cache of every entity, a pan, zoom or rotation change only marks the view
// matrix dirty. Entity setters write the new value into the entity's
// persisted record, recompute that entity alone when the change is
// geometric, then run [Session.OnTokenChange] or [Session.OnZoneChange]
// handlers. Everything happens synchronously on the calling goroutine.
//
// # Rendering
//
// Each frame is built as a list of draw commands in surface pixels: the
// active background layer, the square grid (orthogonal view only), then
// zones and tokens. Commands are stable-sorted by layer, then by depth key
// (y + elevation), then by emission order, so entities further down the map
// paint over those behind them. The camera matrix
//
//	Rotate(rotation about viewport centre) · Scale(zoom) · Translate(pan)
//
// is computed once per frame and applied to every command.
//
// # Interaction
//
// Left-dragging a token or zone moves it: the pointer delta is converted to
// map pixels and solved back to logical units with [Unproject] at the
// entity's current elevation. Dragging empty space, or dragging with the
// right or middle button, pans; the wheel zooms about the cursor. Input can
// be scripted with [Session.InjectDrag] and friends, or with a JSON script
// loaded by [LoadTestScript].
//
// # Persistence
//
// [MapRecord], [TokenRecord] and [ZoneRecord] are the saved form of a map.
// [Session.Load] hydrates them with fresh caches, [Session.Snapshot] returns
// them, and [Session.SaveFile] / [Session.LoadFile] read and write JSON.
// Records never carry screen-space values.
//
// # Configuration
//
// [LoadConfig] reads TACMAP_* environment variables; [Config.Apply] seeds a
// session with them.
//
// # ECS integration
//
// The tacmap/ecs module adapts [EventStore] to a [Donburi] world so systems
// can react to map changes.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package tacmap
