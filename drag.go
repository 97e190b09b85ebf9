package tacmap

import "math"

// DragToken moves t by a map-pixel delta. The new logical position is solved
// with Unproject at the token's current elevation, so the result is exact
// only while elevation stays constant for the whole drag. Nothing happens
// when the cell size is not positive.
func (s *Session) DragToken(t *Token, dx, dy float64) {
	s.MoveToken(t, t.screen.X+dx, t.screen.Y+dy)
}

// MoveToken places t so that its cached screen position becomes (sx, sy).
func (s *Session) MoveToken(t *Token, sx, sy float64) {
	x, y, ok := Unproject(sx, sy, t.elevation, s.ctx.gridCellSize, s.ctx.projection)
	if !ok {
		return
	}
	t.SetPosition(x, y)
}

// DragZone moves z by a map-pixel delta. See DragToken.
func (s *Session) DragZone(z *Zone, dx, dy float64) {
	s.MoveZone(z, z.screen.X+dx, z.screen.Y+dy)
}

// MoveZone places z so that its cached screen position becomes (sx, sy).
func (s *Session) MoveZone(z *Zone, sx, sy float64) {
	x, y, ok := Unproject(sx, sy, z.elevation, s.ctx.gridCellSize, s.ctx.projection)
	if !ok {
		return
	}
	z.SetPosition(x, y)
}

// ResizeZone sets z's logical extent from a size in map pixels.
func (s *Session) ResizeZone(z *Zone, sw, sh float64) {
	cs := s.ctx.gridCellSize
	if cs <= 0 {
		return
	}
	z.SetSize(sw/cs, sh/cs)
}

// SnapToken rounds t's logical position to whole cells.
func (s *Session) SnapToken(t *Token) {
	t.SetPosition(math.Round(t.x), math.Round(t.y))
}

// SnapZone rounds z's logical position to whole cells.
func (s *Session) SnapZone(z *Zone) {
	z.SetPosition(math.Round(z.x), math.Round(z.y))
}
