package tacmap

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// PositionTween glides a token or zone to a logical position. Every step
// goes through the entity's SetPosition, so write-through and cache
// recomputation happen each frame like any other move. If the entity is
// removed, the tween stops immediately.
type PositionTween struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	token  *Token
	zone   *Zone
	Done   bool
}

// Update advances the tween by dt seconds and moves the target.
func (g *PositionTween) Update(dt float32) {
	if g.Done {
		return
	}
	if (g.token != nil && g.token.removed) || (g.zone != nil && g.zone.removed) {
		g.Done = true
		return
	}

	x, doneX := g.tweenX.Update(dt)
	y, doneY := g.tweenY.Update(dt)
	if g.token != nil {
		g.token.SetPosition(float64(x), float64(y))
	} else if g.zone != nil {
		g.zone.SetPosition(float64(x), float64(y))
	}
	g.Done = doneX && doneY
}

// GlideToken animates t to the logical position (x, y) over duration seconds.
// The session advances the tween from Update; the returned value can be
// inspected or stopped by setting Done.
func (s *Session) GlideToken(t *Token, x, y float64, duration float32, fn ease.TweenFunc) *PositionTween {
	g := &PositionTween{
		tweenX: gween.New(float32(t.x), float32(x), duration, fn),
		tweenY: gween.New(float32(t.y), float32(y), duration, fn),
		token:  t,
	}
	s.tweens = append(s.tweens, g)
	return g
}

// GlideZone animates z to the logical position (x, y) over duration seconds.
func (s *Session) GlideZone(z *Zone, x, y float64, duration float32, fn ease.TweenFunc) *PositionTween {
	g := &PositionTween{
		tweenX: gween.New(float32(z.x), float32(x), duration, fn),
		tweenY: gween.New(float32(z.y), float32(y), duration, fn),
		zone:   z,
	}
	s.tweens = append(s.tweens, g)
	return g
}

// updateTweens advances every running tween and drops finished ones.
func (s *Session) updateTweens(dt float32) {
	if len(s.tweens) == 0 {
		return
	}
	live := s.tweens[:0]
	for _, g := range s.tweens {
		g.Update(dt)
		if !g.Done {
			live = append(live, g)
		}
	}
	clear(s.tweens[len(live):])
	s.tweens = live
}
