package tacmap

import (
	"math"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// panAnim holds active pan tweens for the two axes.
type panAnim struct {
	tweenX *gween.Tween
	tweenY *gween.Tween
	doneX  bool
	doneY  bool
}

// Camera composes the session's pan, zoom and rotation into the view matrix
// that maps map pixels to surface pixels:
//
//	M = Rotate(rotation, about viewport center) * Scale(zoom) * Translate(pan)
//
// so a point is translated first, then scaled, then rotated. The camera holds
// no view state of its own; it reads the MapContext and caches M until pan,
// zoom, rotation or the viewport change.
type Camera struct {
	ctx      *MapContext
	viewport Rect

	viewMatrix    [6]float64
	invViewMatrix [6]float64
	dirty         bool

	panTween  *panAnim
	zoomTween *gween.Tween
}

// newCamera creates a camera over ctx with an empty viewport.
func newCamera(ctx *MapContext) *Camera {
	return &Camera{ctx: ctx, dirty: true}
}

// Viewport returns the surface rectangle the camera renders into.
func (c *Camera) Viewport() Rect {
	return c.viewport
}

func (c *Camera) setViewport(vp Rect) {
	if c.viewport != vp {
		c.viewport = vp
		c.dirty = true
	}
}

// markDirty forces a recomputation of the view matrix.
func (c *Camera) markDirty() {
	c.dirty = true
}

// valid reports whether the camera can produce an invertible view.
func (c *Camera) valid() bool {
	return c.ctx.zoom > 0 && !c.viewport.Empty()
}

// computeViewMatrix recomputes the cached view matrix if dirty.
func (c *Camera) computeViewMatrix() [6]float64 {
	if !c.dirty {
		return c.viewMatrix
	}
	c.dirty = false

	pan := c.ctx.pan
	z := c.ctx.zoom
	cx := c.viewport.X + c.viewport.Width/2
	cy := c.viewport.Y + c.viewport.Height/2

	m := translateAffine(pan.X, pan.Y)
	m = multiplyAffine(scaleAffine(z, z), m)
	m = multiplyAffine(rotateAboutAffine(c.ctx.rotation, cx, cy), m)

	c.viewMatrix = m
	c.invViewMatrix = invertAffine(m)
	return c.viewMatrix
}

// WorldToScreen converts map pixels to surface pixels.
func (c *Camera) WorldToScreen(wx, wy float64) (sx, sy float64) {
	c.computeViewMatrix()
	return transformPoint(c.viewMatrix, wx, wy)
}

// ScreenToWorld converts surface pixels to map pixels.
func (c *Camera) ScreenToWorld(sx, sy float64) (wx, wy float64) {
	c.computeViewMatrix()
	return transformPoint(c.invViewMatrix, sx, sy)
}

// VisibleBounds returns the axis-aligned bounding rect of the viewport in
// map pixels.
func (c *Camera) VisibleBounds() Rect {
	c.computeViewMatrix()
	inv := c.invViewMatrix

	vx := c.viewport.X
	vy := c.viewport.Y
	vr := vx + c.viewport.Width
	vb := vy + c.viewport.Height

	x0, y0 := transformPoint(inv, vx, vy)
	x1, y1 := transformPoint(inv, vr, vy)
	x2, y2 := transformPoint(inv, vr, vb)
	x3, y3 := transformPoint(inv, vx, vb)

	minX := math.Min(math.Min(x0, x1), math.Min(x2, x3))
	minY := math.Min(math.Min(y0, y1), math.Min(y2, y3))
	maxX := math.Max(math.Max(x0, x1), math.Max(x2, x3))
	maxY := math.Max(math.Max(y0, y1), math.Max(y2, y3))

	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// PanBy shifts the view by a surface-pixel delta, as when dragging the
// background.
func (c *Camera) PanBy(dx, dy float64) {
	z := c.ctx.zoom
	if z <= 0 {
		return
	}
	// Undo rotation so the map follows the pointer at any angle.
	ux, uy := transformVector(rotateAboutAffine(-c.ctx.rotation, 0, 0), dx, dy)
	pan := c.ctx.pan
	c.ctx.SetPan(pan.X+ux/z, pan.Y+uy/z)
}

// ZoomAt sets the zoom while keeping the map point under surface position
// (sx, sy) fixed.
func (c *Camera) ZoomAt(sx, sy, zoom float64) {
	if zoom <= 0 || !c.valid() {
		return
	}
	wx, wy := c.ScreenToWorld(sx, sy)
	cx := c.viewport.X + c.viewport.Width/2
	cy := c.viewport.Y + c.viewport.Height/2
	ux, uy := transformPoint(rotateAboutAffine(-c.ctx.rotation, cx, cy), sx, sy)
	c.ctx.SetZoom(zoom)
	c.ctx.SetPan(ux/zoom-wx, uy/zoom-wy)
}

// CenterOn pans so that the map point (wx, wy) sits at the viewport center.
func (c *Camera) CenterOn(wx, wy float64) {
	x, y, ok := c.centerPan(wx, wy)
	if ok {
		c.ctx.SetPan(x, y)
	}
}

func (c *Camera) centerPan(wx, wy float64) (x, y float64, ok bool) {
	z := c.ctx.zoom
	if z <= 0 {
		return 0, 0, false
	}
	cx := c.viewport.X + c.viewport.Width/2
	cy := c.viewport.Y + c.viewport.Height/2
	return cx/z - wx, cy/z - wy, true
}

// ScrollTo animates the view so the map point (wx, wy) ends at the viewport
// center after duration seconds.
func (c *Camera) ScrollTo(wx, wy float64, duration float32, easeFn ease.TweenFunc) {
	x, y, ok := c.centerPan(wx, wy)
	if !ok {
		return
	}
	c.PanTo(x, y, duration, easeFn)
}

// PanTo animates the pan to (x, y) over duration seconds.
func (c *Camera) PanTo(x, y float64, duration float32, easeFn ease.TweenFunc) {
	pan := c.ctx.pan
	c.panTween = &panAnim{
		tweenX: gween.New(float32(pan.X), float32(x), duration, easeFn),
		tweenY: gween.New(float32(pan.Y), float32(y), duration, easeFn),
	}
}

// ZoomTo animates the zoom to z over duration seconds.
func (c *Camera) ZoomTo(z float64, duration float32, easeFn ease.TweenFunc) {
	if z <= 0 {
		return
	}
	c.zoomTween = gween.New(float32(c.ctx.zoom), float32(z), duration, easeFn)
}

// Animating reports whether a pan or zoom animation is running.
func (c *Camera) Animating() bool {
	return c.panTween != nil || c.zoomTween != nil
}

// StopAnimations cancels running pan and zoom animations where they are.
func (c *Camera) StopAnimations() {
	c.panTween = nil
	c.zoomTween = nil
}

// update advances pan and zoom animations. Called from Session.Update.
func (c *Camera) update(dt float32) {
	if a := c.panTween; a != nil {
		pan := c.ctx.pan
		x, y := pan.X, pan.Y
		if !a.doneX {
			val, done := a.tweenX.Update(dt)
			x = float64(val)
			a.doneX = done
		}
		if !a.doneY {
			val, done := a.tweenY.Update(dt)
			y = float64(val)
			a.doneY = done
		}
		c.ctx.SetPan(x, y)
		if a.doneX && a.doneY {
			c.panTween = nil
		}
	}
	if c.zoomTween != nil {
		val, done := c.zoomTween.Update(dt)
		c.ctx.SetZoom(float64(val))
		if done {
			c.zoomTween = nil
		}
	}
}
