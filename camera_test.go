package tacmap

import (
	"testing"

	"github.com/tanema/gween/ease"
)

func newTestCamera(w, h float64) (*MapContext, *Camera) {
	ctx := NewMapContext()
	cam := newCamera(ctx)
	cam.setViewport(Rect{Width: w, Height: h})
	// Mirror the session wiring: camera fields mark the matrix dirty.
	ctx.OnChange(func(f ContextField) {
		switch f {
		case ContextPan, ContextZoom, ContextRotation:
			cam.markDirty()
		}
	})
	return ctx, cam
}

func TestCameraIdentity(t *testing.T) {
	_, cam := newTestCamera(800, 600)
	assertMatrix(t, "identity", cam.computeViewMatrix(), identityTransform)
}

func TestCameraTranslateScaleRotateOrder(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetPan(10, 20)
	ctx.SetZoom(2)
	ctx.SetRotation(90)

	// Translate: (0,0) -> (10,20). Scale: -> (20,40).
	// Rotate 90° about (400,300): (20-400, 40-300) = (-380,-260) -> (260,-380) + c.
	sx, sy := cam.WorldToScreen(0, 0)
	assertNear(t, "sx", sx, 660)
	assertNear(t, "sy", sy, -80)
}

func TestCameraZoomSpacing(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetZoom(2)
	x0, _ := cam.WorldToScreen(0, 0)
	x1, _ := cam.WorldToScreen(50, 0)
	assertNear(t, "spacing", x1-x0, 100)
}

func TestCameraScreenToWorldInverse(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetPan(-35, 12)
	ctx.SetZoom(1.75)
	ctx.SetRotation(-20)

	for _, p := range []Vec2{{0, 0}, {123, -45}, {800, 600}} {
		sx, sy := cam.WorldToScreen(p.X, p.Y)
		wx, wy := cam.ScreenToWorld(sx, sy)
		if !approxEqual(wx, p.X, 1e-6) || !approxEqual(wy, p.Y, 1e-6) {
			t.Errorf("round trip %v = (%v,%v)", p, wx, wy)
		}
	}
}

func TestCameraDirtyAfterContextChange(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	cam.computeViewMatrix()
	ctx.SetPan(5, 0)
	if !cam.dirty {
		t.Fatal("camera not dirty after pan change")
	}
	sx, _ := cam.WorldToScreen(0, 0)
	assertNear(t, "sx", sx, 5)
}

func TestCameraVisibleBounds(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetZoom(2)
	ctx.SetPan(-100, -50)
	b := cam.VisibleBounds()
	assertNear(t, "X", b.X, 100)
	assertNear(t, "Y", b.Y, 50)
	assertNear(t, "Width", b.Width, 400)
	assertNear(t, "Height", b.Height, 300)
}

func TestCameraPanBy(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetZoom(2)
	ctx.SetRotation(37)

	wx0, wy0 := cam.ScreenToWorld(300, 200)
	cam.PanBy(40, -25)
	// The map point that was under (300,200) is now under (340,175).
	sx, sy := cam.WorldToScreen(wx0, wy0)
	if !approxEqual(sx, 340, 1e-6) || !approxEqual(sy, 175, 1e-6) {
		t.Errorf("after PanBy point at (%v,%v), want (340,175)", sx, sy)
	}
}

func TestCameraZoomAtKeepsPointFixed(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetPan(30, -10)
	ctx.SetRotation(15)

	wx, wy := cam.ScreenToWorld(250, 420)
	cam.ZoomAt(250, 420, 3)
	if ctx.Zoom() != 3 {
		t.Fatalf("Zoom = %v, want 3", ctx.Zoom())
	}
	sx, sy := cam.WorldToScreen(wx, wy)
	if !approxEqual(sx, 250, 1e-6) || !approxEqual(sy, 420, 1e-6) {
		t.Errorf("anchor moved to (%v,%v), want (250,420)", sx, sy)
	}
}

func TestCameraCenterOn(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetZoom(2)
	ctx.SetRotation(60)
	cam.CenterOn(150, 75)
	sx, sy := cam.WorldToScreen(150, 75)
	if !approxEqual(sx, 400, 1e-6) || !approxEqual(sy, 300, 1e-6) {
		t.Errorf("center = (%v,%v), want (400,300)", sx, sy)
	}
}

func TestCameraInvalid(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	ctx.SetZoom(0)
	if cam.valid() {
		t.Error("valid = true with zoom 0")
	}
	ctx.SetZoom(1)
	cam.setViewport(Rect{})
	if cam.valid() {
		t.Error("valid = true with empty viewport")
	}
}

func TestCameraScrollTo(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	cam.ScrollTo(400, 300, 1.0, ease.Linear)
	if !cam.Animating() {
		t.Fatal("Animating = false after ScrollTo")
	}
	for i := 0; i < 70; i++ {
		cam.update(1.0 / 60)
	}
	if cam.Animating() {
		t.Error("Animating = true after duration")
	}
	p := ctx.Pan()
	assertNear(t, "pan X", p.X, 0)
	assertNear(t, "pan Y", p.Y, 0)

	cam.ScrollTo(500, 300, 1.0, ease.Linear)
	for i := 0; i < 70; i++ {
		cam.update(1.0 / 60)
	}
	if !approxEqual(ctx.Pan().X, -100, 1e-3) {
		t.Errorf("pan X = %v, want -100", ctx.Pan().X)
	}
}

func TestCameraZoomTo(t *testing.T) {
	ctx, cam := newTestCamera(800, 600)
	cam.ZoomTo(2, 0.5, ease.Linear)
	cam.update(0.25)
	if !approxEqual(ctx.Zoom(), 1.5, 1e-3) {
		t.Errorf("zoom midway = %v, want 1.5", ctx.Zoom())
	}
	cam.update(0.5)
	if ctx.Zoom() != 2 || cam.Animating() {
		t.Errorf("zoom = %v animating = %v, want 2 false", ctx.Zoom(), cam.Animating())
	}
}
