package tacmap

import (
	"fmt"
	"testing"
)

func TestProjectOrthogonal(t *testing.T) {
	sx, sy := Project(2, 2, 0, 50, ProjectionOrthogonal)
	assertNear(t, "sx", sx, 100)
	assertNear(t, "sy", sy, 100)

	// Elevation has no effect.
	sx, sy = Project(2, 2, 7, 50, ProjectionOrthogonal)
	assertNear(t, "elevated sx", sx, 100)
	assertNear(t, "elevated sy", sy, 100)
}

func TestProjectIsometric(t *testing.T) {
	tests := []struct {
		x, y     float64
		e        int
		cs       float64
		wantX    float64
		wantY    float64
	}{
		{2, 2, 0, 50, 0, 200},
		{2, 1, 0, 50, 25, 150},
		{1, 0, 0, 50, 25, 50},
		{0, 1, 0, 50, -25, 50},
		{2, 2, 2, 50, 0, 150},
		{3, 1, 1, 10, 10, 35},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("(%v,%v,e%d,cs%v)", tt.x, tt.y, tt.e, tt.cs), func(t *testing.T) {
			sx, sy := Project(tt.x, tt.y, tt.e, tt.cs, ProjectionIsometric)
			assertNear(t, "sx", sx, tt.wantX)
			assertNear(t, "sy", sy, tt.wantY)
		})
	}
}

func TestProjectRoundTrip(t *testing.T) {
	points := []struct {
		x, y float64
		e    int
	}{
		{0, 0, 0},
		{2, 2, 0},
		{3.25, -1.5, 2},
		{-4, 7.75, -1},
		{100, 0.125, 5},
	}
	for _, mode := range []Projection{ProjectionOrthogonal, ProjectionIsometric} {
		for _, cs := range []float64{1, 50, 237.5} {
			for _, p := range points {
				name := fmt.Sprintf("%v/cs%v/(%v,%v,%d)", mode, cs, p.x, p.y, p.e)
				t.Run(name, func(t *testing.T) {
					sx, sy := Project(p.x, p.y, p.e, cs, mode)
					x, y, ok := Unproject(sx, sy, p.e, cs, mode)
					if !ok {
						t.Fatal("Unproject ok = false, want true")
					}
					if !approxEqual(x, p.x, 1e-9) || !approxEqual(y, p.y, 1e-9) {
						t.Errorf("round trip = (%v,%v), want (%v,%v)", x, y, p.x, p.y)
					}
				})
			}
		}
	}
}

func TestProjectOrthogonalLinear(t *testing.T) {
	const cs = 40
	ax, ay := Project(1.5, 2, 0, cs, ProjectionOrthogonal)
	bx, by := Project(-3, 0.25, 0, cs, ProjectionOrthogonal)
	sx, sy := Project(1.5-3, 2+0.25, 0, cs, ProjectionOrthogonal)
	assertNear(t, "additive x", sx, ax+bx)
	assertNear(t, "additive y", sy, ay+by)

	kx, ky := Project(3*1.5, 3*2, 0, cs, ProjectionOrthogonal)
	assertNear(t, "homogeneous x", kx, 3*ax)
	assertNear(t, "homogeneous y", ky, 3*ay)
}

func TestProjectIsometricElevationMonotonic(t *testing.T) {
	prevX, prevY := Project(2, 3, 0, 50, ProjectionIsometric)
	for e := 1; e <= 5; e++ {
		sx, sy := Project(2, 3, e, 50, ProjectionIsometric)
		if sx != prevX {
			t.Errorf("e=%d: sx = %v, want %v", e, sx, prevX)
		}
		if sy >= prevY {
			t.Errorf("e=%d: sy = %v, want < %v", e, sy, prevY)
		}
		assertNear(t, "lift", prevY-sy, IsoKz*50)
		prevY = sy
	}
}

func TestUnprojectZeroCellSize(t *testing.T) {
	for _, mode := range []Projection{ProjectionOrthogonal, ProjectionIsometric} {
		for _, cs := range []float64{0, -10} {
			if _, _, ok := Unproject(100, 100, 0, cs, mode); ok {
				t.Errorf("Unproject(cs=%v, %v) ok = true, want false", cs, mode)
			}
		}
	}
	sx, sy := Project(3, 4, 1, 0, ProjectionIsometric)
	if sx != 0 || sy != 0 {
		t.Errorf("Project with cs=0 = (%v,%v), want (0,0)", sx, sy)
	}
}

func TestProjectSize(t *testing.T) {
	for _, mode := range []Projection{ProjectionOrthogonal, ProjectionIsometric} {
		w, h := ProjectSize(2, 3, 50, mode)
		assertNear(t, mode.String()+" w", w, 100)
		assertNear(t, mode.String()+" h", h, 150)
	}
}

func TestUnknownProjectionFallsBack(t *testing.T) {
	globalDebug = false
	sx, sy := Project(2, 3, 1, 10, Projection(9))
	assertNear(t, "sx", sx, 20)
	assertNear(t, "sy", sy, 30)
}

func TestUnknownProjectionPanicsInDebug(t *testing.T) {
	globalDebug = true
	defer func() {
		globalDebug = false
		if recover() == nil {
			t.Error("expected panic for unknown projection in debug mode")
		}
	}()
	Project(1, 1, 0, 10, Projection(9))
}
