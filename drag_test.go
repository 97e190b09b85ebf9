package tacmap

import "testing"

// runInjected drains the inject queue one event per frame, as Update would.
func runInjected(s *Session) {
	for len(s.injectQueue) > 0 {
		s.processInput()
	}
}

func newInputSession() *Session {
	s := NewSession()
	s.SetInputEnabled(false)
	s.Resize(800, 600)
	return s
}

func TestEndToEndIsometricDrag(t *testing.T) {
	s := NewSession()
	s.Load(MapRecord{
		GridCellSize: 50,
		Tokens:       []TokenRecord{{Name: "Hero", X: 2, Y: 2, Scale: 1, TokenType: "Player"}},
	})
	tok := s.Tokens()[0]
	if got := tok.ScreenPosition(); got != (Vec2{100, 100}) {
		t.Fatalf("orthogonal screen = %v, want (100,100)", got)
	}

	s.Context().SetIsometric(true)
	if got := tok.ScreenPosition(); got != (Vec2{0, 200}) {
		t.Fatalf("isometric screen = %v, want (0,200)", got)
	}

	// Drag by (25, -50) to screen (25, 150) at elevation 0.
	s.DragToken(tok, 25, -50)
	assertNear(t, "x", tok.X(), 2)
	assertNear(t, "y", tok.Y(), 1)
	if got := tok.ScreenPosition(); !approxEqual(got.X, 25, epsilon) || !approxEqual(got.Y, 150, epsilon) {
		t.Errorf("screen after drag = %v, want (25,150)", got)
	}
	if rec := tok.Record(); !approxEqual(rec.X, 2, epsilon) || !approxEqual(rec.Y, 1, epsilon) {
		t.Errorf("record = (%v,%v), want (2,1)", rec.X, rec.Y)
	}
}

func TestDragKeepsElevation(t *testing.T) {
	s := NewSession()
	s.ctx.SetIsometric(true)
	tok := s.AddToken(TokenRecord{X: 3, Y: 1, Elevation: 2})
	start := tok.ScreenPosition()

	s.DragToken(tok, -12.5, 40)
	if tok.Elevation() != 2 {
		t.Errorf("elevation = %d, want 2", tok.Elevation())
	}
	got := tok.ScreenPosition()
	if !approxEqual(got.X, start.X-12.5, epsilon) || !approxEqual(got.Y, start.Y+40, epsilon) {
		t.Errorf("screen = %v, want %v", got, Vec2{start.X - 12.5, start.Y + 40})
	}
}

func TestDragSkippedWithoutCellSize(t *testing.T) {
	s := NewSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})
	z := s.AddNewZone()
	s.ctx.SetGridCellSize(0)

	s.DragToken(tok, 30, 30)
	s.MoveZone(z, 100, 100)
	s.ResizeZone(z, 100, 100)
	if tok.X() != 2 || tok.Y() != 2 {
		t.Errorf("token moved to (%v,%v)", tok.X(), tok.Y())
	}
	if z.X() != 0 || z.Width() != 1 {
		t.Errorf("zone changed: pos %v size (%v,%v)", z.Position(), z.Width(), z.Height())
	}
}

func TestResizeZone(t *testing.T) {
	s := NewSession()
	z := s.AddNewZone()
	s.ResizeZone(z, 100, 25)
	assertNear(t, "width", z.Width(), 2)
	assertNear(t, "height", z.Height(), 0.5)
	if got := z.ScreenSize(); got != (Vec2{100, 25}) {
		t.Errorf("screenSize = %v, want (100,25)", got)
	}
}

func TestMoveZone(t *testing.T) {
	s := NewSession()
	s.ctx.SetIsometric(true)
	z := s.AddNewZone()
	s.MoveZone(z, 25, 150)
	assertNear(t, "x", z.X(), 2)
	assertNear(t, "y", z.Y(), 1)
}

func TestPointerDragMovesToken(t *testing.T) {
	s := newInputSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})

	var starts, drags, ends int
	s.OnDragStart(func(c DragContext) {
		starts++
		if c.Token != tok || c.Panning() {
			t.Errorf("drag start context = %+v", c)
		}
	})
	s.OnDrag(func(DragContext) { drags++ })
	s.OnDragEnd(func(DragContext) { ends++ })

	s.InjectDrag(110, 110, 160, 135, 4)
	runInjected(s)

	assertNear(t, "x", tok.X(), 3)
	assertNear(t, "y", tok.Y(), 2.5)
	if starts != 1 || drags != 2 || ends != 1 {
		t.Errorf("drag events = (%d, %d, %d), want (1, 2, 1)", starts, drags, ends)
	}
	if s.ctx.Pan() != (Vec2{}) {
		t.Errorf("pan = %v, want unchanged", s.ctx.Pan())
	}
}

func TestPointerDragIsometric(t *testing.T) {
	s := newInputSession()
	s.ctx.SetIsometric(true)
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})

	s.InjectDrag(10, 210, 35, 160, 3)
	runInjected(s)
	assertNear(t, "x", tok.X(), 2)
	assertNear(t, "y", tok.Y(), 1)
}

func TestPointerDragUnderZoom(t *testing.T) {
	s := newInputSession()
	s.ctx.SetZoom(2)
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})

	// Token covers surface (200,200)-(300,300); 100 surface px is 1 cell.
	s.InjectDrag(250, 250, 350, 250, 3)
	runInjected(s)
	assertNear(t, "x", tok.X(), 3)
	assertNear(t, "y", tok.Y(), 2)
}

func TestDragDeadZone(t *testing.T) {
	s := newInputSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})
	started := false
	s.OnDragStart(func(DragContext) { started = true })

	s.InjectDrag(110, 110, 113, 110, 3)
	runInjected(s)
	if started {
		t.Error("drag started inside the dead zone")
	}
	if tok.X() != 2 {
		t.Errorf("x = %v, want 2", tok.X())
	}
}

func TestSnapToGridOnDrop(t *testing.T) {
	s := newInputSession()
	s.SetSnapToGrid(true)
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})

	s.InjectDrag(110, 110, 170, 120, 3)
	runInjected(s)
	// Unsnapped drop: (3.2, 2.2).
	if tok.X() != 3 || tok.Y() != 2 {
		t.Errorf("position = (%v,%v), want (3,2)", tok.X(), tok.Y())
	}
}

func TestRightDragPans(t *testing.T) {
	s := newInputSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})

	s.InjectButtonDrag(120, 120, 170, 140, 3, MouseButtonRight)
	runInjected(s)
	if p := s.ctx.Pan(); p != (Vec2{50, 20}) {
		t.Errorf("pan = %v, want (50,20)", p)
	}
	if tok.X() != 2 || tok.Y() != 2 {
		t.Errorf("token moved to (%v,%v)", tok.X(), tok.Y())
	}
}

func TestLeftDragOnEmptyPans(t *testing.T) {
	s := newInputSession()
	s.ctx.SetZoom(2)
	var panning bool
	s.OnDragEnd(func(c DragContext) { panning = c.Panning() })

	s.InjectDrag(500, 500, 540, 500, 3)
	runInjected(s)
	if p := s.ctx.Pan(); !approxEqual(p.X, 20, epsilon) || p.Y != 0 {
		t.Errorf("pan = %v, want (20,0)", p)
	}
	if !panning {
		t.Error("drag end context not marked as panning")
	}
}

func TestClickSelects(t *testing.T) {
	s := newInputSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})
	z := s.AddZone(ZoneRecord{X: 5, Y: 5, Width: 2, Height: 2, ColorHex: "#FF0000", Opacity: 0.5})

	s.InjectClick(120, 120)
	runInjected(s)
	if !s.Selected(tok.ID()) {
		t.Error("token not selected after click")
	}

	s.InjectClick(300, 300)
	runInjected(s)
	if s.Selected(tok.ID()) || !s.Selected(z.ID()) {
		t.Error("zone click did not move the selection")
	}

	s.InjectClick(700, 50)
	runInjected(s)
	if s.Selected(z.ID()) {
		t.Error("click on empty space kept the selection")
	}
}

func TestHitTestTopmost(t *testing.T) {
	s := newInputSession()
	back := s.AddToken(TokenRecord{X: 2, Y: 2, Scale: 2})
	front := s.AddToken(TokenRecord{X: 2.5, Y: 2.5})
	s.AddZone(ZoneRecord{X: 0, Y: 0, Width: 10, Height: 10})

	tok, z := s.hitTest(130, 130)
	if tok != front || z != nil {
		t.Errorf("hit = (%v, %v), want front token", tok, z)
	}
	tok, _ = s.hitTest(105, 105)
	if tok != back {
		t.Errorf("hit at (105,105) = %v, want back token", tok)
	}
	tok, z = s.hitTest(400, 400)
	if tok != nil || z == nil {
		t.Error("hit at (400,400) should find only the zone")
	}
}

func TestWheelZoomClamped(t *testing.T) {
	s := newInputSession()
	s.InjectWheel(400, 300, 1)
	runInjected(s)
	assertNear(t, "zoom", s.ctx.Zoom(), defaultZoomStep)

	s.InjectWheel(400, 300, 100)
	runInjected(s)
	if s.ctx.Zoom() != defaultMaxZoom {
		t.Errorf("zoom = %v, want %v", s.ctx.Zoom(), defaultMaxZoom)
	}
	s.InjectWheel(400, 300, -500)
	runInjected(s)
	if s.ctx.Zoom() != defaultMinZoom {
		t.Errorf("zoom = %v, want %v", s.ctx.Zoom(), defaultMinZoom)
	}
}

func TestRemoveTokenDuringDrag(t *testing.T) {
	s := newInputSession()
	tok := s.AddToken(TokenRecord{X: 2, Y: 2})
	s.InjectPress(110, 110)
	s.InjectMove(140, 110)
	runInjected(s)
	if s.pointer.dragToken != tok {
		t.Fatal("token not grabbed")
	}
	s.RemoveToken(tok)
	if s.pointer.dragToken != nil {
		t.Error("removed token still held by the pointer")
	}
	s.InjectMove(170, 110)
	s.InjectRelease(170, 110)
	runInjected(s)
	assertNear(t, "x after removal", tok.X(), 2.6)
}
