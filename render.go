package tacmap

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandImage   CommandType = iota // DrawImage with Transform
	CommandLine                       // straight stroke from Points[0] to Points[1]
	CommandFill                       // filled closed polygon through Points
	CommandOutline                    // stroked closed polygon through Points
	CommandLabel                      // debug text at Points[0]
)

// RenderLayer is the coarse paint order; within a layer commands are ordered
// by depth.
type RenderLayer uint8

const (
	LayerBackground RenderLayer = iota // active background image
	LayerGrid                          // grid overlay
	LayerEntities                      // zones and tokens
	LayerLabels                        // token names
)

// Segment counts for curved outlines.
const (
	ellipseSegments = 48
	circleSegments  = 32
)

// maxGridLines caps the lines emitted per axis per frame.
const maxGridLines = 4096

// Render palette.
var (
	gridLineColor  = Color{R: 0.83, G: 0.83, B: 0.83, A: 0.5}
	tokenRimColor  = Color{R: 0.08, G: 0.08, B: 0.1, A: 0.9}
	selectionColor = Color{R: 1, G: 0.85, B: 0.2, A: 1}
)

// RenderCommand is a single draw instruction. Geometry is already in surface
// pixels: the camera's view matrix is applied once per frame while commands
// are emitted.
type RenderCommand struct {
	Type  CommandType
	Layer RenderLayer
	// Depth orders commands within a layer (ascending). For entities it is
	// the depth key y + elevation.
	Depth float64
	// Transform maps image pixels to surface pixels (CommandImage only).
	Transform [6]float64
	Points    []Vec2
	Color     Color
	Width     float64 // stroke width for lines and outlines
	Text      string  // CommandLabel only
	Entity    uuid.UUID

	image *ebiten.Image
	order int // emission order, for stable sort
}

// Render draws one frame of the session into target, treating the surface
// as w×h pixels. Degenerate sizes, a non-positive zoom or an invalid grid
// skip the affected work rather than failing.
func (s *Session) Render(target *ebiten.Image, w, h int) {
	var stats debugStats
	var t0 time.Time
	if s.debug {
		t0 = time.Now()
	}

	if !s.buildFrame(w, h) {
		return
	}

	if s.debug {
		stats.buildTime = time.Since(t0)
		stats.commandCount = len(s.commands)
		stats.recomputeCount = s.recomputeCount
		stats.recomputedEntities = s.recomputed.Size()
		t0 = time.Now()
	}

	s.submitCommands(target)

	if s.debug {
		stats.submitTime = time.Since(t0)
		s.debugLog(stats)
	}
	s.invalidated = false
	s.resetRecomputeStats()
}

// buildFrame fills s.commands for a w×h surface and sorts them into paint
// order. It reports false when there is nothing to draw.
func (s *Session) buildFrame(w, h int) bool {
	s.commands = s.commands[:0]
	s.pointBuf = s.pointBuf[:0]
	if w <= 0 || h <= 0 {
		return false
	}
	s.Resize(w, h)
	if !s.camera.valid() {
		return false
	}

	view := s.camera.computeViewMatrix()
	order := 0
	s.emitBackground(view, &order)
	s.emitGrid(view, &order)
	s.emitEntities(view, &order)
	s.mergeSort()
	return true
}

// --- Emission ---

// emitBackground stretches the active layer over the viewport rectangle.
func (s *Session) emitBackground(view [6]float64, order *int) {
	img := s.layers.At(s.ctx.backgroundLayer)
	if img == nil {
		return
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return
	}
	local := scaleAffine(s.viewport.Width/float64(b.Dx()), s.viewport.Height/float64(b.Dy()))
	*order++
	s.commands = append(s.commands, RenderCommand{
		Type:      CommandImage,
		Layer:     LayerBackground,
		Transform: multiplyAffine(view, local),
		Color:     ColorWhite,
		image:     img,
		order:     *order,
	})
}

// emitGrid emits one line per multiple of the cell size across the visible
// map area. Only the orthogonal square grid is drawn.
func (s *Session) emitGrid(view [6]float64, order *int) {
	ctx := s.ctx
	cs := ctx.gridCellSize
	if !ctx.gridVisible || ctx.gridType == GridNone || cs <= 0 || ctx.projection != ProjectionOrthogonal {
		return
	}
	vis := s.camera.VisibleBounds()
	right := vis.X + vis.Width
	bottom := vis.Y + vis.Height

	k0 := math.Ceil(vis.X / cs)
	for i := 0; i < maxGridLines; i++ {
		x := (k0 + float64(i)) * cs
		if x > right {
			break
		}
		s.emitGridLine(view, x, vis.Y, x, bottom, order)
	}
	k0 = math.Ceil(vis.Y / cs)
	for i := 0; i < maxGridLines; i++ {
		y := (k0 + float64(i)) * cs
		if y > bottom {
			break
		}
		s.emitGridLine(view, vis.X, y, right, y, order)
	}
}

func (s *Session) emitGridLine(view [6]float64, x0, y0, x1, y1 float64, order *int) {
	sx0, sy0 := transformPoint(view, x0, y0)
	sx1, sy1 := transformPoint(view, x1, y1)
	// Axis-aligned lines sit on pixel centers so a 1px stroke stays crisp.
	if math.Abs(sx0-sx1) < 1e-6 {
		sx0 = snapHalf(sx0)
		sx1 = sx0
	} else if math.Abs(sy0-sy1) < 1e-6 {
		sy0 = snapHalf(sy0)
		sy1 = sy0
	}
	*order++
	s.commands = append(s.commands, RenderCommand{
		Type:   CommandLine,
		Layer:  LayerGrid,
		Points: s.appendPoints(Vec2{sx0, sy0}, Vec2{sx1, sy1}),
		Color:  gridLineColor,
		Width:  1,
		order:  *order,
	})
}

func snapHalf(v float64) float64 {
	return math.Round(v) - 0.5
}

// emitEntities emits zones, then tokens. The sort orders them by depth key;
// on equal keys zones stay beneath tokens.
func (s *Session) emitEntities(view [6]float64, order *int) {
	for _, z := range s.zones {
		s.emitZone(view, z, order)
	}
	for _, t := range s.tokens {
		s.emitToken(view, t, order)
	}
}

func (s *Session) emitZone(view [6]float64, z *Zone, order *int) {
	pos, size := z.screen, z.screenSize
	var pts []Vec2
	switch z.shape {
	case ShapeEllipse:
		if size.X <= 0 || size.Y <= 0 {
			return
		}
		pts = s.appendEllipse(view, pos.X+size.X/2, pos.Y+size.Y/2, size.X/2, size.Y/2, ellipseSegments)
	case ShapePolygon:
		if len(z.points) < 3 || s.ctx.gridCellSize <= 0 {
			return
		}
		cs := s.ctx.gridCellSize
		start := len(s.pointBuf)
		for _, p := range z.points {
			x, y := transformPoint(view, pos.X+p.X*cs, pos.Y+p.Y*cs)
			s.pointBuf = append(s.pointBuf, Vec2{x, y})
		}
		pts = s.pointBuf[start:len(s.pointBuf):len(s.pointBuf)]
	default:
		if size.X <= 0 || size.Y <= 0 {
			return
		}
		pts = s.appendRect(view, pos.X, pos.Y, size.X, size.Y)
	}

	depth := z.DepthKey()
	fill := z.Fill()
	rim := fill
	rim.A = clamp01(fill.A * 2)

	*order++
	s.commands = append(s.commands, RenderCommand{
		Type: CommandFill, Layer: LayerEntities, Depth: depth,
		Points: pts, Color: fill, Entity: z.id, order: *order,
	})
	*order++
	s.commands = append(s.commands, RenderCommand{
		Type: CommandOutline, Layer: LayerEntities, Depth: depth,
		Points: pts, Color: rim, Width: 1, Entity: z.id, order: *order,
	})
	if s.selected.Has(z.id) {
		*order++
		s.commands = append(s.commands, RenderCommand{
			Type: CommandOutline, Layer: LayerEntities, Depth: depth,
			Points: pts, Color: selectionColor, Width: 2, Entity: z.id, order: *order,
		})
	}
}

func (s *Session) emitToken(view [6]float64, t *Token, order *int) {
	size := t.PixelSize()
	if size <= 0 {
		return
	}
	depth := t.DepthKey()
	pos := t.screen

	var rim []Vec2
	if t.image != nil {
		b := t.image.Bounds()
		if b.Dx() > 0 && b.Dy() > 0 {
			local := multiplyAffine(translateAffine(pos.X, pos.Y),
				scaleAffine(size/float64(b.Dx()), size/float64(b.Dy())))
			*order++
			s.commands = append(s.commands, RenderCommand{
				Type: CommandImage, Layer: LayerEntities, Depth: depth,
				Transform: multiplyAffine(view, local), Color: ColorWhite,
				Entity: t.id, image: t.image, order: *order,
			})
		}
		rim = s.appendRect(view, pos.X, pos.Y, size, size)
	} else {
		r := size / 2
		rim = s.appendEllipse(view, pos.X+r, pos.Y+r, r, r, circleSegments)
		*order++
		s.commands = append(s.commands, RenderCommand{
			Type: CommandFill, Layer: LayerEntities, Depth: depth,
			Points: rim, Color: tokenKindColor(t.kind), Entity: t.id, order: *order,
		})
		*order++
		s.commands = append(s.commands, RenderCommand{
			Type: CommandOutline, Layer: LayerEntities, Depth: depth,
			Points: rim, Color: tokenRimColor, Width: 1.5, Entity: t.id, order: *order,
		})
	}
	if s.selected.Has(t.id) {
		*order++
		s.commands = append(s.commands, RenderCommand{
			Type: CommandOutline, Layer: LayerEntities, Depth: depth,
			Points: rim, Color: selectionColor, Width: 2, Entity: t.id, order: *order,
		})
	}
	if s.showLabels && t.name != "" {
		lx, ly := transformPoint(view, pos.X, pos.Y+size)
		*order++
		s.commands = append(s.commands, RenderCommand{
			Type: CommandLabel, Layer: LayerLabels, Depth: depth,
			Points: s.appendPoints(Vec2{lx, ly}), Text: t.name, Entity: t.id, order: *order,
		})
	}
}

// --- Geometry buffers ---

// appendPoints copies pts into the frame's point buffer and returns the
// stored slice. Earlier slices stay valid when the buffer grows.
func (s *Session) appendPoints(pts ...Vec2) []Vec2 {
	start := len(s.pointBuf)
	s.pointBuf = append(s.pointBuf, pts...)
	return s.pointBuf[start:len(s.pointBuf):len(s.pointBuf)]
}

func (s *Session) appendRect(view [6]float64, x, y, w, h float64) []Vec2 {
	x0, y0 := transformPoint(view, x, y)
	x1, y1 := transformPoint(view, x+w, y)
	x2, y2 := transformPoint(view, x+w, y+h)
	x3, y3 := transformPoint(view, x, y+h)
	return s.appendPoints(Vec2{x0, y0}, Vec2{x1, y1}, Vec2{x2, y2}, Vec2{x3, y3})
}

func (s *Session) appendEllipse(view [6]float64, cx, cy, rx, ry float64, segments int) []Vec2 {
	start := len(s.pointBuf)
	for i := 0; i < segments; i++ {
		sin, cos := math.Sincos(2 * math.Pi * float64(i) / float64(segments))
		x, y := transformPoint(view, cx+rx*cos, cy+ry*sin)
		s.pointBuf = append(s.pointBuf, Vec2{x, y})
	}
	return s.pointBuf[start:len(s.pointBuf):len(s.pointBuf)]
}

// --- Sorting ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
func commandLessOrEqual(a, b RenderCommand) bool {
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	if a.Depth != b.Depth {
		return a.Depth < b.Depth
	}
	return a.order <= b.order
}

// mergeSort sorts s.commands in-place using s.sortBuf as scratch space.
// Bottom-up merge sort: stable, and allocation-free once the sort buffer
// reaches its high-water mark.
func (s *Session) mergeSort() {
	n := len(s.commands)
	if n <= 1 {
		return
	}
	if cap(s.sortBuf) < n {
		s.sortBuf = make([]RenderCommand, n)
	}
	s.sortBuf = s.sortBuf[:n]

	a := s.commands
	b := s.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(a, b, lo, mid, hi)
		}
		a, b = b, a
		swapped = !swapped
	}

	if swapped {
		copy(s.commands, s.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(src[i], src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], src[i:mid])
	copy(dst[k:], src[j:hi])
}
