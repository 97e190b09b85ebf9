package tacmap

import "github.com/google/uuid"

// DefaultZoneOpacity is the opacity of zones created by AddNewZone.
const DefaultZoneOpacity = 0.5

// Zone is a colored overlay area on the map (difficult terrain, an area of
// effect, a balcony). Like Token, its logical rectangle is the persisted truth
// and screen/screenSize are caches kept current by the owning session.
type Zone struct {
	id        uuid.UUID
	x, y      float64
	width     float64
	height    float64
	elevation int
	shape     ShapeKind
	colorHex  string
	color     Color
	opacity   float64
	name      string
	details   string
	points    []Vec2 // polygon vertices, logical units relative to (x, y)

	screen     Vec2
	screenSize Vec2

	record  *ZoneRecord
	session *Session
	removed bool
}

// newZone hydrates a zone from rec, keeping rec as its backing record.
func newZone(rec *ZoneRecord) *Zone {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.ShapeType == "" {
		rec.ShapeType = ShapeRectangle.String()
	}
	z := &Zone{
		id:        rec.ID,
		x:         rec.X,
		y:         rec.Y,
		width:     rec.Width,
		height:    rec.Height,
		elevation: rec.Elevation,
		shape:     ParseShapeKind(rec.ShapeType),
		colorHex:  rec.ColorHex,
		color:     ParseHexColor(rec.ColorHex),
		opacity:   rec.Opacity,
		name:      rec.Name,
		details:   rec.Details,
		record:    rec,
	}
	if len(rec.PolygonPoints) > 0 {
		z.points = make([]Vec2, len(rec.PolygonPoints))
		for i, p := range rec.PolygonPoints {
			z.points[i] = Vec2{p.X, p.Y}
		}
	}
	return z
}

// ID returns the zone's identity.
func (z *Zone) ID() uuid.UUID { return z.id }

// X returns the logical x of the top-left corner.
func (z *Zone) X() float64 { return z.x }

// Y returns the logical y of the top-left corner.
func (z *Zone) Y() float64 { return z.y }

// Position returns the logical top-left corner.
func (z *Zone) Position() Vec2 { return Vec2{z.x, z.y} }

// Width returns the logical width.
func (z *Zone) Width() float64 { return z.width }

// Height returns the logical height.
func (z *Zone) Height() float64 { return z.height }

// Elevation returns the elevation of the zone's base.
func (z *Zone) Elevation() int { return z.elevation }

// Shape returns the outline kind.
func (z *Zone) Shape() ShapeKind { return z.shape }

// ColorHex returns the color as recorded.
func (z *Zone) ColorHex() string { return z.colorHex }

// Opacity returns the overlay opacity in [0, 1].
func (z *Zone) Opacity() float64 { return z.opacity }

// Name returns the display name.
func (z *Zone) Name() string { return z.name }

// Details returns the hover text.
func (z *Zone) Details() string { return z.details }

// Points returns a copy of the polygon vertices.
func (z *Zone) Points() []Vec2 {
	if len(z.points) == 0 {
		return nil
	}
	out := make([]Vec2, len(z.points))
	copy(out, z.points)
	return out
}

// ScreenPosition returns the cached map-pixel position of the top-left corner.
func (z *Zone) ScreenPosition() Vec2 { return z.screen }

// ScreenSize returns the cached map-pixel extent.
func (z *Zone) ScreenSize() Vec2 { return z.screenSize }

// Removed reports whether the zone has been removed from its session.
func (z *Zone) Removed() bool { return z.removed }

// DepthKey orders zones for painting: smaller keys are further back.
func (z *Zone) DepthKey() float64 { return z.y + float64(z.elevation) }

// Bounds returns the cached footprint in map pixels.
func (z *Zone) Bounds() Rect {
	return Rect{X: z.screen.X, Y: z.screen.Y, Width: z.screenSize.X, Height: z.screenSize.Y}
}

// Fill returns the parsed color with the zone opacity applied to alpha.
func (z *Zone) Fill() Color {
	c := z.color
	c.A *= clamp01(z.opacity)
	return c
}

// Record returns a copy of the persisted record.
func (z *Zone) Record() ZoneRecord {
	if z.record == nil {
		return ZoneRecord{}
	}
	r := *z.record
	r.PolygonPoints = append([]PointRecord(nil), z.record.PolygonPoints...)
	return r
}

// SetPosition moves the zone's top-left corner to a logical position.
func (z *Zone) SetPosition(x, y float64) {
	debugCheckRemoved(z.removed, "SetPosition", z.name)
	if z.x == x && z.y == y {
		return
	}
	z.x, z.y = x, y
	z.changed(EntityPosition)
}

// SetX sets the logical x of the top-left corner.
func (z *Zone) SetX(x float64) { z.SetPosition(x, z.y) }

// SetY sets the logical y of the top-left corner.
func (z *Zone) SetY(y float64) { z.SetPosition(z.x, y) }

// SetSize sets the logical extent.
func (z *Zone) SetSize(w, h float64) {
	debugCheckRemoved(z.removed, "SetSize", z.name)
	if z.width == w && z.height == h {
		return
	}
	z.width, z.height = w, h
	z.changed(EntitySize)
}

// SetWidth sets the logical width.
func (z *Zone) SetWidth(w float64) { z.SetSize(w, z.height) }

// SetHeight sets the logical height.
func (z *Zone) SetHeight(h float64) { z.SetSize(z.width, h) }

// SetElevation sets the elevation of the zone's base.
func (z *Zone) SetElevation(e int) {
	debugCheckRemoved(z.removed, "SetElevation", z.name)
	if z.elevation == e {
		return
	}
	z.elevation = e
	z.changed(EntityElevation)
}

// SetShape sets the outline kind.
func (z *Zone) SetShape(s ShapeKind) {
	if z.shape == s {
		return
	}
	z.shape = s
	z.changed(EntityShape)
}

// SetColorHex sets the overlay color. Unparseable values render transparent.
func (z *Zone) SetColorHex(hex string) {
	if z.colorHex == hex {
		return
	}
	z.colorHex = hex
	z.color = ParseHexColor(hex)
	z.changed(EntityColor)
}

// SetOpacity sets the overlay opacity.
func (z *Zone) SetOpacity(o float64) {
	if z.opacity == o {
		return
	}
	z.opacity = o
	z.changed(EntityOpacity)
}

// SetName sets the display name.
func (z *Zone) SetName(name string) {
	if z.name == name {
		return
	}
	z.name = name
	z.changed(EntityName)
}

// SetDetails sets the hover text.
func (z *Zone) SetDetails(details string) {
	if z.details == details {
		return
	}
	z.details = details
	z.changed(EntityDetails)
}

// SetPoints replaces the polygon vertices (logical units relative to the
// zone's top-left corner).
func (z *Zone) SetPoints(points []Vec2) {
	z.points = append(z.points[:0:0], points...)
	z.changed(EntityPoints)
}

func (z *Zone) changed(f EntityField) {
	if z.session != nil {
		z.session.zoneChanged(z, f)
	}
}

// writeThrough copies field f into the backing record.
func (z *Zone) writeThrough(f EntityField) {
	r := z.record
	if r == nil {
		return
	}
	switch f {
	case EntityPosition:
		r.X, r.Y = z.x, z.y
	case EntitySize:
		r.Width, r.Height = z.width, z.height
	case EntityElevation:
		r.Elevation = z.elevation
	case EntityShape:
		r.ShapeType = z.shape.String()
	case EntityColor:
		r.ColorHex = z.colorHex
	case EntityOpacity:
		r.Opacity = z.opacity
	case EntityName:
		r.Name = z.name
	case EntityDetails:
		r.Details = z.details
	case EntityPoints:
		r.PolygonPoints = r.PolygonPoints[:0]
		for _, p := range z.points {
			r.PolygonPoints = append(r.PolygonPoints, PointRecord{X: p.X, Y: p.Y})
		}
	}
}

// recompute refreshes the screen position and size caches.
func (z *Zone) recompute(ctx *MapContext) {
	z.screen.X, z.screen.Y = Project(z.x, z.y, z.elevation, ctx.gridCellSize, ctx.projection)
	z.screenSize.X, z.screenSize.Y = ProjectSize(z.width, z.height, ctx.gridCellSize, ctx.projection)
}
