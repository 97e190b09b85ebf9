package tacmap

import "image/color"

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at render submission time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorTransparent is returned for unparseable zone colors.
var ColorTransparent = Color{}

// toRGBA converts a Color to a premultiplied color.RGBA.
func (c Color) toRGBA() color.RGBA {
	return color.RGBA{
		R: uint8(clamp01(c.R*c.A) * 255),
		G: uint8(clamp01(c.G*c.A) * 255),
		B: uint8(clamp01(c.B*c.A) * 255),
		A: uint8(clamp01(c.A) * 255),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets, and sizes throughout the API.
type Vec2 struct {
	X, Y float64
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// Projection selects how logical grid coordinates map to map pixels.
type Projection uint8

const (
	ProjectionOrthogonal Projection = iota // direct scale by the cell size
	ProjectionIsometric                    // 2:1 skew with elevation as vertical offset
)

// String returns the projection's display name.
func (p Projection) String() string {
	switch p {
	case ProjectionOrthogonal:
		return "Orthogonal"
	case ProjectionIsometric:
		return "Isometric"
	default:
		return "Unknown"
	}
}

// GridType selects the grid overlay style.
type GridType uint8

const (
	GridNone   GridType = iota // no overlay
	GridSquare                 // square cells
)

// ShapeKind is the outline of a zone.
type ShapeKind uint8

const (
	ShapeRectangle ShapeKind = iota // axis-aligned box
	ShapeEllipse                    // ellipse inscribed in the zone box
	ShapePolygon                    // closed polygon through Zone.Points
)

// String returns the name used in persisted records.
func (s ShapeKind) String() string {
	switch s {
	case ShapeEllipse:
		return "Ellipse"
	case ShapePolygon:
		return "Polygon"
	default:
		return "Rectangle"
	}
}

// ParseShapeKind converts a persisted shape name. Unknown names map to ShapeRectangle.
func ParseShapeKind(s string) ShapeKind {
	switch s {
	case "Ellipse":
		return ShapeEllipse
	case "Polygon":
		return ShapePolygon
	default:
		return ShapeRectangle
	}
}

// TokenKind classifies a token. It picks the fallback fill color when the
// token has no image.
type TokenKind uint8

const (
	TokenPlayer   TokenKind = iota // player character
	TokenOpponent                  // hostile creature
	TokenNPC                       // neutral character
)

// String returns the name used in persisted records.
func (k TokenKind) String() string {
	switch k {
	case TokenOpponent:
		return "Opponent"
	case TokenNPC:
		return "NPC"
	default:
		return "Player"
	}
}

// ParseTokenKind converts a persisted token type. Unknown names map to TokenPlayer.
func ParseTokenKind(s string) TokenKind {
	switch s {
	case "Opponent":
		return TokenOpponent
	case "NPC":
		return TokenNPC
	default:
		return TokenPlayer
	}
}

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	MouseButtonLeft   MouseButton = iota // primary (left) mouse button
	MouseButtonRight                     // secondary (right) mouse button
	MouseButtonMiddle                    // middle mouse button (scroll wheel click)
)
