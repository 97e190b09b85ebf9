package tacmap

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
)

// Token is a placed piece on the map. Its logical fields are the persisted
// truth; screen is a cache that the owning session keeps equal to
// Project(x, y, elevation) under the current context.
//
// A Token belongs to at most one Session. After removal it keeps its values
// but setters no longer propagate.
type Token struct {
	id        uuid.UUID
	x, y      float64
	elevation int
	scale     float64
	name      string
	details   string
	imagePath string
	kind      TokenKind

	screen Vec2

	// record is the persisted backing record, updated by write-through.
	record *TokenRecord
	// session is a non-owning back-reference used only for change dispatch.
	session *Session
	removed bool

	image *ebiten.Image
}

// newToken hydrates a token from rec. The token keeps rec as its backing
// record. A nil ID is replaced with a fresh one and a zero scale with 1.
func newToken(rec *TokenRecord) *Token {
	if rec.ID == uuid.Nil {
		rec.ID = uuid.New()
	}
	if rec.Scale == 0 {
		rec.Scale = 1
	}
	return &Token{
		id:        rec.ID,
		x:         rec.X,
		y:         rec.Y,
		elevation: rec.Elevation,
		scale:     rec.Scale,
		name:      rec.Name,
		details:   rec.Details,
		imagePath: rec.ImagePath,
		kind:      ParseTokenKind(rec.TokenType),
		record:    rec,
	}
}

// ID returns the token's identity.
func (t *Token) ID() uuid.UUID { return t.id }

// X returns the logical x coordinate.
func (t *Token) X() float64 { return t.x }

// Y returns the logical y coordinate.
func (t *Token) Y() float64 { return t.y }

// Position returns the logical position.
func (t *Token) Position() Vec2 { return Vec2{t.x, t.y} }

// Elevation returns the logical elevation.
func (t *Token) Elevation() int { return t.elevation }

// Scale returns the size multiplier; 1 covers one grid cell.
func (t *Token) Scale() float64 { return t.scale }

// Name returns the display name.
func (t *Token) Name() string { return t.name }

// Details returns the hover text.
func (t *Token) Details() string { return t.details }

// ImagePath returns the path of the token artwork.
func (t *Token) ImagePath() string { return t.imagePath }

// Kind returns the token classification.
func (t *Token) Kind() TokenKind { return t.kind }

// ScreenPosition returns the cached map-pixel position of the token's top-left corner.
func (t *Token) ScreenPosition() Vec2 { return t.screen }

// Image returns the artwork set with SetImage, or nil.
func (t *Token) Image() *ebiten.Image { return t.image }

// Removed reports whether the token has been removed from its session.
func (t *Token) Removed() bool { return t.removed }

// DepthKey orders tokens for painting: smaller keys are further back.
func (t *Token) DepthKey() float64 { return t.y + float64(t.elevation) }

// PixelSize returns the token's edge length in map pixels: scale times the
// grid cell size, with a 50px cell when the session has none.
func (t *Token) PixelSize() float64 {
	cell := DefaultGridCellSize
	if t.session != nil && t.session.ctx.gridCellSize > 0 {
		cell = t.session.ctx.gridCellSize
	}
	return t.scale * cell
}

// Bounds returns the token's square footprint in map pixels.
func (t *Token) Bounds() Rect {
	size := t.PixelSize()
	return Rect{X: t.screen.X, Y: t.screen.Y, Width: size, Height: size}
}

// Record returns a copy of the persisted record.
func (t *Token) Record() TokenRecord {
	if t.record == nil {
		return TokenRecord{}
	}
	return *t.record
}

// SetPosition moves the token to a logical position.
func (t *Token) SetPosition(x, y float64) {
	debugCheckRemoved(t.removed, "SetPosition", t.name)
	if t.x == x && t.y == y {
		return
	}
	t.x, t.y = x, y
	t.changed(EntityPosition)
}

// SetX sets the logical x coordinate.
func (t *Token) SetX(x float64) { t.SetPosition(x, t.y) }

// SetY sets the logical y coordinate.
func (t *Token) SetY(y float64) { t.SetPosition(t.x, y) }

// SetElevation sets the logical elevation. Negative values are allowed.
func (t *Token) SetElevation(e int) {
	debugCheckRemoved(t.removed, "SetElevation", t.name)
	if t.elevation == e {
		return
	}
	t.elevation = e
	t.changed(EntityElevation)
}

// SetScale sets the size multiplier.
func (t *Token) SetScale(s float64) {
	if t.scale == s {
		return
	}
	t.scale = s
	t.changed(EntityScale)
}

// SetName sets the display name.
func (t *Token) SetName(name string) {
	if t.name == name {
		return
	}
	t.name = name
	t.changed(EntityName)
}

// SetDetails sets the hover text.
func (t *Token) SetDetails(details string) {
	if t.details == details {
		return
	}
	t.details = details
	t.changed(EntityDetails)
}

// SetKind sets the token classification.
func (t *Token) SetKind(k TokenKind) {
	if t.kind == k {
		return
	}
	t.kind = k
	t.changed(EntityKind)
}

// SetImagePath records the artwork path. It does not load the image; see
// Session.LoadTokenImage.
func (t *Token) SetImagePath(path string) {
	if t.imagePath == path {
		return
	}
	t.imagePath = path
	t.changed(EntityImage)
}

// SetImage sets the artwork drawn for the token. A nil image falls back to a
// filled circle colored by kind.
func (t *Token) SetImage(img *ebiten.Image) {
	t.image = img
	if t.session != nil {
		t.session.Invalidate()
	}
}

func (t *Token) changed(f EntityField) {
	if t.session != nil {
		t.session.tokenChanged(t, f)
	}
}

// writeThrough copies field f into the backing record.
func (t *Token) writeThrough(f EntityField) {
	r := t.record
	if r == nil {
		return
	}
	switch f {
	case EntityPosition:
		r.X, r.Y = t.x, t.y
	case EntityElevation:
		r.Elevation = t.elevation
	case EntityScale:
		r.Scale = t.scale
	case EntityName:
		r.Name = t.name
	case EntityDetails:
		r.Details = t.details
	case EntityKind:
		r.TokenType = t.kind.String()
	case EntityImage:
		r.ImagePath = t.imagePath
	}
}

// recompute refreshes the screen cache from the logical fields.
func (t *Token) recompute(ctx *MapContext) {
	t.screen.X, t.screen.Y = Project(t.x, t.y, t.elevation, ctx.gridCellSize, ctx.projection)
}
