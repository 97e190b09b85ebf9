package tacmap

// DefaultGridCellSize is the cell size, in map pixels, of a fresh context.
const DefaultGridCellSize = 50.0

// MapContext is the session-level view state: grid, projection and camera.
// Every field is read through a getter and written through a setter; a setter
// that changes its field notifies OnChange subscribers synchronously, in
// registration order, before it returns.
type MapContext struct {
	gridCellSize    float64
	projection      Projection
	gridVisible     bool
	gridType        GridType
	pan             Vec2
	zoom            float64
	rotation        float64 // degrees
	mapImagePath    string
	backgroundLayer int

	handlers handlerRegistry
}

// NewMapContext returns a context with a 50px square grid, orthogonal
// projection and an identity camera.
func NewMapContext() *MapContext {
	return &MapContext{
		gridCellSize: DefaultGridCellSize,
		projection:   ProjectionOrthogonal,
		gridVisible:  true,
		gridType:     GridSquare,
		zoom:         1,
	}
}

// OnChange registers fn to run after any field changes.
func (c *MapContext) OnChange(fn func(ContextField)) CallbackHandle {
	id := c.handlers.newID()
	c.handlers.context = append(c.handlers.context, handler[func(ContextField)]{id: id, fn: fn})
	return CallbackHandle{id: id, reg: &c.handlers, event: EventContextChange}
}

func (c *MapContext) notify(f ContextField) {
	for _, h := range c.handlers.context {
		h.fn(f)
	}
}

// GridCellSize returns the size of one grid cell in map pixels.
func (c *MapContext) GridCellSize() float64 { return c.gridCellSize }

// Projection returns the active projection mode.
func (c *MapContext) Projection() Projection { return c.projection }

// Isometric reports whether the isometric projection is active.
func (c *MapContext) Isometric() bool { return c.projection == ProjectionIsometric }

// GridVisible reports whether the grid overlay is enabled.
func (c *MapContext) GridVisible() bool { return c.gridVisible }

// GridType returns the grid overlay style.
func (c *MapContext) GridType() GridType { return c.gridType }

// Pan returns the camera pan in map pixels.
func (c *MapContext) Pan() Vec2 { return c.pan }

// Zoom returns the camera zoom factor.
func (c *MapContext) Zoom() float64 { return c.zoom }

// Rotation returns the camera rotation in degrees, clockwise.
func (c *MapContext) Rotation() float64 { return c.rotation }

// MapImagePath returns the background image path recorded with the map.
func (c *MapContext) MapImagePath() string { return c.mapImagePath }

// BackgroundLayer returns the active background layer index.
func (c *MapContext) BackgroundLayer() int { return c.backgroundLayer }

// SetGridCellSize sets the cell size. Non-positive values are stored as given;
// the render pipeline and projector skip work while the size is invalid.
func (c *MapContext) SetGridCellSize(size float64) {
	if c.gridCellSize == size {
		return
	}
	c.gridCellSize = size
	c.notify(ContextGridCellSize)
}

// SetProjection switches the projection mode.
func (c *MapContext) SetProjection(p Projection) {
	p = checkProjection(p)
	if c.projection == p {
		return
	}
	c.projection = p
	c.notify(ContextProjection)
}

// SetIsometric switches between the isometric and orthogonal projections.
func (c *MapContext) SetIsometric(iso bool) {
	if iso {
		c.SetProjection(ProjectionIsometric)
	} else {
		c.SetProjection(ProjectionOrthogonal)
	}
}

// SetGridVisible toggles the grid overlay.
func (c *MapContext) SetGridVisible(visible bool) {
	if c.gridVisible == visible {
		return
	}
	c.gridVisible = visible
	c.notify(ContextGridVisible)
}

// SetGridType sets the grid overlay style.
func (c *MapContext) SetGridType(t GridType) {
	if c.gridType == t {
		return
	}
	c.gridType = t
	c.notify(ContextGridType)
}

// SetPan sets the camera pan in map pixels.
func (c *MapContext) SetPan(x, y float64) {
	if c.pan.X == x && c.pan.Y == y {
		return
	}
	c.pan = Vec2{x, y}
	c.notify(ContextPan)
}

// SetZoom sets the camera zoom. A non-positive zoom is stored but suppresses rendering.
func (c *MapContext) SetZoom(z float64) {
	if c.zoom == z {
		return
	}
	c.zoom = z
	c.notify(ContextZoom)
}

// SetRotation sets the camera rotation in degrees, clockwise.
func (c *MapContext) SetRotation(deg float64) {
	if c.rotation == deg {
		return
	}
	c.rotation = deg
	c.notify(ContextRotation)
}

// SetMapImagePath records the background image path.
func (c *MapContext) SetMapImagePath(path string) {
	if c.mapImagePath == path {
		return
	}
	c.mapImagePath = path
	c.notify(ContextMapImage)
}

// SetBackgroundLayer selects the background layer drawn behind the grid.
// Out-of-range indices are allowed; nothing is drawn for them.
func (c *MapContext) SetBackgroundLayer(index int) {
	if c.backgroundLayer == index {
		return
	}
	c.backgroundLayer = index
	c.notify(ContextBackgroundLayer)
}
