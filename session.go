package tacmap

import (
	"github.com/google/uuid"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/zyedidia/generic/mapset"
)

const defaultCommandCap = 256

// Session is one open map: it owns the MapContext, the placed tokens and
// zones, the camera, the background layers and the render and input state.
// A Session is not safe for concurrent use; call it from the Ebitengine
// Update/Draw goroutine only.
type Session struct {
	ctx    *MapContext
	tokens []*Token
	zones  []*Zone
	layers LayerStack
	camera *Camera
	store  EventStore
	debug  bool

	handlers handlerRegistry

	// dirty is set by changes to persisted state and cleared on save/load.
	dirty bool
	// invalidated is set by any change that affects the next frame.
	invalidated bool

	// Cache recomputations since the last rendered frame.
	recomputeCount int
	recomputed     mapset.Set[uuid.UUID]

	selected mapset.Set[uuid.UUID]

	// Render state
	commands   []RenderCommand
	sortBuf    []RenderCommand
	pointBuf   []Vec2
	viewport   Rect
	showLabels bool
	showHUD    bool
	hud        hudState

	// Input state
	pointer      pointerState
	dragDeadZone float64
	minZoom      float64
	maxZoom      float64
	zoomStep     float64
	snapToGrid   bool
	inputEnabled bool
	injectQueue  []syntheticPointerEvent
	testRunner   *TestRunner

	tweens     []*PositionTween
	updateFunc func() error

	// ClearColor fills the surface before each frame when its alpha is
	// non-zero.
	ClearColor Color

	// ScreenshotDir is the directory Screenshot writes PNG files to.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewSession creates an empty session with a default MapContext.
func NewSession() *Session {
	s := &Session{
		ctx:          NewMapContext(),
		recomputed:   mapset.New[uuid.UUID](),
		selected:     mapset.New[uuid.UUID](),
		commands:     make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:      make([]RenderCommand, 0, defaultCommandCap),
		showLabels:   true,
		dragDeadZone: defaultDragDeadZone,
		minZoom:      defaultMinZoom,
		maxZoom:      defaultMaxZoom,
		zoomStep:     defaultZoomStep,
		inputEnabled: true,
		invalidated:  true,
		// ScreenshotDir matches the Config default.
		ScreenshotDir: "screenshots",
	}
	s.camera = newCamera(s.ctx)
	// Propagation subscribes first so caches are current before any other
	// OnChange subscriber runs.
	s.ctx.OnChange(s.contextChanged)
	return s
}

// Context returns the session's MapContext.
func (s *Session) Context() *MapContext {
	return s.ctx
}

// Camera returns the session's camera.
func (s *Session) Camera() *Camera {
	return s.camera
}

// Layers returns the background layer stack.
func (s *Session) Layers() *LayerStack {
	return &s.layers
}

// Update processes input and advances animations. Call it from
// ebiten.Game.Update.
func (s *Session) Update() {
	dt := float32(1.0 / float64(ebiten.TPS()))

	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.camera.update(dt)
	s.updateTweens(dt)
	if s.showHUD {
		s.hud.update(float64(dt))
	}
	s.processInput()
}

// Draw renders the session into screen, sized to the screen bounds. Call it
// from ebiten.Game.Draw.
func (s *Session) Draw(screen *ebiten.Image) {
	if s.ClearColor.A > 0 {
		screen.Fill(s.ClearColor.toRGBA())
	}
	b := screen.Bounds()
	s.Render(screen, b.Dx(), b.Dy())
	if s.showHUD {
		s.drawHUD(screen)
	}
	s.flushScreenshots(screen)
}

// Resize records the host surface size. A change invalidates the frame.
func (s *Session) Resize(w, h int) {
	vp := Rect{Width: float64(w), Height: float64(h)}
	if vp == s.viewport {
		return
	}
	s.viewport = vp
	s.camera.setViewport(vp)
	s.invalidated = true
}

// Viewport returns the last size passed to Resize or Render.
func (s *Session) Viewport() Rect {
	return s.viewport
}

// Invalidate marks the next frame as needing a repaint.
func (s *Session) Invalidate() {
	s.invalidated = true
}

// NeedsRedraw reports whether anything changed since the last rendered frame.
func (s *Session) NeedsRedraw() bool {
	return s.invalidated
}

// Dirty reports whether persisted state changed since the last save or load.
func (s *Session) Dirty() bool {
	return s.dirty
}

// MarkSaved clears the dirty flag.
func (s *Session) MarkSaved() {
	s.dirty = false
}

// SetEventStore sets the optional ECS bridge.
func (s *Session) SetEventStore(store EventStore) {
	s.store = store
}

// SetShowLabels toggles token name labels.
func (s *Session) SetShowLabels(show bool) {
	if s.showLabels != show {
		s.showLabels = show
		s.invalidated = true
	}
}

// SetShowHUD toggles the status overlay drawn by Draw.
func (s *Session) SetShowHUD(show bool) {
	s.showHUD = show
}

// SetDebugMode enables or disables debug mode. When enabled, an unknown
// projection or use of a removed entity panics, and per-frame timing and
// recompute stats are logged to stderr.
func (s *Session) SetDebugMode(enabled bool) {
	s.debug = enabled
	globalDebug = enabled
}

// globalDebug mirrors the most recently set Session debug flag so that code
// without a Session pointer (the projector, entity setters) can check it.
// Only valid with a single Session.
var globalDebug bool
