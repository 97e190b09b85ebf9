package tacmap

import (
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds editor settings read from TACMAP_* environment variables.
type Config struct {
	Title        string  `env:"TACMAP_TITLE"          envDefault:"tacmap"`
	Width        int     `env:"TACMAP_WIDTH"          envDefault:"1280"`
	Height       int     `env:"TACMAP_HEIGHT"         envDefault:"800"`
	GridCellSize float64 `env:"TACMAP_GRID_CELL_SIZE" envDefault:"50"`
	Isometric    bool    `env:"TACMAP_ISOMETRIC"      envDefault:"false"`
	GridVisible  bool    `env:"TACMAP_GRID_VISIBLE"   envDefault:"true"`

	MinZoom      float64 `env:"TACMAP_MIN_ZOOM"       envDefault:"0.25"`
	MaxZoom      float64 `env:"TACMAP_MAX_ZOOM"       envDefault:"8"`
	ZoomStep     float64 `env:"TACMAP_ZOOM_STEP"      envDefault:"1.1"`
	DragDeadZone float64 `env:"TACMAP_DRAG_DEAD_ZONE" envDefault:"4"`
	SnapToGrid   bool    `env:"TACMAP_SNAP_TO_GRID"   envDefault:"false"`

	ShowLabels    bool   `env:"TACMAP_SHOW_LABELS"    envDefault:"true"`
	ShowHUD       bool   `env:"TACMAP_SHOW_HUD"       envDefault:"false"`
	Debug         bool   `env:"TACMAP_DEBUG"          envDefault:"false"`
	ScreenshotDir string `env:"TACMAP_SCREENSHOT_DIR" envDefault:"screenshots"`
	LocaleDir     string `env:"TACMAP_LOCALE_DIR"`
	Language      string `env:"TACMAP_LANGUAGE"       envDefault:"en"`
	MapFile       string `env:"TACMAP_MAP_FILE"`
}

// LoadConfig reads Config from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if cfg.GridCellSize <= 0 {
		return Config{}, fmt.Errorf("parse env: TACMAP_GRID_CELL_SIZE must be positive, got %v", cfg.GridCellSize)
	}
	if cfg.MinZoom <= 0 || cfg.MaxZoom < cfg.MinZoom {
		return Config{}, fmt.Errorf("parse env: invalid zoom range [%v, %v]", cfg.MinZoom, cfg.MaxZoom)
	}
	return cfg, nil
}

// Apply seeds s with the configured context and editor settings. It does
// not load MapFile; callers do that so they can handle the error.
func (c Config) Apply(s *Session) {
	s.SetDebugMode(c.Debug)
	s.ctx.SetGridCellSize(c.GridCellSize)
	s.ctx.SetIsometric(c.Isometric)
	s.ctx.SetGridVisible(c.GridVisible)
	s.SetZoomLimits(c.MinZoom, c.MaxZoom)
	if c.ZoomStep > 1 {
		s.zoomStep = c.ZoomStep
	}
	s.SetDragDeadZone(c.DragDeadZone)
	s.SetSnapToGrid(c.SnapToGrid)
	s.SetShowLabels(c.ShowLabels)
	s.SetShowHUD(c.ShowHUD)
	if c.ScreenshotDir != "" {
		s.ScreenshotDir = c.ScreenshotDir
	}
	LoadLocale(c.LocaleDir, c.Language)
	// Seeding is not an edit.
	s.dirty = false
}
