package tacmap

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
)

// TokenRecord is the persisted form of a Token. It never carries screen-space
// values.
type TokenRecord struct {
	ID        uuid.UUID `json:"id"`
	X         float64   `json:"x"`
	Y         float64   `json:"y"`
	Elevation int       `json:"elevation"`
	Scale     float64   `json:"scale"`
	Name      string    `json:"name"`
	Details   string    `json:"details,omitempty"`
	ImagePath string    `json:"imagePath,omitempty"`
	TokenType string    `json:"tokenType"`
}

// PointRecord is a persisted polygon vertex in logical units.
type PointRecord struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// ZoneRecord is the persisted form of a Zone.
type ZoneRecord struct {
	ID            uuid.UUID     `json:"id"`
	X             float64       `json:"x"`
	Y             float64       `json:"y"`
	Width         float64       `json:"width"`
	Height        float64       `json:"height"`
	Elevation     int           `json:"elevation"`
	ColorHex      string        `json:"colorHex"`
	Opacity       float64       `json:"opacity"`
	ShapeType     string        `json:"shapeType"`
	Name          string        `json:"name"`
	Details       string        `json:"details,omitempty"`
	PolygonPoints []PointRecord `json:"polygonPoints,omitempty"`
}

// MapRecord is a whole saved map.
type MapRecord struct {
	MapImagePath    string        `json:"mapImagePath,omitempty"`
	GridCellSize    float64       `json:"gridCellSize"`
	IsIsometricView bool          `json:"isIsometricView"`
	Tokens          []TokenRecord `json:"tokens"`
	Zones           []ZoneRecord  `json:"zones"`
}

// Load replaces the session's content with rec. Entities are hydrated with
// fresh screen caches. A map image that cannot be read is logged and
// skipped; the map still loads. Load leaves the session clean.
func (s *Session) Load(rec MapRecord) {
	s.Clear()
	s.layers.Clear()
	s.Select()

	cs := rec.GridCellSize
	if cs <= 0 {
		cs = DefaultGridCellSize
	}
	s.ctx.SetGridCellSize(cs)
	s.ctx.SetIsometric(rec.IsIsometricView)
	s.ctx.SetMapImagePath(rec.MapImagePath)
	s.ctx.SetBackgroundLayer(0)

	for _, t := range rec.Tokens {
		s.AddToken(t)
	}
	for _, z := range rec.Zones {
		s.AddZone(z)
	}

	if rec.MapImagePath != "" {
		if _, err := s.LoadLayer(rec.MapImagePath); err != nil {
			warnf("load map image: %v", err)
		}
	}
	s.dirty = false
	s.invalidated = true
}

// Snapshot returns the persisted form of the session.
func (s *Session) Snapshot() MapRecord {
	rec := MapRecord{
		MapImagePath:    s.ctx.mapImagePath,
		GridCellSize:    s.ctx.gridCellSize,
		IsIsometricView: s.ctx.Isometric(),
		Tokens:          make([]TokenRecord, 0, len(s.tokens)),
		Zones:           make([]ZoneRecord, 0, len(s.zones)),
	}
	for _, t := range s.tokens {
		rec.Tokens = append(rec.Tokens, t.Record())
	}
	for _, z := range s.zones {
		rec.Zones = append(rec.Zones, z.Record())
	}
	return rec
}

// Export writes the session as indented JSON.
func (s *Session) Export(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s.Snapshot()); err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	return nil
}

// SaveFile writes the session to path as JSON and clears the dirty flag.
func (s *Session) SaveFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save map %s: %w", path, err)
	}
	if err := s.Export(f); err != nil {
		f.Close()
		return fmt.Errorf("save map %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("save map %s: %w", path, err)
	}
	s.dirty = false
	return nil
}

// LoadFile reads a JSON map from path and loads it.
func (s *Session) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("load map %s: %w", path, err)
	}
	var rec MapRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return fmt.Errorf("load map %s: %w", path, err)
	}
	s.Load(rec)
	return nil
}
