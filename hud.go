package tacmap

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/leonelquinteros/gotext"
)

// hudRefreshInterval is how often the HUD text is rebuilt, in seconds.
const hudRefreshInterval = 0.5

// hudState caches the status overlay text between refreshes.
type hudState struct {
	elapsed float64
	text    string
	img     *ebiten.Image
}

func (h *hudState) update(dt float64) {
	h.elapsed += dt
}

// hudLines builds the overlay text. Strings go through gotext so a loaded
// locale can translate them; without one they print as written.
func (s *Session) hudLines() string {
	ctx := s.ctx
	var b strings.Builder
	b.WriteString(gotext.Get("FPS: %.1f  TPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS()))
	b.WriteByte('\n')
	b.WriteString(gotext.Get("Projection: %s  Cell: %.0fpx", ctx.projection.String(), ctx.gridCellSize))
	b.WriteByte('\n')
	b.WriteString(gotext.Get("Zoom: %.2f  Rotation: %.0f°", ctx.zoom, ctx.rotation))
	b.WriteByte('\n')
	b.WriteString(gotext.Get("Tokens: %d  Zones: %d", len(s.tokens), len(s.zones)))
	if s.dirty {
		b.WriteByte('\n')
		b.WriteString(gotext.Get("Unsaved changes"))
	}
	return b.String()
}

// drawHUD draws the status overlay in the top-left corner. The text is
// rebuilt at most every hudRefreshInterval seconds.
func (s *Session) drawHUD(screen *ebiten.Image) {
	h := &s.hud
	if h.img == nil || h.elapsed >= hudRefreshInterval {
		h.elapsed = 0
		text := s.hudLines()
		if text != h.text || h.img == nil {
			h.text = text
			lines := strings.Count(text, "\n") + 1
			if h.img == nil || h.img.Bounds().Dy() != lines*16+4 {
				h.img = ebiten.NewImage(240, lines*16+4)
			}
			h.img.Clear()
			// Semi-transparent background for readability
			h.img.Fill(color.RGBA{0, 0, 0, 128})
			ebitenutil.DebugPrintAt(h.img, text, 4, 2)
		}
	}
	var op ebiten.DrawImageOptions
	op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &op)
}

// LoadLocale loads translations for lang from dir (gettext layout:
// dir/lang/LC_MESSAGES/default.po). Missing files leave the source strings in place.
func LoadLocale(dir, lang string) {
	if dir == "" || lang == "" {
		return
	}
	gotext.Configure(dir, lang, "default")
	if globalDebug {
		logf("locale: %s from %s", lang, dir)
	}
}
