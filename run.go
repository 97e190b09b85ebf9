package tacmap

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title  string
	Width  int
	Height int
	// ShowHUD draws the status overlay.
	ShowHUD bool
}

// gameShell adapts a Session to ebiten.Game.
type gameShell struct {
	session *Session
}

func (g *gameShell) Update() error {
	s := g.session
	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	s.Update()
	return nil
}

func (g *gameShell) Draw(screen *ebiten.Image) {
	g.session.Draw(screen)
}

func (g *gameShell) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// SetUpdateFunc registers fn to run at the start of every tick when the
// session is driven by Run. Returning ebiten.Termination ends the loop.
func (s *Session) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// Run opens a resizable window and drives s until the window closes or the
// update func returns an error. Callers that need their own ebiten.Game call
// Session.Update and Session.Draw directly instead.
func Run(s *Session, cfg RunConfig) error {
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if cfg.ShowHUD {
		s.SetShowHUD(true)
	}
	return ebiten.RunGame(&gameShell{session: s})
}
