package tacmap

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// submitCommands walks the sorted command list and issues draw calls to the
// target image.
func (s *Session) submitCommands(target *ebiten.Image) {
	if len(s.commands) == 0 {
		return
	}

	var op ebiten.DrawImageOptions
	var path vector.Path

	for i := range s.commands {
		cmd := &s.commands[i]

		switch cmd.Type {
		case CommandImage:
			submitImage(target, cmd, &op)
		case CommandLine:
			submitLine(target, cmd)
		case CommandFill:
			submitPath(target, cmd, &path, false)
		case CommandOutline:
			submitPath(target, cmd, &path, true)
		case CommandLabel:
			submitLabel(target, cmd)
		}
	}
}

// submitImage draws a single image command using DrawImage.
func submitImage(target *ebiten.Image, cmd *RenderCommand, op *ebiten.DrawImageOptions) {
	if cmd.image == nil {
		return
	}
	op.GeoM.Reset()
	op.GeoM.Concat(commandGeoM(cmd))

	// Apply premultiplied color scale
	op.ColorScale.Reset()
	a := float32(cmd.Color.A)
	op.ColorScale.Scale(float32(cmd.Color.R)*a, float32(cmd.Color.G)*a, float32(cmd.Color.B)*a, a)

	op.Filter = ebiten.FilterLinear
	target.DrawImage(cmd.image, op)
}

func submitLine(target *ebiten.Image, cmd *RenderCommand) {
	if len(cmd.Points) < 2 {
		return
	}
	p0, p1 := cmd.Points[0], cmd.Points[1]
	vector.StrokeLine(target, float32(p0.X), float32(p0.Y), float32(p1.X), float32(p1.Y),
		float32(cmd.Width), cmd.Color.toRGBA(), false)
}

// submitPath fills or strokes the closed polygon through cmd.Points.
func submitPath(target *ebiten.Image, cmd *RenderCommand, path *vector.Path, stroke bool) {
	if len(cmd.Points) < 3 {
		return
	}
	path.Reset()
	path.MoveTo(float32(cmd.Points[0].X), float32(cmd.Points[0].Y))
	for _, p := range cmd.Points[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	drawOpts := &vector.DrawPathOptions{AntiAlias: true}
	drawOpts.ColorScale.ScaleWithColor(cmd.Color.toRGBA())
	if stroke {
		strokeOpts := &vector.StrokeOptions{Width: float32(cmd.Width), MiterLimit: 10}
		vector.StrokePath(target, path, strokeOpts, drawOpts)
		return
	}
	vector.FillPath(target, path, nil, drawOpts)
}

func submitLabel(target *ebiten.Image, cmd *RenderCommand) {
	if len(cmd.Points) == 0 || cmd.Text == "" {
		return
	}
	ebitenutil.DebugPrintAt(target, cmd.Text, int(cmd.Points[0].X), int(cmd.Points[0].Y)+2)
}

// commandGeoM converts a command's [6]float64 transform into an ebiten.GeoM.
func commandGeoM(cmd *RenderCommand) ebiten.GeoM {
	var m ebiten.GeoM
	m.SetElement(0, 0, cmd.Transform[0])
	m.SetElement(1, 0, cmd.Transform[1])
	m.SetElement(0, 1, cmd.Transform[2])
	m.SetElement(1, 1, cmd.Transform[3])
	m.SetElement(0, 2, cmd.Transform[4])
	m.SetElement(1, 2, cmd.Transform[5])
	return m
}
