package object

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/bullseye/internal/game"
)

var ringColor = colorful.Color{R: 1, G: 1, B: 1}

// Target is the square bullseye: an outer band in the target colour, a pale
// ring and a solid centre.
type Target struct {
	View game.EntityView
}

// Draw fills the target's bounding box on the canvas.
func (t Target) Draw(ctx DrawContext) error {
	v := t.View
	if !v.Visible {
		return nil
	}
	ctx.Canvas.FillRect(v.X, v.Y, v.W, v.H, v.Color)

	ring := v.Color.BlendRgb(ringColor, 0.75)
	ctx.Canvas.FillRect(v.X+v.W/6, v.Y+v.H/6, v.W*2/3, v.H*2/3, ring)
	ctx.Canvas.FillRect(v.X+v.W/3, v.Y+v.H/3, v.W/3, v.H/3, v.Color)
	return nil
}
