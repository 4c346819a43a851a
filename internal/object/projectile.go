package object

import (
	"github.com/tomz197/bullseye/internal/draw"
	"github.com/tomz197/bullseye/internal/game"
)

// Projectile is an arrow flying towards the right wall.
type Projectile struct {
	View game.EntityView
}

// Draw fills the shaft and marks the tip with a vertical stroke.
func (p Projectile) Draw(ctx DrawContext) error {
	v := p.View
	if !v.Visible {
		return nil
	}
	ctx.Canvas.FillRect(v.X, v.Y, v.W, v.H, v.Color)

	tipX := v.X + v.W
	ctx.Canvas.DrawLine(
		draw.Point{X: tipX, Y: v.Y - v.H/2},
		draw.Point{X: tipX, Y: v.Y + v.H*3/2},
		v.Color,
	)
	return nil
}
