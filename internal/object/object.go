// Package object draws game entities onto the terminal canvas.
package object

import (
	"github.com/tomz197/bullseye/internal/draw"
	"github.com/tomz197/bullseye/internal/game"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas *draw.Canvas      // High-resolution canvas (2x vertical), arena coordinates
	Writer *draw.ChunkWriter // Terminal text output, 1-based canvas coordinates
}

// Object is a drawable game entity.
type Object interface {
	// Draw draws the object. Use ctx.Canvas for shapes, ctx.Writer for text.
	Draw(ctx DrawContext) error
}

// FromView returns the drawables for one frame, back to front.
func FromView(v *game.View) []Object {
	projectiles := v.Projectiles()
	objects := make([]Object, 0, len(projectiles)+1)
	objects = append(objects, Target{View: v.TargetView})
	for _, p := range projectiles {
		objects = append(objects, Projectile{View: p})
	}
	return objects
}

// DrawAll draws objects in order, stopping at the first error.
func DrawAll(ctx DrawContext, objects []Object) error {
	for _, obj := range objects {
		if err := obj.Draw(ctx); err != nil {
			return err
		}
	}
	return nil
}
