package object

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/bullseye/internal/draw"
	"github.com/tomz197/bullseye/internal/game"
)

func newTestContext(out *bytes.Buffer) DrawContext {
	return DrawContext{
		Canvas: draw.NewScaledCanvas(80, 30, 800, 600),
		Writer: draw.NewChunkWriter(out, 0, 0),
	}
}

func render(t *testing.T, ctx DrawContext) {
	t.Helper()
	if err := ctx.Canvas.Render(ctx.Writer); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Writer.Flush(); err != nil {
		t.Fatal(err)
	}
}

func TestTargetDrawsItsColour(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(&out)

	green := colorful.Color{G: 1}
	tgt := Target{View: game.EntityView{X: 370, Y: 270, W: 60, H: 60, Visible: true, Color: green}}
	if err := tgt.Draw(ctx); err != nil {
		t.Fatal(err)
	}
	render(t, ctx)

	if !strings.Contains(out.String(), "\033[38;2;0;255;0m") {
		t.Fatal("target colour missing from output")
	}
}

func TestHiddenObjectsDrawNothing(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(&out)

	objects := []Object{
		Target{View: game.EntityView{X: 10, Y: 10, W: 60, H: 60, Color: colorful.Color{R: 1}}},
		Projectile{View: game.EntityView{X: 10, Y: 10, W: 40, H: 6, Color: colorful.Color{R: 1}}},
	}
	if err := DrawAll(ctx, objects); err != nil {
		t.Fatal(err)
	}
	render(t, ctx)

	if strings.Contains(out.String(), "38;2;255;0;0") {
		t.Fatal("hidden objects should not be drawn")
	}
}

func TestFromViewOrdersTargetFirst(t *testing.T) {
	v := game.NewView(game.Arena{Width: 800, Height: 600})
	v.Target(game.EntityView{Visible: true, W: 60, H: 60})
	v.Projectile(2, game.EntityView{Visible: true, W: 40, H: 6})
	v.Projectile(1, game.EntityView{Visible: true, W: 40, H: 6})
	v.Projectile(3, game.EntityView{Visible: false})

	objects := FromView(v)
	if len(objects) != 3 {
		t.Fatalf("got %d objects, want 3", len(objects))
	}
	if _, ok := objects[0].(Target); !ok {
		t.Fatalf("first object is %T, want Target", objects[0])
	}
}

func TestTextClampsToScreen(t *testing.T) {
	var out bytes.Buffer
	ctx := newTestContext(&out)

	if err := (Text{X: -3, Y: 0, Value: "hi"}).Draw(ctx); err != nil {
		t.Fatal(err)
	}
	if err := ctx.Writer.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[1;1Hhi" {
		t.Fatalf("Text.Draw wrote %q", got)
	}
}

func TestCentered(t *testing.T) {
	txt := Centered(40, 5, "Score")
	if txt.X != 38 || txt.Y != 5 {
		t.Fatalf("Centered = %+v", txt)
	}
}
