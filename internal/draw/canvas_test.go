package draw

import (
	"bytes"
	"strings"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
)

var red = colorful.Color{R: 1, G: 0, B: 0}

// 80x20 terminal over an 800x400 logical space: 10 logical units per pixel on both axes.
func newTestCanvas() *Canvas {
	return NewScaledCanvas(80, 20, 800, 400)
}

func TestRenderOnlyWritesChangedCells(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(0, 0, 10, 20, red)

	var out bytes.Buffer
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	first := out.String()
	if !strings.Contains(first, "\033[1;1H") || !strings.Contains(first, string(BlockFull)) {
		t.Fatalf("first render missing filled cell: %q", first[:min(len(first), 80)])
	}
	if !strings.Contains(first, "\033[38;2;255;0;0m") {
		t.Fatal("first render missing truecolor sequence")
	}

	out.Reset()
	c.Clear()
	c.FillRect(0, 0, 10, 20, red)
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if out.Len() != 0 {
		t.Fatalf("unchanged frame wrote %d bytes", out.Len())
	}

	c.MarkTextDirty(1, 1, 1)
	out.Reset()
	if err := c.Render(&out); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(out.String(), "\033[1;1H") {
		t.Fatal("dirty cell was not repainted")
	}
}

func TestHalfBlocks(t *testing.T) {
	tests := []struct {
		name string
		cl   cell
		want rune
	}{
		{"top only", cell{top: packColor(red)}, BlockUpperHalf},
		{"bottom only", cell{bottom: packColor(red)}, BlockLowerHalf},
		{"both same", cell{top: packColor(red), bottom: packColor(red)}, BlockFull},
		{"both different", cell{top: packColor(red), bottom: packColor(colorful.Color{B: 1})}, BlockUpperHalf},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(appendCell(nil, tt.cl))
			if !strings.ContainsRune(got, tt.want) {
				t.Fatalf("appendCell = %q, want glyph %q", got, tt.want)
			}
		})
	}
	if got := string(appendCell(nil, cell{})); got != ColorReset+" " {
		t.Fatalf("empty cell should render a reset space, got %q", got)
	}
}

func TestTerminalToLogical(t *testing.T) {
	// One logical unit per pixel: cell (1,1) is centred on (0.5, 1).
	c := NewScaledCanvas(80, 20, 80, 40)

	x, y, ok := c.TerminalToLogical(1, 1)
	if !ok || x != 0.5 || y != 1 {
		t.Fatalf("TerminalToLogical(1,1) = %v, %v, %v", x, y, ok)
	}

	c.SetOffset(4, 2)
	x, y, ok = c.TerminalToLogical(5, 3)
	if !ok || x != 0.5 || y != 1 {
		t.Fatalf("offset not applied: %v, %v, %v", x, y, ok)
	}
	if _, _, ok := c.TerminalToLogical(4, 3); ok {
		t.Fatal("position left of the canvas should be rejected")
	}
	if _, _, ok := c.TerminalToLogical(85, 3); ok {
		t.Fatal("position right of the canvas should be rejected")
	}
}

func TestResizeForcesRedraw(t *testing.T) {
	c := newTestCanvas()
	var out bytes.Buffer
	_ = c.Render(&out)

	c.Resize(40, 10)
	out.Reset()
	_ = c.Render(&out)
	if got := strings.Count(out.String(), "H"); got < 40*10 {
		t.Fatalf("expected full repaint after resize, got %d cursor moves", got)
	}
}

func TestFillRectCoversAtLeastOnePixel(t *testing.T) {
	c := newTestCanvas()
	c.FillRect(100, 100, 1, 1, red)
	if c.pixels[10*c.termWidth+10] == 0 {
		t.Fatal("tiny rectangle should still set a pixel")
	}
}

func TestChunkWriterOffset(t *testing.T) {
	var out bytes.Buffer
	cw := NewChunkWriter(&out, 3, 2)
	cw.WriteAt(1, 1, "hi")
	if err := cw.Flush(); err != nil {
		t.Fatal(err)
	}
	if got := out.String(); got != "\033[3;4Hhi" {
		t.Fatalf("WriteAt output = %q", got)
	}
}
