package object

import "unicode/utf8"

// Text is a simple drawable text object.
// Coordinates are 1-based canvas positions.
type Text struct {
	X     int
	Y     int
	Value string
	Style string // Optional ANSI style, reset after the text
}

// Centered returns a text whose middle sits on column centerX.
func Centered(centerX, y int, value string) Text {
	return Text{X: centerX - utf8.RuneCountInString(value)/2, Y: y, Value: value}
}

// Draw writes the text at its position using ANSI cursor movement.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	x := t.X
	y := t.Y
	if x < 1 {
		x = 1
	}
	if y < 1 {
		y = 1
	}
	if t.Style != "" {
		ctx.Writer.WriteStyledAt(x, y, t.Style, t.Value)
	} else {
		ctx.Writer.WriteAt(x, y, t.Value)
	}
	return nil
}
