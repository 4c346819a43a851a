// Package physics provides collision detection and clamping utilities.
package physics

import "github.com/samber/lo"

// Box is an axis-aligned bounding box in arena coordinates.
// Y grows downwards, so Top < Bottom for a non-empty box.
type Box struct {
	Left, Right float64
	Top, Bottom float64
}

// NewBox creates a box from its top-left corner and dimensions.
func NewBox(x, y, w, h float64) Box {
	return Box{Left: x, Right: x + w, Top: y, Bottom: y + h}
}

// PointBox returns a unit box whose top-left corner is the given point.
// Used to test a click position against entity boxes.
func PointBox(x, y float64) Box {
	return NewBox(x, y, 1, 1)
}

// Width returns the horizontal extent of the box.
func (b Box) Width() float64 {
	return b.Right - b.Left
}

// Height returns the vertical extent of the box.
func (b Box) Height() float64 {
	return b.Bottom - b.Top
}

// Overlaps reports whether two boxes intersect.
// Touching edges do not count as an overlap.
func Overlaps(a, b Box) bool {
	return a.Left < b.Right &&
		a.Right > b.Left &&
		a.Top < b.Bottom &&
		a.Bottom > b.Top
}

// Contains reports whether the point lies inside the box.
func (b Box) Contains(x, y float64) bool {
	return x >= b.Left && x < b.Right && y >= b.Top && y < b.Bottom
}

// ClampAxis restricts a position on one axis so that an entity of the given
// extent stays within [0, limit]. If the entity is larger than the limit the
// position collapses to 0.
func ClampAxis(pos, extent, limit float64) float64 {
	hi := limit - extent
	if hi < 0 {
		hi = 0
	}
	return lo.Clamp(pos, 0, hi)
}
