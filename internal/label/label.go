// Package label owns the bounding-box data model: boxes, per-image ordered
// collections, and the concurrent store keyed by image path.
package label

import (
	"fmt"

	"yolo-labeler/pkg/geometry"
)

// MinSize is the smallest width/height a committed box may have, in image
// pixels. Boxes being actively drawn may be smaller until pointer release.
const MinSize = 10.0

// Box is one rectangular label in image-space (unscaled pixel) coordinates.
// Boxes are identified by pointer, not by name; names may collide.
type Box struct {
	Name    string  `json:"name"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Width   float64 `json:"width"`
	Height  float64 `json:"height"`
	Machine bool    `json:"machine,omitempty"` // true for detector-generated boxes
}

// Rect returns the box geometry as a geometry.Rect.
func (b *Box) Rect() geometry.Rect {
	return geometry.Rect{X: b.X, Y: b.Y, Width: b.Width, Height: b.Height}
}

// SetRect replaces the box geometry.
func (b *Box) SetRect(r geometry.Rect) {
	b.X, b.Y, b.Width, b.Height = r.X, r.Y, r.Width, r.Height
}

// Clone returns an independent copy of the box.
func (b *Box) Clone() *Box {
	c := *b
	return &c
}

// Translate moves the box by the given delta.
func (b *Box) Translate(dx, dy float64) {
	b.X += dx
	b.Y += dy
}

func (b *Box) String() string {
	return fmt.Sprintf("%s (%.1f, %.1f) %gx%g", b.Name, b.X, b.Y, b.Width, b.Height)
}
