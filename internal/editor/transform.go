// Package editor implements the interactive annotation engine: the view
// transform, selection tracking, and the pointer/keyboard gesture state
// machine that edits label collections.
package editor

import "yolo-labeler/pkg/geometry"

const (
	// MinZoom and MaxZoom bound the reachable scale factors.
	MinZoom = 0.1
	MaxZoom = 10.0
	// ZoomStep is the multiplicative step applied per zoom action.
	ZoomStep = 1.25
)

// ViewTransform maps screen coordinates to image-space coordinates and back
// under a uniform zoom factor and a pan offset. Every reachable scale is
// strictly positive, so the transform is always invertible.
type ViewTransform struct {
	scale  float64
	offset geometry.Point2D
}

// NewViewTransform creates an identity transform.
func NewViewTransform() *ViewTransform {
	return &ViewTransform{scale: 1}
}

// Reset restores the identity transform. Called when an image is loaded.
func (v *ViewTransform) Reset() {
	v.scale = 1
	v.offset = geometry.Point2D{}
}

// Scale returns the current zoom factor.
func (v *ViewTransform) Scale() float64 {
	return v.scale
}

// SetScale sets the zoom factor, clamped to [MinZoom, MaxZoom].
func (v *ViewTransform) SetScale(scale float64) {
	if scale < MinZoom {
		scale = MinZoom
	}
	if scale > MaxZoom {
		scale = MaxZoom
	}
	v.scale = scale
}

// ZoomIn increases the zoom by one step.
func (v *ViewTransform) ZoomIn() {
	v.SetScale(v.scale * ZoomStep)
}

// ZoomOut decreases the zoom by one step.
func (v *ViewTransform) ZoomOut() {
	v.SetScale(v.scale / ZoomStep)
}

// Offset returns the current pan offset in screen coordinates.
func (v *ViewTransform) Offset() geometry.Point2D {
	return v.offset
}

// SetOffset sets the pan offset in screen coordinates.
func (v *ViewTransform) SetOffset(offset geometry.Point2D) {
	v.offset = offset
}

// Pan moves the offset by the given screen-space delta.
func (v *ViewTransform) Pan(dx, dy float64) {
	v.offset.X += dx
	v.offset.Y += dy
}

// matrix returns the image-to-screen affine transform.
func (v *ViewTransform) matrix() geometry.AffineTransform {
	return geometry.Translation(v.offset.X, v.offset.Y).
		Compose(geometry.Scale(v.scale, v.scale))
}

// ToScreen maps an image-space point to screen coordinates.
func (v *ViewTransform) ToScreen(p geometry.Point2D) geometry.Point2D {
	return v.matrix().Apply(p)
}

// ToImage maps a screen point to image-space coordinates. It is the exact
// inverse of ToScreen; the scale clamp guarantees the matrix is invertible.
func (v *ViewTransform) ToImage(p geometry.Point2D) geometry.Point2D {
	inv, ok := v.matrix().Inverse()
	if !ok {
		return p
	}
	return inv.Apply(p)
}
