package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"yolo-labeler/pkg/geometry"
)

func TestViewTransformRoundTrip(t *testing.T) {
	v := NewViewTransform()
	v.SetScale(2.5)
	v.Pan(40, -15)

	p := geometry.Point2D{X: 123, Y: 456}
	s := v.ToScreen(p)
	back := v.ToImage(s)
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)

	// Screen mapping applies scale before the pan offset.
	assert.InDelta(t, 123*2.5+40, s.X, 1e-9)
	assert.InDelta(t, 456*2.5-15, s.Y, 1e-9)
}

func TestViewTransformScaleClamp(t *testing.T) {
	v := NewViewTransform()

	v.SetScale(1000)
	assert.Equal(t, MaxZoom, v.Scale())

	v.SetScale(0.001)
	assert.Equal(t, MinZoom, v.Scale())

	for i := 0; i < 100; i++ {
		v.ZoomIn()
	}
	assert.Equal(t, MaxZoom, v.Scale())

	for i := 0; i < 100; i++ {
		v.ZoomOut()
	}
	assert.Equal(t, MinZoom, v.Scale())
}

func TestViewTransformReset(t *testing.T) {
	v := NewViewTransform()
	v.SetScale(3)
	v.Pan(10, 10)
	v.Reset()

	assert.Equal(t, 1.0, v.Scale())
	assert.Equal(t, geometry.Point2D{}, v.Offset())

	p := geometry.Point2D{X: 7, Y: 9}
	assert.Equal(t, p, v.ToScreen(p))
}
