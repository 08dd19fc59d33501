package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIoU(t *testing.T) {
	tests := []struct {
		name     string
		r1       Rect
		r2       Rect
		expected float64
	}{
		{
			name:     "identical rectangles",
			r1:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			r2:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			expected: 1.0,
		},
		{
			name:     "no overlap",
			r1:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			r2:       Rect{X: 200, Y: 200, Width: 100, Height: 100},
			expected: 0.0,
		},
		{
			name:     "touching edges",
			r1:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			r2:       Rect{X: 100, Y: 0, Width: 100, Height: 100},
			expected: 0.0,
		},
		{
			name:     "half offset overlap",
			r1:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			r2:       Rect{X: 50, Y: 50, Width: 100, Height: 100},
			expected: 2500.0 / 17500.0,
		},
		{
			name:     "one inside other",
			r1:       Rect{X: 0, Y: 0, Width: 100, Height: 100},
			r2:       Rect{X: 25, Y: 25, Width: 50, Height: 50},
			expected: 0.25,
		},
		{
			name:     "degenerate rectangles",
			r1:       Rect{},
			r2:       Rect{},
			expected: 0.0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, tt.r1.IoU(tt.r2), 1e-9)
			// IoU is symmetric
			assert.InDelta(t, tt.r1.IoU(tt.r2), tt.r2.IoU(tt.r1), 1e-12)
		})
	}
}

func TestRectFromCorners(t *testing.T) {
	a := Point2D{X: 150, Y: 20}
	b := Point2D{X: 30, Y: 90}

	r := RectFromCorners(a, b)
	assert.Equal(t, Rect{X: 30, Y: 20, Width: 120, Height: 70}, r)
	// Corner order must not matter
	assert.Equal(t, r, RectFromCorners(b, a))
}

func TestRectIntersect(t *testing.T) {
	r1 := Rect{X: 0, Y: 0, Width: 100, Height: 100}
	r2 := Rect{X: 60, Y: 40, Width: 100, Height: 100}

	assert.Equal(t, Rect{X: 60, Y: 40, Width: 40, Height: 60}, r1.Intersect(r2))
	assert.Equal(t, Rect{}, r1.Intersect(Rect{X: 500, Y: 500, Width: 10, Height: 10}))
	assert.Equal(t, Rect{X: 0, Y: 0, Width: 160, Height: 140}, r1.Union(r2))
}

func TestAffineInverseRoundTrip(t *testing.T) {
	tr := Translation(42, -17).Compose(Scale(2.5, 2.5))
	inv, ok := tr.Inverse()
	require.True(t, ok)

	p := Point2D{X: 13, Y: 37}
	back := inv.Apply(tr.Apply(p))
	assert.InDelta(t, p.X, back.X, 1e-9)
	assert.InDelta(t, p.Y, back.Y, 1e-9)
}

func TestAffineSingularInverse(t *testing.T) {
	_, ok := Scale(0, 1).Inverse()
	assert.False(t, ok)
}
