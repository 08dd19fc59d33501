package editor

import "yolo-labeler/pkg/geometry"

// HandleSize is the side length of a resize handle's hit square, in image
// pixels.
const HandleSize = 8.0

// Handle identifies one of the eight resize hit-regions on a selected box's
// border: four corners and four edge midpoints.
type Handle int

const (
	HandleTopLeft Handle = iota
	HandleTop
	HandleTopRight
	HandleRight
	HandleBottomRight
	HandleBottom
	HandleBottomLeft
	HandleLeft
)

func (h Handle) String() string {
	switch h {
	case HandleTopLeft:
		return "top-left"
	case HandleTop:
		return "top"
	case HandleTopRight:
		return "top-right"
	case HandleRight:
		return "right"
	case HandleBottomRight:
		return "bottom-right"
	case HandleBottom:
		return "bottom"
	case HandleBottomLeft:
		return "bottom-left"
	case HandleLeft:
		return "left"
	default:
		return "unknown"
	}
}

// HandleRects returns the eight handle hit squares for a box rectangle, in
// Handle order. Each square is centered on its handle point.
func HandleRects(r geometry.Rect) [8]geometry.Rect {
	hs := HandleSize / 2
	cx := r.X + r.Width/2
	cy := r.Y + r.Height/2
	x2 := r.X + r.Width
	y2 := r.Y + r.Height

	square := func(x, y float64) geometry.Rect {
		return geometry.Rect{X: x - hs, Y: y - hs, Width: HandleSize, Height: HandleSize}
	}

	return [8]geometry.Rect{
		HandleTopLeft:     square(r.X, r.Y),
		HandleTop:         square(cx, r.Y),
		HandleTopRight:    square(x2, r.Y),
		HandleRight:       square(x2, cy),
		HandleBottomRight: square(x2, y2),
		HandleBottom:      square(cx, y2),
		HandleBottomLeft:  square(r.X, y2),
		HandleLeft:        square(r.X, cy),
	}
}

// hitHandle returns the handle whose hit square contains the image-space
// point, or -1.
func hitHandle(r geometry.Rect, p geometry.Point2D) Handle {
	for i, hr := range HandleRects(r) {
		if hr.Contains(p) {
			return Handle(i)
		}
	}
	return Handle(-1)
}

// resizeTo recomputes a rectangle from its pre-gesture shape, the active
// handle, and the current pointer position. A corner handle moves two edges,
// an edge handle moves one. Width and height are clamped so neither drops
// below MinSize, with the opposite edge held fixed.
func resizeTo(start geometry.Rect, h Handle, p geometry.Point2D, minSize float64) geometry.Rect {
	x1 := start.X
	y1 := start.Y
	x2 := start.X + start.Width
	y2 := start.Y + start.Height

	switch h {
	case HandleTopLeft:
		x1, y1 = p.X, p.Y
	case HandleTop:
		y1 = p.Y
	case HandleTopRight:
		x2, y1 = p.X, p.Y
	case HandleRight:
		x2 = p.X
	case HandleBottomRight:
		x2, y2 = p.X, p.Y
	case HandleBottom:
		y2 = p.Y
	case HandleBottomLeft:
		x1, y2 = p.X, p.Y
	case HandleLeft:
		x1 = p.X
	}

	// Clamp the moving edge against the fixed one.
	switch h {
	case HandleTopLeft, HandleLeft, HandleBottomLeft:
		if x2-x1 < minSize {
			x1 = x2 - minSize
		}
	case HandleTopRight, HandleRight, HandleBottomRight:
		if x2-x1 < minSize {
			x2 = x1 + minSize
		}
	}
	switch h {
	case HandleTopLeft, HandleTop, HandleTopRight:
		if y2-y1 < minSize {
			y1 = y2 - minSize
		}
	case HandleBottomLeft, HandleBottom, HandleBottomRight:
		if y2-y1 < minSize {
			y2 = y1 + minSize
		}
	}

	return geometry.Rect{X: x1, Y: y1, Width: x2 - x1, Height: y2 - y1}
}
