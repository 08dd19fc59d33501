package canvas

import (
	"image"
	"image/color"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"yolo-labeler/internal/editor"
	"yolo-labeler/internal/label"
	"yolo-labeler/pkg/colorutil"
	"yolo-labeler/pkg/geometry"
)

// background is the color behind and around the image.
var background = color.RGBA{R: 32, G: 32, B: 32, A: 255}

func fillBackground(output *image.RGBA) {
	for i := 0; i < len(output.Pix); i += 4 {
		output.Pix[i] = background.R
		output.Pix[i+1] = background.G
		output.Pix[i+2] = background.B
		output.Pix[i+3] = 255
	}
}

// blitImage renders the source image under the view transform using nearest
// neighbor sampling. The transform is uniform scale plus offset, so the
// inverse mapping is two multiplies per pixel.
func (lc *LabelCanvas) blitImage(output *image.RGBA, src image.Image, view *editor.ViewTransform) {
	scale := view.Scale()
	offset := view.Offset()
	srcBounds := src.Bounds()
	outBounds := output.Bounds()

	for y := outBounds.Min.Y; y < outBounds.Max.Y; y++ {
		srcY := int((float64(y)-offset.Y)/scale) + srcBounds.Min.Y
		if srcY < srcBounds.Min.Y || srcY >= srcBounds.Max.Y {
			continue
		}
		for x := outBounds.Min.X; x < outBounds.Max.X; x++ {
			srcX := int((float64(x)-offset.X)/scale) + srcBounds.Min.X
			if srcX < srcBounds.Min.X || srcX >= srcBounds.Max.X {
				continue
			}
			output.Set(x, y, src.At(srcX, srcY))
		}
	}
}

// screenRect maps an image-space rectangle to integer screen coordinates.
func screenRect(r geometry.Rect, view *editor.ViewTransform) image.Rectangle {
	tl := view.ToScreen(geometry.Point2D{X: r.X, Y: r.Y})
	br := view.ToScreen(geometry.Point2D{X: r.X + r.Width, Y: r.Y + r.Height})
	return image.Rect(int(tl.X), int(tl.Y), int(br.X), int(br.Y))
}

// drawBoxes renders every committed box: a colored outline, a name tag, and
// resize handles on the primary selection.
func (lc *LabelCanvas) drawBoxes(output *image.RGBA, view *editor.ViewTransform) {
	c := lc.editor.Collection()
	if c == nil {
		return
	}
	sel := lc.editor.Selection()
	primary := sel.Primary()

	for _, b := range c.Boxes() {
		r := screenRect(b.Rect(), view)
		col := colorutil.ForName(b.Name)

		thickness := 2
		if sel.Contains(b) {
			thickness = 3
		}
		if b.Machine {
			drawDashedRect(output, r, col)
			if sel.Contains(b) {
				drawRectOutline(output, r.Inset(-1), col, 1)
			}
		} else {
			drawRectOutline(output, r, col, thickness)
		}

		drawName(output, b.Name, r.Min.X+3, r.Min.Y-4, col)

		if b == primary {
			lc.drawHandles(output, b, view)
		}
	}
}

// drawHandles renders the eight resize handles as filled squares.
func (lc *LabelCanvas) drawHandles(output *image.RGBA, b *label.Box, view *editor.ViewTransform) {
	for _, hr := range editor.HandleRects(b.Rect()) {
		fillRect(output, screenRect(hr, view), colorutil.White)
		drawRectOutline(output, screenRect(hr, view), colorutil.Black, 1)
	}
}

// drawDraft renders the in-progress drawing rectangle, dashed.
func (lc *LabelCanvas) drawDraft(output *image.RGBA, view *editor.ViewTransform) {
	draft := lc.editor.Draft()
	if draft == nil {
		return
	}
	drawDashedRect(output, screenRect(draft.Rect(), view), colorutil.Yellow)
}

func drawRectOutline(output *image.RGBA, r image.Rectangle, col color.RGBA, thickness int) {
	bounds := output.Bounds()
	for t := 0; t < thickness; t++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			setPixel(output, bounds, x, r.Min.Y+t, col)
			setPixel(output, bounds, x, r.Max.Y-t, col)
		}
		for y := r.Min.Y; y <= r.Max.Y; y++ {
			setPixel(output, bounds, r.Min.X+t, y, col)
			setPixel(output, bounds, r.Max.X-t, y, col)
		}
	}
}

// drawDashedRect draws a one pixel outline with alternating 2-on 2-off
// dashes.
func drawDashedRect(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	bounds := output.Bounds()
	for x := r.Min.X; x <= r.Max.X; x++ {
		if (x+r.Min.Y)%4 < 2 {
			setPixel(output, bounds, x, r.Min.Y, col)
		}
		if (x+r.Max.Y)%4 < 2 {
			setPixel(output, bounds, x, r.Max.Y, col)
		}
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		if (r.Min.X+y)%4 < 2 {
			setPixel(output, bounds, r.Min.X, y, col)
		}
		if (r.Max.X+y)%4 < 2 {
			setPixel(output, bounds, r.Max.X, y, col)
		}
	}
}

func fillRect(output *image.RGBA, r image.Rectangle, col color.RGBA) {
	bounds := output.Bounds()
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		for x := r.Min.X; x <= r.Max.X; x++ {
			setPixel(output, bounds, x, y, col)
		}
	}
}

func setPixel(output *image.RGBA, bounds image.Rectangle, x, y int, col color.RGBA) {
	if x >= bounds.Min.X && x < bounds.Max.X && y >= bounds.Min.Y && y < bounds.Max.Y {
		output.SetRGBA(x, y, col)
	}
}

// drawName renders a box name above its top-left corner.
func drawName(output *image.RGBA, name string, x, y int, col color.RGBA) {
	if name == "" {
		return
	}
	d := font.Drawer{
		Dst:  output,
		Src:  image.NewUniform(col),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, y),
	}
	d.DrawString(name)
}
