// Package canvas provides the annotation canvas: the image view with zoom,
// pan, and box editing gestures.
package canvas

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"yolo-labeler/internal/app"
	"yolo-labeler/internal/editor"
	"yolo-labeler/pkg/geometry"
)

// LabelCanvas displays the active image and routes pointer events into the
// gesture machine. The left button draws, drags, and resizes; the right
// button pans; the wheel zooms.
type LabelCanvas struct {
	widget.BaseWidget

	state  *app.State
	editor *editor.Editor
	raster *fynecanvas.Raster

	panning bool
	lastPan fyne.Position

	onZoomChange func(scale float64)
}

var _ desktop.Mouseable = (*LabelCanvas)(nil)
var _ desktop.Hoverable = (*LabelCanvas)(nil)
var _ fyne.Scrollable = (*LabelCanvas)(nil)

// New creates a canvas bound to the application state.
func New(state *app.State) *LabelCanvas {
	lc := &LabelCanvas{
		state:  state,
		editor: state.Editor,
	}
	lc.raster = fynecanvas.NewRaster(lc.draw)
	lc.raster.ScaleMode = fynecanvas.ImageScalePixels
	lc.ExtendBaseWidget(lc)

	state.On(app.EventImageLoaded, func(interface{}) { lc.Refresh() })
	state.On(app.EventLabelsChanged, func(interface{}) { lc.Refresh() })
	return lc
}

// OnZoomChange sets a callback fired after every zoom step.
func (lc *LabelCanvas) OnZoomChange(callback func(scale float64)) {
	lc.onZoomChange = callback
}

// Refresh redraws the canvas.
func (lc *LabelCanvas) Refresh() {
	lc.raster.Refresh()
	lc.BaseWidget.Refresh()
}

// ResetZoom restores the identity view transform.
func (lc *LabelCanvas) ResetZoom() {
	lc.editor.View().Reset()
	lc.zoomChanged()
	lc.Refresh()
}

// ZoomIn zooms one step in.
func (lc *LabelCanvas) ZoomIn() {
	lc.editor.View().ZoomIn()
	lc.zoomChanged()
	lc.Refresh()
}

// ZoomOut zooms one step out.
func (lc *LabelCanvas) ZoomOut() {
	lc.editor.View().ZoomOut()
	lc.zoomChanged()
	lc.Refresh()
}

func (lc *LabelCanvas) zoomChanged() {
	if lc.onZoomChange != nil {
		lc.onZoomChange(lc.editor.View().Scale())
	}
}

// MouseDown starts a gesture (left) or a pan (right).
func (lc *LabelCanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonSecondary {
		lc.panning = true
		lc.lastPan = ev.Position
		return
	}
	multi := ev.Modifier&fyne.KeyModifierControl != 0
	lc.editor.PointerDown(screenPoint(ev.Position), multi)
	lc.Refresh()
}

// MouseUp finishes the active gesture or pan.
func (lc *LabelCanvas) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonSecondary {
		lc.panning = false
		return
	}
	lc.editor.PointerUp(screenPoint(ev.Position))
	lc.Refresh()
}

// MouseIn implements desktop.Hoverable.
func (lc *LabelCanvas) MouseIn(*desktop.MouseEvent) {}

// MouseMoved advances the active gesture or pan.
func (lc *LabelCanvas) MouseMoved(ev *desktop.MouseEvent) {
	if lc.panning {
		lc.editor.View().Pan(
			float64(ev.Position.X-lc.lastPan.X),
			float64(ev.Position.Y-lc.lastPan.Y))
		lc.lastPan = ev.Position
		lc.Refresh()
		return
	}
	lc.editor.PointerMove(screenPoint(ev.Position))
	lc.Refresh()
}

// MouseOut implements desktop.Hoverable.
func (lc *LabelCanvas) MouseOut() {
	lc.panning = false
}

// Scrolled zooms with the mouse wheel.
func (lc *LabelCanvas) Scrolled(ev *fyne.ScrollEvent) {
	if ev.Scrolled.DY > 0 {
		lc.ZoomIn()
	} else if ev.Scrolled.DY < 0 {
		lc.ZoomOut()
	}
}

// CreateRenderer implements fyne.Widget.
func (lc *LabelCanvas) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(lc.raster)
}

// MinSize keeps the canvas usable when the window shrinks.
func (lc *LabelCanvas) MinSize() fyne.Size {
	return fyne.NewSize(400, 300)
}

func screenPoint(pos fyne.Position) geometry.Point2D {
	return geometry.Point2D{X: float64(pos.X), Y: float64(pos.Y)}
}

// draw is the raster drawing function; it renders the image under the view
// transform, then the box overlays on top.
func (lc *LabelCanvas) draw(w, h int) image.Image {
	output := image.NewRGBA(image.Rect(0, 0, w, h))
	fillBackground(output)

	src := lc.state.ActivePixels()
	if src == nil {
		return output
	}

	view := lc.editor.View()
	lc.blitImage(output, src, view)
	lc.drawBoxes(output, view)
	lc.drawDraft(output, view)

	return output
}
