package panels

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"yolo-labeler/internal/app"
	"yolo-labeler/internal/label"
	"yolo-labeler/ui/canvas"
)

// BoxesPanel lists the boxes on the active image. Selecting an entry selects
// the box on the canvas; the entry field renames the selected box.
type BoxesPanel struct {
	state  *app.State
	canvas *canvas.LabelCanvas

	list      *widget.List
	boxes     []*label.Box
	nameEntry *widget.Entry
	container fyne.CanvasObject
}

// NewBoxesPanel creates the boxes panel.
func NewBoxesPanel(state *app.State, canvas *canvas.LabelCanvas) *BoxesPanel {
	bp := &BoxesPanel{
		state:  state,
		canvas: canvas,
	}

	bp.list = widget.NewList(
		func() int { return len(bp.boxes) },
		func() fyne.CanvasObject { return widget.NewLabel("box") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(bp.boxes) {
				return
			}
			b := bp.boxes[id]
			text := b.Name
			if b.Machine {
				text += " [auto]"
			}
			obj.(*widget.Label).SetText(fmt.Sprintf("%s  %.0fx%.0f", text, b.Width, b.Height))
		},
	)
	bp.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(bp.boxes) {
			return
		}
		b := bp.boxes[id]
		bp.state.Editor.Selection().SelectOnly(b)
		bp.nameEntry.SetText(b.Name)
		bp.canvas.Refresh()
	}

	bp.nameEntry = widget.NewEntry()
	bp.nameEntry.SetPlaceHolder("Box name")
	bp.nameEntry.OnSubmitted = func(name string) {
		if b := bp.state.Editor.Selection().Primary(); b != nil {
			bp.state.Editor.Rename(b, name)
		}
	}

	bp.container = container.NewBorder(nil, bp.nameEntry, nil, nil, bp.list)

	state.On(app.EventLabelsChanged, func(interface{}) { bp.Reload() })
	state.On(app.EventImageLoaded, func(interface{}) { bp.Reload() })

	return bp
}

// Reload re-reads the active collection.
func (bp *BoxesPanel) Reload() {
	if c := bp.state.Editor.Collection(); c != nil {
		bp.boxes = c.Boxes()
	} else {
		bp.boxes = nil
	}
	bp.list.Refresh()
}

// Container returns the panel content.
func (bp *BoxesPanel) Container() fyne.CanvasObject {
	return bp.container
}
