// Package panels provides UI panels for the application.
package panels

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"

	"yolo-labeler/internal/app"
	"yolo-labeler/ui/canvas"
)

// SidePanel provides the main side panel with tabbed sections.
type SidePanel struct {
	state     *app.State
	canvas    *canvas.LabelCanvas
	container *container.AppTabs

	imagesPanel *ImagesPanel
	boxesPanel  *BoxesPanel
}

// NewSidePanel creates a new side panel.
func NewSidePanel(state *app.State, canvas *canvas.LabelCanvas) *SidePanel {
	sp := &SidePanel{
		state:  state,
		canvas: canvas,
	}

	sp.imagesPanel = NewImagesPanel(state)
	sp.boxesPanel = NewBoxesPanel(state, canvas)

	sp.container = container.NewAppTabs(
		container.NewTabItem("Images", sp.imagesPanel.Container()),
		container.NewTabItem("Boxes", sp.boxesPanel.Container()),
	)

	return sp
}

// Container returns the panel container.
func (sp *SidePanel) Container() fyne.CanvasObject {
	return sp.container
}
