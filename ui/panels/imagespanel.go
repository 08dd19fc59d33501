package panels

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"yolo-labeler/internal/app"
)

// ImagesPanel lists the images of the open directory with their box counts;
// selecting an entry switches the active image.
type ImagesPanel struct {
	state     *app.State
	list      *widget.List
	images    []string
	header    *widget.Label
	container fyne.CanvasObject
}

// NewImagesPanel creates the images panel.
func NewImagesPanel(state *app.State) *ImagesPanel {
	ip := &ImagesPanel{
		state:  state,
		header: widget.NewLabel("No directory open"),
	}

	ip.list = widget.NewList(
		func() int { return len(ip.images) },
		func() fyne.CanvasObject { return widget.NewLabel("image") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ip.images) {
				return
			}
			path := ip.images[id]
			n := ip.state.Store.Collection(path).Len()
			obj.(*widget.Label).SetText(fmt.Sprintf("%s (%d)", filepath.Base(path), n))
		},
	)
	ip.list.OnSelected = func(id widget.ListItemID) {
		if id >= len(ip.images) {
			return
		}
		if err := ip.state.SetActiveImage(ip.images[id]); err != nil {
			log.Printf("switch image: %v", err)
		}
	}

	ip.container = container.NewBorder(ip.header, nil, nil, nil, ip.list)

	state.On(app.EventImageListChanged, func(interface{}) { ip.Reload() })
	state.On(app.EventLabelsChanged, func(interface{}) { ip.list.Refresh() })
	state.On(app.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			ip.selectPath(path)
		}
	})

	return ip
}

// Reload re-reads the image list from state.
func (ip *ImagesPanel) Reload() {
	ip.images = ip.state.ImageList()
	if len(ip.images) == 0 {
		ip.header.SetText("No directory open")
	} else {
		ip.header.SetText(fmt.Sprintf("%d images", len(ip.images)))
	}
	ip.list.Refresh()
}

func (ip *ImagesPanel) selectPath(path string) {
	for i, p := range ip.images {
		if p == path {
			ip.list.Select(i)
			return
		}
	}
}

// Container returns the panel content.
func (ip *ImagesPanel) Container() fyne.CanvasObject {
	return ip.container
}
