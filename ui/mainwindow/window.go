// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"log"
	"path/filepath"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"yolo-labeler/internal/app"
	"yolo-labeler/internal/autolabel"
	"yolo-labeler/internal/frames"
	"yolo-labeler/internal/suggest"
	"yolo-labeler/internal/version"
	"yolo-labeler/ui/canvas"
	"yolo-labeler/ui/dialogs"
	"yolo-labeler/ui/panels"
	"yolo-labeler/ui/prefs"
)

const appTitle = "YOLO Labeler"

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app       fyne.App
	state     *app.State
	prefs     *prefs.Prefs
	canvas    *canvas.LabelCanvas
	sidePanel *panels.SidePanel
	statusBar *widget.Label
	zoomLabel *widget.Label

	ocr *suggest.Engine
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, p *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(appTitle)

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  p,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupShortcuts()
	mw.setupEventHandlers()

	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.New(mw.state)
	mw.sidePanel = panels.NewSidePanel(mw.state, mw.canvas)
	mw.statusBar = widget.NewLabel("Ready")
	mw.zoomLabel = widget.NewLabel("100%")

	mw.canvas.OnZoomChange(func(scale float64) {
		mw.zoomLabel.SetText(fmt.Sprintf("%.0f%%", scale*100))
	})

	toolbar := container.NewHBox(
		widget.NewButton("-", mw.canvas.ZoomOut),
		widget.NewButton("+", mw.canvas.ZoomIn),
		widget.NewButton("1:1", mw.canvas.ResetZoom),
		mw.zoomLabel,
	)

	canvasArea := container.NewBorder(toolbar, nil, nil, nil, mw.canvas)

	split := container.NewHSplit(mw.sidePanel.Container(), canvasArea)
	split.SetOffset(0.22)

	content := container.NewBorder(
		nil,
		container.NewPadded(mw.statusBar),
		nil, nil,
		split,
	)

	mw.SetContent(content)
	mw.Resize(fyne.NewSize(1280, 800))
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image Directory...", mw.onOpenDirectory),
		fyne.NewMenuItem("Open Project...", mw.onOpenProject),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Save Labels", mw.onSaveLabels),
		fyne.NewMenuItem("Save Project As...", mw.onSaveProjectAs),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Extract Frames from Video...", mw.onExtractFrames),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Quit", func() { mw.app.Quit() }),
	)

	editMenu := fyne.NewMenu("Edit",
		fyne.NewMenuItem("Undo", mw.onUndo),
		fyne.NewMenuItem("Redo", mw.onRedo),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy", mw.onCopy),
		fyne.NewMenuItem("Paste", mw.onPaste),
		fyne.NewMenuItem("Select All", mw.onSelectAll),
		fyne.NewMenuItem("Delete Selection", mw.onDelete),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Suggest Name (OCR)", mw.onSuggestName),
	)

	viewMenu := fyne.NewMenu("View",
		fyne.NewMenuItem("Zoom In", mw.canvas.ZoomIn),
		fyne.NewMenuItem("Zoom Out", mw.canvas.ZoomOut),
		fyne.NewMenuItem("Actual Size", mw.canvas.ResetZoom),
	)

	toolsMenu := fyne.NewMenu("Tools",
		fyne.NewMenuItem("Load Detection Model...", mw.onLoadModel),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Auto-Label Current Image", mw.onAutoLabelCurrent),
		fyne.NewMenuItem("Auto-Label All Images", mw.onAutoLabelAll),
		fyne.NewMenuItem("Cancel Auto-Label", mw.onCancelAutoLabel),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, editMenu, viewMenu, toolsMenu, helpMenu))
}

// setupShortcuts wires the keyboard: editing shortcuts plus delete and
// arrow-key nudging.
func (mw *MainWindow) setupShortcuts() {
	c := mw.Canvas()

	shortcuts := map[fyne.KeyName]func(){
		fyne.KeyZ: mw.onUndo,
		fyne.KeyY: mw.onRedo,
		fyne.KeyC: mw.onCopy,
		fyne.KeyV: mw.onPaste,
		fyne.KeyA: mw.onSelectAll,
	}
	for key, fn := range shortcuts {
		handler := fn
		c.AddShortcut(&desktop.CustomShortcut{
			KeyName:  key,
			Modifier: fyne.KeyModifierControl,
		}, func(fyne.Shortcut) { handler() })
	}

	c.SetOnTypedKey(func(ev *fyne.KeyEvent) {
		switch ev.Name {
		case fyne.KeyDelete, fyne.KeyBackspace:
			mw.onDelete()
		case fyne.KeyLeft:
			mw.nudge(-1, 0)
		case fyne.KeyRight:
			mw.nudge(1, 0)
		case fyne.KeyUp:
			mw.nudge(0, -1)
		case fyne.KeyDown:
			mw.nudge(0, 1)
		}
	})
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventProjectLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			mw.SetTitle(appTitle + " - " + filepath.Base(path))
			mw.updateStatus("Project loaded: " + path)
		}
	})

	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if path, ok := data.(string); ok {
			n := mw.state.Store.Collection(path).Len()
			mw.updateStatus(fmt.Sprintf("%s (%d boxes)", filepath.Base(path), n))
		}
	})

	mw.state.On(app.EventModified, func(data interface{}) {
		if modified, ok := data.(bool); ok && modified {
			title := mw.Title()
			if len(title) > 0 && title[len(title)-1] != '*' {
				mw.SetTitle(title + " *")
			}
		}
	})

	mw.state.On(app.EventAutoLabelProgress, func(data interface{}) {
		if p, ok := data.(autolabel.Progress); ok {
			mw.updateStatus(fmt.Sprintf("Auto-label %d/%d: %s (%d boxes)",
				p.Index+1, p.Total, filepath.Base(p.Image), p.Detections))
		}
	})

	mw.state.On(app.EventAutoLabelDone, func(data interface{}) {
		if stats, ok := data.(autolabel.Stats); ok {
			mw.updateStatus(fmt.Sprintf(
				"Auto-label done: %d boxes over %d images, %d failures",
				stats.Boxes, stats.Images, stats.Failures))
		}
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.String(prefs.KeyLastImageDir)
	if path == "" {
		return nil
	}
	listable, err := storage.ListerForURI(storage.NewFileURI(path))
	if err != nil {
		return nil
	}
	return listable
}

// saveLastDir saves the directory of the given path to preferences.
func (mw *MainWindow) saveLastDir(path string) {
	mw.prefs.SetString(prefs.KeyLastImageDir, filepath.Dir(path))
	if err := mw.prefs.Save(); err != nil {
		log.Printf("save preferences: %v", err)
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenDirectory() {
	fd := dialog.NewFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		dir := uri.Path()
		mw.prefs.SetString(prefs.KeyLastImageDir, dir)
		if err := mw.prefs.Save(); err != nil {
			log.Printf("save preferences: %v", err)
		}
		if err := mw.state.OpenImageDir(dir); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle(appTitle + " - " + filepath.Base(dir))
	}, mw.Window)
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onOpenProject() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.saveLastDir(path)
		mw.prefs.SetString(prefs.KeyLastProject, path)
		if err := mw.state.LoadProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".lblproj"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onSaveLabels() {
	if err := mw.state.SaveAllLabels(); err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	mw.updateStatus("Labels saved")
}

func (mw *MainWindow) onSaveProjectAs() {
	fd := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		writer.Close()
		path := writer.URI().Path()
		if filepath.Ext(path) != ".lblproj" {
			path += ".lblproj"
		}
		mw.saveLastDir(path)
		if err := mw.state.SaveProject(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.SetTitle(appTitle + " - " + filepath.Base(path))
	}, mw.Window)
	fd.SetFileName("labels.lblproj")
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExtractFrames() {
	if mw.state.ImageDir == "" {
		dialog.ShowInformation("Extract Frames",
			"Open an image directory first; frames are written there.", mw.Window)
		return
	}
	dialogs.NewFramesDialog(mw.Window, mw.state.ImageDir, func(res *frames.Result) {
		if err := mw.state.OpenImageDir(mw.state.ImageDir); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}).Show()
}

func (mw *MainWindow) onUndo() {
	mw.state.Editor.Undo()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onRedo() {
	mw.state.Editor.Redo()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onCopy() {
	mw.state.Editor.Copy()
}

func (mw *MainWindow) onPaste() {
	mw.state.Editor.Paste()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onSelectAll() {
	mw.state.Editor.SelectAll()
	mw.canvas.Refresh()
}

func (mw *MainWindow) onDelete() {
	mw.state.Editor.DeleteSelection()
	mw.canvas.Refresh()
}

func (mw *MainWindow) nudge(dx, dy float64) {
	mw.state.Editor.Nudge(dx, dy)
	mw.canvas.Refresh()
}

// onSuggestName OCRs the primary selection's region and applies the result
// as the box name.
func (mw *MainWindow) onSuggestName() {
	b := mw.state.Editor.Selection().Primary()
	if b == nil {
		mw.updateStatus("Select a box first")
		return
	}
	img := mw.state.ActivePixels()
	if img == nil {
		return
	}

	if mw.ocr == nil {
		engine, err := suggest.NewEngine()
		if err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.ocr = engine
	}

	text, err := mw.ocr.Suggest(img, b.Rect())
	if err != nil {
		dialog.ShowError(err, mw.Window)
		return
	}
	if text == "" {
		mw.updateStatus("No readable text in selection")
		return
	}
	mw.state.Editor.Rename(b, text)
	mw.updateStatus("Renamed to " + text)
}

func (mw *MainWindow) onLoadModel() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		mw.prefs.SetString(prefs.KeyLastModelPath, path)
		if err := mw.state.LoadModel(path); err != nil {
			dialog.ShowError(err, mw.Window)
			return
		}
		mw.updateStatus("Model loaded: " + filepath.Base(path))
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter([]string{".onnx"}))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onAutoLabelCurrent() {
	if mw.state.ActiveImage == "" {
		return
	}
	mw.startAutoLabel([]string{mw.state.ActiveImage})
}

func (mw *MainWindow) onAutoLabelAll() {
	mw.startAutoLabel(nil)
}

func (mw *MainWindow) startAutoLabel(images []string) {
	if !mw.state.ModelLoaded() {
		dialog.ShowInformation("Auto-Label",
			"Load a detection model first (Tools > Load Detection Model).", mw.Window)
		return
	}
	if err := mw.state.AutoLabel(images); err != nil {
		dialog.ShowError(err, mw.Window)
	}
}

func (mw *MainWindow) onCancelAutoLabel() {
	mw.state.CancelAutoLabel()
	mw.updateStatus("Auto-label cancel requested")
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+appTitle,
		fmt.Sprintf("%s %s\n\n"+
			"An image annotation tool for object detection datasets,\n"+
			"with YOLO-format label files and model-assisted labeling.",
			appTitle, version.String()),
		mw.Window)
}

// CloseResources releases window-owned resources.
func (mw *MainWindow) CloseResources() {
	if mw.ocr != nil {
		mw.ocr.Close()
		mw.ocr = nil
	}
}
