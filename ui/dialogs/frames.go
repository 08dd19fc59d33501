// Package dialogs provides application dialogs.
package dialogs

import (
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"yolo-labeler/internal/frames"
)

// videoExtensions are the containers offered by the video picker.
var videoExtensions = []string{".mp4", ".avi", ".mkv", ".mov", ".webm"}

// FramesDialog extracts still frames from a video into the image directory.
type FramesDialog struct {
	window fyne.Window

	videoEntry *widget.Entry
	stepEntry  *widget.Entry
	maxEntry   *widget.Entry
	outDir     string

	// onDone receives the extraction result on success.
	onDone func(*frames.Result)
}

// NewFramesDialog creates a frame extraction dialog writing into outDir.
func NewFramesDialog(window fyne.Window, outDir string, onDone func(*frames.Result)) *FramesDialog {
	return &FramesDialog{
		window: window,
		outDir: outDir,
		onDone: onDone,
	}
}

// Show displays the dialog.
func (d *FramesDialog) Show() {
	d.videoEntry = widget.NewEntry()
	d.videoEntry.SetPlaceHolder("Video file")
	browseBtn := widget.NewButton("Browse...", d.browse)

	d.stepEntry = widget.NewEntry()
	d.stepEntry.SetText("30")
	d.maxEntry = widget.NewEntry()
	d.maxEntry.SetText("0")

	form := container.NewVBox(
		container.NewBorder(nil, nil, nil, browseBtn, d.videoEntry),
		widget.NewForm(
			widget.NewFormItem("Every Nth frame", d.stepEntry),
			widget.NewFormItem("Max frames (0 = all)", d.maxEntry),
		),
		widget.NewLabel("Output: "+d.outDir),
	)

	dlg := dialog.NewCustomConfirm(
		"Extract Frames",
		"Extract",
		"Cancel",
		form,
		func(ok bool) {
			if ok {
				d.extract()
			}
		},
		d.window,
	)
	dlg.Resize(fyne.NewSize(480, 240))
	dlg.Show()
}

func (d *FramesDialog) browse() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		d.videoEntry.SetText(reader.URI().Path())
	}, d.window)
	fd.SetFilter(storage.NewExtensionFileFilter(videoExtensions))
	fd.Show()
}

func (d *FramesDialog) extract() {
	video := d.videoEntry.Text
	if video == "" {
		dialog.ShowError(fmt.Errorf("no video selected"), d.window)
		return
	}
	step, err := strconv.Atoi(d.stepEntry.Text)
	if err != nil || step < 1 {
		step = 1
	}
	maxFrames, err := strconv.Atoi(d.maxEntry.Text)
	if err != nil || maxFrames < 0 {
		maxFrames = 0
	}

	progress := dialog.NewCustomWithoutButtons("Extracting frames...",
		widget.NewProgressBarInfinite(), d.window)
	progress.Show()

	go func() {
		res, err := frames.Extract(video, d.outDir, frames.Options{
			Step:      step,
			MaxFrames: maxFrames,
		})
		progress.Hide()
		if err != nil {
			dialog.ShowError(err, d.window)
			return
		}
		dialog.ShowInformation("Extraction Complete",
			fmt.Sprintf("Wrote %d of %d frames to %s",
				res.FramesWritten, res.FramesRead, res.OutputDir),
			d.window)
		if d.onDone != nil {
			d.onDone(res)
		}
	}()
}
