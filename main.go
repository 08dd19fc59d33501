// Package main provides the entry point for the YOLO Labeler application.
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"

	"yolo-labeler/internal/app"
	"yolo-labeler/internal/version"
	"yolo-labeler/ui/mainwindow"
	"yolo-labeler/ui/prefs"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting YOLO Labeler %s", version.String())

	fyneApp := fyneapp.NewWithID("io.github.yolo-labeler")
	fyneApp.Settings().SetTheme(&app.LabelerTheme{})

	appState := app.NewState()
	appPrefs := prefs.Load()

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Accept a project file or an image directory on the command line.
	if len(os.Args) > 1 {
		arg := os.Args[1]
		var err error
		if filepath.Ext(arg) == ".lblproj" {
			err = appState.LoadProject(arg)
		} else {
			err = appState.OpenImageDir(arg)
		}
		if err != nil {
			log.Printf("Failed to open %s: %v", arg, err)
		}
	}

	setupHotReload(win)

	win.SetOnClosed(func() {
		win.CloseResources()
		appState.Close()
		if err := appPrefs.Save(); err != nil {
			log.Printf("Failed to save preferences: %v", err)
		}
	})

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is
// recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if !restart {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win.Window)
	})
	reloader.Start()
}
