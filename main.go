// Package main provides the entry point for the Print Studio
// application.
package main

import (
	"log"
	"os"
	"path/filepath"
	"time"

	"print-studio/internal/app"
	"print-studio/ui/mainwindow"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
)

const appTitle = "Print Studio"

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting %s", appTitle)

	fyneApp := fyneapp.NewWithID("com.printstudio.editor")
	fyneApp.Settings().SetTheme(&app.StudioTheme{})

	appState := app.NewState()
	win := mainwindow.New(fyneApp, appState)

	// A document path on the command line opens it in the matching
	// editor.
	if len(os.Args) > 1 {
		path := os.Args[1]
		var err error
		switch filepath.Ext(path) {
		case ".pstmpl":
			err = appState.LoadTemplateDocument(path)
		default:
			err = appState.LoadAreaDocument(path)
		}
		if err != nil {
			log.Printf("Failed to open %s: %v", path, err)
		}
	}

	setupHotReload(win)

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary
// is recompiled.
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
			func(yes bool) {
				if !yes {
					reloader.ResetBaseline()
					reloader.Start()
					return
				}
				log.Println("Hot reload: restarting...")
				if err := reloader.Restart(); err != nil {
					log.Printf("Hot reload: restart failed: %v", err)
				}
			}, win)
	})

	reloader.Start()
}
