// Package main provides the entry point for the Plate Perforator application.
package main

import (
	"log"
	"os"
	"time"

	"plate-perf/internal/app"
	"plate-perf/internal/i18n"
	"plate-perf/internal/version"
	"plate-perf/ui/mainwindow"
	"plate-perf/ui/prefs"

	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/theme"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Printf("Starting Plate Perforator v%s", version.Version)

	appPrefs := prefs.Load()
	if lang := appPrefs.Language(); lang != "" {
		i18n.SetLanguage(i18n.Lang(lang))
	}

	fyneApp := fyneapp.NewWithID("io.plateperf.app")
	variant := theme.VariantLight
	if appPrefs.DarkTheme() {
		variant = theme.VariantDark
	}
	fyneApp.Settings().SetTheme(&app.PerforatorTheme{Variant: variant})

	appState := app.NewState()
	if cfg, ok := appPrefs.PlateConfig(); ok {
		appState.SetConfig(cfg)
	}

	win := mainwindow.New(fyneApp, appState, appPrefs)

	// Handle command line arguments
	if len(os.Args) > 1 {
		imagePath := os.Args[1]
		if err := win.OpenImage(imagePath); err != nil {
			log.Printf("Failed to load image %s: %v", imagePath, err)
		}
	}

	setupHotReload(win)

	win.SetCloseIntercept(func() {
		win.SavePreferences()
		fyneApp.Quit()
	})

	win.ShowAndRun()
}

// setupHotReload configures automatic restart detection when the binary is recompiled.
func setupHotReload(win *mainwindow.MainWindow) {
	reloader := app.NewHotReloader(2 * time.Second)
	if reloader == nil {
		log.Println("Hot reload: unable to determine executable path")
		return
	}

	log.Printf("Hot reload: watching %s (modified %s)",
		reloader.ExecPath(), reloader.StartupTime().Format("15:04:05"))

	reloader.OnTick(func() {
		win.SavePreferencesIfChanged()
	})

	reloader.OnNewBinary(func() {
		log.Println("Hot reload: newer binary detected")
		dialog.ShowConfirm("New Version Available",
			"The application binary has been updated.\nRestart now?",
			func(restart bool) {
				if restart {
					log.Println("Hot reload: saving preferences before restart...")
					win.SavePreferences()
					log.Println("Hot reload: restarting...")
					if err := reloader.Restart(); err != nil {
						log.Printf("Hot reload: restart failed: %v", err)
					}
					return
				}
				reloader.ResetBaseline()
				reloader.Start()
			}, win.Window)
	})

	reloader.Start()
}
