// Package mainwindow provides the main application window.
package mainwindow

import (
	"fmt"
	"path/filepath"

	"plate-perf/internal/app"
	"plate-perf/internal/halftone"
	"plate-perf/internal/i18n"
	img "plate-perf/internal/image"
	"plate-perf/internal/version"
	"plate-perf/ui/canvas"
	"plate-perf/ui/panels"
	"plate-perf/ui/prefs"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// MainWindow is the primary application window.
type MainWindow struct {
	fyne.Window
	app         fyne.App
	state       *app.State
	prefs       *prefs.Prefs
	canvas      *canvas.DotCanvas
	configPanel *panels.ConfigPanel
	statusBar   *widget.Label
	progressBar *widget.ProgressBar
}

// New creates a new main window.
func New(fyneApp fyne.App, state *app.State, appPrefs *prefs.Prefs) *MainWindow {
	win := fyneApp.NewWindow(i18n.T("app.title"))

	mw := &MainWindow{
		Window: win,
		app:    fyneApp,
		state:  state,
		prefs:  appPrefs,
	}

	mw.setupUI()
	mw.setupMenus()
	mw.setupEventHandlers()
	mw.restoreLastImage()

	win.Resize(fyne.NewSize(1000, 700))
	return mw
}

// setupUI creates the main UI layout.
func (mw *MainWindow) setupUI() {
	mw.canvas = canvas.NewDotCanvas()

	mw.configPanel = panels.NewConfigPanel(mw.state)
	mw.configPanel.SetWindow(mw.Window)

	mw.statusBar = widget.NewLabel(i18n.T("status.noimage"))
	mw.progressBar = widget.NewProgressBar()
	mw.progressBar.Hide()

	toolbar := mw.createToolbar()

	canvasArea := container.NewBorder(
		toolbar,     // top
		nil,         // bottom
		nil,         // left
		nil,         // right
		mw.canvas,   // center
	)

	split := container.NewHSplit(
		mw.configPanel.Container(),
		canvasArea,
	)
	split.SetOffset(0.28)

	statusRow := container.NewBorder(nil, nil, nil, mw.progressBar, mw.statusBar)

	content := container.NewBorder(
		nil,                            // top
		container.NewPadded(statusRow), // bottom
		nil,                            // left
		nil,                            // right
		split,                          // center
	)

	mw.SetContent(content)
}

// createToolbar creates the toolbar with zoom controls.
func (mw *MainWindow) createToolbar() fyne.CanvasObject {
	zoomOutBtn := widget.NewButton("-", mw.canvas.ZoomOut)
	zoomInBtn := widget.NewButton("+", mw.canvas.ZoomIn)
	fitBtn := widget.NewButton("Fit", mw.canvas.FitToWindow)

	return container.NewHBox(
		widget.NewLabel("Zoom:"),
		zoomOutBtn,
		zoomInBtn,
		fitBtn,
	)
}

// setupMenus creates the application menus.
func (mw *MainWindow) setupMenus() {
	fileMenu := fyne.NewMenu(i18n.T("menu.file"),
		fyne.NewMenuItem(i18n.T("menu.open"), mw.onOpenImage),
		fyne.NewMenuItem(i18n.T("menu.export"), mw.onExportSVG),
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem(i18n.T("menu.quit"), func() { mw.app.Quit() }),
	)

	langMenu := fyne.NewMenu(i18n.T("menu.lang"),
		fyne.NewMenuItem("English", func() { mw.setLanguage(i18n.LangEN) }),
		fyne.NewMenuItem("中文", func() { mw.setLanguage(i18n.LangZH) }),
	)

	viewMenu := fyne.NewMenu(i18n.T("menu.view"),
		fyne.NewMenuItem(i18n.T("menu.theme.light"), func() { mw.setDarkTheme(false) }),
		fyne.NewMenuItem(i18n.T("menu.theme.dark"), func() { mw.setDarkTheme(true) }),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mw.onAbout),
	)

	mw.SetMainMenu(fyne.NewMainMenu(fileMenu, viewMenu, langMenu, helpMenu))
}

// setupEventHandlers registers for application events.
func (mw *MainWindow) setupEventHandlers() {
	mw.state.On(app.EventImageLoaded, func(data interface{}) {
		if layer, ok := data.(*img.Layer); ok {
			mw.SetTitle(i18n.T("app.title") + " - " + filepath.Base(layer.Path))
		}
		mw.updateStatus(i18n.T("status.generating"))
	})

	mw.state.On(app.EventPatternPublished, func(data interface{}) {
		ds, ok := data.(*halftone.DotSet)
		if !ok {
			return
		}
		mw.canvas.SetPattern(ds)
		mw.progressBar.Hide()
		if ds.Empty() {
			mw.updateStatus(i18n.T("status.empty"))
			return
		}
		st := ds.Stats()
		mw.updateStatus(fmt.Sprintf(i18n.T("status.dots"),
			st.Count, 2*st.MeanR, 100*st.OpenArea))
	})

	mw.state.On(app.EventProgress, func(data interface{}) {
		p, ok := data.(halftone.Progress)
		if !ok {
			return
		}
		mw.progressBar.Show()
		mw.progressBar.SetValue(p.Fraction())
		mw.statusBar.SetText(i18n.T("status.generating"))
	})

	mw.state.On(app.EventLanguageChanged, func(interface{}) {
		mw.SetTitle(i18n.T("app.title"))
		mw.setupMenus()
		mw.updateStatus(i18n.T("status.ready"))
	})
}

// updateStatus updates the status bar text.
func (mw *MainWindow) updateStatus(text string) {
	mw.statusBar.SetText(text)
}

func (mw *MainWindow) setLanguage(lang i18n.Lang) {
	i18n.SetLanguage(lang)
	mw.prefs.SetLanguage(string(lang))
	mw.state.Emit(app.EventLanguageChanged, lang)
}

func (mw *MainWindow) setDarkTheme(dark bool) {
	variant := theme.VariantLight
	if dark {
		variant = theme.VariantDark
	}
	mw.app.Settings().SetTheme(&app.PerforatorTheme{Variant: variant})
	mw.prefs.SetDarkTheme(dark)
	mw.state.Emit(app.EventThemeChanged, dark)
}

// getLastDir returns the last used directory as a ListableURI, or nil.
func (mw *MainWindow) getLastDir() fyne.ListableURI {
	path := mw.prefs.LastDirectory()
	if path == "" {
		return nil
	}
	uri := storage.NewFileURI(path)
	listable, err := storage.ListerForURI(uri)
	if err != nil {
		return nil
	}
	return listable
}

// restoreLastImage reloads the image used in the previous session.
func (mw *MainWindow) restoreLastImage() {
	path := mw.prefs.LastImage()
	if path == "" {
		return
	}
	if err := mw.state.LoadImage(path); err != nil {
		// Stale preference; the file may have moved.
		mw.prefs.SetLastImage("")
	}
}

// OpenImage loads a source image by path, recording it in preferences.
func (mw *MainWindow) OpenImage(path string) error {
	if err := mw.state.LoadImage(path); err != nil {
		return err
	}
	mw.prefs.SetLastDirectory(filepath.Dir(path))
	mw.prefs.SetLastImage(path)
	return nil
}

// SavePreferences writes preferences to disk, capturing the current
// plate configuration first.
func (mw *MainWindow) SavePreferences() {
	mw.prefs.SetPlateConfig(mw.state.ConfigSnapshot())
	if err := mw.prefs.Save(); err != nil {
		mw.updateStatus(err.Error())
	}
}

// SavePreferencesIfChanged writes preferences only when dirty.
func (mw *MainWindow) SavePreferencesIfChanged() {
	if err := mw.prefs.SaveIfChanged(); err != nil {
		mw.updateStatus(err.Error())
	}
}

// Menu action handlers

func (mw *MainWindow) onOpenImage() {
	fd := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil || reader == nil {
			return
		}
		reader.Close()
		path := reader.URI().Path()
		if err := mw.OpenImage(path); err != nil {
			dialog.ShowError(err, mw.Window)
		}
	}, mw.Window)
	fd.SetFilter(storage.NewExtensionFileFilter(img.SupportedFormats()))
	if loc := mw.getLastDir(); loc != nil {
		fd.SetLocation(loc)
	}
	fd.Show()
}

func (mw *MainWindow) onExportSVG() {
	mw.configPanel.ExportPattern()
}

func (mw *MainWindow) onAbout() {
	dialog.ShowInformation("About "+i18n.T("app.title"),
		fmt.Sprintf("%s v%s\n\n"+
			"Turns images into halftone perforation patterns\n"+
			"for laser-cut plates.\n\n"+
			"Built: %s\n"+
			"Commit: %s",
			i18n.T("app.title"), version.Version, version.BuildTime, version.GitCommit),
		mw.Window)
}
