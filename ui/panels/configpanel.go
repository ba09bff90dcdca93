// Package panels provides the configuration side panel.
package panels

import (
	"fmt"
	"strconv"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"plate-perf/internal/app"
	"plate-perf/internal/export"
	"plate-perf/internal/i18n"
	"plate-perf/internal/plate"
)

// ConfigPanel exposes every engine input parameter plus the export action.
type ConfigPanel struct {
	state  *app.State
	window fyne.Window

	container fyne.CanvasObject

	presetSelect *widget.Select
	widthEntry   *widget.Entry
	heightEntry  *widget.Entry

	spacingSlider *widget.Slider
	spacingLabel  *widget.Label
	minHoleSlider *widget.Slider
	minHoleLabel  *widget.Label
	maxHoleSlider *widget.Slider
	maxHoleLabel  *widget.Label
	marginSlider  *widget.Slider
	marginLabel   *widget.Label

	invertedCheck *widget.Check
	enhanceCheck  *widget.Check
	exportButton  *widget.Button

	titleLabel *widget.Label

	// Guards against slider updates echoing back as config changes.
	syncing bool
}

// NewConfigPanel creates the side panel bound to the application state.
func NewConfigPanel(state *app.State) *ConfigPanel {
	cp := &ConfigPanel{state: state}
	cfg := state.ConfigSnapshot()

	cp.titleLabel = widget.NewLabel(i18n.T("panel.plate"))
	cp.titleLabel.TextStyle = fyne.TextStyle{Bold: true}

	cp.presetSelect = widget.NewSelect(plate.ListPresets(), func(name string) {
		if cp.syncing {
			return
		}
		if p, ok := plate.GetPreset(name); ok {
			cur := cp.state.ConfigSnapshot()
			next := p.Config
			// Presets change geometry only; keep the user's mapping knobs.
			next.MinHoleMM = cur.MinHoleMM
			next.MaxHoleMM = cur.MaxHoleMM
			next.Inverted = cur.Inverted
			cp.state.SetConfig(next)
		}
	})

	cp.widthEntry = widget.NewEntry()
	cp.widthEntry.OnSubmitted = func(text string) { cp.submitDimension(text, true) }
	cp.heightEntry = widget.NewEntry()
	cp.heightEntry.OnSubmitted = func(text string) { cp.submitDimension(text, false) }

	cp.spacingSlider = widget.NewSlider(plate.MinSpacingMM, plate.MaxSpacingMM)
	cp.spacingSlider.Step = 0.5
	cp.spacingLabel = widget.NewLabel("")
	cp.spacingSlider.OnChanged = func(v float64) {
		cp.updateConfig(func(c *plate.Config) { c.SpacingMM = v })
	}

	cp.minHoleSlider = widget.NewSlider(0, 10)
	cp.minHoleSlider.Step = 0.1
	cp.minHoleLabel = widget.NewLabel("")
	cp.minHoleSlider.OnChanged = func(v float64) {
		cp.updateConfig(func(c *plate.Config) { c.MinHoleMM = v })
	}

	cp.maxHoleSlider = widget.NewSlider(0, 10)
	cp.maxHoleSlider.Step = 0.1
	cp.maxHoleLabel = widget.NewLabel("")
	cp.maxHoleSlider.OnChanged = func(v float64) {
		cp.updateConfig(func(c *plate.Config) { c.MaxHoleMM = v })
	}

	cp.marginSlider = widget.NewSlider(0, 50)
	cp.marginSlider.Step = 0.5
	cp.marginLabel = widget.NewLabel("")
	cp.marginSlider.OnChanged = func(v float64) {
		cp.updateConfig(func(c *plate.Config) { c.MarginMM = v })
	}

	cp.invertedCheck = widget.NewCheck(i18n.T("panel.inverted"), func(on bool) {
		cp.updateConfig(func(c *plate.Config) { c.Inverted = on })
	})
	cp.enhanceCheck = widget.NewCheck(i18n.T("panel.enhance"), func(on bool) {
		if !cp.syncing {
			cp.state.SetEnhancePass(on)
		}
	})

	cp.exportButton = widget.NewButton(i18n.T("panel.export"), cp.ExportPattern)
	cp.exportButton.Disable()

	cp.container = container.NewVBox(
		cp.titleLabel,
		cp.presetSelect,
		container.NewGridWithColumns(2, cp.widthEntry, cp.heightEntry),
		cp.spacingLabel, cp.spacingSlider,
		cp.minHoleLabel, cp.minHoleSlider,
		cp.maxHoleLabel, cp.maxHoleSlider,
		cp.marginLabel, cp.marginSlider,
		cp.invertedCheck,
		cp.enhanceCheck,
		widget.NewSeparator(),
		cp.exportButton,
	)

	cp.applyConfig(cfg)

	state.On(app.EventConfigChanged, func(data interface{}) {
		cp.applyConfig(data.(plate.Config))
	})
	state.On(app.EventPatternPublished, func(interface{}) {
		cp.refreshExportState()
	})
	state.On(app.EventLanguageChanged, func(interface{}) {
		cp.applyTexts()
	})

	return cp
}

// Container returns the panel container.
func (cp *ConfigPanel) Container() fyne.CanvasObject {
	return cp.container
}

// SetWindow sets the parent window for dialogs.
func (cp *ConfigPanel) SetWindow(w fyne.Window) {
	cp.window = w
}

func (cp *ConfigPanel) submitDimension(text string, isWidth bool) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// Restore the last good value.
		cp.applyConfig(cp.state.ConfigSnapshot())
		return
	}
	cp.updateConfig(func(c *plate.Config) {
		if isWidth {
			c.WidthMM = v
		} else {
			c.HeightMM = v
		}
	})
}

func (cp *ConfigPanel) updateConfig(mutate func(*plate.Config)) {
	if cp.syncing {
		return
	}
	cfg := cp.state.ConfigSnapshot()
	mutate(&cfg)
	cp.state.SetConfig(cfg)
}

// applyConfig pushes config values into the widgets without echoing the
// changes back into the state.
func (cp *ConfigPanel) applyConfig(cfg plate.Config) {
	cp.syncing = true
	cp.widthEntry.SetText(strconv.FormatFloat(cfg.WidthMM, 'f', -1, 64))
	cp.heightEntry.SetText(strconv.FormatFloat(cfg.HeightMM, 'f', -1, 64))
	cp.spacingSlider.SetValue(cfg.SpacingMM)
	cp.minHoleSlider.SetValue(cfg.MinHoleMM)
	cp.maxHoleSlider.SetValue(cfg.MaxHoleMM)
	cp.marginSlider.SetValue(cfg.MarginMM)
	cp.invertedCheck.SetChecked(cfg.Inverted)
	cp.syncing = false

	cp.applyTexts()
}

// applyTexts re-labels all widgets in the active language.
func (cp *ConfigPanel) applyTexts() {
	cfg := cp.state.ConfigSnapshot()
	cp.titleLabel.SetText(i18n.T("panel.plate"))
	cp.presetSelect.PlaceHolder = i18n.T("panel.preset")
	cp.presetSelect.Refresh()
	cp.spacingLabel.SetText(fmt.Sprintf("%s: %.1f", i18n.T("panel.spacing"), cfg.SpacingMM))
	cp.minHoleLabel.SetText(fmt.Sprintf("%s: %.1f", i18n.T("panel.minhole"), cfg.MinHoleMM))
	cp.maxHoleLabel.SetText(fmt.Sprintf("%s: %.1f", i18n.T("panel.maxhole"), cfg.MaxHoleMM))
	cp.marginLabel.SetText(fmt.Sprintf("%s: %.1f", i18n.T("panel.margin"), cfg.MarginMM))
	cp.invertedCheck.Text = i18n.T("panel.inverted")
	cp.invertedCheck.Refresh()
	cp.enhanceCheck.Text = i18n.T("panel.enhance")
	cp.enhanceCheck.Refresh()
	cp.exportButton.SetText(i18n.T("panel.export"))
}

// refreshExportState disables export while there is nothing to cut.
func (cp *ConfigPanel) refreshExportState() {
	if cp.state.Pattern().Empty() {
		cp.exportButton.Disable()
	} else {
		cp.exportButton.Enable()
	}
}

// ExportPattern writes the current dot set as an SVG via a save dialog.
func (cp *ConfigPanel) ExportPattern() {
	ds := cp.state.Pattern()
	if ds.Empty() {
		return
	}

	saveDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil || writer == nil {
			return
		}
		defer writer.Close()
		if err := export.WriteSVG(writer, ds); err != nil {
			dialog.ShowError(err, cp.window)
			return
		}
		dialog.ShowInformation(i18n.T("panel.export"),
			fmt.Sprintf(i18n.T("dialog.export.done"), writer.URI().Name()), cp.window)
	}, cp.window)
	saveDialog.SetFileName(export.Filename(ds.Config, time.Now()))
	saveDialog.Show()
}
