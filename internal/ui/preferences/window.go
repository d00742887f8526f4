package preferences

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
)

// Window handles the preferences UI.
type Window struct {
	window      fyne.Window
	settings    Settings
	onSave      func(Settings)
	remember    *widget.Check
	history     *widget.Check
	closeToTray *widget.Check
}

// New creates a preferences window.
func New(app fyne.App, settings Settings, onSave func(Settings)) *Window {
	window := app.NewWindow("Shutdown Timer Settings")

	remember := widget.NewCheck("Remember the last started duration", nil)
	history := widget.NewCheck("Keep a history of countdowns", nil)
	closeToTray := widget.NewCheck("Closing the window keeps the timer in the tray", nil)

	form := container.NewVBox(
		widget.NewLabelWithStyle("General", fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		remember,
		history,
		closeToTray,
	)

	saveButton := widget.NewButton("Save", nil)
	cancelButton := widget.NewButton("Cancel", nil)
	buttons := container.NewHBox(saveButton, layout.NewSpacer(), cancelButton)

	window.SetContent(container.NewBorder(nil, buttons, nil, nil, form))
	window.Resize(fyne.NewSize(380, 200))

	prefs := &Window{
		window:      window,
		onSave:      onSave,
		remember:    remember,
		history:     history,
		closeToTray: closeToTray,
	}
	prefs.UpdateSettings(settings)

	saveButton.OnTapped = prefs.handleSave
	cancelButton.OnTapped = func() {
		prefs.UpdateSettings(prefs.settings)
		window.Hide()
	}

	return prefs
}

// Show displays the preferences window.
func (prefs *Window) Show() {
	prefs.window.Show()
	prefs.window.RequestFocus()
}

// Settings returns the last saved settings.
func (prefs *Window) Settings() Settings {
	return prefs.settings
}

// UpdateSettings replaces window values.
func (prefs *Window) UpdateSettings(settings Settings) {
	prefs.settings = settings
	prefs.remember.SetChecked(settings.RememberDuration)
	prefs.history.SetChecked(settings.HistoryEnabled)
	prefs.closeToTray.SetChecked(settings.CloseToTray)
}

func (prefs *Window) handleSave() {
	settings := prefs.settings
	settings.RememberDuration = prefs.remember.Checked
	settings.HistoryEnabled = prefs.history.Checked
	settings.CloseToTray = prefs.closeToTray.Checked

	prefs.settings = settings
	if prefs.onSave != nil {
		prefs.onSave(settings)
	}
	prefs.window.Hide()
}
