package form

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"shutdowntimer/internal/core/countdown"
	"shutdowntimer/internal/core/model"
)

const (
	Title  = "Shutdown Timer"
	Width  = float32(720)
	Height = float32(320)

	titleSize   = 48
	buttonWidth = float32(100)
	entryWidth  = float32(60)
)

// Callbacks lets the caller react to form actions.
type Callbacks struct {
	// OnStarted runs after a countdown was armed with the given fields.
	OnStarted func(model.DurationFields)
	// OnChanged runs after any action that may change the countdown state.
	OnChanged func()
}

// Window is the main countdown form.
type Window struct {
	window        fyne.Window
	countdown     *countdown.Countdown
	callbacks     Callbacks
	clockLabel    *widget.Label
	shutdownLabel *widget.Label
	hours         *widget.Entry
	minutes       *widget.Entry
	seconds       *widget.Entry
	actionButton  *widget.Button
	resetButton   *widget.Button
	syncing       bool
}

// New builds the form window around an existing countdown.
func New(app fyne.App, timer *countdown.Countdown, callbacks Callbacks) *Window {
	window := app.NewWindow(Title)

	title := canvas.NewText(Title, theme.Color(theme.ColorNameForeground))
	title.TextSize = titleSize
	title.TextStyle = fyne.TextStyle{Bold: true}
	title.Alignment = fyne.TextAlignCenter

	form := &Window{
		window:        window,
		countdown:     timer,
		callbacks:     callbacks,
		clockLabel:    widget.NewLabel(""),
		shutdownLabel: widget.NewLabel(""),
		hours:         newFieldEntry(),
		minutes:       newFieldEntry(),
		seconds:       newFieldEntry(),
	}

	form.hours.OnChanged = form.handleHoursChanged
	form.minutes.OnChanged = form.handleMinutesChanged
	form.seconds.OnChanged = form.handleSecondsChanged

	form.actionButton = widget.NewButton("Start", form.handleAction)
	form.resetButton = widget.NewButton("Reset", form.handleReset)
	form.resetButton.Importance = widget.WarningImportance

	status := container.NewHBox(layout.NewSpacer(), form.clockLabel, form.shutdownLabel, layout.NewSpacer())
	inputs := container.NewHBox(
		layout.NewSpacer(),
		fieldColumn("Hours", form.hours),
		fieldColumn("Minutes", form.minutes),
		fieldColumn("Seconds", form.seconds),
		layout.NewSpacer(),
	)
	buttons := container.NewHBox(
		layout.NewSpacer(),
		sized(form.actionButton, buttonWidth),
		sized(form.resetButton, buttonWidth),
		layout.NewSpacer(),
	)

	window.SetContent(container.NewVBox(title, status, inputs, layout.NewSpacer(), buttons))
	window.Resize(fyne.NewSize(Width, Height))
	window.SetFixedSize(true)

	form.Refresh()
	return form
}

// Show displays the form window.
func (form *Window) Show() {
	form.window.Show()
	form.window.RequestFocus()
}

// Hide hides the form window.
func (form *Window) Hide() {
	form.window.Hide()
}

// Window exposes the underlying fyne window.
func (form *Window) Window() fyne.Window {
	return form.window
}

// Tick forwards a heartbeat to the countdown and redraws. Call on the UI goroutine.
func (form *Window) Tick() {
	form.countdown.Tick()
	form.Refresh()
}

// ToggleCountdown starts an idle countdown or stops a running one.
func (form *Window) ToggleCountdown() {
	form.handleAction()
}

// ResetCountdown stops the countdown and zeroes the fields.
func (form *Window) ResetCountdown() {
	form.handleReset()
}

// Refresh copies countdown state into the widgets.
func (form *Window) Refresh() {
	form.clockLabel.SetText("Current time: " + form.countdown.CurrentTimeLabel())
	form.shutdownLabel.SetText("Shutdown at: " + form.countdown.ShutdownAtLabel())

	fields := form.countdown.Fields()
	form.syncing = true
	setIfChanged(form.hours, fields.Hours)
	setIfChanged(form.minutes, fields.Minutes)
	setIfChanged(form.seconds, fields.Seconds)
	form.syncing = false

	if form.countdown.Active() {
		form.actionButton.SetText("Stop")
		form.actionButton.Importance = widget.DangerImportance
	} else {
		form.actionButton.SetText("Start")
		form.actionButton.Importance = widget.MediumImportance
	}
	form.actionButton.Refresh()
}

func (form *Window) handleHoursChanged(text string) {
	if form.syncing {
		return
	}
	form.countdown.EditHours(text)
	form.changed()
}

func (form *Window) handleMinutesChanged(text string) {
	if form.syncing {
		return
	}
	form.countdown.EditMinutes(text)
	form.changed()
}

func (form *Window) handleSecondsChanged(text string) {
	if form.syncing {
		return
	}
	form.countdown.EditSeconds(text)
	form.changed()
}

func (form *Window) handleAction() {
	if form.countdown.Active() {
		form.countdown.Stop()
		form.changed()
		return
	}

	form.countdown.Start()
	if form.countdown.Active() && form.callbacks.OnStarted != nil {
		form.callbacks.OnStarted(form.countdown.Fields())
	}
	form.changed()
}

func (form *Window) handleReset() {
	form.countdown.Reset()
	form.changed()
}

func (form *Window) changed() {
	form.Refresh()
	if form.callbacks.OnChanged != nil {
		form.callbacks.OnChanged()
	}
}

func newFieldEntry() *widget.Entry {
	entry := widget.NewEntry()
	entry.SetPlaceHolder("00")
	return entry
}

func fieldColumn(label string, entry *widget.Entry) fyne.CanvasObject {
	return container.NewVBox(
		widget.NewLabelWithStyle(label, fyne.TextAlignCenter, fyne.TextStyle{}),
		sized(entry, entryWidth),
	)
}

func sized(object fyne.CanvasObject, width float32) fyne.CanvasObject {
	return container.NewGridWrap(fyne.NewSize(width, object.MinSize().Height), object)
}

func setIfChanged(entry *widget.Entry, text string) {
	if entry.Text != text {
		entry.SetText(text)
	}
}
