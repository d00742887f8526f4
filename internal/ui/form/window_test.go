package form

import (
	"testing"
	"time"

	"fyne.io/fyne/v2/test"
	"fyne.io/fyne/v2/widget"

	"shutdowntimer/internal/core/countdown"
	"shutdowntimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stepClock struct {
	current time.Time
}

func (clock *stepClock) Now() time.Time {
	return clock.current
}

type countingShutdowner struct {
	calls int
}

func (shutdowner *countingShutdowner) Shutdown() error {
	shutdowner.calls++
	return nil
}

func newTestForm(t *testing.T, callbacks Callbacks) (*Window, *stepClock, *countingShutdowner) {
	t.Helper()
	app := test.NewApp()
	t.Cleanup(app.Quit)

	clock := &stepClock{current: time.Date(2024, 3, 1, 22, 15, 0, 0, time.Local)}
	shutdowner := &countingShutdowner{}
	timer := countdown.New(model.DefaultCountdownConfig(), clock, shutdowner)
	return New(app, timer, callbacks), clock, shutdowner
}

func TestFormStartsIdle(t *testing.T) {
	form, _, _ := newTestForm(t, Callbacks{})

	assert.Equal(t, "00", form.hours.Text)
	assert.Equal(t, "00", form.minutes.Text)
	assert.Equal(t, "00", form.seconds.Text)
	assert.Equal(t, "Start", form.actionButton.Text)
	assert.Equal(t, "Current time: 22:15:00", form.clockLabel.Text)
	assert.Equal(t, "Shutdown at: Not set", form.shutdownLabel.Text)
}

func TestFormClampsEdits(t *testing.T) {
	form, _, _ := newTestForm(t, Callbacks{})

	form.handleHoursChanged("30")
	form.handleMinutesChanged("-4")
	form.handleSecondsChanged("75")

	assert.Equal(t, "23", form.hours.Text)
	assert.Equal(t, "00", form.minutes.Text)
	assert.Equal(t, "59", form.seconds.Text)
}

func TestFormStartStopToggle(t *testing.T) {
	var started []model.DurationFields
	changes := 0
	form, _, _ := newTestForm(t, Callbacks{
		OnStarted: func(fields model.DurationFields) { started = append(started, fields) },
		OnChanged: func() { changes++ },
	})

	form.handleSecondsChanged("05")
	test.Tap(form.actionButton)

	require.True(t, form.countdown.Active())
	assert.Equal(t, "Stop", form.actionButton.Text)
	assert.Equal(t, widget.DangerImportance, form.actionButton.Importance)
	assert.Equal(t, "Shutdown at: 22:15:05", form.shutdownLabel.Text)
	require.Len(t, started, 1)
	assert.Equal(t, "05", started[0].Seconds)

	test.Tap(form.actionButton)

	assert.False(t, form.countdown.Active())
	assert.Equal(t, "Start", form.actionButton.Text)
	assert.Equal(t, "05", form.seconds.Text)
	assert.Equal(t, 3, changes)
}

func TestFormStartWithZeroDurationIsIgnored(t *testing.T) {
	called := false
	form, _, _ := newTestForm(t, Callbacks{OnStarted: func(model.DurationFields) { called = true }})

	test.Tap(form.actionButton)

	assert.False(t, form.countdown.Active())
	assert.False(t, called)
	assert.Equal(t, "Start", form.actionButton.Text)
}

func TestFormResetZeroesFields(t *testing.T) {
	form, _, _ := newTestForm(t, Callbacks{})
	form.handleMinutesChanged("12")
	form.ToggleCountdown()

	test.Tap(form.resetButton)

	assert.False(t, form.countdown.Active())
	assert.Equal(t, "00", form.minutes.Text)
	assert.Equal(t, "Shutdown at: Not set", form.shutdownLabel.Text)
}

func TestFormTickShutsDownAfterDeadline(t *testing.T) {
	form, clock, shutdowner := newTestForm(t, Callbacks{})
	form.handleSecondsChanged("05")
	form.ToggleCountdown()

	clock.current = clock.current.Add(6 * time.Second)
	form.Tick()

	assert.Equal(t, 1, shutdowner.calls)
	assert.Equal(t, "Current time: 22:15:06", form.clockLabel.Text)
}
