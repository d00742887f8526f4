package countdown

import (
	"errors"
	"testing"
	"time"

	"shutdowntimer/internal/core/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2024, 3, 1, 21, 0, 0, 0, time.Local)}
}

func (clock *fakeClock) Now() time.Time {
	return clock.current
}

func (clock *fakeClock) Advance(d time.Duration) {
	clock.current = clock.current.Add(d)
}

type recordingShutdowner struct {
	calls int
	err   error
}

func (shutdowner *recordingShutdowner) Shutdown() error {
	shutdowner.calls++
	return shutdowner.err
}

func newCountdown() (*Countdown, *fakeClock, *recordingShutdowner) {
	clock := newFakeClock()
	shutdowner := &recordingShutdowner{}
	return New(model.DefaultCountdownConfig(), clock, shutdowner), clock, shutdowner
}

func TestNewStartsIdleWithSentinel(t *testing.T) {
	countdown, clock, _ := newCountdown()

	assert.False(t, countdown.Active())
	assert.Equal(t, model.ZeroFields(), countdown.Fields())
	assert.Equal(t, clock.Now(), countdown.StartTime())
	assert.Equal(t, clock.Now().Add(-time.Hour), countdown.FinishTime())
	assert.Equal(t, NotSetLabel, countdown.ShutdownAtLabel())
	assert.Equal(t, "21:00:00", countdown.CurrentTimeLabel())
}

func TestStartWithZeroFieldsStaysIdle(t *testing.T) {
	countdown, _, _ := newCountdown()
	events := countdown.Subscribe(4)

	countdown.Start()

	assert.False(t, countdown.Active())
	assert.Empty(t, events)
}

func TestStartArmsDeadline(t *testing.T) {
	countdown, clock, _ := newCountdown()
	clock.Advance(10 * time.Second)

	countdown.EditHours("00")
	countdown.EditMinutes("00")
	countdown.EditSeconds("05")
	countdown.Start()

	require.True(t, countdown.Active())
	assert.Equal(t, clock.Now(), countdown.StartTime())
	assert.Equal(t, clock.Now().Add(5*time.Second), countdown.FinishTime())
	assert.Equal(t, "21:00:15", countdown.ShutdownAtLabel())
	assert.Equal(t, 5*time.Second, countdown.Remaining())
}

func TestStartAcceptsPlusSignedField(t *testing.T) {
	countdown, clock, _ := newCountdown()

	countdown.EditSeconds("+5")
	require.Equal(t, "+5", countdown.Fields().Seconds)
	countdown.Start()

	require.True(t, countdown.Active())
	assert.Equal(t, clock.Now().Add(5*time.Second), countdown.FinishTime())
}

func TestTickAfterDeadlineShutsDownOnce(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	countdown.EditSeconds("05")
	countdown.Start()

	clock.Advance(4 * time.Second)
	countdown.Tick()
	assert.Equal(t, 0, shutdowner.calls)

	clock.Advance(2 * time.Second)
	countdown.Tick()
	assert.Equal(t, 1, shutdowner.calls)
	assert.Equal(t, time.Duration(0), countdown.Remaining())
}

func TestTickAtDeadlineShutsDown(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	countdown.EditSeconds("03")
	countdown.Start()

	clock.Advance(3 * time.Second)
	countdown.Tick()

	assert.Equal(t, 1, shutdowner.calls)
}

func TestEveryExpiredTickShutsDownAgain(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	events := countdown.Subscribe(8)
	countdown.EditSeconds("01")
	countdown.Start()

	clock.Advance(2 * time.Second)
	countdown.Tick()
	clock.Advance(time.Second)
	countdown.Tick()

	assert.Equal(t, 2, shutdowner.calls)
	assert.Equal(t, EventStarted, (<-events).Type)
	assert.Equal(t, EventShutdown, (<-events).Type)
	assert.Equal(t, EventShutdown, (<-events).Type)
}

func TestTickWhileIdleDoesNothing(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	clock.Advance(2 * time.Hour)

	countdown.Tick()

	assert.Equal(t, 0, shutdowner.calls)
}

func TestShutdownFailureIsPublished(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	shutdowner.err = errors.New("exec: \"systemctl\": executable file not found in $PATH")
	events := countdown.Subscribe(4)
	countdown.EditSeconds("01")
	countdown.Start()
	<-events

	clock.Advance(time.Second)
	countdown.Tick()

	event := <-events
	assert.Equal(t, EventShutdownFailed, event.Type)
	assert.Contains(t, event.Message, "systemctl")
	assert.True(t, countdown.Active())
}

func TestMissingShutdownerIsPublished(t *testing.T) {
	clock := newFakeClock()
	countdown := New(model.DefaultCountdownConfig(), clock, nil)
	events := countdown.Subscribe(4)
	countdown.EditSeconds("01")
	countdown.Start()
	<-events

	clock.Advance(time.Second)
	countdown.Tick()

	assert.Equal(t, EventShutdownFailed, (<-events).Type)
}

func TestStopAfterStartRestoresSentinel(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()
	countdown.EditMinutes("10")
	countdown.Start()
	started := countdown.StartTime()

	clock.Advance(9 * time.Minute)
	countdown.Stop()

	assert.False(t, countdown.Active())
	assert.Equal(t, started.Add(-time.Hour), countdown.FinishTime())
	assert.Equal(t, "10", countdown.Fields().Minutes)
	assert.Equal(t, NotSetLabel, countdown.ShutdownAtLabel())

	clock.Advance(time.Hour)
	countdown.Tick()
	assert.Equal(t, 0, shutdowner.calls)
}

func TestResetAfterStartZeroesFields(t *testing.T) {
	countdown, clock, _ := newCountdown()
	countdown.EditHours("2")
	countdown.EditMinutes("30")
	countdown.EditSeconds("15")
	countdown.Start()

	clock.Advance(time.Minute)
	countdown.Reset()

	assert.False(t, countdown.Active())
	assert.Equal(t, model.ZeroFields(), countdown.Fields())
	assert.Equal(t, clock.Now(), countdown.StartTime())
	assert.Equal(t, clock.Now().Add(-time.Hour), countdown.FinishTime())
}

func TestEditsAreClamped(t *testing.T) {
	countdown, _, _ := newCountdown()

	countdown.EditHours("24")
	countdown.EditMinutes("-1")
	countdown.EditSeconds("abc")

	assert.Equal(t, model.DurationFields{Hours: "23", Minutes: "00", Seconds: "00"}, countdown.Fields())
}

func TestUpdateDispatchesMessages(t *testing.T) {
	countdown, clock, shutdowner := newCountdown()

	countdown.Update(Message{Action: ActionEditHours, Text: "1"})
	countdown.Update(Message{Action: ActionEditMinutes, Text: "99"})
	countdown.Update(Message{Action: ActionEditSeconds, Text: "7"})
	assert.Equal(t, model.DurationFields{Hours: "1", Minutes: "59", Seconds: "7"}, countdown.Fields())

	countdown.Update(Message{Action: ActionStart})
	require.True(t, countdown.Active())

	clock.Advance(2 * time.Hour)
	countdown.Update(Message{Action: ActionTick})
	assert.Equal(t, 1, shutdowner.calls)

	countdown.Update(Message{Action: ActionStop})
	assert.False(t, countdown.Active())

	countdown.Update(Message{Action: ActionReset})
	assert.Equal(t, model.ZeroFields(), countdown.Fields())
}

func TestSetFieldsClamps(t *testing.T) {
	countdown, _, _ := newCountdown()

	countdown.SetFields(model.DurationFields{Hours: "48", Minutes: "15", Seconds: ""})

	assert.Equal(t, model.DurationFields{Hours: "23", Minutes: "15", Seconds: "00"}, countdown.Fields())
}

func TestCloseClosesSubscribers(t *testing.T) {
	countdown, _, _ := newCountdown()
	events := countdown.Subscribe(1)

	countdown.Close()

	_, ok := <-events
	assert.False(t, ok)
}

func TestEmitDoesNotBlockOnFullSubscriber(t *testing.T) {
	countdown, _, _ := newCountdown()
	events := countdown.Subscribe(1)
	countdown.EditSeconds("5")

	countdown.Start()
	countdown.Stop()
	countdown.Reset()

	assert.Len(t, events, 1)
	assert.Equal(t, EventStarted, (<-events).Type)
}

func TestNewAppliesConfigDefaults(t *testing.T) {
	countdown := New(model.CountdownConfig{}, nil, nil)

	assert.Equal(t, time.Second, countdown.Config().TickInterval)
	assert.Equal(t, time.Hour, countdown.Config().InactiveOffset)
}
