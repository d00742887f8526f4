package countdown

import (
	"log"
	"time"

	"shutdowntimer/internal/core/duration"
	"shutdowntimer/internal/core/model"
)

const clockLayout = "15:04:05"

// NotSetLabel is shown in place of a deadline while idle.
const NotSetLabel = "Not set"

// Clock reports the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// Shutdowner powers the machine off.
type Shutdowner interface {
	Shutdown() error
}

// Countdown is the form state: three text fields, an active flag and two
// timestamps. It is not safe for concurrent use; drive it from one goroutine.
type Countdown struct {
	config     model.CountdownConfig
	clock      Clock
	shutdowner Shutdowner
	fields     model.DurationFields
	active     bool
	start      time.Time
	finish     time.Time
	events     []chan Event
}

// New creates an idle countdown with zeroed fields.
func New(config model.CountdownConfig, clock Clock, shutdowner Shutdowner) *Countdown {
	if config.TickInterval <= 0 {
		config.TickInterval = time.Second
	}
	if config.InactiveOffset <= 0 {
		config.InactiveOffset = time.Hour
	}
	if clock == nil {
		clock = SystemClock{}
	}

	now := clock.Now()
	return &Countdown{
		config:     config,
		clock:      clock,
		shutdowner: shutdowner,
		fields:     model.ZeroFields(),
		start:      now,
		finish:     now.Add(-config.InactiveOffset),
	}
}

// Config returns the runtime options.
func (countdown *Countdown) Config() model.CountdownConfig {
	return countdown.config
}

// Subscribe registers a new observer channel.
func (countdown *Countdown) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	countdown.events = append(countdown.events, ch)
	return ch
}

// Close closes every observer channel.
func (countdown *Countdown) Close() {
	events := countdown.events
	countdown.events = nil
	for _, ch := range events {
		close(ch)
	}
}

// Update applies one queued message.
func (countdown *Countdown) Update(msg Message) {
	switch msg.Action {
	case ActionTick:
		countdown.Tick()
	case ActionEditHours:
		countdown.EditHours(msg.Text)
	case ActionEditMinutes:
		countdown.EditMinutes(msg.Text)
	case ActionEditSeconds:
		countdown.EditSeconds(msg.Text)
	case ActionStart:
		countdown.Start()
	case ActionStop:
		countdown.Stop()
	case ActionReset:
		countdown.Reset()
	}
}

// EditHours stores the hour field clamped to [0,23].
func (countdown *Countdown) EditHours(text string) {
	countdown.fields.Hours = duration.ClampHours(text)
}

// EditMinutes stores the minute field clamped to [0,59].
func (countdown *Countdown) EditMinutes(text string) {
	countdown.fields.Minutes = duration.ClampMinutes(text)
}

// EditSeconds stores the second field clamped to [0,59].
func (countdown *Countdown) EditSeconds(text string) {
	countdown.fields.Seconds = duration.ClampMinutes(text)
}

// SetFields replaces all three fields, clamping each.
func (countdown *Countdown) SetFields(fields model.DurationFields) {
	countdown.fields = duration.ClampFields(fields)
}

// Start arms the deadline. A zero duration is ignored.
func (countdown *Countdown) Start() {
	total := duration.Of(countdown.fields)
	if total <= 0 {
		return
	}

	countdown.start = countdown.clock.Now()
	countdown.finish = countdown.start.Add(total)
	countdown.active = true

	countdown.emit(Event{
		Type:   EventStarted,
		Start:  countdown.start,
		Finish: countdown.finish,
		At:     countdown.start,
	})
}

// Stop disarms the deadline and keeps the fields.
func (countdown *Countdown) Stop() {
	countdown.finish = countdown.start.Add(-countdown.config.InactiveOffset)
	countdown.active = false

	countdown.emit(Event{
		Type:   EventStopped,
		Start:  countdown.start,
		Finish: countdown.finish,
		At:     countdown.clock.Now(),
	})
}

// Reset disarms the deadline and zeroes the fields.
func (countdown *Countdown) Reset() {
	countdown.fields = model.ZeroFields()
	countdown.start = countdown.clock.Now()
	countdown.finish = countdown.start.Add(-countdown.config.InactiveOffset)
	countdown.active = false

	countdown.emit(Event{
		Type:   EventReset,
		Start:  countdown.start,
		Finish: countdown.finish,
		At:     countdown.start,
	})
}

// Tick compares now against the deadline at whole-second resolution and
// invokes the shutdown command when it has passed. Every expired tick
// invokes it again.
func (countdown *Countdown) Tick() {
	now := countdown.clock.Now()
	if !countdown.active || now.Unix() < countdown.finish.Unix() {
		return
	}

	log.Printf("shutting down")
	event := Event{
		Type:   EventShutdown,
		Start:  countdown.start,
		Finish: countdown.finish,
		At:     now,
	}
	if countdown.shutdowner == nil {
		event.Type = EventShutdownFailed
		event.Message = "no shutdown command configured"
		log.Printf("shutdown: %s", event.Message)
		countdown.emit(event)
		return
	}
	if err := countdown.shutdowner.Shutdown(); err != nil {
		event.Type = EventShutdownFailed
		event.Message = err.Error()
		log.Printf("shutdown: %v", err)
	}
	countdown.emit(event)
}

// Active reports whether a deadline is armed.
func (countdown *Countdown) Active() bool {
	return countdown.active
}

// Fields returns the current text fields.
func (countdown *Countdown) Fields() model.DurationFields {
	return countdown.fields
}

// StartTime returns when the countdown was last started or reset.
func (countdown *Countdown) StartTime() time.Time {
	return countdown.start
}

// FinishTime returns the deadline, or the sentinel while idle.
func (countdown *Countdown) FinishTime() time.Time {
	return countdown.finish
}

// Remaining returns the time left until shutdown, zero while idle.
func (countdown *Countdown) Remaining() time.Duration {
	if !countdown.active {
		return 0
	}
	remaining := countdown.finish.Sub(countdown.clock.Now())
	if remaining < 0 {
		return 0
	}
	return remaining
}

// CurrentTimeLabel formats the current time.
func (countdown *Countdown) CurrentTimeLabel() string {
	return countdown.clock.Now().Format(clockLayout)
}

// ShutdownAtLabel formats the deadline, or NotSetLabel while idle.
func (countdown *Countdown) ShutdownAtLabel() string {
	if !countdown.active {
		return NotSetLabel
	}
	return countdown.finish.Format(clockLayout)
}

func (countdown *Countdown) emit(event Event) {
	for _, ch := range countdown.events {
		select {
		case ch <- event:
		default:
		}
	}
}
