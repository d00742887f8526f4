package history

import (
	"log"
	"time"

	"shutdowntimer/internal/core/countdown"
)

// Store is the part of Repository the recorder writes through.
type Store interface {
	Create(startedAt, deadline time.Time) (*Session, error)
	Finish(id int64, endedAt time.Time, outcome Outcome, detail string) error
}

// Recorder turns countdown events into session rows.
type Recorder struct {
	store   Store
	current *Session
}

// NewRecorder creates a recorder writing to store.
func NewRecorder(store Store) *Recorder {
	return &Recorder{store: store}
}

// Run consumes events until the channel is closed.
func (recorder *Recorder) Run(events <-chan countdown.Event) {
	for event := range events {
		if err := recorder.Record(event); err != nil {
			log.Printf("history: %v", err)
		}
	}
}

// Record applies a single event.
func (recorder *Recorder) Record(event countdown.Event) error {
	switch event.Type {
	case countdown.EventStarted:
		if err := recorder.finish(event, OutcomeStopped, "restarted"); err != nil {
			return err
		}
		session, err := recorder.store.Create(event.Start, event.Finish)
		if err != nil {
			return err
		}
		recorder.current = session
	case countdown.EventStopped:
		return recorder.finish(event, OutcomeStopped, "")
	case countdown.EventReset:
		return recorder.finish(event, OutcomeReset, "")
	case countdown.EventShutdown:
		return recorder.finish(event, OutcomeShutdown, "")
	case countdown.EventShutdownFailed:
		return recorder.markFailed(event)
	}
	return nil
}

// markFailed records a failed attempt but keeps the session current. The
// countdown stays armed and retries, so a later event overwrites the outcome.
func (recorder *Recorder) markFailed(event countdown.Event) error {
	if recorder.current == nil {
		return nil
	}
	recorder.current.Outcome = OutcomeFailed
	recorder.current.Detail = event.Message
	recorder.current.EndedAt = event.At
	return recorder.store.Finish(recorder.current.ID, event.At, OutcomeFailed, event.Message)
}

// Current returns the session the countdown is still armed for, if any.
func (recorder *Recorder) Current() *Session {
	return recorder.current
}

func (recorder *Recorder) finish(event countdown.Event, outcome Outcome, detail string) error {
	if recorder.current == nil {
		return nil
	}
	session := recorder.current
	recorder.current = nil
	return recorder.store.Finish(session.ID, event.At, outcome, detail)
}
