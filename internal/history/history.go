package history

import "time"

// Outcome describes how a countdown session ended.
type Outcome string

const (
	OutcomeRunning  Outcome = "running"
	OutcomeStopped  Outcome = "stopped"
	OutcomeReset    Outcome = "reset"
	OutcomeShutdown Outcome = "shutdown"
	OutcomeFailed   Outcome = "failed"
)

// Session is one armed countdown, from Start to whatever ended it.
type Session struct {
	ID        int64
	StartedAt time.Time
	Deadline  time.Time
	EndedAt   time.Time
	Outcome   Outcome
	Detail    string
}

// Planned returns the configured countdown length.
func (session Session) Planned() time.Duration {
	return session.Deadline.Sub(session.StartedAt)
}

// Open reports whether the session has not ended yet.
func (session Session) Open() bool {
	return session.Outcome == OutcomeRunning
}
