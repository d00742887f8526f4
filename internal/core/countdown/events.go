package countdown

import "time"

// Action identifies a discrete input to the countdown.
type Action string

const (
	ActionTick        Action = "tick"
	ActionEditHours   Action = "edit_hours"
	ActionEditMinutes Action = "edit_minutes"
	ActionEditSeconds Action = "edit_seconds"
	ActionStart       Action = "start"
	ActionStop        Action = "stop"
	ActionReset       Action = "reset"
)

// Message is a single entry of the countdown's input queue.
type Message struct {
	Action Action
	Text   string
}

// EventType defines the type of countdown event.
type EventType string

const (
	EventStarted        EventType = "started"
	EventStopped        EventType = "stopped"
	EventReset          EventType = "reset"
	EventShutdown       EventType = "shutdown"
	EventShutdownFailed EventType = "shutdown_failed"
)

// Event represents a countdown update for observers.
type Event struct {
	Type    EventType
	Start   time.Time
	Finish  time.Time
	Message string
	At      time.Time
}
