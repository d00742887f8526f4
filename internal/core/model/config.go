package model

import "time"

// DurationFields holds the three text inputs of the countdown form.
type DurationFields struct {
	Hours   string
	Minutes string
	Seconds string
}

// ZeroFields returns the form's default "00" fields.
func ZeroFields() DurationFields {
	return DurationFields{Hours: "00", Minutes: "00", Seconds: "00"}
}

// CountdownConfig contains runtime settings for the countdown state machine.
type CountdownConfig struct {
	TickInterval time.Duration

	// InactiveOffset places the sentinel finish time this far before start.
	InactiveOffset time.Duration
}

// DefaultCountdownConfig returns a one second heartbeat and a one hour sentinel.
func DefaultCountdownConfig() CountdownConfig {
	return CountdownConfig{
		TickInterval:   time.Second,
		InactiveOffset: time.Hour,
	}
}
