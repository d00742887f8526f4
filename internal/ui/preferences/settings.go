package preferences

import (
	"shutdowntimer/internal/core/model"
)

// Settings defines editable user preferences.
type Settings struct {
	// RememberDuration pre-fills the form with Preset on launch.
	RememberDuration bool
	Preset           model.DurationFields

	HistoryEnabled bool
	CloseToTray    bool
}

// DefaultSettings returns default settings for the shutdown timer.
func DefaultSettings() Settings {
	return Settings{
		RememberDuration: false,
		Preset:           model.ZeroFields(),
		HistoryEnabled:   true,
		CloseToTray:      false,
	}
}

// InitialFields returns the fields the form starts with.
func (settings Settings) InitialFields() model.DurationFields {
	if !settings.RememberDuration {
		return model.ZeroFields()
	}
	return settings.Preset
}
