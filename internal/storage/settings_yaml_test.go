package storage

import (
	"os"
	"path/filepath"
	"testing"

	"shutdowntimer/internal/core/model"
	"shutdowntimer/internal/ui/preferences"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadSettingsMissingFileReturnsDefaults(t *testing.T) {
	settings, err := LoadSettingsFile(filepath.Join(t.TempDir(), "missing.yaml"))

	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsRoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", settingsFileName)
	saved := preferences.Settings{
		RememberDuration: true,
		Preset:           model.DurationFields{Hours: "01", Minutes: "30", Seconds: "00"},
		HistoryEnabled:   false,
		CloseToTray:      true,
	}

	require.NoError(t, SaveSettingsFile(configPath, saved))
	loaded, err := LoadSettingsFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, saved, loaded)
}

func TestLoadSettingsClampsPreset(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	content := "remember_duration: true\npreset:\n  hours: \"48\"\n  minutes: \"abc\"\n"
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	settings, err := LoadSettingsFile(configPath)

	require.NoError(t, err)
	assert.Equal(t, model.DurationFields{Hours: "23", Minutes: "00", Seconds: "00"}, settings.Preset)
	assert.True(t, settings.HistoryEnabled)
	assert.Equal(t, settings.Preset, settings.InitialFields())
}

func TestLoadSettingsRejectsBrokenYaml(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), settingsFileName)
	require.NoError(t, os.WriteFile(configPath, []byte("preset: [unterminated"), 0o644))

	settings, err := LoadSettingsFile(configPath)

	assert.ErrorContains(t, err, "parse settings yaml")
	assert.Equal(t, preferences.DefaultSettings(), settings)
}

func TestSettingsPathUsesAppDir(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("HOME", configHome)
	t.Setenv("AppData", configHome)

	settingsPath, err := SettingsPath("ShutdownTimer")
	require.NoError(t, err)
	assert.Equal(t, settingsFileName, filepath.Base(settingsPath))
	assert.Equal(t, "ShutdownTimer", filepath.Base(filepath.Dir(settingsPath)))

	require.NoError(t, SaveSettings("ShutdownTimer", preferences.DefaultSettings()))
	loaded, err := LoadSettings("ShutdownTimer")
	require.NoError(t, err)
	assert.Equal(t, preferences.DefaultSettings(), loaded)
}
