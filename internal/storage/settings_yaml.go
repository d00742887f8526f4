package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"shutdowntimer/internal/core/duration"
	"shutdowntimer/internal/core/model"
	"shutdowntimer/internal/platform"
	"shutdowntimer/internal/ui/preferences"

	"gopkg.in/yaml.v3"
)

const settingsFileName = "settings.yaml"

type yamlSettings struct {
	RememberDuration bool       `yaml:"remember_duration"`
	Preset           yamlPreset `yaml:"preset"`
	HistoryEnabled   *bool      `yaml:"history_enabled"`
	CloseToTray      bool       `yaml:"close_to_tray"`
}

type yamlPreset struct {
	Hours   string `yaml:"hours"`
	Minutes string `yaml:"minutes"`
	Seconds string `yaml:"seconds"`
}

// LoadSettings reads user preferences from the app's config directory.
// If the config file does not exist, default settings are returned.
func LoadSettings(appName string) (preferences.Settings, error) {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return preferences.DefaultSettings(), err
	}
	return LoadSettingsFile(configPath)
}

// LoadSettingsFile reads user preferences from configPath.
func LoadSettingsFile(configPath string) (preferences.Settings, error) {
	settings := preferences.DefaultSettings()

	rawData, err := os.ReadFile(configPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return settings, nil
		}
		return settings, fmt.Errorf("read settings file: %w", err)
	}

	var fileData yamlSettings
	if err := yaml.Unmarshal(rawData, &fileData); err != nil {
		return settings, fmt.Errorf("parse settings yaml: %w", err)
	}

	applyYamlSettings(&settings, fileData)
	return settings, nil
}

// SaveSettings writes user preferences to the app's config directory.
func SaveSettings(appName string, settings preferences.Settings) error {
	configPath, err := SettingsPath(appName)
	if err != nil {
		return err
	}
	return SaveSettingsFile(configPath, settings)
}

// SaveSettingsFile writes user preferences to configPath.
func SaveSettingsFile(configPath string, settings preferences.Settings) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	historyEnabled := settings.HistoryEnabled
	fileData := yamlSettings{
		RememberDuration: settings.RememberDuration,
		Preset: yamlPreset{
			Hours:   settings.Preset.Hours,
			Minutes: settings.Preset.Minutes,
			Seconds: settings.Preset.Seconds,
		},
		HistoryEnabled: &historyEnabled,
		CloseToTray:    settings.CloseToTray,
	}

	serialized, err := yaml.Marshal(fileData)
	if err != nil {
		return fmt.Errorf("marshal settings yaml: %w", err)
	}

	if err := os.WriteFile(configPath, serialized, 0o644); err != nil {
		return fmt.Errorf("write settings file: %w", err)
	}

	return nil
}

// SettingsPath returns where settings.yaml lives for appName.
func SettingsPath(appName string) (string, error) {
	appDir, err := platform.AppDir(appName)
	if err != nil {
		return "", fmt.Errorf("resolve settings path: %w", err)
	}
	return filepath.Join(appDir, settingsFileName), nil
}

func applyYamlSettings(settings *preferences.Settings, fileData yamlSettings) {
	preset := model.ZeroFields()
	if fileData.Preset.Hours != "" {
		preset.Hours = fileData.Preset.Hours
	}
	if fileData.Preset.Minutes != "" {
		preset.Minutes = fileData.Preset.Minutes
	}
	if fileData.Preset.Seconds != "" {
		preset.Seconds = fileData.Preset.Seconds
	}
	settings.Preset = duration.ClampFields(preset)

	if fileData.HistoryEnabled != nil {
		settings.HistoryEnabled = *fileData.HistoryEnabled
	}
	settings.RememberDuration = fileData.RememberDuration
	settings.CloseToTray = fileData.CloseToTray
}
