package platform

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// Shutdowner powers the machine off through the platform's shutdown command.
type Shutdowner struct {
	name  string
	args  []string
	start func(*exec.Cmd) error
}

// NewShutdowner returns the shutdown command for the running OS.
func NewShutdowner() *Shutdowner {
	name, args := shutdownCommand()
	return &Shutdowner{
		name:  name,
		args:  args,
		start: startDetached,
	}
}

// Command returns the program and arguments that Shutdown runs.
func (shutdowner *Shutdowner) Command() (string, []string) {
	return shutdowner.name, append([]string(nil), shutdowner.args...)
}

// String renders the command line for logs.
func (shutdowner *Shutdowner) String() string {
	return strings.Join(append([]string{shutdowner.name}, shutdowner.args...), " ")
}

// Shutdown spawns the shutdown command without waiting for it.
func (shutdowner *Shutdowner) Shutdown() error {
	command := exec.Command(shutdowner.name, shutdowner.args...)
	if err := shutdowner.start(command); err != nil {
		return fmt.Errorf("run %s: %w", shutdowner, err)
	}
	return nil
}

func startDetached(command *exec.Cmd) error {
	if err := command.Start(); err != nil {
		return err
	}
	go func() {
		_ = command.Wait()
	}()
	return nil
}

// ConfigDir returns the OS-standard configuration directory.
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err == nil && configDir != "" {
		return configDir, nil
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		if err != nil {
			return "", fmt.Errorf("get config dir: %w", err)
		}
		return "", fmt.Errorf("get config dir: %w", homeErr)
	}

	return fallbackConfigDir(homeDir), nil
}

// AppDir returns the per-application directory inside ConfigDir.
func AppDir(appName string) (string, error) {
	if appName == "" {
		return "", fmt.Errorf("app dir: app name is empty")
	}
	configDir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, appName), nil
}
