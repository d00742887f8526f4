//go:build darwin

package platform

import "path/filepath"

func shutdownCommand() (string, []string) {
	return "systemctl", []string{"poweroff"}
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "Library", "Application Support")
}
