//go:build windows

package platform

import "path/filepath"

func shutdownCommand() (string, []string) {
	return "shutdown", []string{"/s", "/f", "/t", "0"}
}

func fallbackConfigDir(homeDir string) string {
	return filepath.Join(homeDir, "AppData", "Roaming")
}
