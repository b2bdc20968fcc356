package util

import (
	"os"
	"path/filepath"
	"strings"
)

// DataDir holds the history database and the log file.
func DataDir(app string) string {
	return filepath.Join(xdgBase("XDG_DATA_HOME", ".local", "share"), app)
}

// ConfigDir holds the YAML configuration file and the timer settings.
func ConfigDir(app string) string {
	return filepath.Join(xdgBase("XDG_CONFIG_HOME", ".config"), app)
}

// ReportsDir is where reports go unless a path is given.
func ReportsDir(app string) string {
	return filepath.Join(DocumentsDir(), app, "reports")
}

// DocumentsDir follows XDG_DOCUMENTS_DIR, then user-dirs.dirs, then ~/Documents.
func DocumentsDir() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DOCUMENTS_DIR")); base != "" {
		return expandHome(base)
	}
	userDirs := filepath.Join(xdgBase("XDG_CONFIG_HOME", ".config"), "user-dirs.dirs")
	if data, err := os.ReadFile(userDirs); err == nil {
		if dir := parseUserDir(string(data), "XDG_DOCUMENTS_DIR"); dir != "" {
			return expandHome(dir)
		}
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(home, "Documents")
}

// xdgBase reads env, falling back to a path below the home directory and
// then to the working directory.
func xdgBase(env string, fallback ...string) string {
	if base := strings.TrimSpace(os.Getenv(env)); base != "" {
		return base
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

func parseUserDir(data, key string) string {
	for _, line := range strings.Split(data, "\n") {
		value, ok := strings.CutPrefix(strings.TrimSpace(line), key+"=")
		if ok {
			return strings.Trim(value, "\"")
		}
	}
	return ""
}

func expandHome(path string) string {
	if !strings.Contains(path, "$HOME") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		home = ""
	}
	return strings.ReplaceAll(path, "$HOME", home)
}
