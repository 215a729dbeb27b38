// Package envconfig reads the few environment variables godot-cpp-wrap honours.
package envconfig

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// LogLevel returns the log level selected by GODOT_CPP_WRAP_DEBUG.
// A boolean true selects debug; an integer n selects slog.Level(-4*n).
func LogLevel() slog.Level {
	level := slog.LevelInfo
	if s := Var("GODOT_CPP_WRAP_DEBUG"); s != "" {
		if b, _ := strconv.ParseBool(s); b {
			level = slog.LevelDebug
		} else if i, _ := strconv.ParseInt(s, 10, 64); i != 0 {
			level = slog.Level(i * -4)
		}
	}

	return level
}

// GitHubToken returns the optional bearer token used for the tag API.
func GitHubToken() string {
	return Var("GODOT_CPP_WRAP_GITHUB_TOKEN")
}

// Var returns an environment variable with surrounding quotes and spaces removed.
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}
