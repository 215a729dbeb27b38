package envconfig

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogLevel(t *testing.T) {
	cases := map[string]slog.Level{
		"":      slog.LevelInfo,
		"false": slog.LevelInfo,
		"0":     slog.LevelInfo,
		"1":     slog.LevelDebug,
		"true":  slog.LevelDebug,
		"2":     slog.Level(-8),
	}

	for value, want := range cases {
		t.Run(value, func(t *testing.T) {
			t.Setenv("GODOT_CPP_WRAP_DEBUG", value)
			assert.Equal(t, want, LogLevel())
		})
	}
}

func TestVarTrimsQuotes(t *testing.T) {
	t.Setenv("GODOT_CPP_WRAP_GITHUB_TOKEN", ` "abc" `)
	assert.Equal(t, "abc", GitHubToken())
}
