package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name   string
		config *Config
		want   string
	}{
		{"default", &Config{}, "info"},
		{"verbose", &Config{Verbose: true}, "debug"},
		{"quiet", &Config{Quiet: true}, "warn"},
		{"verbose and quiet prefers quiet", &Config{Verbose: true, Quiet: true}, "warn"},
		{"explicit level wins over verbose", &Config{Verbose: true, LogLevel: "error"}, "error"},
		{"invalid explicit level falls back", &Config{LogLevel: "nonsense"}, "info"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, determineLogLevel(tt.config))
		})
	}
}

func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		assert.Equal(t, level, validateLogLevel(level))
	}
	assert.Equal(t, "info", validateLogLevel("loud"))
	assert.Equal(t, "info", validateLogLevel(""))
}

func TestNewLoggerHonorsLevel(t *testing.T) {
	logger := NewLogger(&Config{Quiet: true, LogFormat: "json", LogOutput: "stderr"})
	assert.Equal(t, "warn", logger.GetLevel().String())
}
