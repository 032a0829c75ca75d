package log_test

import (
	"bytes"
	"strings"
	"testing"

	"bennypowers.dev/cssval/internal/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil) // Reset after test

	t.Run("Info level logs Info, Warn, Error but not Debug", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelInfo)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message", "Debug should not be logged at Info level")
		assert.Contains(t, output, "info message")
		assert.Contains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})

	t.Run("Error level only logs Error", func(t *testing.T) {
		buf.Reset()
		log.SetLevel(log.LevelError)

		log.Debug("debug message")
		log.Info("info message")
		log.Warn("warn message")
		log.Error("error message")

		output := buf.String()
		assert.NotContains(t, output, "debug message")
		assert.NotContains(t, output, "info message")
		assert.NotContains(t, output, "warn message")
		assert.Contains(t, output, "error message")
	})
}

func TestLogFormat(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	log.SetLevel(log.LevelDebug)
	defer log.SetOutput(nil)

	t.Run("Messages include prefix and level label", func(t *testing.T) {
		buf.Reset()
		log.Warn("rejected %s", "10px inset 5px")

		assert.Equal(t, "[cssval] WARN: rejected 10px inset 5px\n", buf.String())
	})

	t.Run("Each log message ends with newline", func(t *testing.T) {
		buf.Reset()
		log.Info("message 1")
		log.Debug("message 2")

		lines := strings.Split(buf.String(), "\n")
		require.Len(t, lines, 3)
		assert.Contains(t, lines[0], "INFO: message 1")
		assert.Contains(t, lines[1], "DEBUG: message 2")
	})
}

func TestEnabled(t *testing.T) {
	var buf bytes.Buffer
	log.SetOutput(&buf)
	defer log.SetOutput(nil)

	original := log.GetLevel()
	defer log.SetLevel(original)

	log.SetLevel(log.LevelWarn)
	assert.False(t, log.Enabled(log.LevelDebug))
	assert.True(t, log.Enabled(log.LevelError))

	log.SetOutput(nil)
	assert.False(t, log.Enabled(log.LevelError), "nil output disables logging")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input    string
		expected log.Level
		wantErr  bool
	}{
		{"debug", log.LevelDebug, false},
		{"INFO", log.LevelInfo, false},
		{"", log.LevelInfo, false},
		{"warning", log.LevelWarn, false},
		{"error", log.LevelError, false},
		{"loud", log.LevelInfo, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			level, err := log.ParseLevel(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, level)
		})
	}
}
