package log

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  LogLevel
	}{
		{name: "debug", input: "debug", want: LevelDebug},
		{name: "info", input: "info", want: LevelInfo},
		{name: "warn", input: "warn", want: LevelWarn},
		{name: "error", input: "error", want: LevelError},
		{name: "fatal", input: "fatal", want: LevelFatal},
		{name: "upper case", input: "ERROR", want: LevelError},
		{name: "surrounding spaces", input: "  debug  ", want: LevelDebug},
		{name: "unknown falls back to info", input: "verbose", want: LevelInfo},
		{name: "empty falls back to info", input: "", want: LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestInitLoggerAppliesParsedLevel(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	// The startup path: LOG_LEVEL string through ParseLevel into the global.
	InitLogger(ParseLevel("error"))
	assert.Equal(t, LevelError, GetLogger().level)

	InitLogger(ParseLevel("no such level"))
	assert.Equal(t, LevelInfo, GetLogger().level)
}

func TestGetLoggerDefaultsWhenUninitialized(t *testing.T) {
	prev := globalLogger
	t.Cleanup(func() { globalLogger = prev })

	globalLogger = nil
	assert.Equal(t, LevelInfo, GetLogger().level)
}
