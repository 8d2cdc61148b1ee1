package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_InfoLevel(t *testing.T) {
	assert.Equal(t, zerolog.InfoLevel, New().GetLevel())
}

func TestNewWithLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{"trace", zerolog.TraceLevel},
		{"DEBUG", zerolog.DebugLevel},
		{"warn", zerolog.WarnLevel},
		{"WARNING", zerolog.WarnLevel},
		{" error ", zerolog.ErrorLevel},
		{"DeBuG", zerolog.DebugLevel},
		{"", zerolog.InfoLevel},
		{"verbose", zerolog.InfoLevel},
		{"disabled", zerolog.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, NewWithLevel(tt.input).GetLevel())
		})
	}
}

func TestNewWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := NewWriter(&buf, "warn")
	l.Info().Msg("hidden")
	assert.Zero(t, buf.Len())
	l.Warn().Str("field", "x").Msg("shown")
	require.NotZero(t, buf.Len())
	assert.Contains(t, buf.String(), `"message":"shown"`)
}
