package logging

import (
	"bytes"
	"log"
	"testing"

	"github.com/fadedpez/pokersquares/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	testCases := []struct {
		input string
		want  Level
	}{
		{"debug", DEBUG},
		{"INFO", INFO},
		{" Warn ", WARN},
		{"error", ERROR},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			level, err := ParseLevel(tc.input)
			require.NoError(t, err)
			assert.Equal(t, tc.want, level)
		})
	}

	level, err := ParseLevel("verbose")
	assert.Error(t, err)
	assert.Equal(t, INFO, level)
}

func TestLoggerFiltersByLevel(t *testing.T) {
	// Setup
	var buf bytes.Buffer
	logger := NewLogger(WARN)
	logger.Logger = log.New(&buf, "", 0)

	// Execute
	logger.Debug("hidden %d", 1)
	logger.Info("hidden %d", 2)
	logger.Warn("shown %d", 3)
	logger.LogError(types.WrapError(types.ErrSlotOccupied, "square taken", assert.AnError))

	// Assert
	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, "WARN  logger_test.go")
	assert.Contains(t, out, "shown 3")
	assert.Contains(t, out, "Code: SLOT_OCCUPIED")
	assert.Contains(t, out, "Cause: "+assert.AnError.Error())
	assert.Equal(t, WARN, logger.Level())
	assert.Equal(t, "WARN", logger.Level().String())
}
