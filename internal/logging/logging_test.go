package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level   string
		enabled zapcore.Level
		off     zapcore.Level
	}{
		{"debug", zapcore.DebugLevel, zapcore.DebugLevel - 1},
		{"info", zapcore.InfoLevel, zapcore.DebugLevel},
		{"WARN", zapcore.WarnLevel, zapcore.InfoLevel},
		{"error", zapcore.ErrorLevel, zapcore.WarnLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			for _, dev := range []bool{false, true} {
				log, err := New(tt.level, dev)
				require.NoError(t, err)

				assert.True(t, log.Core().Enabled(tt.enabled))
				assert.False(t, log.Core().Enabled(tt.off))
			}
		})
	}
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("loud", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `invalid log level "loud"`)
}

func TestNewOrNop(t *testing.T) {
	log := NewOrNop("loud", false)
	require.NotNil(t, log)
	assert.False(t, log.Core().Enabled(zapcore.ErrorLevel))

	assert.True(t, NewOrNop("info", false).Core().Enabled(zapcore.InfoLevel))
}
