package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNew(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		l, err := New(level, false)
		require.NoError(t, err, "level %s", level)
		assert.NotNil(t, l)
	}

	_, err := New("chatty", false)
	assert.Error(t, err)

	// --verbose forces debug regardless of the configured level.
	l, err := New("error", true)
	require.NoError(t, err)
	assert.True(t, l.Desugar().Core().Enabled(zapcore.DebugLevel))
}
