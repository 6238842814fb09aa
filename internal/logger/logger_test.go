package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestInitAndSetLevel(t *testing.T) {
	undo := zap.ReplaceGlobals(zap.NewNop())
	defer undo()

	require.NoError(t, Init("development", "warn"))
	assert.Equal(t, zapcore.WarnLevel, Level())
	assert.False(t, zap.L().Core().Enabled(zapcore.InfoLevel))

	require.NoError(t, SetLevel("debug"))
	assert.True(t, zap.L().Core().Enabled(zapcore.DebugLevel))

	require.NoError(t, SetLevel(""))
	assert.Equal(t, zapcore.DebugLevel, Level())

	assert.Error(t, SetLevel("loud"))
}
