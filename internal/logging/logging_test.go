package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewUsesLevel(t *testing.T) {
	logger, atom, err := New(zapcore.WarnLevel)
	require.NoError(t, err)
	require.NotNil(t, logger)

	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	atom.SetLevel(zapcore.DebugLevel)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestSetLevel(t *testing.T) {
	_, atom, err := New(zapcore.WarnLevel)
	require.NoError(t, err)

	require.NoError(t, SetLevel(atom, "error"))
	assert.Equal(t, zapcore.ErrorLevel, atom.Level())

	require.NoError(t, SetLevel(atom, ""))
	assert.Equal(t, zapcore.ErrorLevel, atom.Level())

	assert.Error(t, SetLevel(atom, "shouty"))
	assert.Equal(t, zapcore.ErrorLevel, atom.Level())
}
