package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLogger_Levels(t *testing.T) {
	logger, err := NewLogger(Config{Level: "debug", Format: "json"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))

	logger, err = NewLogger(Config{Level: "not-a-level"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_UnsupportedFormat(t *testing.T) {
	_, err := NewLogger(Config{Level: "info", Format: "xml"})
	assert.EqualError(t, err, "unsupported log format: xml")
}

func TestNewLogger_OutputPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bomforge.log")
	logger, err := NewLogger(Config{Level: "info", Format: "json", OutputPath: path})
	require.NoError(t, err)

	logger.Info("resolved", zap.Int("entries", 3))
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries":3`)
}

func TestOrNop(t *testing.T) {
	assert.NotNil(t, OrNop(nil))
	logger := zap.NewExample()
	assert.Same(t, logger, OrNop(logger))
}
