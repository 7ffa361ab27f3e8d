package observability

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/spec-kit/petcare-service/internal/config"
)

func TestNewLogger_Level(t *testing.T) {
	logger, err := NewLogger(config.LoggerConfig{Level: "WARN"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = NewLogger(config.LoggerConfig{Level: "bogus"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel))
}

func TestNewLogger_WritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "service.log")
	logger, err := NewLogger(config.LoggerConfig{Level: "info", File: path, MaxSizeMB: 1})
	require.NoError(t, err)

	logger.Info("hello")
	_ = logger.Sync()

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"message":"hello"`)
}
