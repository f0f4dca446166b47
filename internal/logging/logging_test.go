package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/davidroman0O/firm-catalog/internal/config"
)

func TestNewModes(t *testing.T) {
	dev, err := New(config.ModeDevelopment, "")
	require.NoError(t, err)
	assert.True(t, dev.Core().Enabled(zap.DebugLevel))

	prod, err := New(config.ModeProduction, "")
	require.NoError(t, err)
	assert.False(t, prod.Core().Enabled(zap.DebugLevel))
	assert.True(t, prod.Core().Enabled(zap.InfoLevel))
}

func TestNewWritesFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "catalog.log")

	logger, err := New(config.ModeProduction, file)
	require.NoError(t, err)
	logger.Info("catalog loaded", zap.Int("products", 4))
	_ = logger.Sync()

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"catalog loaded"`)
	assert.Contains(t, string(data), `"products":4`)
}

func TestSetupReplacesGlobals(t *testing.T) {
	previous := zap.L()
	defer zap.ReplaceGlobals(previous)

	cfg := config.Default()
	logger, err := Setup(&cfg)
	require.NoError(t, err)
	assert.Same(t, logger, zap.L())
}
