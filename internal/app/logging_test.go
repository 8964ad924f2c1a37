package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestWithFileLog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voltherm.log")
	core, console := observer.New(zap.InfoLevel)
	lg, closeLog := withFileLog(zap.New(core), LogConfig{
		File:      path,
		MaxSizeMB: 1,
	})
	lg.Debug("Below level")
	lg.Info("Served from local store", zap.String("op", "products"))
	require.NoError(t, lg.Sync())
	require.NoError(t, closeLog())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"products"`)
	assert.NotContains(t, string(data), "Below level")
	assert.Equal(t, 1, console.Len())
}

func TestWithFileLogDisabled(t *testing.T) {
	lg := zap.NewNop()
	got, closeLog := withFileLog(lg, LogConfig{})
	assert.Same(t, lg, got)
	assert.NoError(t, closeLog())
}
