package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestFillDefaults(t *testing.T) {
	cfg := Config{File: FileLogConfig{Filename: "quickapi.log"}}
	cfg.fillDefaults()
	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, "console", cfg.Format)
	assert.Equal(t, defaultLogMaxSize, cfg.File.MaxSize)
}

func TestInitLogger(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "quickapi.log")
	old := L()
	defer ReplaceGlobals(old)

	l, err := InitLogger(&Config{
		Level:  "debug",
		Format: "json",
		File:   FileLogConfig{Filename: filename},
	})
	require.NoError(t, err)
	require.Same(t, l, L())

	L().Debug("endpoint executed", FieldEndpoint("https://catfact.ninja/facts"))
	require.NoError(t, L().Sync())

	data, err := os.ReadFile(filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), "endpoint executed")
	assert.Contains(t, string(data), FieldNameEndpoint)
}

func TestInitLoggerBadLevel(t *testing.T) {
	_, err := InitLogger(&Config{Level: "loud"})
	assert.Error(t, err)
}

func TestWith(t *testing.T) {
	l := With(zap.String("module", "client"))
	assert.NotNil(t, l)
}
