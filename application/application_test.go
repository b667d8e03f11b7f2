package application

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lk2023060901/quickapi-go/pkg/transport"
)

const testConfig = `
log:
  level: debug
  format: console
  stdout: true

transport:
  timeout: 7s
  user-agent: quickapi-go/app-test
`

func TestRun(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfig), 0o600))
	t.Setenv("QUICKAPI_CONFIG_FILE_PATH", path)

	app := New()
	require.NoError(t, app.Run())
	require.NotNil(t, app.Config())

	hc, ok := app.Transport().(*transport.HTTPClient)
	require.True(t, ok)
	assert.NotNil(t, hc)

	var tc transport.Config
	require.NoError(t, app.Config().UnmarshalKey("transport", &tc))
	assert.Equal(t, 7*time.Second, tc.Timeout)
	assert.Equal(t, "quickapi-go/app-test", tc.UserAgent)
}

func TestRunMissingConfig(t *testing.T) {
	t.Setenv("QUICKAPI_CONFIG_FILE_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, New().Run())
}

func TestTransportFallback(t *testing.T) {
	assert.NotNil(t, New().Transport())
}
