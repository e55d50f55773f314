package env

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := LoadConfig(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "test", cfg.AppEnv)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "0.0.0.0:8080", cfg.Server.Addr())
	assert.Equal(t, EngineBrowserUse, cfg.Engine.Kind)
	assert.Equal(t, 15*time.Minute, cfg.Engine.Timeout)
	assert.Equal(t, "https://api.browser-use.com/api/v1", cfg.BrowserUse.BaseURL)
	assert.False(t, cfg.Redis.Enabled)
	assert.True(t, cfg.Browser.Headless)
}

func TestLoadConfig_EnvFileOverlay(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LOG_LEVEL=warn\nSERVER_PORT=9000\n"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env.staging"), []byte("SERVER_PORT=9100\nENGINE=local\n"), 0o600))

	t.Setenv("APP_ENV", "staging")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("ENGINE", "")
	os.Unsetenv("LOG_LEVEL")
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("ENGINE")

	appEnv, loaded := Load(dir)
	assert.Equal(t, "staging", appEnv)
	assert.Len(t, loaded, 2)

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, EngineLocal, cfg.Engine.Kind)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.Kind = "selenium"
	cfg.Log.Format = "xml"
	cfg.Server.Port = 0

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ENGINE")
	assert.Contains(t, err.Error(), "LOG_FORMAT")
	assert.Contains(t, err.Error(), "SERVER_PORT")
}

func TestRequireEngineCredentials(t *testing.T) {
	cfg := &Config{}
	cfg.Engine.Kind = EngineBrowserUse
	assert.Error(t, cfg.RequireEngineCredentials())

	cfg.BrowserUse.APIKey = "bu_key"
	assert.NoError(t, cfg.RequireEngineCredentials())

	cfg.Engine.Kind = EngineLocal
	assert.Error(t, cfg.RequireEngineCredentials())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	cfg := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "d", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=u password=p dbname=d sslmode=disable", cfg.DSN())

	cfg.URL = "postgres://u:p@db/d"
	assert.Equal(t, "postgres://u:p@db/d", cfg.DSN())
}
