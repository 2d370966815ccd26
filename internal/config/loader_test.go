package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "taskboard.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoader_LoadDefaults(t *testing.T) {
	t.Setenv(ConfigFileEnvVar, "")

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.Server.Addr)
}

func TestLoader_LoadFile(t *testing.T) {
	path := writeConfigFile(t, `
[server]
addr = ":4000"
shutdown_timeout = "5s"

[database]
filename = "tasks.db"
dir_permissions = 0o700

[cache]
redis_addr = "localhost:6379"
ttl = "2m"

[logging]
level = "warn"
format = "json"
`)

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.Server.Addr)
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "tasks.db", cfg.Database.Filename)
	assert.Equal(t, uint32(0o700), cfg.Database.DirPermissions)
	assert.Equal(t, 2*time.Minute, cfg.Cache.TTL)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	// untouched keys keep their defaults
	assert.Equal(t, 10*time.Second, cfg.Database.QueryTimeout)
	assert.Equal(t, "taskboard:", cfg.Cache.Prefix)
}

func TestLoader_ConfigFileFromEnvironment(t *testing.T) {
	path := writeConfigFile(t, "[server]\naddr = \":5000\"\n")
	t.Setenv(ConfigFileEnvVar, path)

	cfg, err := NewLoader().Load()
	require.NoError(t, err)
	assert.Equal(t, ":5000", cfg.Server.Addr)
}

func TestLoader_EnvironmentBeatsFile(t *testing.T) {
	path := writeConfigFile(t, "[server]\naddr = \":5000\"\n")
	t.Setenv("TASKBOARD_SERVER_ADDR", ":6000")

	cfg, err := NewLoader().WithConfigFile(path).Load()
	require.NoError(t, err)
	assert.Equal(t, ":6000", cfg.Server.Addr)
}

func TestLoader_MissingFile(t *testing.T) {
	_, err := NewLoader().WithConfigFile(filepath.Join(t.TempDir(), "nope.toml")).Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestLoader_UnknownKey(t *testing.T) {
	path := writeConfigFile(t, "[server]\nport = 3000\n")

	_, err := NewLoader().WithConfigFile(path).Load()
	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "server.port", cfgErr.Field)
}

func TestLoader_MalformedFile(t *testing.T) {
	path := writeConfigFile(t, "[server\naddr = ")

	_, err := NewLoader().WithConfigFile(path).Load()
	assert.Error(t, err)
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TASKBOARD_SERVER_ADDR", ":6000")

	addr := ":7000"
	level := "debug"
	driver := DriverPostgres
	url := "postgres://localhost/tasks"
	cfg, err := NewLoader().LoadWithOverrides(&ConfigOverrides{
		ServerAddr: &addr,
		LogLevel:   &level,
		DBDriver:   &driver,
		DBURL:      &url,
	})
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.Server.Addr)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, DriverPostgres, cfg.Database.Driver)
	assert.Equal(t, url, cfg.Database.URL)
}

func TestLoader_OverridesAreValidated(t *testing.T) {
	format := "yaml"
	_, err := NewLoader().LoadWithOverrides(&ConfigOverrides{LogFormat: &format})

	var cfgErr *ConfigError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "logging.format", cfgErr.Field)
}
