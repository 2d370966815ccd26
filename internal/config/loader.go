package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"taskboard/internal/logging"
)

// ConfigFileEnvVar names the environment variable that points at a TOML config file
const ConfigFileEnvVar = "TASKBOARD_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// WithConfigFile sets an explicit TOML file to read. It takes precedence
// over TASKBOARD_CONFIG.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML config file, if any
// 3. Override with environment variables
// 4. Override with command line flags (see LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.load(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.load(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

func (l *Loader) load() error {
	path := l.configFile
	explicit := path != ""
	if !explicit {
		path = os.Getenv(ConfigFileEnvVar)
		explicit = path != ""
	}

	if explicit {
		if err := LoadFile(path, l.config); err != nil {
			return err
		}
	}

	return l.config.LoadFromEnvironment()
}

// LoadFile decodes a TOML file into cfg. Keys missing from the file keep
// their current values.
func LoadFile(path string, cfg *Config) error {
	path = expandHome(path)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("config file not found: %s", path)
		}
		return fmt.Errorf("stat config file: %w", err)
	}

	meta, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("decode config file %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return &ConfigError{Field: undecoded[0].String(), Message: "unknown configuration key"}
	}
	logging.Debugln("loaded config file", "path", path)
	return nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Server overrides
	ServerAddr      *string
	ShutdownTimeout *time.Duration
	AllowOrigins    *string

	// Database overrides
	DBDriver       *string
	DBDir          *string
	DBFilename     *string
	DBURL          *string
	DBQueryTimeout *time.Duration
	DBWriteTimeout *time.Duration

	// Cache overrides
	RedisAddr *string
	CacheTTL  *time.Duration

	// Logging overrides
	LogLevel  *string
	LogFormat *string
	LogFile   *string

	// Client overrides
	BaseURL       *string
	ClientTimeout *time.Duration
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	// Server overrides
	if overrides.ServerAddr != nil {
		config.Server.Addr = *overrides.ServerAddr
	}
	if overrides.ShutdownTimeout != nil {
		config.Server.ShutdownTimeout = *overrides.ShutdownTimeout
	}
	if overrides.AllowOrigins != nil {
		config.Server.AllowOrigins = *overrides.AllowOrigins
	}

	// Database overrides
	if overrides.DBDriver != nil {
		config.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBDir != nil {
		config.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		config.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBURL != nil {
		config.Database.URL = *overrides.DBURL
	}
	if overrides.DBQueryTimeout != nil {
		config.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		config.Database.WriteTimeout = *overrides.DBWriteTimeout
	}

	// Cache overrides
	if overrides.RedisAddr != nil {
		config.Cache.RedisAddr = *overrides.RedisAddr
	}
	if overrides.CacheTTL != nil {
		config.Cache.TTL = *overrides.CacheTTL
	}

	// Logging overrides
	if overrides.LogLevel != nil {
		config.Logging.Level = *overrides.LogLevel
	}
	if overrides.LogFormat != nil {
		config.Logging.Format = *overrides.LogFormat
	}
	if overrides.LogFile != nil {
		config.Logging.File = *overrides.LogFile
	}

	// Client overrides
	if overrides.BaseURL != nil {
		config.Client.BaseURL = *overrides.BaseURL
	}
	if overrides.ClientTimeout != nil {
		config.Client.Timeout = *overrides.ClientTimeout
	}
}
