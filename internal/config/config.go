package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"taskboard/internal/logging"
)

// Supported database drivers
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Config holds all configuration options for the taskboard application
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Cache    CacheConfig    `toml:"cache"`
	Logging  LoggingConfig  `toml:"logging"`
	Client   ClientConfig   `toml:"client"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string        `toml:"addr" env:"TASKBOARD_SERVER_ADDR"`
	ShutdownTimeout time.Duration `toml:"shutdown_timeout" env:"TASKBOARD_SERVER_SHUTDOWN_TIMEOUT"`
	AllowOrigins    string        `toml:"allow_origins" env:"TASKBOARD_SERVER_ALLOW_ORIGINS"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `toml:"driver" env:"TASKBOARD_DB_DRIVER"`
	Dir            string        `toml:"dir" env:"TASKBOARD_DB_DIR"`
	Filename       string        `toml:"filename" env:"TASKBOARD_DB_FILENAME"`
	URL            string        `toml:"url" env:"TASKBOARD_DB_URL"`
	QueryTimeout   time.Duration `toml:"query_timeout" env:"TASKBOARD_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `toml:"write_timeout" env:"TASKBOARD_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `toml:"dir_permissions" env:"TASKBOARD_DB_DIR_PERMISSIONS"`
}

// CacheConfig holds the optional redis list cache configuration
type CacheConfig struct {
	RedisAddr string        `toml:"redis_addr" env:"TASKBOARD_CACHE_REDIS_ADDR"`
	Prefix    string        `toml:"prefix" env:"TASKBOARD_CACHE_PREFIX"`
	TTL       time.Duration `toml:"ttl" env:"TASKBOARD_CACHE_TTL"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level" env:"TASKBOARD_LOG_LEVEL"`
	Format string `toml:"format" env:"TASKBOARD_LOG_FORMAT"`
	File   string `toml:"file" env:"TASKBOARD_LOG_FILE"`
}

// ClientConfig holds configuration for the terminal board's API client
type ClientConfig struct {
	BaseURL string        `toml:"base_url" env:"TASKBOARD_CLIENT_BASE_URL"`
	Timeout time.Duration `toml:"timeout" env:"TASKBOARD_CLIENT_TIMEOUT"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".taskboard")

	return &Config{
		Server: ServerConfig{
			Addr:            ":3000",
			ShutdownTimeout: 30 * time.Second,
			AllowOrigins:    "*",
		},
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDBDir,
			Filename:       "taskboard.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Cache: CacheConfig{
			Prefix: "taskboard:",
			TTL:    time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		Client: ClientConfig{
			BaseURL: "http://localhost:3000",
			Timeout: 10 * time.Second,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	if c.Database.Filename == ":memory:" {
		return c.Database.Filename
	}
	return filepath.Join(expandHome(c.Database.Dir), c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// CacheEnabled reports whether the redis list cache is configured
func (c *Config) CacheEnabled() bool {
	return c.Cache.RedisAddr != ""
}

// LoadFromEnvironment loads configuration from environment variables.
// Values that do not parse are ignored.
func (c *Config) LoadFromEnvironment() error {
	// Server configuration
	if addr := os.Getenv("TASKBOARD_SERVER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
	if timeout := os.Getenv("TASKBOARD_SERVER_SHUTDOWN_TIMEOUT"); timeout != "" {
		c.Server.ShutdownTimeout = ParseDurationWithFallback(timeout, c.Server.ShutdownTimeout)
	}
	if origins := os.Getenv("TASKBOARD_SERVER_ALLOW_ORIGINS"); origins != "" {
		c.Server.AllowOrigins = origins
	}

	// Database configuration
	if driver := os.Getenv("TASKBOARD_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dir := os.Getenv("TASKBOARD_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("TASKBOARD_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if dbURL := os.Getenv("TASKBOARD_DB_URL"); dbURL != "" {
		c.Database.URL = dbURL
	}
	if timeout := os.Getenv("TASKBOARD_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("TASKBOARD_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("TASKBOARD_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Cache configuration
	if addr := os.Getenv("TASKBOARD_CACHE_REDIS_ADDR"); addr != "" {
		c.Cache.RedisAddr = addr
	}
	if prefix := os.Getenv("TASKBOARD_CACHE_PREFIX"); prefix != "" {
		c.Cache.Prefix = prefix
	}
	if ttl := os.Getenv("TASKBOARD_CACHE_TTL"); ttl != "" {
		c.Cache.TTL = ParseDurationWithFallback(ttl, c.Cache.TTL)
	}

	// Logging configuration
	if level := os.Getenv("TASKBOARD_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
	if format := os.Getenv("TASKBOARD_LOG_FORMAT"); format != "" {
		c.Logging.Format = format
	}
	if file := os.Getenv("TASKBOARD_LOG_FILE"); file != "" {
		c.Logging.File = file
	}

	// Client configuration
	if baseURL := os.Getenv("TASKBOARD_CLIENT_BASE_URL"); baseURL != "" {
		c.Client.BaseURL = baseURL
	}
	if timeout := os.Getenv("TASKBOARD_CLIENT_TIMEOUT"); timeout != "" {
		c.Client.Timeout = ParseDurationWithFallback(timeout, c.Client.Timeout)
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate server configuration
	if c.Server.Addr == "" {
		return &ConfigError{Field: "server.addr", Message: "listen address cannot be empty"}
	}
	if c.Server.ShutdownTimeout <= 0 {
		return &ConfigError{Field: "server.shutdown_timeout", Message: "shutdown timeout must be positive"}
	}

	// Validate database configuration
	switch c.Database.Driver {
	case DriverSQLite:
		if c.Database.Filename == "" {
			return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
		}
		if c.Database.Dir == "" && c.Database.Filename != ":memory:" {
			return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
		}
	case DriverPostgres:
		if c.Database.URL == "" {
			return &ConfigError{Field: "database.url", Message: "database url is required for the postgres driver"}
		}
	default:
		return &ConfigError{Field: "database.driver", Message: "driver must be one of: sqlite, postgres"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate cache configuration
	if c.CacheEnabled() && c.Cache.TTL <= 0 {
		return &ConfigError{Field: "cache.ttl", Message: "cache ttl must be positive"}
	}

	// Validate logging configuration
	if !logging.IsValidLevel(c.Logging.Level) {
		return &ConfigError{Field: "logging.level", Message: "level must be one of: debug, info, warn, error, fatal"}
	}
	if !logging.IsValidFormat(c.Logging.Format) {
		return &ConfigError{Field: "logging.format", Message: "format must be one of: text, json, logfmt"}
	}

	// Validate client configuration
	u, err := url.Parse(c.Client.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ConfigError{Field: "client.base_url", Message: "base url must be an absolute http(s) url"}
	}
	if c.Client.Timeout <= 0 {
		return &ConfigError{Field: "client.timeout", Message: "client timeout must be positive"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}

// expandHome replaces a leading ~ with the user's home directory
func expandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
