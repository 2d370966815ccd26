package cli

import (
	"context"
	"io"
	"time"

	"github.com/spf13/cobra"

	"taskboard/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	app    *App
	stdout io.Writer
	stderr io.Writer
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(stdout, stderr io.Writer) *RootCommand {
	root := &RootCommand{
		stdout: stdout,
		stderr: stderr,
	}

	root.cmd = &cobra.Command{
		Use:   "taskboard",
		Short: "A small task board with an HTTP API and a terminal client",
		Long: `Taskboard keeps a list of tasks, each with a title, an optional description
and a status of todo, in_progress or done.

  taskboard serve    runs the JSON API (GET/POST /api/tasks, PUT/DELETE /api/tasks/:id)
  taskboard board    opens the interactive board against a running API

EXAMPLES:
  taskboard serve                                  # Serve on :3000 with SQLite in ~/.taskboard
  taskboard serve --db-driver postgres --db-url postgres://localhost/tasks
  taskboard serve --redis-addr localhost:6379      # Cache reads in Redis
  taskboard board --base-url http://localhost:3000 # Open the board

CONFIGURATION:
  Configuration follows this priority order:
  command-line flags > environment variables > config file > defaults

  Config File:
    TASKBOARD_CONFIG                     Path to a TOML config file (or --config)

  Server Configuration:
    TASKBOARD_SERVER_ADDR                Listen address (default: :3000)
    TASKBOARD_SERVER_SHUTDOWN_TIMEOUT    Graceful shutdown timeout (default: 30s)
    TASKBOARD_SERVER_ALLOW_ORIGINS       CORS allowed origins (default: *)

  Database Configuration:
    TASKBOARD_DB_DRIVER                  sqlite or postgres (default: sqlite)
    TASKBOARD_DB_DIR                     SQLite directory (default: ~/.taskboard)
    TASKBOARD_DB_FILENAME                SQLite filename (default: taskboard.db)
    TASKBOARD_DB_URL                     PostgreSQL connection URL
    TASKBOARD_DB_QUERY_TIMEOUT           Query timeout (default: 10s)
    TASKBOARD_DB_WRITE_TIMEOUT           Write timeout (default: 5s)
    TASKBOARD_DB_DIR_PERMISSIONS         SQLite directory permissions (default: 0755)

  Cache Configuration:
    TASKBOARD_CACHE_REDIS_ADDR           Redis address, empty disables the cache
    TASKBOARD_CACHE_PREFIX               Key prefix (default: taskboard:)
    TASKBOARD_CACHE_TTL                  Entry lifetime (default: 1m)

  Logging Configuration:
    TASKBOARD_LOG_LEVEL                  debug, info, warn or error (default: info)
    TASKBOARD_LOG_FORMAT                 text, json or logfmt (default: text)
    TASKBOARD_LOG_FILE                   Log file, stderr when empty

  Client Configuration:
    TASKBOARD_CLIENT_BASE_URL            API base URL for the board (default: http://localhost:3000)
    TASKBOARD_CLIENT_TIMEOUT             Request timeout (default: 10s)

GETTING HELP:
  taskboard [command] --help             # Get help for any specific command
  taskboard completion bash              # Generate bash completion script`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Resolve configuration before any command runs
			return root.loadConfig()
		},
	}

	root.cmd.SetOut(stdout)
	root.cmd.SetErr(stderr)

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute(ctx context.Context) error {
	return r.cmd.ExecuteContext(ctx)
}

// SetArgs overrides the arguments, mainly for tests
func (r *RootCommand) SetArgs(args []string) {
	r.cmd.SetArgs(args)
}

// App returns the application built by the last run, nil before one.
func (r *RootCommand) App() *App {
	return r.app
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("config", "", "TOML config file (overrides TASKBOARD_CONFIG)")

	// Server configuration
	flags.String("addr", "", "Listen address (overrides TASKBOARD_SERVER_ADDR)")
	flags.Duration("shutdown-timeout", 0, "Graceful shutdown timeout (overrides TASKBOARD_SERVER_SHUTDOWN_TIMEOUT)")
	flags.String("allow-origins", "", "CORS allowed origins (overrides TASKBOARD_SERVER_ALLOW_ORIGINS)")

	// Database configuration
	flags.String("db-driver", "", "Storage driver, sqlite or postgres (overrides TASKBOARD_DB_DRIVER)")
	flags.String("db-dir", "", "SQLite directory (overrides TASKBOARD_DB_DIR)")
	flags.String("db-filename", "", "SQLite filename (overrides TASKBOARD_DB_FILENAME)")
	flags.String("db-url", "", "PostgreSQL URL (overrides TASKBOARD_DB_URL)")
	flags.Duration("db-query-timeout", 0, "Database query timeout (overrides TASKBOARD_DB_QUERY_TIMEOUT)")
	flags.Duration("db-write-timeout", 0, "Database write timeout (overrides TASKBOARD_DB_WRITE_TIMEOUT)")

	// Cache configuration
	flags.String("redis-addr", "", "Redis address (overrides TASKBOARD_CACHE_REDIS_ADDR)")
	flags.Duration("cache-ttl", 0, "Cache entry lifetime (overrides TASKBOARD_CACHE_TTL)")

	// Logging configuration
	flags.String("log-level", "", "Log level (overrides TASKBOARD_LOG_LEVEL)")
	flags.String("log-format", "", "Log format (overrides TASKBOARD_LOG_FORMAT)")
	flags.String("log-file", "", "Log file (overrides TASKBOARD_LOG_FILE)")

	// Client configuration
	flags.String("base-url", "", "API base URL (overrides TASKBOARD_CLIENT_BASE_URL)")
	flags.Duration("client-timeout", 0, "Client request timeout (overrides TASKBOARD_CLIENT_TIMEOUT)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the task API",
		Long: `Run the JSON task API until interrupted.

Routes:
  GET    /health          Store health
  GET    /api/tasks       List tasks, newest first
  POST   /api/tasks       Create a task
  PUT    /api/tasks/:id   Update a task
  DELETE /api/tasks/:id   Delete a task

SIGINT or SIGTERM drains in-flight requests within the shutdown timeout.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewServeCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	boardCmd := &cobra.Command{
		Use:   "board",
		Short: "Open the interactive task board",
		Long: `Open a three column board (To Do, In Progress, Done) backed by the API at --base-url.

Keys:
  n new task    e edit    d delete    s next status    1/2/3 set status
  arrows or h/j/k/l move    r reload    q quit`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return NewBoardCommand(r.app).Execute(cmd.Context(), args)
		},
	}

	r.cmd.AddCommand(serveCmd, boardCmd)
}

// loadConfig resolves configuration from file, environment and changed flags
func (r *RootCommand) loadConfig() error {
	flags := r.cmd.PersistentFlags()
	overrides := &config.ConfigOverrides{}

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	durationFlag := func(name string) *time.Duration {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetDuration(name)
		return &v
	}

	overrides.ServerAddr = stringFlag("addr")
	overrides.ShutdownTimeout = durationFlag("shutdown-timeout")
	overrides.AllowOrigins = stringFlag("allow-origins")

	overrides.DBDriver = stringFlag("db-driver")
	overrides.DBDir = stringFlag("db-dir")
	overrides.DBFilename = stringFlag("db-filename")
	overrides.DBURL = stringFlag("db-url")
	overrides.DBQueryTimeout = durationFlag("db-query-timeout")
	overrides.DBWriteTimeout = durationFlag("db-write-timeout")

	overrides.RedisAddr = stringFlag("redis-addr")
	overrides.CacheTTL = durationFlag("cache-ttl")

	overrides.LogLevel = stringFlag("log-level")
	overrides.LogFormat = stringFlag("log-format")
	overrides.LogFile = stringFlag("log-file")

	overrides.BaseURL = stringFlag("base-url")
	overrides.ClientTimeout = durationFlag("client-timeout")

	loader := config.NewLoader()
	if configFile, _ := flags.GetString("config"); configFile != "" {
		loader = loader.WithConfigFile(configFile)
	}

	cfg, err := loader.LoadWithOverrides(overrides)
	if err != nil {
		return err
	}

	r.app = NewApp(cfg, r.stdout, r.stderr)
	return nil
}
