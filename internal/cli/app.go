package cli

import (
	"io"

	"github.com/charmbracelet/log"

	"taskboard/internal/config"
	"taskboard/internal/logging"
)

// App carries what every subcommand needs: the resolved configuration and
// the process output streams.
type App struct {
	Config *config.Config
	Stdout io.Writer
	Stderr io.Writer
}

// NewApp creates a new CLI application instance
func NewApp(cfg *config.Config, stdout, stderr io.Writer) *App {
	return &App{
		Config: cfg,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// Logger opens the configured logger. Output goes to logging.file when set,
// otherwise to fallback. The closer must be called on exit.
func (a *App) Logger(fallback io.Writer) (*log.Logger, io.Closer, error) {
	opts := logging.DefaultOptions()
	opts.Level = a.Config.Logging.Level
	opts.Format = a.Config.Logging.Format
	return logging.Open(a.Config.Logging.File, fallback, opts)
}
