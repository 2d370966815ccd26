package cli

import (
	"context"
	"fmt"
	"io"

	"taskboard/internal/client"
	"taskboard/internal/ui"
)

// BoardCommand opens the interactive board against a running API
type BoardCommand struct {
	*App
}

// NewBoardCommand creates a new board command handler
func NewBoardCommand(app *App) *BoardCommand {
	return &BoardCommand{App: app}
}

// Execute runs the board until the user quits
func (c *BoardCommand) Execute(ctx context.Context, args []string) error {
	// The board owns the terminal, so logs only go somewhere when logging.file is set.
	logger, logCloser, err := c.Logger(io.Discard)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer logCloser.Close()

	api := client.New(c.Config.Client.BaseURL, c.Config.Client.Timeout)
	logger.Debug("opening board", "base_url", c.Config.Client.BaseURL)

	return ui.Run(ctx, api, logger)
}
