package cli

import "context"

// Command is a subcommand handler
type Command interface {
	Execute(ctx context.Context, args []string) error
}
