package main

import (
	"context"
	"fmt"
	"os"

	"taskboard/internal/cli"
)

func main() {
	root := cli.NewRootCommand(os.Stdout, os.Stderr)

	if err := root.Execute(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", cli.NewErrorHandler().HandleSimple(err))
		os.Exit(1)
	}
}
