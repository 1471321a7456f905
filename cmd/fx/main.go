package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"lsp-fixtures/internal/cli"
	"lsp-fixtures/internal/config"
)

func main() {
	eh := cli.NewErrorHandler()

	// Defaults and FX_* environment; flags are applied by the root command.
	cfg, err := config.NewLoader().Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(eh.ExitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := cli.NewRootCommand(cfg, config.CreateRepository)
	if err := root.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", eh.HandleSimple(err))
		stop()
		os.Exit(eh.ExitCode(err))
	}
}
