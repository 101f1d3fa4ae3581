// Package main is the entry point for the labgen generator.
package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"go.trai.ch/labgen/cmd/labgen/commands"
	"go.trai.ch/labgen/internal/app"
	"go.trai.ch/labgen/internal/core/domain"
	_ "go.trai.ch/labgen/internal/wiring"
)

func main() {
	os.Exit(run())
}

func run(opts ...func(*app.App)) int {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	components, err := app.NewApp(ctx)
	if err != nil {
		// Logger is not available yet if initialization failed
		_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		return 1
	}
	defer func() {
		if err := components.Close(); err != nil {
			components.Logger.Error(err)
		}
	}()

	for _, opt := range opts {
		opt(components.App)
	}

	cli := commands.New(components.App)

	if err := cli.Execute(ctx); err != nil {
		// check already printed the status of the output
		if errors.Is(err, domain.ErrOutputOutOfDate) {
			return 1
		}
		components.Logger.Error(err)
		return 1
	}
	return 0
}
