// Package main provides the entry point for the importcheck CLI tool.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Sumatoshi-tech/importcheck/cmd/importcheck/commands"
)

const (
	exitFindings = 1
	exitError    = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.NewRootCommand().ExecuteContext(ctx)

	stop()

	if err == nil {
		return
	}

	if errors.Is(err, commands.ErrHallucinationsFound) {
		os.Exit(exitFindings)
	}

	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	os.Exit(exitError)
}
