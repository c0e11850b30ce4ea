// Package main is the entrypoint of audiodownloader.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"audiodownloader/internal/cfg"
)

// main is the main entrypoint of the program (duh!).
func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := cfg.Execute(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
