// Command task-cli tracks tasks in a JSON file from the command line.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/nibzard/task-cli/cmd"
)

func main() {
	// Create context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()

	err := cmd.Run(ctx, os.Args[1:])
	if err == nil {
		return
	}
	if ctx.Err() != nil {
		fmt.Fprintf(os.Stderr, "\nInterrupted\n")
		os.Exit(cmd.ExitInterrupted)
	}
	if !cmd.Reported(err) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	os.Exit(cmd.ExitCode(err))
}
