// Package main provides the motion demo CLI.
//
// Usage:
//
//	motion play [--config file]              Animate a list interactively
//	motion trace [--config file] [--realtime] Replay a scripted list and print every frame
//
// Examples:
//
//	motion play                       Shuffle, add and remove rows with the keyboard
//	motion trace --config demo.toml   Print the frames of a scripted run
//	MOTION_DEBUG=/tmp/motion.log motion play   Write debug logs to a file
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-motion/internal/debug"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		if errors.Is(err, context.Canceled) {
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	defer debug.Close()

	var verbose bool
	c := New(os.Stderr, log.InfoLevel)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if verbose {
			c.Logger.SetLevel(log.DebugLevel)
		}
		return nil
	}

	return root.ExecuteContext(ctx)
}
