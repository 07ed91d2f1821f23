package main

import (
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/grindlemire/go-motion/internal/config"
	"github.com/grindlemire/go-motion/screen"
)

const version = "0.1.0"

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
}

// New creates a CLI logging to w at level.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: log.NewWithOptions(w, log.Options{
			ReportTimestamp: true,
			TimeFormat:      "15:04:05.00",
			Level:           level,
		}),
	}
}

// RootCommand creates the root command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "motion",
		Short:        "Animate keyed list rows in the terminal",
		Long:         `motion fades rows in, glides them to new positions and fades them out before they leave, driven by an interactive list or a TOML script.`,
		Version:      version,
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVarP(&c.configPath, "config", "c", "", "TOML configuration file")

	root.AddCommand(c.playCommand())
	root.AddCommand(c.traceCommand())
	return root
}

// loadConfig returns the configuration named by --config, or the defaults.
func (c *CLI) loadConfig() (config.Config, error) {
	if c.configPath == "" {
		c.Logger.Debug("no config file, using defaults")
		return config.Default(), nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return config.Config{}, err
	}
	c.Logger.Debug("loaded config", "path", c.configPath, "items", len(cfg.Items), "steps", len(cfg.Steps))
	return cfg, nil
}

// newScene builds a stage and list configured by cfg.
func newScene(cfg config.Config, opts ...screen.StageOption) (*screen.Stage, *screen.List) {
	opts = append([]screen.StageOption{
		screen.WithRowHeight(cfg.RowHeight),
		screen.WithWidth(cfg.Width),
	}, opts...)
	stage := screen.NewStage(opts...)
	list := screen.NewList(stage, screen.WithDefaultOptions(cfg.Options()))
	return stage, list
}

// rowsFor returns a fresh row slice for keys.
func rowsFor(keys []string) []screen.Row {
	rows := make([]screen.Row, len(keys))
	for i, k := range keys {
		rows[i] = screen.KeyedRow(k, k)
	}
	return rows
}
