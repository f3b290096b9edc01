package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"

	"mad-wfc/internal/config"
)

type rootOptions struct {
	jobPath   string
	overrides map[string]string
	logLevel  string
	logFormat string

	cfg    config.Config
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:           "wfc",
		Short:         "Generate tile maps with Wave Function Collapse",
		Long:          "wfc solves a generation job (an overlapping sample or explicit tile rules) and prints or saves the result.",
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			logger, err := newLogger(cmd.ErrOrStderr(), opts.logLevel, opts.logFormat)
			if err != nil {
				return err
			}
			opts.logger = logger

			cfg := config.DefaultConfig()
			if opts.jobPath != "" {
				if cfg, err = config.Load(opts.jobPath); err != nil {
					return err
				}
			}
			opts.cfg = cfg.FromMap(opts.overrides)
			if err := opts.cfg.Validate(); err != nil {
				return err
			}
			logger.Debug("job loaded", "path", opts.jobPath, "model", opts.cfg.Model.Type,
				"width", opts.cfg.Width, "height", opts.cfg.Height, "heuristic", opts.cfg.Heuristic)
			return nil
		},
	}
	f := cmd.PersistentFlags()
	f.StringVarP(&opts.jobPath, "config", "c", "", "YAML generation job (default: built-in island sample)")
	f.StringToStringVar(&opts.overrides, "set", nil, "job overrides, e.g. --set w=64,h=48,heuristic=scanline")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format (text, json)")

	cmd.AddCommand(newRunCmd(opts), newSweepCmd(opts))
	return cmd
}

func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return nil, fmt.Errorf("--log-level: %w", err)
	}
	hopts := &slog.HandlerOptions{Level: lvl}
	switch strings.ToLower(format) {
	case "text":
		return slog.New(slog.NewTextHandler(w, hopts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, hopts)), nil
	}
	return nil, fmt.Errorf("--log-format: unknown format %q", format)
}
