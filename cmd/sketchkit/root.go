package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/reoring/sketchkit/sketch"
)

var (
	verbose    bool
	configPath string
	cfg        = sketch.DefaultConfig()
)

var rootCmd = &cobra.Command{
	Use:           "sketchkit",
	Short:         "Inspect, query and rewrite Sketch documents",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		ctx := withLogger(cmd.Context())
		cmd.SetContext(ctx)
		if configPath == "" {
			return nil
		}
		var err error
		cfg, err = sketch.LoadConfig(configPath)
		if err != nil {
			return err
		}
		slogctx.FromCtx(ctx).Debug("configuration loaded", "file", configPath)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log decoding details")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "YAML configuration file")
}

func withLogger(ctx context.Context) context.Context {
	if ctx == nil {
		ctx = context.Background()
	}
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	h := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      level,
		TimeFormat: time.TimeOnly,
	})
	logger := slog.New(slogctx.NewHandler(h, nil))
	slog.SetDefault(logger)
	return slogctx.NewCtx(ctx, logger)
}

func options(ctx context.Context) []sketch.Option {
	return []sketch.Option{sketch.WithConfig(cfg), sketch.WithLogger(slogctx.FromCtx(ctx))}
}

// open loads a document, tolerating rejected subtrees. Their issues are
// logged and remain available through File.Issues.
func open(ctx context.Context, file string) (*sketch.File, error) {
	f, err := sketch.Open(ctx, file, options(ctx)...)
	if f == nil {
		return nil, err
	}
	if err != nil {
		slogctx.FromCtx(ctx).Warn("document loaded with errors", "file", file, "error", err)
	}
	return f, nil
}
