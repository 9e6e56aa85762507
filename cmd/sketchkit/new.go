package main

import (
	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"

	"github.com/reoring/sketchkit/sketch"
)

var newPages []string

var newCmd = &cobra.Command{
	Use:   "new <out>",
	Short: "Write an empty document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f := sketch.New(options(ctx)...)
		for _, name := range newPages {
			if _, err := f.AddPage(name); err != nil {
				return err
			}
		}
		if err := f.Save(ctx, args[0]); err != nil {
			return err
		}
		slogctx.FromCtx(ctx).Info("document written", "file", args[0], "pages", len(newPages))
		return nil
	},
}

func init() {
	newCmd.Flags().StringArrayVarP(&newPages, "page", "p", []string{"Page 1"}, "page to create; repeatable")
	rootCmd.AddCommand(newCmd)
}
