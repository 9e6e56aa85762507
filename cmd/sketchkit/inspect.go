package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/reoring/sketchkit/container"
	"github.com/reoring/sketchkit/model"
	"github.com/reoring/sketchkit/sketch"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "List pages, artboards, symbols and entries of a document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := container.ReadFile(ctx, args[0])
		if err != nil {
			return err
		}
		f, err := sketch.Load(ctx, a.Entries, options(ctx)...)
		if f == nil {
			return err
		}
		out := cmd.OutOrStdout()
		printPages(out, f)
		fmt.Fprintf(out, "\nentries (%s):\n", humanize.Bytes(uint64(a.TotalSize())))
		for _, e := range a.Info {
			fmt.Fprintf(out, "  %-48s %10s\n", e.Name, e.HumanSize())
		}
		issues := append(slices.Clone(a.Warnings), f.Issues()...)
		if len(issues) > 0 {
			fmt.Fprintf(out, "\nissues (%d):\n", len(issues))
			for _, it := range issues {
				fmt.Fprintf(out, "  %s\n", it)
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func printPages(out io.Writer, f *sketch.File) {
	fmt.Fprintf(out, "document %s\n", f.Document.ID())
	for _, p := range f.Pages() {
		fmt.Fprintf(out, "  page %q %s\n", p.Name, p.ID())
		for _, l := range p.Layers {
			switch b := l.(type) {
			case *model.Artboard:
				fmt.Fprintf(out, "    artboard %q %s (%d layers)\n", b.Name, b.ID(), len(b.Layers))
			case *model.SymbolMaster:
				fmt.Fprintf(out, "    symbol %q %s\n", b.Name, b.SymbolID)
			}
		}
	}
}
