package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	slogctx "github.com/veqryn/slog-context"
	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/container"
	"github.com/reoring/sketchkit/sketch"
)

var errDiffers = errors.New("round trip changed the document")

var roundtripCmd = &cobra.Command{
	Use:   "roundtrip <in> [out]",
	Short: "Load and re-encode a document, reporting what changed",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in, err := container.ReadFile(ctx, args[0])
		if err != nil {
			return err
		}
		f, err := sketch.Load(ctx, in.Entries, options(ctx)...)
		if f == nil {
			return err
		}
		var buf bytes.Buffer
		if err := f.Write(ctx, &buf); err != nil {
			return err
		}
		// Read the output back so both sides carry the same value types.
		back, err := container.Read(ctx, bytes.NewReader(buf.Bytes()))
		if err != nil {
			return err
		}

		diffs := sketch.Diff(in.Entries, back.Entries)
		out := cmd.OutOrStdout()
		for _, d := range diffs {
			fmt.Fprintln(out, d)
		}
		if len(args) == 2 {
			if err := os.WriteFile(args[1], buf.Bytes(), 0o644); err != nil {
				return errors.WithStack(err)
			}
			slogctx.FromCtx(ctx).Info("document written", "file", args[1])
		}
		if len(diffs) > 0 {
			return errors.Errorf("%w: %d differences", errDiffers, len(diffs))
		}
		fmt.Fprintln(out, "no differences")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(roundtripCmd)
}
