package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/reoring/sketchkit/internal/engine"
)

var queryCmd = &cobra.Command{
	Use:   "query <file> <jsonpath>",
	Short: "Evaluate a JSONPath expression against a document",
	Long: `Evaluate a JSONPath expression against the canonical tree of a document.
The tree has the keys "meta", "document", "user" and "pages", for example:

  sketchkit query design.sketch '$.pages[*].layers[?(@._class == "artboard")].name'`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		f, err := open(ctx, args[0])
		if err != nil {
			return err
		}
		res, err := f.Query(ctx, args[1])
		if err != nil {
			return err
		}
		data, err := engine.EncodeJSONIndent(res)
		if err != nil {
			return errors.WithStack(err)
		}
		_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return err
	},
}

func init() {
	rootCmd.AddCommand(queryCmd)
}
