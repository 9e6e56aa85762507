package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/reoring/sketchkit/internal/engine"
	"github.com/reoring/sketchkit/schema"
)

var schemaFormat string

var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the document schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		r := schema.Sketch()
		out := cmd.OutOrStdout()
		switch schemaFormat {
		case "yaml":
			enc := yaml.NewEncoder(out)
			enc.SetIndent(2)
			if err := enc.Encode(r); err != nil {
				return errors.WithStack(err)
			}
			return errors.WithStack(enc.Close())
		case "jsonschema":
			data, err := engine.EncodeJSONIndent(r.JSONSchema())
			if err != nil {
				return errors.WithStack(err)
			}
			_, err = fmt.Fprintln(out, string(data))
			return err
		}
		return errors.Errorf("unknown format %q, want yaml or jsonschema", schemaFormat)
	},
}

func init() {
	schemaCmd.Flags().StringVarP(&schemaFormat, "format", "f", "yaml", "output format: yaml or jsonschema")
	rootCmd.AddCommand(schemaCmd)
}
