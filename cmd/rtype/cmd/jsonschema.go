package cmd

import (
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

func newJSONSchemaCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "jsonschema DESCRIPTOR",
		Short: "print the JSON Schema of a descriptor",
		Long: `Jsonschema prints the JSON Schema projection of a descriptor. Types
without a schema counterpart, such as instanceof, fail with not_implemented.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			t, err := cmd.lookupType(args[0])
			if err != nil {
				return err
			}
			s, err := t.JSONSchema()
			if err != nil {
				return err
			}
			b, err := json.MarshalIndent(s, "", "  ")
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", b)
			return nil
		}),
	}
	return cmd
}
