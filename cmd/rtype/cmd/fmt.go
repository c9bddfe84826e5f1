package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newFmtCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fmt DESCRIPTOR",
		Short: "print the canonical form of a descriptor",
		Long: `Fmt parses a descriptor (or a type name from the config file) and prints
its canonical text. The output parses back to an equivalent type.
`,
		Args: cobra.ExactArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			t, err := cmd.lookupType(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		}),
	}
	return cmd
}
