package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTSCmd(c *Command) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ts DESCRIPTOR",
		Short: "print the TypeScript declaration of a descriptor",
		Args:  cobra.ExactArgs(1),
		RunE: mkRunE(c, func(cmd *Command, args []string) error {
			t, err := cmd.lookupType(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.TSType(flagMultiline.Bool(cmd)))
			return nil
		}),
	}
	cmd.Flags().BoolP(string(flagMultiline), "m", false, "render shapes over several lines")
	return cmd
}
