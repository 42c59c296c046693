package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/circlefit/version"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		// Skip config loading so version works with a broken config
		PersistentPreRun: func(cmd *cobra.Command, args []string) {},
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "circlefit %s\n", version.GetFullVersion())
		},
	}
}
