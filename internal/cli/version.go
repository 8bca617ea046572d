package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.chinotto"
)

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "chinotto version %s\n", chinotto.Version)
		},
	}
}
