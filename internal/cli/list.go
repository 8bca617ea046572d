package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.chinotto"
	"digital.vasic.chinotto/pkg/logging"
)

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available assertions",
		Long: `List every assertion a suite step can name, with its kind.
Properties take no arguments; methods do.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := chinotto.NewRegistry(logging.NullLogger{})
			if err != nil {
				return exitError(ExitConfigError, err)
			}
			for _, name := range r.Names() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-18s %s\n", name, r.Kind(name))
			}
			return nil
		},
	}
}
