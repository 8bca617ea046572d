// Package cli implements the chinotto command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "chinotto",
		Short: "Assert facts about files and paths",
		Long: `chinotto evaluates declarative assertion suites written in YAML
or JSON against the local filesystem.

Examples:
  chinotto check dotfiles.yaml
  chinotto check suites/*.yaml --format json
  chinotto check dotfiles.yaml --watch`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newCheckCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newListCommand())
	root.AddCommand(newVersionCommand())
	return root
}

// Execute runs the command line with args and returns the
// process exit code.
func Execute(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	root := NewRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return ExitSuccess
	}

	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", exitErr.Err)
		}
		return exitErr.Code
	}

	// Flag and argument errors come straight from cobra.
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return ExitUsageError
}
