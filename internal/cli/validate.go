package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"digital.vasic.chinotto"
	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/logging"
	"digital.vasic.chinotto/pkg/suite"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <suite>...",
		Short: "Validate suite files without running them",
		Long: `Validate suite files against the suite schema and check that every
step names a known assertion. Nothing on disk is asserted.

Examples:
  chinotto validate dotfiles.yaml
  chinotto validate suites/*.json`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := chinotto.NewRegistry(logging.NullLogger{})
			if err != nil {
				return exitError(ExitConfigError, err)
			}

			hasErrors := false
			for _, file := range args {
				problems := validateFile(r, file)
				if len(problems) == 0 {
					fmt.Fprintf(cmd.OutOrStdout(), "Valid: %s\n", file)
					continue
				}
				hasErrors = true
				fmt.Fprintf(cmd.ErrOrStderr(), "Invalid: %s\n", file)
				for _, p := range problems {
					fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
				}
			}

			if hasErrors {
				return exitError(ExitParseError, fmt.Errorf("validation failed"))
			}
			return nil
		},
	}
}

// validateFile returns every problem found in file.
func validateFile(r *assertion.Registry, file string) []string {
	s, err := suite.Load(file)
	if err != nil {
		var le *suite.LoadError
		if errors.As(err, &le) && len(le.Problems) > 0 {
			return le.Problems
		}
		return []string{err.Error()}
	}

	var problems []string
	for i, c := range s.Checks {
		for j, step := range c.Steps {
			if !r.Has(step.Name) {
				problems = append(problems,
					fmt.Sprintf("checks[%d].assert[%d]: unknown assertion %q", i, j, step.Name))
			}
		}
	}
	return problems
}
