package cli

import "fmt"

// Exit codes for the chinotto command line.
const (
	// ExitSuccess indicates every check passed.
	ExitSuccess = 0

	// ExitCheckFailure indicates one or more checks failed.
	ExitCheckFailure = 1

	// ExitParseError indicates a suite file could not be loaded.
	ExitParseError = 2

	// ExitConfigError indicates a configuration error.
	ExitConfigError = 3

	// ExitUsageError indicates invalid CLI usage.
	ExitUsageError = 64
)

// ExitError carries the process exit code for a failed command.
// Err may be nil when the output already explains the failure.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func exitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}
