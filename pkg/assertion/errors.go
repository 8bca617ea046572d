package assertion

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/google/go-cmp/cmp"
)

// AssertionError reports a verdict that did not hold. It is the
// expected, recoverable way for an assertion to fail.
type AssertionError struct {
	// Message is the rendered failure message.
	Message string

	// Expected and Actual carry the compared values when the
	// handler supplied them.
	Expected any
	Actual   any

	// ShowDiff asks reporters to render a diff of Expected and
	// Actual below the message.
	ShowDiff bool
}

func (e *AssertionError) Error() string {
	return e.Message
}

// Diff renders the difference between Expected and Actual. It
// returns an empty string when ShowDiff is not set or the values
// are equal.
func (e *AssertionError) Diff() string {
	if !e.ShowDiff {
		return ""
	}
	return cmp.Diff(
		e.Expected, e.Actual,
		cmp.Exporter(func(reflect.Type) bool { return true }),
	)
}

// UsageError reports an assertion applied to a subject or
// arguments that cannot satisfy its preconditions, such as a
// path assertion on a number or a property called like a method.
type UsageError struct {
	// Name is the assertion being invoked, when known.
	Name string
	Err  error
}

func (e *UsageError) Error() string {
	if e.Name == "" {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *UsageError) Unwrap() error {
	return e.Err
}

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsageError reports whether err is, or wraps, a UsageError.
func IsUsageError(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}

// IsAssertionError reports whether err is, or wraps, an
// AssertionError.
func IsAssertionError(err error) bool {
	var ae *AssertionError
	return errors.As(err, &ae)
}
