package assertion

import "strings"

// Outcome is the structured verdict a Handler hands back to the
// compiler, which then feeds it to Assertion.Assert.
//
// PassMessage is reported when a positive assertion fails and
// FailMessage when a negated one does. Both may use the #{this},
// #{exp} and #{act} placeholders.
type Outcome struct {
	Passed      bool
	PassMessage string
	FailMessage string

	// Expected and Actual are only meaningful when Compared is
	// set; an outcome without them may have them filled in from
	// the call arguments.
	Expected any
	Actual   any
	Compared bool

	ShowDiff bool
}

// Verdict builds an outcome from a boolean and its two messages.
func Verdict(passed bool, passMessage, failMessage string) *Outcome {
	return &Outcome{
		Passed:      passed,
		PassMessage: passMessage,
		FailMessage: failMessage,
	}
}

// Compare builds an outcome that carries the compared values.
func Compare(
	passed bool,
	passMessage, failMessage string,
	expected, actual any,
) *Outcome {
	return &Outcome{
		Passed:      passed,
		PassMessage: passMessage,
		FailMessage: failMessage,
		Expected:    expected,
		Actual:      actual,
		Compared:    true,
	}
}

// Shorthand builds an outcome from a message suffix, producing
// "expected #{this} <suffix>" and "expected #{this} not <suffix>".
//
//	Shorthand(w == 80, "to have width #{exp}")
func Shorthand(passed bool, suffix string) *Outcome {
	suffix = strings.TrimSpace(suffix)
	return &Outcome{
		Passed:      passed,
		PassMessage: "expected #{this} " + suffix,
		FailMessage: "expected #{this} not " + suffix,
	}
}

// WithDiff marks the outcome so failures render a diff.
func (o *Outcome) WithDiff() *Outcome {
	o.ShowDiff = true
	return o
}

// usesPlaceholders reports whether either message refers to the
// expected or actual value.
func (o *Outcome) usesPlaceholders() bool {
	return hasValuePlaceholder(o.PassMessage) ||
		hasValuePlaceholder(o.FailMessage)
}

func hasValuePlaceholder(s string) bool {
	return strings.Contains(s, "#{exp}") ||
		strings.Contains(s, "#{act}")
}
