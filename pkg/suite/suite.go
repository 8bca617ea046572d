// Package suite loads declarative assertion suites from YAML or
// JSON files and runs them against an assertion registry.
package suite

import "strings"

// Suite is a named list of checks loaded from one file.
type Suite struct {
	Version string
	Name    string
	Checks  []Check

	// Source is the file the suite was read from, if any.
	Source string
}

// Check applies a chain of steps to one subject.
type Check struct {
	Name    string
	Subject any
	// Not negates every step, like a leading Not() in a chain.
	Not bool
	// Any switches multi-value steps to any-of matching.
	Any   bool
	Steps []Step
}

// Label returns the check name, or the subject when unnamed.
func (c Check) Label() string {
	if c.Name != "" {
		return c.Name
	}
	if s, ok := c.Subject.(string); ok {
		return s
	}
	return "check"
}

// Step is one assertion in a check: a registered name and the
// arguments it is called with.
type Step struct {
	Name string
	Args []any
}

// ParseStep parses a compact step of the form "name:value" into
// its components. If no colon is present the entire string is
// the name and there are no arguments.
//
// Examples:
//
//	"directory"        -> directory
//	"match:^export"    -> match("^export")
//	"pointingTo:/etc"  -> pointingTo("/etc")
func ParseStep(s string) Step {
	name, value, found := strings.Cut(strings.TrimSpace(s), ":")
	step := Step{Name: strings.TrimSpace(name)}
	if found {
		step.Args = []any{value}
	}
	return step
}
