package assertion

import (
	"errors"

	"github.com/stretchr/testify/assert"
)

// Flag names understood by the built-in and plugin assertions.
const (
	FlagObject = "object"
	FlagNegate = "negate"
	FlagAny    = "any"
	FlagAll    = "all"
)

// Assertion is the context threaded through a fluent chain. It
// carries the subject and the modifier flags, and remembers the
// first failure; once a step fails the remaining steps are
// skipped.
type Assertion struct {
	registry *Registry
	flags    map[string]any
	err      error
}

// Expect starts an assertion chain on subject.
func (r *Registry) Expect(subject any) *Assertion {
	return &Assertion{
		registry: r,
		flags:    map[string]any{FlagObject: subject},
	}
}

// Expect starts a fresh chain on the same registry. Handlers use
// it to check preconditions without touching their own flags.
func (a *Assertion) Expect(subject any) *Assertion {
	return a.registry.Expect(subject)
}

// Registry returns the registry the chain resolves names in.
func (a *Assertion) Registry() *Registry {
	return a.registry
}

// Subject returns the value under test.
func (a *Assertion) Subject() any {
	return a.flags[FlagObject]
}

// Flag returns the named flag, or nil when unset.
func (a *Assertion) Flag(name string) any {
	return a.flags[name]
}

// SetFlag sets a named flag for the rest of the chain.
func (a *Assertion) SetFlag(name string, value any) {
	a.flags[name] = value
}

// Negated reports whether Not was applied.
func (a *Assertion) Negated() bool {
	v, _ := a.flags[FlagNegate].(bool)
	return v
}

// AnyOf reports whether the any-of quantifier was applied.
func (a *Assertion) AnyOf() bool {
	v, _ := a.flags[FlagAny].(bool)
	return v
}

// Err returns the first failure in the chain, if any.
func (a *Assertion) Err() error {
	return a.err
}

// Check reports the chain's failure to t. It returns true when
// every step passed.
func (a *Assertion) Check(t assert.TestingT, msgAndArgs ...any) bool {
	if h, ok := t.(interface{ Helper() }); ok {
		h.Helper()
	}
	if a.err == nil {
		return true
	}

	var ae *AssertionError
	if errors.As(a.err, &ae) {
		if diff := ae.Diff(); diff != "" {
			return assert.Fail(t, ae.Message+"\n"+diff, msgAndArgs...)
		}
	}
	return assert.NoError(t, a.err, msgAndArgs...)
}

// Not negates every assertion that follows in the chain.
func (a *Assertion) Not() *Assertion {
	a.flags[FlagNegate] = true
	return a
}

// Any makes multi-value assertions pass when at least one value
// matches.
func (a *Assertion) Any() *Assertion {
	a.flags[FlagAny] = true
	delete(a.flags, FlagAll)
	return a
}

// All makes multi-value assertions require every value. It is
// the default.
func (a *Assertion) All() *Assertion {
	a.flags[FlagAll] = true
	delete(a.flags, FlagAny)
	return a
}

// Chain words. They only improve readability.

func (a *Assertion) To() *Assertion    { return a }
func (a *Assertion) Be() *Assertion    { return a }
func (a *Assertion) Been() *Assertion  { return a }
func (a *Assertion) Is() *Assertion    { return a }
func (a *Assertion) That() *Assertion  { return a }
func (a *Assertion) Which() *Assertion { return a }
func (a *Assertion) And() *Assertion   { return a }
func (a *Assertion) Has() *Assertion   { return a }
func (a *Assertion) Have() *Assertion  { return a }
func (a *Assertion) With() *Assertion  { return a }
func (a *Assertion) At() *Assertion    { return a }
func (a *Assertion) Of() *Assertion    { return a }
func (a *Assertion) Same() *Assertion  { return a }
func (a *Assertion) Does() *Assertion  { return a }
func (a *Assertion) A() *Assertion     { return a }
func (a *Assertion) An() *Assertion    { return a }

// Prop evaluates the named property assertion.
func (a *Assertion) Prop(name string) *Assertion {
	if a.err != nil {
		return a
	}

	e, ok := a.registry.lookup(name)
	switch {
	case !ok:
		a.err = Usagef("unknown assertion %q", name)
	case e.kind != KindProperty:
		a.err = Usagef("%s is a method and takes arguments", name)
	default:
		a.settle(name, e.property(a))
	}
	return a
}

// Call evaluates the named method assertion with args.
func (a *Assertion) Call(name string, args ...any) *Assertion {
	if a.err != nil {
		return a
	}

	e, ok := a.registry.lookup(name)
	switch {
	case !ok:
		a.err = Usagef("unknown assertion %q", name)
	case e.kind != KindMethod:
		a.err = Usagef("%s is not a function", name)
	default:
		a.settle(name, e.method(a, args...))
	}
	return a
}

// Assert is the assertion primitive. It applies negation, renders
// the matching message and records a failure in the chain.
func (a *Assertion) Assert(o *Outcome) error {
	if o == nil {
		return nil
	}

	ok, msg := o.Passed, o.PassMessage
	if a.Negated() {
		ok, msg = !ok, o.FailMessage
	}
	if ok {
		return nil
	}
	if msg == "" {
		msg = "unspecified assertion failure"
	}

	err := &AssertionError{
		Message:  render(msg, a.Subject(), o.Expected, o.Actual),
		Expected: o.Expected,
		Actual:   o.Actual,
		ShowDiff: o.ShowDiff,
	}
	if a.err == nil {
		a.err = err
	}
	return err
}

func (a *Assertion) settle(name string, err error) {
	if err == nil || a.err != nil {
		return
	}
	var ue *UsageError
	if errors.As(err, &ue) && ue.Name == "" {
		ue.Name = name
	}
	a.err = err
}
