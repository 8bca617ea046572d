package assertion

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Handler implements one assertion. It receives the chain, the
// subject and the call arguments, and either returns an Outcome
// for the compiler to assert or nil after calling a.Assert
// itself.
type Handler func(a *Assertion, subject any, args ...any) (*Outcome, error)

// AddMethod installs fn under every name that r does not already
// own. Existing assertions, built-in or not, are never replaced.
func AddMethod(r Registrar, fn Method, names ...string) {
	for _, name := range names {
		r.RegisterMethod(name, fn)
	}
}

// AddProperty installs fn under every name that r does not
// already own.
func AddProperty(r Registrar, fn Property, names ...string) {
	for _, name := range names {
		r.RegisterProperty(name, fn)
	}
}

// DefineMethod registers h as a method under each name in names,
// a comma or whitespace separated list such as "colour, coloured".
func DefineMethod(r Registrar, names string, h Handler) {
	run := compile(h)
	AddMethod(r, func(a *Assertion, args ...any) error {
		return run(a, args)
	}, ParseNames(names)...)
}

// DefineProperty registers h as a property under each name in
// names.
func DefineProperty(r Registrar, names string, h Handler) {
	run := compile(h)
	AddProperty(r, func(a *Assertion) error {
		return run(a, nil)
	}, ParseNames(names)...)
}

// DefineAssertions registers every entry of spec. Keys are name
// lists as accepted by DefineMethod; values are funcs whose
// optional leading *Assertion parameter receives the chain and
// whose next parameter receives the subject.
//
// Whether an entry becomes a property or a method follows its
// declared parameter count, not counting the *Assertion or a
// trailing variadic parameter: fewer than two makes a property.
// A func(subject any, args ...any) is therefore a property.
//
// Accepted results are none, error, *Outcome, Outcome, or one of
// the outcome types followed by error.
func DefineAssertions(r Registrar, spec map[string]any) error {
	keys := make([]string, 0, len(spec))
	for key := range spec {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(ParseNames(key)) == 0 {
			return fmt.Errorf("no assertion names in %q", key)
		}
		s, err := newShim(spec[key])
		if err != nil {
			return fmt.Errorf("define %q: %w", key, err)
		}
		if s.arity < 2 {
			DefineProperty(r, key, s.call)
		} else {
			DefineMethod(r, key, s.call)
		}
	}
	return nil
}

// DefineAssertion is DefineAssertions for a single entry. names
// may be a string or any nesting of string lists.
func DefineAssertion(r Registrar, names any, fn any) error {
	key := strings.Join(FlattenList(names), ", ")
	return DefineAssertions(r, map[string]any{key: fn})
}

var nameSeparators = regexp.MustCompile(`[,\s]+`)

// ParseNames splits a name list on commas and whitespace and
// drops empty and repeated names, keeping first-seen order.
func ParseNames(key string) []string {
	seen := make(map[string]bool)
	var names []string
	for _, name := range nameSeparators.Split(strings.TrimSpace(key), -1) {
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	return names
}

func compile(h Handler) func(a *Assertion, args []any) error {
	return func(a *Assertion, args []any) error {
		o, err := h(a, a.Subject(), args...)
		if err != nil {
			return err
		}
		if o == nil {
			return nil
		}
		return a.Assert(normalize(o, args))
	}
}

// normalize fills in Expected and Actual when the messages refer
// to them but the handler left them out: the first argument
// becomes the expected value and the verdict the actual one.
func normalize(o *Outcome, args []any) *Outcome {
	if len(args) == 0 || o.Compared || !o.usesPlaceholders() {
		return o
	}
	out := *o
	out.Expected = args[0]
	out.Actual = o.Passed
	out.Compared = true
	return &out
}
