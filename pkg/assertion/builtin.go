package assertion

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"
)

// registerDefaults installs the built-in assertions. Plugins
// cannot shadow them because registration never overwrites.
func (r *Registry) registerDefaults() {
	r.RegisterProperty("ok", evaluateOK)
	r.RegisterProperty("true", evaluateTrue)
	r.RegisterProperty("false", evaluateFalse)
	r.RegisterProperty("nil", evaluateNil)
	r.RegisterProperty("empty", evaluateEmpty)

	AddMethod(r, evaluateEqual, "equal", "equals", "eq")
	AddMethod(r, evaluateMatch, "match", "matches")
	AddMethod(r, evaluateInclude, "include", "contain", "contains")
	AddMethod(r, evaluateType, "a", "an")
}

// evaluateOK checks that the subject is not a zero value.
func evaluateOK(a *Assertion) error {
	return a.Assert(Verdict(
		!isZero(a.Subject()),
		"expected #{this} to be truthy",
		"expected #{this} to be falsy",
	))
}

// evaluateTrue checks that the subject is the boolean true.
func evaluateTrue(a *Assertion) error {
	return a.Assert(Verdict(
		a.Subject() == true,
		"expected #{this} to be true",
		"expected #{this} to be false",
	))
}

// evaluateFalse checks that the subject is the boolean false.
func evaluateFalse(a *Assertion) error {
	return a.Assert(Verdict(
		a.Subject() == false,
		"expected #{this} to be false",
		"expected #{this} to be true",
	))
}

// evaluateNil checks for nil, including typed nil pointers,
// maps, slices, channels, funcs and interfaces.
func evaluateNil(a *Assertion) error {
	return a.Assert(Verdict(
		isNil(a.Subject()),
		"expected #{this} to be nil",
		"expected #{this} not to be nil",
	))
}

// evaluateEmpty checks that a string, slice, array, map or
// channel has no elements.
func evaluateEmpty(a *Assertion) error {
	count, ok := toCount(a.Subject())
	if !ok {
		return Usagef(
			"expected a string, slice, array, map or channel, got %T",
			a.Subject(),
		)
	}
	return a.Assert(Verdict(
		count == 0,
		"expected #{this} to be empty",
		"expected #{this} not to be empty",
	))
}

// evaluateEqual compares deeply, treating numbers of different
// Go types as equal when their values are.
func evaluateEqual(a *Assertion, args ...any) error {
	if len(args) == 0 {
		return Usagef("expected value is missing")
	}
	expected := args[0]
	return a.Assert(Compare(
		equalValues(a.Subject(), expected),
		"expected #{this} to equal #{exp}",
		"expected #{this} to not equal #{exp}",
		expected,
		a.Subject(),
	).WithDiff())
}

// evaluateMatch checks a string-like subject against a regular
// expression given as *regexp.Regexp or pattern string.
func evaluateMatch(a *Assertion, args ...any) error {
	if len(args) == 0 {
		return Usagef("pattern is missing")
	}

	var re *regexp.Regexp
	switch p := args[0].(type) {
	case *regexp.Regexp:
		re = p
	case string:
		compiled, err := regexp.Compile(p)
		if err != nil {
			return Usagef("invalid pattern %q: %w", p, err)
		}
		re = compiled
	default:
		return Usagef("pattern must be a string or *regexp.Regexp, got %T", p)
	}

	subject, ok := AsString(a.Subject())
	if !ok {
		return Usagef("expected a string subject, got %T", a.Subject())
	}

	return a.Assert(Verdict(
		re.MatchString(subject),
		"expected #{this} to match "+re.String(),
		"expected #{this} not to match "+re.String(),
	))
}

// evaluateInclude checks for a substring, a slice element or a
// map key.
func evaluateInclude(a *Assertion, args ...any) error {
	if len(args) == 0 {
		return Usagef("expected value is missing")
	}
	needle := args[0]

	found, err := includes(a.Subject(), needle)
	if err != nil {
		return err
	}
	return a.Assert(Compare(
		found,
		"expected #{this} to include #{exp}",
		"expected #{this} not to include #{exp}",
		needle,
		a.Subject(),
	))
}

// evaluateType checks the subject's kind ("string", "slice",
// "map", ...) or full Go type name ("*os.File").
func evaluateType(a *Assertion, args ...any) error {
	if len(args) == 0 {
		return Usagef("type name is missing")
	}
	name, ok := args[0].(string)
	if !ok {
		return Usagef("type name must be a string, got %T", args[0])
	}

	article := "a "
	if strings.ContainsRune("aeiou", rune(strings.ToLower(name+"x")[0])) {
		article = "an "
	}

	return a.Assert(Verdict(
		typeMatches(a.Subject(), name),
		"expected #{this} to be "+article+name,
		"expected #{this} not to be "+article+name,
	))
}

// AsString extracts text from string-like subjects: strings,
// byte slices and fmt.Stringer values.
func AsString(v any) (string, bool) {
	switch s := v.(type) {
	case string:
		return s, true
	case []byte:
		return string(s), true
	case fmt.Stringer:
		return s.String(), true
	}
	return "", false
}

// --- helpers ---

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice,
		reflect.Chan, reflect.Func, reflect.Interface:
		return rv.IsNil()
	}
	return false
}

func isZero(v any) bool {
	if v == nil {
		return true
	}
	return reflect.ValueOf(v).IsZero()
}

func typeMatches(v any, name string) bool {
	if v == nil {
		return name == "nil"
	}
	t := reflect.TypeOf(v)
	return t.String() == name ||
		strings.EqualFold(t.Kind().String(), name)
}

func equalValues(actual, expected any) bool {
	if af, ok := toFloat64(actual); ok {
		if ef, ok := toFloat64(expected); ok {
			return af == ef
		}
	}
	return reflect.DeepEqual(actual, expected)
}

func includes(haystack, needle any) (bool, error) {
	if s, ok := AsString(haystack); ok {
		sub, ok := AsString(needle)
		if !ok {
			return false, Usagef(
				"cannot search a string for %T", needle,
			)
		}
		return strings.Contains(s, sub), nil
	}

	rv := reflect.ValueOf(haystack)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		for i := 0; i < rv.Len(); i++ {
			if equalValues(rv.Index(i).Interface(), needle) {
				return true, nil
			}
		}
		return false, nil
	case reflect.Map:
		key := reflect.ValueOf(needle)
		if !key.IsValid() || !key.Type().AssignableTo(rv.Type().Key()) {
			return false, nil
		}
		return rv.MapIndex(key).IsValid(), nil
	}

	return false, Usagef(
		"expected a string, slice, array or map, got %T", haystack,
	)
}

// toFloat64 converts numeric values to float64.
func toFloat64(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

// toCount extracts an element count from strings, slices,
// arrays, maps and channels.
func toCount(v any) (int, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String, reflect.Slice, reflect.Array,
		reflect.Map, reflect.Chan:
		return rv.Len(), true
	}
	return 0, false
}
