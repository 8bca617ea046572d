package assertion

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flavourOf(subject map[string]any, expected string) *Outcome {
	return Verdict(
		subject["flavour"] == expected,
		"expected #{this} to have flavour #{exp}",
		"expected #{this} not to have flavour #{exp}",
	)
}

func TestDefineAssertion_Flavour(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, DefineAssertion(r, "flavour", flavourOf))
	subject := map[string]any{"flavour": "x"}

	assert.Equal(t, KindMethod, r.Kind("flavour"))
	assert.NoError(t, r.Expect(subject).To().Have().Call("flavour", "x").Err())

	err := r.Expect(subject).Not().To().Have().Call("flavour", "x").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), Inspect(subject))
	assert.Contains(t, err.Error(), `"x"`)

	var ae *AssertionError
	require.True(t, errors.As(err, &ae))
	assert.Equal(t, "x", ae.Expected)
	assert.Equal(t, true, ae.Actual)
}

func TestDefineAssertions_ArityDecidesKind(t *testing.T) {
	r := NewRegistry()
	err := DefineAssertions(r, map[string]any{
		"nullary": func() *Outcome {
			return Verdict(true, "", "")
		},
		"unary": func(subject any) *Outcome {
			return Verdict(subject != nil, "expected #{this} to be set", "")
		},
		"withThis": func(a *Assertion, subject any) error {
			return a.Assert(Verdict(true, "", ""))
		},
		"binary": func(subject, expected any) *Outcome {
			return Verdict(subject == expected, "", "")
		},
		"rest": func(subject any, rest ...any) *Outcome {
			return Verdict(len(rest) == 0, "expected no arguments", "")
		},
	})
	require.NoError(t, err)

	tests := []struct {
		name string
		kind Kind
	}{
		{"nullary", KindProperty},
		{"unary", KindProperty},
		{"withThis", KindProperty},
		{"binary", KindMethod},
		{"rest", KindProperty},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.kind, r.Kind(tt.name))
		})
	}

	assert.NoError(t, r.Expect(1).Prop("unary").Prop("rest").Err())
	assert.NoError(t, r.Expect(1).Call("binary", 1).Err())

	err = r.Expect(1).Call("unary", 1).Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a function")
}

func TestDefineAssertions_KeyAliases(t *testing.T) {
	r := NewRegistry()
	err := DefineAssertions(r, map[string]any{
		"colour, coloured  color,colour": func(subject, want string) bool {
			return subject == want
		},
	})
	require.Error(t, err, "bool is not an accepted result")

	err = DefineAssertions(r, map[string]any{
		"colour, coloured  color,colour": func(subject, want string) *Outcome {
			return Verdict(subject == want, "expected #{this} to be #{exp}", "")
		},
	})
	require.NoError(t, err)

	for _, name := range []string{"colour", "coloured", "color"} {
		assert.Equal(t, KindMethod, r.Kind(name), name)
	}
	err = r.Expect("red").Call("coloured", "blue").Err()
	require.Error(t, err)
	assert.Equal(t, `expected "red" to be "blue"`, err.Error())
}

func TestDefineAssertions_ResultShapes(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name    string
		fn      any
		wantErr string
	}{
		{"no result", func(subject, arg any) {}, ""},
		{"error nil", func(subject, arg any) error { return nil }, ""},
		{"error", func(subject, arg any) error { return boom }, "boom"},
		{"outcome value", func(subject, arg any) Outcome {
			return *Verdict(false, "value failed", "")
		}, "value failed"},
		{"outcome and error", func(subject, arg any) (*Outcome, error) {
			return nil, boom
		}, "boom"},
		{"outcome value and error", func(subject, arg any) (Outcome, error) {
			return *Verdict(true, "", ""), nil
		}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRegistry()
			require.NoError(t, DefineAssertion(r, "shaped", tt.fn))

			err := r.Expect(1).Call("shaped", 2).Err()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefineAssertions_InvalidHandlers(t *testing.T) {
	tests := []struct {
		name string
		spec map[string]any
	}{
		{"not a func", map[string]any{"x": 42}},
		{"nil func", map[string]any{"x": (func())(nil)}},
		{"bad results", map[string]any{"x": func() (int, int) { return 0, 0 }}},
		{"no names", map[string]any{" , ": func() {}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, DefineAssertions(NewRegistry(), tt.spec))
		})
	}
}

func TestDefineAssertions_ArgumentAdaptation(t *testing.T) {
	r := NewRegistry()
	require.NoError(t, DefineAssertion(r, "wide", func(subject float64, min int) *Outcome {
		return Shorthand(subject >= float64(min), "to be at least #{exp}")
	}))

	assert.NoError(t, r.Expect(3).Call("wide", int8(2)).Err())
	assert.NoError(t, r.Expect(nil).Call("wide", nil).Err())

	err := r.Expect("three").Call("wide", 2).Err()
	require.Error(t, err)
	assert.True(t, IsUsageError(err))
	assert.Contains(t, err.Error(), "subject: cannot use string as float64")

	err = r.Expect(1).Call("wide", "two").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "argument 1: cannot use string as int")

	err = r.Expect(1).Call("wide", 2).Err()
	require.Error(t, err)
	assert.Equal(t, "expected 1 to be at least 2", err.Error())
}

func TestDefineMethod_Normalization(t *testing.T) {
	r := NewRegistry()
	DefineMethod(r, "same", func(a *Assertion, subject any, args ...any) (*Outcome, error) {
		return Verdict(subject == args[0], "expected #{this} to be #{exp} (#{act})", ""), nil
	})
	DefineMethod(r, "plain", func(a *Assertion, subject any, args ...any) (*Outcome, error) {
		return Verdict(false, "no placeholders", ""), nil
	})
	DefineMethod(r, "compared", func(a *Assertion, subject any, args ...any) (*Outcome, error) {
		return Compare(false, "#{exp} #{act}", "", "e", "a"), nil
	})

	err := r.Expect(1).Call("same", 2).Err()
	require.Error(t, err)
	assert.Equal(t, "expected 1 to be 2 (false)", err.Error())

	var ae *AssertionError
	err = r.Expect(1).Call("plain", 2).Err()
	require.True(t, errors.As(err, &ae))
	assert.Nil(t, ae.Expected)

	err = r.Expect(1).Call("compared", 2).Err()
	require.Error(t, err)
	assert.Equal(t, `"e" "a"`, err.Error())
}

func TestDefineProperty_SelfAsserting(t *testing.T) {
	r := NewRegistry()
	DefineProperty(r, "odd", func(a *Assertion, subject any, _ ...any) (*Outcome, error) {
		n, _ := subject.(int)
		return nil, a.Assert(Shorthand(n%2 == 1, "to be odd"))
	})

	assert.NoError(t, r.Expect(3).Prop("odd").Err())
	assert.NoError(t, r.Expect(4).Not().Prop("odd").Err())

	err := r.Expect(4).Prop("odd").Err()
	require.Error(t, err)
	assert.Equal(t, "expected 4 to be odd", err.Error())
}

func TestDefineAssertion_NestedNames(t *testing.T) {
	r := NewRegistry()
	err := DefineAssertion(r, []any{"tart", []string{"sour acidic"}}, func(s, x any) {})
	require.NoError(t, err)

	for _, name := range []string{"tart", "sour", "acidic"} {
		assert.Equal(t, KindMethod, r.Kind(name), name)
	}
}

func TestAddMethod_DoesNotOverwrite(t *testing.T) {
	r := NewRegistry()
	original := func(a *Assertion, args ...any) error {
		return a.Assert(Verdict(true, "", ""))
	}
	later := func(a *Assertion, args ...any) error {
		return a.Assert(Verdict(false, "later handler ran", ""))
	}

	AddMethod(r, original, "pour")
	AddMethod(r, later, "pour", "serve")

	assert.NoError(t, r.Expect(nil).Call("pour").Err())
	assert.Error(t, r.Expect(nil).Call("serve").Err())
}

func TestParseNames(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"a", []string{"a"}},
		{"a, b", []string{"a", "b"}},
		{" a,b\tc\n a ", []string{"a", "b", "c"}},
		{",,", nil},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseNames(tt.in))
		})
	}
}
