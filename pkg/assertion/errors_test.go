package assertion

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssertionError_Diff(t *testing.T) {
	e := &AssertionError{Message: "m", Expected: []int{1}, Actual: []int{2}}
	assert.Empty(t, e.Diff())

	e.ShowDiff = true
	assert.NotEmpty(t, e.Diff())

	e.Actual = []int{1}
	assert.Empty(t, e.Diff())
}

func TestUsageError(t *testing.T) {
	cause := errors.New("bad subject")
	err := fmt.Errorf("wrapped: %w", &UsageError{Name: "file", Err: cause})

	assert.True(t, IsUsageError(err))
	assert.False(t, IsAssertionError(err))
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "wrapped: file: bad subject", err.Error())
	assert.Equal(t, "plain 3", Usagef("plain %d", 3).Error())
}

func TestInspect(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{"nil", nil, "nil"},
		{"string", `a"b`, `"a\"b"`},
		{"int", 12, "12"},
		{"bool", false, "false"},
		{"float", 1.5, "1.5"},
		{"error", errors.New("oops"), "oops"},
		{"slice", []string{"x"}, `[]string{"x"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Inspect(tt.in))
		})
	}
}

func TestOutcomeConstructors(t *testing.T) {
	o := Shorthand(true, "  to have width #{exp} ")
	assert.Equal(t, "expected #{this} to have width #{exp}", o.PassMessage)
	assert.Equal(t, "expected #{this} not to have width #{exp}", o.FailMessage)
	assert.True(t, o.usesPlaceholders())

	c := Compare(false, "p", "f", 1, 2).WithDiff()
	assert.True(t, c.Compared)
	assert.True(t, c.ShowDiff)
	assert.False(t, c.usesPlaceholders())
}
