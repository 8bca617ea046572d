package assertion

import (
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/kr/pretty"
)

// Inspect renders a value the way it appears in assertion
// messages: strings quoted, scalars plain, composites in Go
// syntax.
func Inspect(v any) string {
	switch x := v.(type) {
	case nil:
		return "nil"
	case string:
		return strconv.Quote(x)
	case error:
		return x.Error()
	case fmt.Stringer:
		return x.String()
	}

	switch reflect.ValueOf(v).Kind() {
	case reflect.Bool,
		reflect.Int, reflect.Int8, reflect.Int16,
		reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16,
		reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64,
		reflect.Complex64, reflect.Complex128:
		return fmt.Sprint(v)
	}

	return pretty.Sprint(v)
}

// render substitutes the message placeholders.
func render(msg string, subject, expected, actual any) string {
	if !strings.Contains(msg, "#{") {
		return msg
	}
	return strings.NewReplacer(
		"#{this}", Inspect(subject),
		"#{exp}", Inspect(expected),
		"#{act}", Inspect(actual),
	).Replace(msg)
}
