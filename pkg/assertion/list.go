package assertion

import (
	"bytes"
	"encoding/json"
	"fmt"
	"iter"
	"reflect"
	"strconv"
	"strings"
)

// FlattenList turns a string, or any nesting of slices, arrays,
// pointers and iter.Seq values, into a flat list of
// whitespace-free words in depth-first order. Falsy entries (nil,
// false, "" and numeric zero) are skipped, and a container met a
// second time is not entered again, so cyclic input terminates.
// Maps, structs, channels and funcs yield no words unless they
// implement fmt.Stringer.
func FlattenList(input any) []string {
	f := &flattener{
		out:  []string{},
		seen: make(map[containerKey]bool),
	}
	f.walk(input)
	return f.out
}

type containerKey struct {
	typ reflect.Type
	ptr uintptr
	len int
}

type flattener struct {
	out  []string
	seen map[containerKey]bool
}

func (f *flattener) walk(v any) {
	if isFalsy(v) {
		return
	}

	switch x := v.(type) {
	case string:
		f.out = append(f.out, strings.Fields(x)...)
		return
	case []byte:
		f.out = append(f.out, strings.Fields(string(x))...)
		return
	case iter.Seq[string]:
		for s := range x {
			f.walk(s)
		}
		return
	case iter.Seq[any]:
		for e := range x {
			f.walk(e)
		}
		return
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer:
		if f.enter(rv, 0) {
			f.walk(rv.Elem().Interface())
		}
	case reflect.Slice:
		if f.enter(rv, rv.Len()) {
			f.each(rv)
		}
	case reflect.Array:
		f.each(rv)
	case reflect.Map, reflect.Struct, reflect.Chan, reflect.Func,
		reflect.UnsafePointer:
		// Only a Stringer contributes words; the contents are not
		// walked.
		if s, ok := v.(fmt.Stringer); ok {
			f.out = append(f.out, strings.Fields(s.String())...)
		}
	default:
		f.out = append(f.out, strings.Fields(fmt.Sprint(v))...)
	}
}

func (f *flattener) each(rv reflect.Value) {
	for i := range rv.Len() {
		f.walk(rv.Index(i).Interface())
	}
}

// enter reports whether the container has not been visited yet
// and marks it visited.
func (f *flattener) enter(rv reflect.Value, n int) bool {
	key := containerKey{typ: rv.Type(), ptr: rv.Pointer(), len: n}
	if f.seen[key] {
		return false
	}
	f.seen[key] = true
	return true
}

func isFalsy(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Pointer, reflect.Slice, reflect.Map,
		reflect.Func, reflect.Chan, reflect.Interface:
		return rv.IsNil()
	}
	if isNumeric(rv.Kind()) {
		return rv.IsZero()
	}
	return false
}

// FormatList renders list as quoted items joined into an English
// phrase:
//
//	FormatList([]string{"a", "b", "c"}, "or", true) // "a", "b", or "c"
//
// Items are quoted the way JSON quotes them. An empty conjunction
// means "and", and the serial comma is only written for three or
// more items. An empty list renders as "".
func FormatList[T any](list []T, conjunction string, oxfordComma bool) string {
	if conjunction == "" {
		conjunction = "and"
	}

	items := make([]string, len(list))
	for i, item := range list {
		items[i] = quoteItem(item)
	}

	switch len(items) {
	case 0:
		return `""`
	case 1:
		return items[0]
	}

	last := len(items) - 1
	head := strings.Join(items[:last], ", ")
	if oxfordComma && len(items) > 2 {
		head += ","
	}
	return head + " " + conjunction + " " + items[last]
}

func quoteItem(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return strconv.Quote(fmt.Sprint(v))
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
