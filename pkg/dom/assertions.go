package dom

import (
	"fmt"
	"reflect"
	"strings"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/plugin"
)

// Version is reported by the DOM plugin.
const Version = "1.0.0"

// Register installs the DOM assertions into r. doc supplies the
// focused element for the focus assertion and may be nil when
// focus is not needed.
func Register(r assertion.Registrar, doc Document) {
	assertion.AddMethod(r, classes, "class", "classes")
	assertion.AddProperty(r, drawn, "drawn")
	assertion.AddProperty(r, focus(doc), "focus")
}

// Plugin returns the DOM assertions as a plugin bound to doc.
func Plugin(doc Document) plugin.Plugin {
	return plugin.New("dom", Version, func(ctx *plugin.Context) error {
		Register(ctx.Assertions, doc)
		return nil
	})
}

// classes checks each subject element for every expected class,
// or for at least one under the any flag.
func classes(a *assertion.Assertion, args ...any) error {
	subjects, err := elements(a.Subject())
	if err != nil {
		return err
	}
	expected := assertion.FlattenList(args)
	conjunction := "and"
	if a.AnyOf() {
		conjunction = "or"
	}

	for _, el := range subjects {
		list := el.ClassList()

		var matched, missing []string
		for _, name := range expected {
			if hasClass(list, name) {
				matched = append(matched, name)
			} else {
				missing = append(missing, name)
			}
		}

		passed := len(missing) == 0
		if a.AnyOf() {
			passed = len(matched) > 0
		}

		names := "empty classList"
		if len(list) > 0 {
			names = fmt.Sprintf(`classList "%s"`, el.ClassName())
		}

		err := a.Assert(assertion.Compare(
			passed,
			fmt.Sprintf("expected %s to include %s",
				names, assertion.FormatList(missing, conjunction, false)),
			fmt.Sprintf("expected %s not to include %s",
				names, assertion.FormatList(matched, conjunction, false)),
			strings.Join(expected, " "),
			el.ClassName(),
		))
		if err != nil {
			return err
		}
	}
	return nil
}

// elements accepts one Element or a slice or array of them.
func elements(subject any) ([]Element, error) {
	if isNil(subject) {
		return nil, assertion.Usagef("subject is not an element")
	}
	if el, ok := subject.(Element); ok {
		return []Element{el}, nil
	}

	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		out := make([]Element, 0, rv.Len())
		for i := range rv.Len() {
			item := rv.Index(i).Interface()
			el, ok := item.(Element)
			if !ok || isNil(item) {
				return nil, assertion.Usagef(
					"item %d is not an element, got %T", i, item,
				)
			}
			out = append(out, el)
		}
		return out, nil
	}
	return nil, assertion.Usagef("subject is not an element, got %T", subject)
}

// drawn checks that the element has a non-empty box. A slice
// subject stands for its first element.
func drawn(a *assertion.Assertion) error {
	subject := first(a.Subject())
	if c, ok := subject.(Component); ok && !isNil(c) {
		subject = c.Element()
	}
	if isNil(subject) {
		return assertion.Usagef("subject is not an element")
	}

	boxed, ok := subject.(Boxed)
	if !ok {
		return assertion.Usagef("subject has no layout box, got %T", a.Subject())
	}

	rect := boxed.BoundingClientRect()
	return a.Assert(assertion.Verdict(
		rect.Width() > 0 || rect.Height() > 0,
		"expected element to be drawn",
		"expected element not to be drawn",
	))
}

func focus(doc Document) assertion.Property {
	return func(a *assertion.Assertion) error {
		subject := first(a.Subject())
		if isNil(subject) {
			return assertion.Usagef("subject is not an HTMLElement or component-like object")
		}

		var active Focusable
		if doc != nil {
			active = doc.ActiveElement()
		}
		has := func(el Focusable) bool {
			return !isNil(active) && !isNil(el) && active.Contains(el)
		}

		switch s := subject.(type) {
		case Focusable:
			return a.Assert(assertion.Verdict(
				has(s),
				"expected element to have focus",
				"expected element not to have focus",
			))
		case Component:
			return a.Assert(assertion.Verdict(
				has(s.Element()),
				"expected #{this} to have focus",
				"expected #{this} not to have focus",
			))
		}
		return assertion.Usagef("subject is not an HTMLElement or component-like object")
	}
}

// isNil reports a nil interface or an interface holding a nil
// pointer, slice, map or func.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Func:
		return rv.IsNil()
	}
	return false
}

// first unwraps a slice subject to its first item.
func first(subject any) any {
	if _, ok := subject.(Element); ok {
		return subject
	}
	rv := reflect.ValueOf(subject)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Len() > 0 {
			return rv.Index(0).Interface()
		}
	}
	return subject
}
