package dom

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"digital.vasic.chinotto/pkg/assertion"
	"digital.vasic.chinotto/pkg/plugin"
)

const page = `<!DOCTYPE html>
<html>
<head class="meta"><title>Menu</title></head>
<body class="foo baz qux">
  <div id="banner">Chinotto</div>
  <div id="gone" style="display: none">Hidden</div>
  <div id="flat" style="width: 0; height: 0"></div>
  <section hidden><p id="inner">Inside</p></section>
  <form id="order">
    <input id="name" autofocus>
    <input id="size">
  </form>
</body>
</html>`

func parsePage(t *testing.T) *HTMLDocument {
	t.Helper()
	doc, err := Parse(strings.NewReader(page))
	require.NoError(t, err)
	return doc
}

func newRegistry(doc Document) *assertion.Registry {
	r := assertion.NewRegistry()
	Register(r, doc)
	return r
}

func TestClass_Messages(t *testing.T) {
	r := newRegistry(nil)

	tests := []struct {
		name    string
		class   string
		negate  bool
		any     bool
		args    []any
		wantErr string
	}{
		{"single", "foo", false, false, []any{"foo"}, ""},
		{"several", "bar foo", false, false, []any{"foo", "bar"}, ""},
		{"nested arguments", "bar foo", false, false, []any{[]string{"foo bar"}}, ""},
		{"missing", "", true, false, []any{"qux", "baaaz"}, ""},
		{"missing one", "foo", false, false, []any{"bar"}, `expected classList "foo" to include "bar"`},
		{"negated", "foo", true, false, []any{"foo"}, `expected classList "foo" not to include "foo"`},
		{"empty list", "", false, false, []any{"bar"}, `expected empty classList to include "bar"`},
		{
			"every argument", "foo qux", false, false, []any{"foo", "bar"},
			`expected classList "foo qux" to include "bar"`,
		},
		{
			"negated all present", "foo qux", true, false, []any{"foo", "qux"},
			`expected classList "foo qux" not to include "foo" and "qux"`,
		},
		{
			"all missing", "qul", false, false, []any{"foo", "bar"},
			`expected classList "qul" to include "foo" and "bar"`,
		},
		{"partial is not all", "foo", true, false, []any{"foo", "bar"}, ""},
		{"any", "foo bar", false, true, []any{"foo", "baz"}, ""},
		{"not any", "foo bar", true, true, []any{"quz", "qux"}, ""},
		{
			"any missing", "foo bar", false, true, []any{"quz", "qux"},
			`expected classList "foo bar" to include "quz" or "qux"`,
		},
		{
			"not any matched", "foo bar", true, true, []any{"foo", "baz"},
			`expected classList "foo bar" not to include "foo"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Expect(&Box{Class: tt.class}).To().Have()
			if tt.negate {
				a.Not()
			}
			if tt.any {
				a.Any()
			}
			err := a.Call("classes", tt.args...).Err()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestClass_MultipleElements(t *testing.T) {
	r := newRegistry(nil)
	head := &Box{Class: "foo bar qux"}
	body := &Box{Class: "foo baz qux"}
	both := []*Box{head, body}

	assert.NoError(t, r.Expect(both).Call("class", "foo").Err())
	assert.NoError(t, r.Expect(both).Call("classes", "qux", "foo").Err())
	assert.NoError(t, r.Expect(both).Not().Call("class", "quuux", "qul").Err())

	err := r.Expect(both).Call("class", "bar").Err()
	require.Error(t, err)
	assert.Equal(t, `expected classList "foo baz qux" to include "bar"`, err.Error())

	err = r.Expect(both).Call("class", "baz").Err()
	require.Error(t, err)
	assert.Equal(t, `expected classList "foo bar qux" to include "baz"`, err.Error())

	err = r.Expect(both).Not().Call("class", "baz").Err()
	require.Error(t, err)
	assert.Equal(t, `expected classList "foo baz qux" not to include "baz"`, err.Error())
}

func TestClass_ChainsWithBuiltins(t *testing.T) {
	r := newRegistry(nil)
	body := &Box{Class: "foo"}

	err := r.Expect(body).To().Have().Call("class", "foo").And().Be().Call("a", "*dom.Box").Err()
	assert.NoError(t, err)

	err = r.Expect(body).Not().To().Have().Call("class", "bar").And().Call("a", "string").Err()
	assert.NoError(t, err)
}

func TestClass_BadSubject(t *testing.T) {
	r := newRegistry(nil)

	assert.True(t, assertion.IsUsageError(r.Expect(3).Call("class", "x").Err()))
	assert.True(t, assertion.IsUsageError(r.Expect([]any{&Box{}, 3}).Call("class", "x").Err()))
}

func TestClass_HTMLElements(t *testing.T) {
	doc := parsePage(t)
	r := newRegistry(doc)

	assert.NoError(t, r.Expect(doc.Body()).To().Have().Call("classes", "foo", "qux").Err())
	assert.NoError(t, r.Expect(doc.Head()).To().Have().Call("class", "meta").Err())
	assert.NoError(t, r.Expect(doc.ByClass("qux")).Call("class", "baz").Err())

	err := r.Expect(doc.Body()).Call("class", "bar").Err()
	require.Error(t, err)
	assert.Equal(t, `expected classList "foo baz qux" to include "bar"`, err.Error())
}

func TestDrawn(t *testing.T) {
	doc := parsePage(t)
	r := newRegistry(doc)

	tests := []struct {
		name  string
		el    any
		drawn bool
	}{
		{"text", doc.ByID("banner"), true},
		{"display none", doc.ByID("gone"), false},
		{"zero size", doc.ByID("flat"), false},
		{"hidden ancestor", doc.ByID("inner"), false},
		{"head", doc.Head(), false},
		{"body", doc.Body(), true},
		{"box", NewBox("", 10, 0), true},
		{"empty box", NewBox("", 0, 0), false},
		{"first of slice", []*HTMLElement{doc.ByID("banner"), doc.ByID("gone")}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := r.Expect(tt.el).To().Be()
			if !tt.drawn {
				a.Not()
			}
			assert.NoError(t, a.Prop("drawn").Err())
		})
	}

	err := r.Expect(doc.ByID("gone")).Prop("drawn").Err()
	require.Error(t, err)
	assert.Equal(t, "expected element to be drawn", err.Error())

	err = r.Expect(doc.ByID("banner")).Not().Prop("drawn").Err()
	require.Error(t, err)
	assert.Equal(t, "expected element not to be drawn", err.Error())

	assert.True(t, assertion.IsUsageError(r.Expect("div").Prop("drawn").Err()))
}

func TestDrawn_Fragment(t *testing.T) {
	els, err := ParseFragment(strings.NewReader(
		`<p>Foo</p> <p style="visibility: hidden">Foo</p> <p style="width: 12px"></p>`,
	))
	require.NoError(t, err)
	require.Len(t, els, 3)

	r := newRegistry(nil)
	for _, el := range els {
		assert.NoError(t, r.Expect(el).To().Be().Prop("drawn").Err(), el.String())
	}

	detached := FromHTML(els[0].Node())
	detached.node.Parent.RemoveChild(detached.node)
	assert.NoError(t, r.Expect(detached).Not().Prop("drawn").Err())
}

type widget struct {
	root Focusable
}

func (w widget) Element() Focusable { return w.root }

func TestFocus(t *testing.T) {
	doc := parsePage(t)
	r := newRegistry(doc)

	name := doc.ByID("name")
	size := doc.ByID("size")

	assert.NoError(t, r.Expect(name).To().Have().Prop("focus").Err())
	assert.NoError(t, r.Expect(size).Not().To().Have().Prop("focus").Err())

	err := r.Expect(size).Prop("focus").Err()
	require.Error(t, err)
	assert.Equal(t, "expected element to have focus", err.Error())

	err = r.Expect(name).Not().Prop("focus").Err()
	require.Error(t, err)
	assert.Equal(t, "expected element not to have focus", err.Error())

	doc.Focus(doc.ByID("order"))
	assert.NoError(t, r.Expect(size).Prop("focus").Err(), "focused form contains its inputs")
	assert.NoError(t, r.Expect(doc.Body()).Not().Prop("focus").Err())
}

func TestFocus_Components(t *testing.T) {
	inner := NewBox("field", 10, 10)
	outer := NewBox("panel", 100, 100, inner)
	doc := &BoxDocument{Active: inner}
	r := newRegistry(doc)

	assert.NoError(t, r.Expect(widget{root: inner}).Prop("focus").Err())
	assert.NoError(t, r.Expect(widget{root: outer}).Not().Prop("focus").Err())

	err := r.Expect(widget{root: outer}).Prop("focus").Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "to have focus")
	assert.True(t, strings.HasPrefix(err.Error(), "expected dom.widget"))

	doc.Active = outer
	assert.NoError(t, r.Expect(inner).Prop("focus").Err())
}

func TestFocus_BadSubject(t *testing.T) {
	r := newRegistry(&BoxDocument{})

	err := r.Expect(42).Prop("focus").Err()
	require.Error(t, err)
	assert.True(t, assertion.IsUsageError(err))
	assert.Contains(t, err.Error(), "subject is not an HTMLElement or component-like object")
}

func TestFocus_NoDocument(t *testing.T) {
	r := newRegistry(nil)
	assert.NoError(t, r.Expect(NewBox("", 1, 1)).Not().Prop("focus").Err())
}

func TestPlugin(t *testing.T) {
	assertions := assertion.NewRegistry()
	loader := plugin.NewLoader(plugin.NewRegistry(), assertions, nil)

	require.NoError(t, loader.LoadAndInit(Plugin(&BoxDocument{})))
	for _, name := range []string{"class", "classes", "drawn", "focus"} {
		assert.True(t, assertions.Has(name), name)
	}
}

func TestMissingElement(t *testing.T) {
	doc := parsePage(t)
	r := newRegistry(doc)
	missing := doc.ByID("missing")
	require.Nil(t, missing)

	tests := []struct {
		name string
		err  error
		want string
	}{
		{"class", r.Expect(missing).To().Have().Call("class", "a").Err(), "subject is not an element"},
		{"class in slice", r.Expect([]*HTMLElement{doc.ByID("banner"), missing}).Call("class", "a").Err(), "item 1 is not an element"},
		{"drawn", r.Expect(missing).To().Be().Prop("drawn").Err(), "subject is not an element"},
		{"drawn in slice", r.Expect([]*HTMLElement{missing}).Prop("drawn").Err(), "subject is not an element"},
		{"focus", r.Expect(missing).Prop("focus").Err(), "subject is not an HTMLElement or component-like object"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.True(t, assertion.IsUsageError(tt.err))
			assert.Contains(t, tt.err.Error(), tt.want)
		})
	}
}
