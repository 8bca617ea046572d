package dom

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTMLElement adapts an element node of an x/net/html tree.
type HTMLElement struct {
	node *html.Node
}

// FromHTML wraps n. It returns nil unless n is an element node.
func FromHTML(n *html.Node) *HTMLElement {
	if n == nil || n.Type != html.ElementNode {
		return nil
	}
	return &HTMLElement{node: n}
}

// Node returns the wrapped node. Methods on a nil *HTMLElement
// behave as for a detached element without attributes.
func (e *HTMLElement) Node() *html.Node {
	if e == nil {
		return nil
	}
	return e.node
}

// Attr returns the named attribute and whether it is present.
func (e *HTMLElement) Attr(name string) (string, bool) {
	if e == nil {
		return "", false
	}
	return attr(e.node, name)
}

func (e *HTMLElement) ClassName() string {
	v, _ := e.Attr("class")
	return v
}

func (e *HTMLElement) ClassList() []string {
	return splitClasses(e.ClassName())
}

// Contains reports whether other is e or one of its descendants.
func (e *HTMLElement) Contains(other Focusable) bool {
	target, ok := other.(*HTMLElement)
	if e == nil || !ok || target == nil {
		return false
	}
	for n := target.node; n != nil; n = n.Parent {
		if n == e.node {
			return true
		}
	}
	return false
}

// BoundingClientRect approximates layout, since parsed HTML has
// none. Elements that are detached, hidden by the hidden
// attribute or display:none (themselves or through an ancestor),
// or never rendered (head content, scripts) get an empty box.
// Explicit pixel sizes from the style, width or height
// attributes are used as given. Otherwise an element with text
// is one line high and as wide as its text.
func (e *HTMLElement) BoundingClientRect() Rect {
	if e == nil || e.node.Parent == nil {
		return Rect{}
	}
	for n := e.node; n != nil; n = n.Parent {
		if n.Type == html.ElementNode && !rendered(n) {
			return Rect{}
		}
	}

	width, hasWidth := dimension(e.node, "width")
	height, hasHeight := dimension(e.node, "height")
	if hasWidth || hasHeight {
		return Rect{Right: width, Bottom: height}
	}

	text := strings.TrimSpace(textContent(e.node))
	if text == "" {
		return Rect{}
	}
	return Rect{Right: float64(len(text)), Bottom: 1}
}

func (e *HTMLElement) String() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("<" + e.node.Data)
	for _, a := range e.node.Attr {
		fmt.Fprintf(&b, " %s=%q", a.Key, a.Val)
	}
	b.WriteString(">")
	return b.String()
}

// HTMLDocument is a parsed document. Focus starts on the first
// element with an autofocus attribute and moves with Focus.
type HTMLDocument struct {
	root   *html.Node
	active *HTMLElement
}

// Parse reads an HTML document.
func Parse(r io.Reader) (*HTMLDocument, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return NewDocument(root), nil
}

// NewDocument wraps an already parsed tree.
func NewDocument(root *html.Node) *HTMLDocument {
	d := &HTMLDocument{root: root}
	d.active = d.find(func(n *html.Node) bool {
		_, ok := attr(n, "autofocus")
		return ok
	})
	return d
}

// ParseFragment parses a snippet of body content and returns
// its top-level elements.
func ParseFragment(r io.Reader) ([]*HTMLElement, error) {
	body := &html.Node{
		Type:     html.ElementNode,
		Data:     "body",
		DataAtom: atom.Body,
	}
	nodes, err := html.ParseFragment(r, body)
	if err != nil {
		return nil, fmt.Errorf("parse html fragment: %w", err)
	}

	var out []*HTMLElement
	for _, n := range nodes {
		if el := FromHTML(n); el != nil {
			body.AppendChild(n)
			out = append(out, el)
		}
	}
	return out, nil
}

// ActiveElement returns the focused element, or nil.
func (d *HTMLDocument) ActiveElement() Focusable {
	if d.active == nil {
		return nil
	}
	return d.active
}

// Focus moves focus to el.
func (d *HTMLDocument) Focus(el *HTMLElement) {
	d.active = el
}

// Body returns the body element.
func (d *HTMLDocument) Body() *HTMLElement {
	return d.find(func(n *html.Node) bool { return n.DataAtom == atom.Body })
}

// Head returns the head element.
func (d *HTMLDocument) Head() *HTMLElement {
	return d.find(func(n *html.Node) bool { return n.DataAtom == atom.Head })
}

// ByID returns the element with the given id, or nil.
func (d *HTMLDocument) ByID(id string) *HTMLElement {
	return d.find(func(n *html.Node) bool {
		v, ok := attr(n, "id")
		return ok && v == id
	})
}

// ByClass returns every element carrying class, in document
// order.
func (d *HTMLDocument) ByClass(class string) []*HTMLElement {
	var out []*HTMLElement
	walk(d.root, func(n *html.Node) bool {
		v, _ := attr(n, "class")
		if hasClass(strings.Fields(v), class) {
			out = append(out, FromHTML(n))
		}
		return false
	})
	return out
}

func (d *HTMLDocument) find(match func(*html.Node) bool) *HTMLElement {
	var found *HTMLElement
	walk(d.root, func(n *html.Node) bool {
		if match(n) {
			found = FromHTML(n)
			return true
		}
		return false
	})
	return found
}

// walk visits element nodes depth first until visit returns
// true.
func walk(n *html.Node, visit func(*html.Node) bool) bool {
	if n == nil {
		return false
	}
	if n.Type == html.ElementNode && visit(n) {
		return true
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if walk(c, visit) {
			return true
		}
	}
	return false
}

func attr(n *html.Node, name string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == name {
			return a.Val, true
		}
	}
	return "", false
}

func rendered(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Head, atom.Script, atom.Style, atom.Template,
		atom.Title, atom.Meta, atom.Link, atom.Noscript:
		return false
	}
	if _, hidden := attr(n, "hidden"); hidden {
		return false
	}
	display, _ := styleValue(n, "display")
	return display != "none"
}

// dimension reads a pixel size from the style attribute, then
// from the plain attribute of the same name.
func dimension(n *html.Node, name string) (float64, bool) {
	if v, ok := styleValue(n, name); ok {
		return parsePixels(v)
	}
	if v, ok := attr(n, name); ok {
		return parsePixels(v)
	}
	return 0, false
}

func parsePixels(v string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(v), "px"), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func styleValue(n *html.Node, property string) (string, bool) {
	style, ok := attr(n, "style")
	if !ok {
		return "", false
	}
	for _, decl := range strings.Split(style, ";") {
		key, value, found := strings.Cut(decl, ":")
		if found && strings.EqualFold(strings.TrimSpace(key), property) {
			return strings.ToLower(strings.TrimSpace(value)), true
		}
	}
	return "", false
}

func textContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		b.WriteString(textContent(c))
	}
	return b.String()
}
