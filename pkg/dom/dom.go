// Package dom provides assertions over HTML elements: class
// membership, whether an element is drawn and whether it has
// focus.
//
// The assertions work against small interfaces rather than a
// browser DOM. Adapters for golang.org/x/net/html trees and a
// plain in-memory Box are included.
package dom

import "strings"

// Element is anything carrying a class attribute.
type Element interface {
	// ClassName returns the raw class attribute.
	ClassName() string
	// ClassList returns the distinct class names in order.
	ClassList() []string
}

// Rect is an element's bounding box.
type Rect struct {
	Top, Right, Bottom, Left float64
}

// Width returns Right minus Left.
func (r Rect) Width() float64 { return r.Right - r.Left }

// Height returns Bottom minus Top.
func (r Rect) Height() float64 { return r.Bottom - r.Top }

// Boxed is an element with layout.
type Boxed interface {
	BoundingClientRect() Rect
}

// Focusable is an element that can receive focus.
type Focusable interface {
	Element
	// Contains reports whether other is this element or one of
	// its descendants.
	Contains(other Focusable) bool
}

// Component wraps a rendered element, like a UI widget holding
// its root node.
type Component interface {
	Element() Focusable
}

// Document knows which element has focus.
type Document interface {
	// ActiveElement returns the focused element, or nil.
	ActiveElement() Focusable
}

func hasClass(list []string, name string) bool {
	for _, c := range list {
		if c == name {
			return true
		}
	}
	return false
}

// splitClasses turns a class attribute into distinct names.
func splitClasses(className string) []string {
	var out []string
	for _, name := range strings.Fields(className) {
		if !hasClass(out, name) {
			out = append(out, name)
		}
	}
	return out
}
