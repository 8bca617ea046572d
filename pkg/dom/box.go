package dom

// Box is an in-memory element with classes, a fixed rectangle
// and children. It suits tests and documents built in code.
type Box struct {
	Class    string
	Rect     Rect
	Children []*Box
}

// NewBox returns a Box with the given class attribute and size.
func NewBox(class string, width, height float64, children ...*Box) *Box {
	return &Box{
		Class:    class,
		Rect:     Rect{Right: width, Bottom: height},
		Children: children,
	}
}

func (b *Box) ClassName() string   { return b.Class }
func (b *Box) ClassList() []string { return splitClasses(b.Class) }

func (b *Box) BoundingClientRect() Rect { return b.Rect }

// Contains reports whether other is b or sits below it.
func (b *Box) Contains(other Focusable) bool {
	target, ok := other.(*Box)
	if !ok || target == nil {
		return false
	}
	if b == target {
		return true
	}
	for _, child := range b.Children {
		if child.Contains(target) {
			return true
		}
	}
	return false
}

// BoxDocument is a Document whose focus is set by hand.
type BoxDocument struct {
	Active Focusable
}

func (d *BoxDocument) ActiveElement() Focusable { return d.Active }
