package memdom

import (
	"strings"

	"github.com/dshills/focustrack/internal/dom"
)

// Node is an element or text node. Elements implement dom.Element; text
// nodes ignore focus, blur and scroll.
type Node struct {
	doc      *Document
	name     string
	text     string
	id       string
	classes  []string
	parent   *Node
	children []*Node

	scrollTop float64
	listeners listenerSet
}

var (
	_ dom.Node    = (*Node)(nil)
	_ dom.Element = (*Node)(nil)
)

// Parent implements dom.Node.
func (n *Node) Parent() dom.Node {
	if n.parent == nil {
		return nil
	}
	return n.parent
}

// Children implements dom.Node.
func (n *Node) Children() []dom.Node {
	out := make([]dom.Node, len(n.children))
	for i, c := range n.children {
		out[i] = c
	}
	return out
}

// NodeName implements dom.Node.
func (n *Node) NodeName() string { return n.name }

// Text returns the text content of a text node.
func (n *Node) Text() string { return n.text }

// ID returns the element id.
func (n *Node) ID() string { return n.id }

// IsText reports whether n is a text node.
func (n *Node) IsText() bool { return n.name == textNodeName }

// SetID sets the element id and returns n.
func (n *Node) SetID(id string) *Node {
	n.id = id
	return n
}

// AddClass adds a class and returns n.
func (n *Node) AddClass(class string) *Node {
	n.classes = append(n.classes, class)
	return n
}

// HasClass reports whether the element carries class.
func (n *Node) HasClass(class string) bool {
	for _, c := range n.classes {
		if c == class {
			return true
		}
	}
	return false
}

// AppendChild appends child, detaching it from any previous parent, and
// returns child.
func (n *Node) AppendChild(child *Node) *Node {
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = n
	n.children = append(n.children, child)
	return child
}

func (n *Node) removeChild(child *Node) {
	for i, c := range n.children {
		if c == child {
			n.children = append(n.children[:i], n.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// Child returns the i-th child or nil.
func (n *Node) Child(i int) *Node {
	if i < 0 || i >= len(n.children) {
		return nil
	}
	return n.children[i]
}

// Focus makes n the active element, blurring the previous one first.
func (n *Node) Focus() {
	if n.IsText() || n.doc == nil {
		return
	}
	n.doc.setActive(n)
}

// Blur removes focus from n if it holds it.
func (n *Node) Blur() {
	if n.doc == nil || n.doc.active != n {
		return
	}
	n.doc.active = nil
	n.fire(dom.EventBlur)
}

// ScrollTop implements dom.Element.
func (n *Node) ScrollTop() float64 { return n.scrollTop }

// ScrollTo sets the scroll offset and fires a scroll event.
func (n *Node) ScrollTo(top float64) {
	n.scrollTop = top
	n.fire(dom.EventScroll)
}

// On implements dom.Element.
func (n *Node) On(kind dom.EventKind, fn dom.Listener) dom.RemoveFunc {
	return n.listeners.add(kind, fn)
}

func (n *Node) fire(kind dom.EventKind) {
	n.listeners.fire(dom.Event{Kind: kind, Target: n, Time: n.doc.now()})
}

// matches reports whether n matches a single simple selector.
func (n *Node) matches(sel string) bool {
	if n.IsText() || sel == "" {
		return false
	}
	switch sel[0] {
	case '.':
		return n.HasClass(sel[1:])
	case '#':
		return n.id == sel[1:]
	default:
		return strings.EqualFold(n.name, sel)
	}
}

func (n *Node) walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.children {
		c.walk(fn)
	}
}
