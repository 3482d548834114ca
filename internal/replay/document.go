package replay

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dshills/focustrack/internal/dom/memdom"
)

// buildDocument appends the scenario nodes to the document body.
func buildDocument(doc *memdom.Document, defs []NodeDef) {
	for _, def := range defs {
		doc.Body.AppendChild(buildNode(doc, def))
	}
}

func buildNode(doc *memdom.Document, def NodeDef) *memdom.Node {
	if def.isText() {
		return doc.CreateText(def.Text)
	}
	tag := def.Tag
	if tag == "" {
		tag = "div"
	}
	n := doc.CreateElement(tag)
	if def.ID != "" {
		n.SetID(def.ID)
	}
	for _, c := range strings.Fields(def.Class) {
		n.AddClass(c)
	}
	if def.Text != "" {
		n.AppendChild(doc.CreateText(def.Text))
	}
	for _, child := range def.Children {
		n.AppendChild(buildNode(doc, child))
	}
	return n
}

// resolve finds the node named by ref: "body", an element id, or either
// followed by child indexes such as "a/0/1".
func resolve(doc *memdom.Document, ref string) (*memdom.Node, error) {
	parts := strings.Split(ref, "/")
	var n *memdom.Node
	if parts[0] == "body" {
		n = doc.Body
	} else {
		n = doc.ByID(parts[0])
	}
	if n == nil {
		return nil, fmt.Errorf("%w: no element %q", ErrInvalidScenario, parts[0])
	}
	for _, p := range parts[1:] {
		i, err := strconv.Atoi(p)
		if err != nil {
			return nil, fmt.Errorf("%w: bad child index %q in %q", ErrInvalidScenario, p, ref)
		}
		child := n.Child(i)
		if child == nil {
			return nil, fmt.Errorf("%w: %q has no child %d", ErrInvalidScenario, ref, i)
		}
		n = child
	}
	return n, nil
}

// label names a node for output: its id, or its path from the nearest
// ancestor with an id.
func label(n *memdom.Node) string {
	if n == nil {
		return "-"
	}
	var idx []string
	for cur := n; cur != nil; {
		if cur.ID() != "" {
			return joinLabel(cur.ID(), idx)
		}
		parent, _ := cur.Parent().(*memdom.Node)
		if parent == nil {
			return joinLabel(cur.NodeName(), idx)
		}
		for i := 0; parent.Child(i) != nil; i++ {
			if parent.Child(i) == cur {
				idx = append([]string{strconv.Itoa(i)}, idx...)
				break
			}
		}
		cur = parent
	}
	return "-"
}

func joinLabel(root string, idx []string) string {
	if len(idx) == 0 {
		return root
	}
	return root + "/" + strings.Join(idx, "/")
}
