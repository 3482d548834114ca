package dom

// Contains reports whether n is root or a descendant of root.
func Contains(root, n Node) bool {
	if root == nil {
		return false
	}
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur == root {
			return true
		}
	}
	return false
}

// Path returns the child indexes leading from root down to n.
// The path of root itself is empty. ok is false when n is not inside root.
func Path(root, n Node) (path []int, ok bool) {
	if !Contains(root, n) {
		return nil, false
	}
	for cur := n; cur != root; {
		parent := cur.Parent()
		idx := indexOf(parent.Children(), cur)
		if idx < 0 {
			return nil, false
		}
		path = append(path, idx)
		cur = parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path, true
}

// Closest returns the first candidate that contains n, or nil.
func Closest(n Node, candidates []Element) Element {
	for cur := n; cur != nil; cur = cur.Parent() {
		for _, c := range candidates {
			if Node(c) == cur {
				return c
			}
		}
	}
	return nil
}

func indexOf(nodes []Node, n Node) int {
	for i, c := range nodes {
		if c == n {
			return i
		}
	}
	return -1
}
