package components

// findInTree walks the list depth-first, visiting each node before its
// children and siblings in order. It returns the first node whose ID
// matches.
func findInTree(list []*Component, id string) *Component {
	for _, node := range list {
		if node.ID.String() == id {
			return node
		}
		if len(node.Children) > 0 {
			if found := findInTree(node.Children, id); found != nil {
				return found
			}
		}
	}
	return nil
}

// replaceInTree swaps the first node matching id for replacement, keeping
// its position among siblings. It reports whether a swap happened.
func replaceInTree(list []*Component, id string, replacement *Component) bool {
	for i, node := range list {
		if node.ID.String() == id {
			list[i] = replacement
			return true
		}
		if len(node.Children) > 0 {
			if replaceInTree(node.Children, id, replacement) {
				return true
			}
		}
	}
	return false
}

// removeFromTree splices out the first node matching id, dropping its whole
// subtree. Walk order matches findInTree.
func removeFromTree(list *[]*Component, id string) bool {
	nodes := *list
	for i, node := range nodes {
		if node.ID.String() == id {
			*list = append(nodes[:i], nodes[i+1:]...)
			return true
		}
		if len(node.Children) > 0 {
			if removeFromTree(&node.Children, id) {
				return true
			}
		}
	}
	return false
}

// collectByType gathers nodes of the given variant from the top level of
// the list. Listing by type intentionally does not descend into children;
// editor palettes work off root-level entries only.
func collectByType(list []*Component, t Type) []*Component {
	var out []*Component
	for _, node := range list {
		if node.Type == t {
			out = append(out, node)
		}
	}
	return out
}
