package tangential

// PruneSpiral prepares the tree to be connected by a single spiral, which requires every node to have at most one child. A node may have more children when only one of them has children of its own; the childless siblings are removed. When all children are leaves, the one with the longest ring is kept, ties going to the node created first. It returns false if a node has more than one child with children, in which case the tree cannot be connected by one spiral and may already be partially pruned.
func (t *Tree) PruneSpiral() bool {
	id := t.root
	for id != NoNode {
		children := t.Children(id)
		if len(children) == 0 {
			return true
		} else if len(children) == 1 {
			id = children[0]
			continue
		}

		next, parents := NoNode, 0
		for _, child := range children {
			if 0 < len(t.Children(child)) {
				next = child
				parents++
			}
		}
		if 1 < parents {
			Logger().Debug("tree cannot be pruned to a spiral", "node", id, "branches", parents)
			return false
		} else if parents == 0 {
			longest := 0.0
			for _, child := range children {
				if length := t.nodes[child].Length(); next == NoNode || longest < length || length == longest && child < next {
					next, longest = child, length
				}
			}
		}

		removed := []NodeID{}
		for _, child := range children {
			if child != next {
				removed = append(removed, child)
			}
		}
		for _, child := range removed {
			t.remove(child)
		}
		id = next
	}
	return true
}

// chain returns the nodes from the root to the innermost node, following the first child at every level.
func (t *Tree) chain() []NodeID {
	ids := []NodeID{}
	for id := t.root; id != NoNode; {
		ids = append(ids, id)
		if children := t.Children(id); 0 < len(children) {
			id = children[0]
		} else {
			id = NoNode
		}
	}
	return ids
}
