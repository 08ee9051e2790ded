package tangential

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// NodeID identifies a node within a Tree.
type NodeID int

// NoNode is the parent of the root and of holes that have not been attached yet.
const NoNode NodeID = -1

// NodeKind distinguishes rings offset inward from the polygon boundary from rings offset outward from a hole boundary.
type NodeKind int

// see NodeKind
const (
	OuterRing NodeKind = iota
	HoleRing
)

func (k NodeKind) String() string {
	switch k {
	case OuterRing:
		return "outer"
	case HoleRing:
		return "hole"
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is one ring at one offset depth. Its ring is set at construction and never modified afterwards, except for the winding normalization at the end of the build.
type Node struct {
	ID     NodeID
	Kind   NodeKind
	Ring   orb.Ring
	Parent NodeID

	// AlreadyRastered is set by a connector once the ring has been incorporated into the path.
	AlreadyRastered bool

	// Pending holds the transfer points carried from the children, used to choose where the children are spliced into this ring.
	Pending *transferQueue

	children []NodeID
	removed  bool
}

// Length returns the perimeter of the ring.
func (n *Node) Length() float64 {
	return planar.Length(n.Ring)
}

func (n *Node) String() string {
	return fmt.Sprintf("%s#%d (parent %d, %d points)", n.Kind, n.ID, n.Parent, len(n.Ring))
}

// Tree is the nested ring structure created by iterative offsetting. It owns all nodes, which refer to each other by ID only.
type Tree struct {
	nodes []*Node
	root  NodeID
}

func newTree() *Tree {
	return &Tree{root: NoNode}
}

// add creates a new node. The first outer ring added becomes the root.
func (t *Tree) add(kind NodeKind, ring orb.Ring, parent NodeID) NodeID {
	id := NodeID(len(t.nodes))
	t.nodes = append(t.nodes, &Node{
		ID:     id,
		Kind:   kind,
		Ring:   ring,
		Parent: NoNode,
	})
	if t.root == NoNode && kind == OuterRing && parent == NoNode {
		t.root = id
	}
	if parent != NoNode {
		t.attach(parent, id)
	}
	return id
}

// attach makes child a child of parent, detaching it from its previous parent if any.
func (t *Tree) attach(parent, child NodeID) {
	c := t.nodes[child]
	if c.Parent == parent {
		return
	} else if c.Parent != NoNode {
		t.detach(child)
	}
	c.Parent = parent
	t.nodes[parent].children = append(t.nodes[parent].children, child)
}

func (t *Tree) detach(child NodeID) {
	c := t.nodes[child]
	if c.Parent == NoNode {
		return
	}
	p := t.nodes[c.Parent]
	for i, id := range p.children {
		if id == child {
			p.children = append(p.children[:i:i], p.children[i+1:]...)
			break
		}
	}
	c.Parent = NoNode
}

// remove deletes a node and its descendants from the tree.
func (t *Tree) remove(id NodeID) {
	n := t.nodes[id]
	for len(n.children) != 0 {
		t.remove(n.children[len(n.children)-1])
	}
	t.detach(id)
	n.removed = true
	if t.root == id {
		t.root = NoNode
	}
}

// Root returns the root node, which holds the outer boundary of the polygon.
func (t *Tree) Root() *Node {
	if t.root == NoNode {
		return nil
	}
	return t.nodes[t.root]
}

// Node returns the node for the given ID, or nil if it doesn't exist or was removed.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) || t.nodes[id].removed {
		return nil
	}
	return t.nodes[id]
}

// Children returns the IDs of the children of a node in order of attachment.
func (t *Tree) Children(id NodeID) []NodeID {
	if n := t.Node(id); n != nil {
		return n.children
	}
	return nil
}

// Len returns the number of nodes in the tree.
func (t *Tree) Len() int {
	n := 0
	for _, node := range t.nodes {
		if !node.removed {
			n++
		}
	}
	return n
}

// Walk visits all nodes reachable from the root in pre-order together with their depth. Walking stops when fn returns false.
func (t *Tree) Walk(fn func(*Node, int) bool) {
	if t.root == NoNode {
		return
	}
	type item struct {
		id    NodeID
		depth int
	}
	stack := []item{{t.root, 0}}
	for 0 < len(stack) {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		n := t.nodes[cur.id]
		if !fn(n, cur.depth) {
			return
		}
		for i := len(n.children) - 1; 0 <= i; i-- {
			stack = append(stack, item{n.children[i], cur.depth + 1})
		}
	}
}

// Depth returns the number of levels below the root, ie. zero for a tree with only a root.
func (t *Tree) Depth() int {
	depth := -1
	t.Walk(func(_ *Node, d int) bool {
		if depth < d {
			depth = d
		}
		return true
	})
	return depth
}

// Leaves returns the nodes without children in pre-order.
func (t *Tree) Leaves() []*Node {
	leaves := []*Node{}
	t.Walk(func(n *Node, _ int) bool {
		if len(n.children) == 0 {
			leaves = append(leaves, n)
		}
		return true
	})
	return leaves
}

func (t *Tree) String() string {
	s := ""
	t.Walk(func(n *Node, d int) bool {
		for i := 0; i < d; i++ {
			s += "  "
		}
		s += n.String() + "\n"
		return true
	})
	return s
}
