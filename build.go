package tangential

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// frontier is a polygon node together with its holes that is still awaiting its next inward offset.
type frontier struct {
	poly  NodeID
	holes []NodeID
}

// BuildTree offsets the polygon inward repeatedly until nothing remains, and returns the tree of rings. The children of an outer ring are the rings produced by offsetting it. Holes are offset outward and form their own sub-tree, which is attached to the ring that contains them once they merge with it or once the area between them vanishes. An error is returned when the offsetting options are invalid.
func BuildTree(poly orb.Polygon, opts Options) (*Tree, error) {
	if err := opts.validateOffset(); err != nil {
		return nil, err
	}

	t := newTree()
	if len(poly) == 0 {
		return t, nil
	}

	o := newOffsetter(opts)
	offset := opts.Offset
	threshold := offset * offset / 10.0

	exterior, ok := o.simplify(orientRing(poly[0], orb.CW))
	if !ok {
		Logger().Warn("polygon exterior is degenerate")
		return t, nil
	}
	root := t.add(OuterRing, exterior, NoNode)
	holes := []NodeID{}
	for i, hole := range poly[1:] {
		if hole, ok := o.simplify(orientRing(hole, orb.CCW)); ok {
			holes = append(holes, t.add(HoleRing, hole, NoNode))
		} else {
			Logger().Warn("dropped degenerate hole", "index", i)
		}
	}

	active := []frontier{{root, holes}}
	for 0 < len(active) {
		cur := active[len(active)-1]
		active = active[:len(active)-1]

		outers := o.Offset(t.nodes[cur.poly].Ring, offset)
		inners := []orb.Ring{}
		for _, hole := range cur.holes {
			// holes grow into the filled area
			inners = append(inners, o.Offset(t.nodes[hole].Ring, -offset)...)
		}

		if 0 < len(outers) {
			polys := o.difference(outers, inners)
			area := 0.0
			for _, p := range polys {
				area += polygonArea(p)
			}

			if threshold < area {
				for _, p := range polys {
					if polygonArea(p) < threshold {
						continue
					}
					exterior, ok := o.simplify(p[0])
					if !ok {
						continue
					}

					node := t.add(OuterRing, exterior, cur.poly)
					nodeHoles := []NodeID{}
					for _, hole := range p[1:] {
						hole, ok := o.simplify(hole)
						if !ok {
							continue
						}
						holeNode := t.add(HoleRing, hole, NoNode)
						for _, prev := range cur.holes {
							if t.nodes[prev].Parent == NoNode && ringContainsRing(hole, t.nodes[prev].Ring) {
								t.attach(holeNode, prev)
							}
						}
						nodeHoles = append(nodeHoles, holeNode)
					}
					active = append(active, frontier{node, nodeHoles})
				}
			}
		}

		// holes that are not contained in any of the new holes have merged with the outer boundary
		for _, prev := range cur.holes {
			if t.nodes[prev].Parent == NoNode {
				t.attach(cur.poly, prev)
			}
		}
	}

	t.normalize(opts.Clockwise)
	Logger().Debug("built raster tree", "nodes", t.Len(), "depth", t.Depth(), "holes", len(holes))
	return t, nil
}

// normalize orients the rings of outer nodes clockwise (or counter clockwise) and the rings of hole nodes the opposite way.
func (t *Tree) normalize(clockwise bool) {
	outer := outerOrientation(clockwise)
	for _, n := range t.nodes {
		if n.Kind == OuterRing {
			n.Ring = orientRing(n.Ring, outer)
		} else {
			n.Ring = orientRing(n.Ring, -outer)
		}
	}
}

// ringContainsRing returns true if all points of b are inside or on a.
func ringContainsRing(a, b orb.Ring) bool {
	if len(b) == 0 {
		return false
	}
	for _, p := range b {
		if !planar.RingContains(a, p) {
			return false
		}
	}
	return true
}
