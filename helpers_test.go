package tangential

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func buildTree(t *testing.T, poly orb.Polygon, opts Options) *Tree {
	t.Helper()
	tr, err := BuildTree(poly, opts)
	test.Error(t, err)
	return tr
}

// square returns the closed ring of an axis aligned square, counter clockwise in a Y-up coordinate system.
func square(x, y, size float64) orb.Ring {
	return orb.Ring{{x, y}, {x + size, y}, {x + size, y + size}, {x, y + size}, {x, y}}
}

func maxGap(ps []Point) float64 {
	d := 0.0
	for i := 1; i < len(ps); i++ {
		d = max(d, ps[i-1].Distance(ps[i]))
	}
	return d
}

// dumbbell returns two squares of size 10 joined by a bridge of the given width.
func dumbbell(width float64) orb.Polygon {
	y0, y1 := 5.0-width/2.0, 5.0+width/2.0
	return orb.Polygon{{{0, 0}, {10, 0}, {10, y0}, {14, y0}, {14, 0}, {24, 0}, {24, 10}, {14, 10}, {14, y1}, {10, y1}, {10, 10}, {0, 10}, {0, 0}}}
}

// lShape returns an L-shaped polygon with arms of width 6.
func lShape() orb.Polygon {
	return orb.Polygon{{{0, 0}, {20, 0}, {20, 6}, {6, 6}, {6, 20}, {0, 20}, {0, 0}}}
}

// crossings returns the index pairs of non-adjacent path segments that cross each other. Segments that only touch do not count.
func crossings(ps []Point) [][2]int {
	side := func(a, b, p Point) int {
		if d := b.Sub(a).PerpDot(p.Sub(a)); 1e-9 < d {
			return 1
		} else if d < -1e-9 {
			return -1
		}
		return 0
	}

	cs := [][2]int{}
	for i := 0; i+1 < len(ps); i++ {
		for j := i + 2; j+1 < len(ps); j++ {
			a, b, c, d := ps[i], ps[i+1], ps[j], ps[j+1]
			if side(a, b, c)*side(a, b, d) == -1 && side(c, d, a)*side(c, d, b) == -1 {
				cs = append(cs, [2]int{i, j})
			}
		}
	}
	return cs
}

// ringLaps returns for every node the number of times the ring points placed on it go around its ring.
func ringLaps(tr *Tree, ps []Point, os []Origin) map[NodeID]int {
	points := map[NodeID][]Point{}
	for i, o := range os {
		if o.Kind == OriginRing {
			points[o.Node] = append(points[o.Node], ps[i])
		}
	}

	laps := map[NodeID]int{}
	for id, qs := range points {
		pl := travelRing(tr.Node(id))
		s0, _, _, _ := pl.Project(qs[0])
		prev, n := 0.0, 0
		for _, q := range qs[1:] {
			if q.Equals(qs[0]) {
				n++ // closed
				prev = 0.0
				continue
			}
			s, _, _, _ := pl.Project(q)
			pos := pl.wrap(s - s0)
			if pos <= prev {
				n++ // passed the start
			}
			prev = pos
		}
		if 0.0 < prev {
			n++ // open lap
		}
		laps[id] = n
	}
	return laps
}
