package tangential

import (
	"errors"
	"testing"

	"github.com/paulmach/orb"
	"github.com/tdewolff/test"
)

func TestStrategy(t *testing.T) {
	for _, strategy := range []Strategy{InnerToOuter, Spiral} {
		t.Run(strategy.String(), func(t *testing.T) {
			parsed, err := ParseStrategy(strategy.String())
			test.Error(t, err)
			test.T(t, parsed, strategy)
		})
	}
	s, err := ParseStrategy("INNER_TO_OUTER")
	test.Error(t, err)
	test.T(t, s, InnerToOuter)

	_, err = ParseStrategy("zigzag")
	test.That(t, errors.Is(err, ErrInvalidStrategy))

	opts := DefaultOptions()
	opts.Strategy = Strategy(9)
	_, err = newConnector(opts)
	test.That(t, errors.Is(err, ErrInvalidStrategy))
	test.String(t, Strategy(9).String(), "Strategy(9)")
	test.String(t, Origin{3, 1, OriginSpiral}.String(), "spiral#3@1")
}

func TestRingStations(t *testing.T) {
	positions := func(sts []station) []float64 {
		ps := []float64{}
		for _, st := range sts {
			ps = append(ps, st.pos)
		}
		return ps
	}

	test.T(t, positions(ringStations(10.0, 3.0, 0.0, 0.0, nil)), []float64{0, 3, 6, 9, 10})
	test.T(t, positions(ringStations(10.0, 3.0, 1.5, 0.0, nil)), []float64{0, 3, 6, 10})
	test.T(t, positions(ringStations(10.0, 3.0, 0.0, 1.5, nil)), []float64{0, 1.5, 4.5, 7.5, 10})
	test.T(t, positions(ringStations(10.0, 20.0, 0.0, 0.0, nil)), []float64{0, 10})

	sts := ringStations(10.0, 3.0, 1.0, 0.0, []float64{4.5, 6.5})
	test.T(t, positions(sts), []float64{0, 3, 4.5, 6.5, 9, 10})
	test.T(t, sts[2].splice, 0)
	test.T(t, sts[3].splice, 1)
	test.T(t, sts[1].splice, -1)

	// a fixed station coinciding with a regular one replaces it
	sts = ringStations(10.0, 3.0, 0.0, 0.0, []float64{3.0})
	test.T(t, positions(sts), []float64{0, 3, 6, 9, 10})
	test.T(t, sts[1].splice, 0)
}

func TestTravelRing(t *testing.T) {
	outer := &Node{Kind: OuterRing, Ring: orientRing(square(0, 0, 10), orb.CCW)}
	hole := &Node{Kind: HoleRing, Ring: orientRing(square(4, 4, 2), orb.CW)}
	orientation := func(pl *polyline) orb.Orientation {
		r := orb.Ring{}
		for _, p := range pl.coords {
			r = append(r, p.Orb())
		}
		return r.Orientation()
	}
	test.T(t, orientation(travelRing(outer)), orb.CCW)
	test.T(t, orientation(travelRing(hole)), orb.CCW)
}

func TestInnerToOuter(t *testing.T) {
	opts := DefaultOptions()
	opts.Offset = 2.0
	opts.StartingPoint = Point{0, 0}
	tr := buildTree(t, orb.Polygon{square(0, 0, 10)}, opts)
	conn, err := newConnector(opts)
	test.Error(t, err)

	ps, os := conn.Connect(tr, opts.StartingPoint)
	test.T(t, len(ps), len(os))
	test.That(t, ps[0].Equals(Point{0, 0}), ps[0])
	test.That(t, ps[len(ps)-1].Equals(Point{0, 0}), ps[len(ps)-1])
	// regular stations near a splice may be dropped
	test.That(t, maxGap(ps) <= opts.StitchDistance+opts.MinStitchDistance, "max gap", maxGap(ps))

	// every ring is traced exactly once
	laps := ringLaps(tr, ps, os)
	tr.Walk(func(n *Node, d int) bool {
		test.That(t, n.AlreadyRastered)
		test.T(t, laps[n.ID], 1, "laps of node", n.ID)
		return true
	})

	// every excursion into a child returns to where it left
	transfers := []Point{}
	for i, o := range os {
		if o.Kind == OriginTransfer {
			transfers = append(transfers, ps[i])
		}
	}
	test.T(t, len(transfers), 4)
	test.That(t, transfers[0].Equals(transfers[3]))
	test.That(t, transfers[1].Equals(transfers[2]))
}

func TestInnerToOuterSiblings(t *testing.T) {
	for _, avoid := range []bool{false, true} {
		opts := DefaultOptions()
		opts.AvoidSelfCrossing = avoid
		opts.OffsetByHalf = true
		tr := buildTree(t, dumbbell(1.0), opts)
		conn, err := newConnector(opts)
		test.Error(t, err)

		start := Point{24, 10}
		ps, os := conn.Connect(tr, start)
		test.That(t, ps[0].Equals(start))
		test.That(t, ps[len(ps)-1].Equals(start))

		visited := map[NodeID]bool{}
		for _, o := range os {
			visited[o.Node] = true
		}
		test.T(t, len(visited), tr.Len())
		test.T(t, os[0].Level, 0)

		laps := ringLaps(tr, ps, os)
		for id, n := range laps {
			test.T(t, n, 1, "laps of node", id)
		}
	}
}

func TestSpiral(t *testing.T) {
	opts := DefaultOptions()
	opts.Offset = 2.0
	opts.Strategy = Spiral
	tr := buildTree(t, orb.Polygon{square(0, 0, 10)}, opts)
	test.That(t, tr.PruneSpiral())
	conn, err := newConnector(opts)
	test.Error(t, err)

	ps, os := conn.Connect(tr, Point{0, 0})
	test.That(t, 0 < len(ps))
	test.T(t, len(ps), len(os))
	test.That(t, ps[0].Equals(Point{0, 0}))
	test.That(t, !ps[len(ps)-1].Equals(Point{0, 0}))

	// ends with a lap on the innermost ring
	chain := tr.chain()
	inner := chain[len(chain)-1]
	test.T(t, os[len(os)-1].Node, inner)
	test.T(t, os[len(os)-1].Kind, OriginRing)
	_, _, _, dist := newPolyline(tr.Node(inner).Ring).Project(ps[len(ps)-1])
	test.That(t, dist < 1e-9)

	// every ring of the chain contributes points
	levels := map[int]bool{}
	for _, o := range os {
		levels[o.Level] = true
	}
	test.T(t, len(levels), len(chain))
}

func TestSpiralAvoidSelfCrossing(t *testing.T) {
	var tts = []struct {
		name   string
		poly   orb.Polygon
		offset float64
	}{
		{"square", orb.Polygon{square(0, 0, 10)}, 2.0},
		{"square with hole", orb.Polygon{square(0, 0, 20), square(8, 8, 4)}, 2.0},
		{"L offset 1", lShape(), 1.0},
		{"L offset 2", lShape(), 2.0},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Offset = tt.offset
			opts.Strategy = Spiral
			opts.AvoidSelfCrossing = true
			tr := buildTree(t, tt.poly, opts)
			test.That(t, tr.PruneSpiral())
			chain := tr.chain()
			test.That(t, 1 < len(chain))

			conn, err := newConnector(opts)
			test.Error(t, err)
			ps, os := conn.Connect(tr, Point{0, 0})
			test.T(t, len(ps), len(os))
			test.T(t, crossings(ps), [][2]int{})
			test.That(t, ps[0].Equals(Point{0, 0}))

			// every ring is traced once and the path moves inward ring by ring
			laps := ringLaps(tr, ps, os)
			for i, id := range chain {
				test.T(t, laps[id], 1, "laps of node", id)
				test.That(t, tr.Node(id).AlreadyRastered)
				if i+1 < len(chain) {
					spirals := 0
					for _, o := range os {
						if o.Node == id && o.Kind == OriginSpiral {
							spirals++
						}
					}
					test.T(t, spirals, 1, "node", id)
				}
			}

			// ends on the innermost ring, not at the start
			inner := chain[len(chain)-1]
			test.T(t, os[len(os)-1].Node, inner)
			_, _, _, dist := travelRing(tr.Node(inner)).Project(ps[len(ps)-1])
			test.That(t, dist < 1e-9)
			test.That(t, !ps[len(ps)-1].Equals(ps[0]))
		})
	}
}

func TestClosestPair(t *testing.T) {
	a := newPolyline(square(0, 0, 10))
	b := newPolyline(square(2, 2, 6))

	// on parallel sides the closest points face each other
	sa, sb := closestPair(a, b, 5.0)
	test.Float(t, sa, 5.0)
	test.T(t, b.PointAt(sb), Point{5, 2})

	// from a corner the pair moves onto a side
	sa, sb = closestPair(a, b, 0.0)
	p, q := a.PointAt(sa), b.PointAt(sb)
	test.Float(t, p.Distance(q), 2.0)
	_, r, _, _ := a.Project(q)
	test.That(t, r.Equals(p))
}
