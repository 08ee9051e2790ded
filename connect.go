package tangential

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Strategy selects how the rings of the tree are connected into a single path.
type Strategy int

// see Strategy
const (
	// InnerToOuter visits a ring, makes an excursion into every child ring and returns, ending at the starting point.
	InnerToOuter Strategy = iota
	// Spiral blends every ring into the next inner ring, ending at the innermost ring.
	Spiral
)

func (s Strategy) String() string {
	switch s {
	case InnerToOuter:
		return "inner-to-outer"
	case Spiral:
		return "spiral"
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// ParseStrategy parses the names returned by Strategy.String.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "-")) {
	case "inner-to-outer", "innertoouter":
		return InnerToOuter, nil
	case "spiral":
		return Spiral, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidStrategy, s)
}

// OriginKind tells why a point was placed.
type OriginKind int

// see OriginKind
const (
	OriginRing     OriginKind = iota // on a ring
	OriginTransfer                   // connection between a ring and a child ring
	OriginSpiral                     // blend between a ring and the next inner ring
	OriginResample                   // inserted to respect the maximum stitch distance
)

func (k OriginKind) String() string {
	switch k {
	case OriginRing:
		return "ring"
	case OriginTransfer:
		return "transfer"
	case OriginSpiral:
		return "spiral"
	case OriginResample:
		return "resample"
	}
	return fmt.Sprintf("OriginKind(%d)", int(k))
}

// Origin tags a path point with the ring and offset level it came from.
type Origin struct {
	Node  NodeID
	Level int
	Kind  OriginKind
}

func (o Origin) String() string {
	return fmt.Sprintf("%s#%d@%d", o.Kind, o.Node, o.Level)
}

// connector linearizes a tree into a single path.
type connector interface {
	Connect(*Tree, Point) ([]Point, []Origin)
}

func newConnector(opts Options) (connector, error) {
	switch opts.Strategy {
	case InnerToOuter:
		return &innerToOuter{
			spacing:           opts.StitchDistance,
			minSpacing:        opts.MinStitchDistance,
			offsetByHalf:      opts.OffsetByHalf,
			avoidSelfCrossing: opts.AvoidSelfCrossing,
			capacity:          transferPointsPerChild,
		}, nil
	case Spiral:
		return &spiral{
			spacing:           opts.StitchDistance,
			minSpacing:        opts.MinStitchDistance,
			offsetByHalf:      opts.OffsetByHalf,
			avoidSelfCrossing: opts.AvoidSelfCrossing,
		}, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrInvalidStrategy, opts.Strategy)
}

// transferPointsPerChild bounds the number of transfer point candidates kept per child ring.
const transferPointsPerChild = 8

////////////////////////////////////////////////////////////////

type pathBuilder struct {
	points  []Point
	origins []Origin
}

func (b *pathBuilder) add(p Point, o Origin) {
	b.points = append(b.points, p)
	b.origins = append(b.origins, o)
}

// addSpaced adds the point unless it is closer than minSpacing to the previous point.
func (b *pathBuilder) addSpaced(p Point, o Origin, minSpacing float64) {
	if n := len(b.points); 0 < n && b.points[n-1].Distance(p) < math.Max(minSpacing, Epsilon) {
		return
	}
	b.add(p, o)
}

// travelRing returns the ring of the node in the direction of travel. Hole rings have the opposite winding of outer rings and are reversed, so that all rings run in the same rotational sense.
func travelRing(n *Node) *polyline {
	if n.Kind == HoleRing {
		return newPolyline(reversedRing(n.Ring))
	}
	return newPolyline(n.Ring)
}

type station struct {
	pos    float64
	fixed  bool
	splice int
}

// ringStations returns the arc positions, relative to the start, at which points are placed on a walk around a ring. The start and end and the fixed positions are always kept and refer to their index in fixed by splice (or -1). Regular stations are placed every spacing starting at phase, and are dropped when closer than minSpacing to a neighbour.
func ringStations(length, spacing, minSpacing, phase float64, fixed []float64) []station {
	sts := make([]station, 0, len(fixed)+2)
	sts = append(sts, station{0.0, true, -1})
	for i, pos := range fixed {
		sts = append(sts, station{pos, true, i})
	}
	if 0.0 < spacing {
		for pos := phase; pos < length; pos += spacing {
			if 0.0 < pos {
				sts = append(sts, station{pos, false, -1})
			}
		}
	}
	sts = append(sts, station{length, true, -1})
	sort.SliceStable(sts, func(i, j int) bool {
		if sts[i].pos != sts[j].pos {
			return sts[i].pos < sts[j].pos
		}
		return sts[i].fixed && !sts[j].fixed
	})

	// position of the next fixed station for every station
	next := make([]float64, len(sts))
	nextFixed := length
	for i := len(sts) - 1; 0 <= i; i-- {
		next[i] = nextFixed
		if sts[i].fixed {
			nextFixed = sts[i].pos
		}
	}

	minSpacing = math.Max(minSpacing, Epsilon)
	kept := sts[:0]
	for i, st := range sts {
		if !st.fixed {
			prev := kept[len(kept)-1].pos
			if st.pos-prev < minSpacing || next[i]-st.pos < minSpacing {
				continue
			}
		}
		kept = append(kept, st)
	}
	return kept
}

////////////////////////////////////////////////////////////////

// innerToOuter connects a ring to each of its children by an excursion that leaves the ring, traces the child (and recursively its children) and returns to the same point on the ring.
type innerToOuter struct {
	spacing, minSpacing float64
	offsetByHalf        bool
	avoidSelfCrossing   bool
	capacity            int
}

func (c *innerToOuter) Connect(t *Tree, start Point) ([]Point, []Origin) {
	b := &pathBuilder{}
	if root := t.Root(); root != nil {
		c.node(t, b, root.ID, start, 0)
	}
	Logger().Debug("connected rings from inner to outer", "points", len(b.points))
	return b.points, b.origins
}

func (c *innerToOuter) phase(level int) float64 {
	if c.offsetByHalf && level%2 == 1 {
		return c.spacing / 2.0
	}
	return 0.0
}

func (c *innerToOuter) node(t *Tree, b *pathBuilder, id NodeID, entry Point, level int) {
	n := t.nodes[id]
	n.AlreadyRastered = true
	pl := travelRing(n)
	if pl.Empty() {
		return
	}

	children := []NodeID{}
	for _, child := range n.children {
		if !t.nodes[child].AlreadyRastered {
			children = append(children, child)
		}
	}

	s0, _, _, _ := pl.Project(entry)
	length := pl.Length()
	splices := c.splices(t, n, pl, children)
	fixed := make([]float64, len(splices))
	for i := range splices {
		fixed[i] = pl.wrap(splices[i].parentPos - s0)
	}

	ringOrigin := Origin{id, level, OriginRing}
	transferOrigin := Origin{id, level, OriginTransfer}
	for _, st := range ringStations(length, c.spacing, c.minSpacing, c.phase(level), fixed) {
		if st.splice == -1 {
			b.add(pl.PointAt(s0+st.pos), ringOrigin)
			continue
		}

		sp := splices[st.splice]
		if t.nodes[sp.child].AlreadyRastered {
			continue // reached through an earlier excursion
		}
		b.add(sp.point, transferOrigin)
		c.node(t, b, sp.child, sp.childPoint, level+1)
		b.add(sp.point, transferOrigin)
	}
}

// splices returns for each child the transfer point on the parent ring where the child is connected. Candidates from all children are collected in the node's bounded transfer queue, after which each child takes its best remaining candidate. To avoid self crossings a parent segment is used by at most one child.
func (c *innerToOuter) splices(t *Tree, n *Node, pl *polyline, children []NodeID) []transferPoint {
	if len(children) == 0 {
		return nil
	}

	n.Pending = newTransferQueue(c.capacity * len(children))
	for _, child := range children {
		for _, q := range c.candidates(t.nodes[child]) {
			s, p, seg, dist := pl.Project(q)
			n.Pending.Push(transferPoint{
				child:      child,
				parentPos:  s,
				point:      p,
				childPoint: q,
				seg:        seg,
				dist:       dist,
			})
		}
	}

	chosen := map[NodeID]transferPoint{}
	used := map[int]bool{}
	for _, tp := range n.Pending.Sorted() {
		if _, ok := chosen[tp.child]; ok {
			continue
		} else if c.avoidSelfCrossing && used[tp.seg] {
			continue
		}
		chosen[tp.child] = tp
		used[tp.seg] = true
	}

	splices := make([]transferPoint, 0, len(children))
	for _, child := range children {
		tp, ok := chosen[child]
		if !ok {
			// all candidates were evicted or are on used segments
			tp = c.nearest(pl, child, c.candidates(t.nodes[child]))
		}
		splices = append(splices, tp)
	}
	return splices
}

// candidates returns the vertices of the child ring and points every stitch distance along it.
func (c *innerToOuter) candidates(child *Node) []Point {
	qs := ringPoints(child.Ring)
	pl := newPolyline(child.Ring)
	if length := pl.Length(); 0.0 < c.spacing && 0.0 < length {
		for s := c.spacing; s < length; s += c.spacing {
			qs = append(qs, pl.PointAt(s))
		}
	}
	return qs
}

func (c *innerToOuter) nearest(pl *polyline, child NodeID, qs []Point) transferPoint {
	best := transferPoint{child: child, dist: math.Inf(1)}
	for _, q := range qs {
		if s, p, seg, dist := pl.Project(q); dist < best.dist {
			best = transferPoint{
				child:      child,
				parentPos:  s,
				point:      p,
				childPoint: q,
				seg:        seg,
				dist:       dist,
			}
		}
	}
	return best
}

////////////////////////////////////////////////////////////////

// spiral connects a chain of rings by one continuous inward spiral. Every lap blends a ring into the next inner ring, pairing each point with its closest point on the inner ring. To avoid self crossings, every lap instead follows its ring exactly and moves to the next ring along a segment between two mutually closest points, which crosses neither ring.
type spiral struct {
	spacing, minSpacing float64
	offsetByHalf        bool
	avoidSelfCrossing   bool
}

func (c *spiral) Connect(t *Tree, start Point) ([]Point, []Origin) {
	chain := t.chain()
	if len(chain) == 0 {
		return nil, nil
	}

	b := &pathBuilder{}
	pl := travelRing(t.nodes[chain[0]])
	s, _, _, _ := pl.Project(start)
	for i, id := range chain {
		t.nodes[id].AlreadyRastered = true
		if i+1 == len(chain) {
			// last lap on the innermost ring
			origin := Origin{id, i, OriginRing}
			if c.avoidSelfCrossing {
				length := pl.Length()
				c.trace(b, pl, s, length-math.Min(length/2.0, math.Max(c.minSpacing, Epsilon)), i, origin)
				break
			}
			for _, st := range ringStations(pl.Length(), c.spacing, c.minSpacing, c.phase(i), nil) {
				b.addSpaced(pl.PointAt(s+st.pos), origin, c.minSpacing)
			}
			break
		}

		next := travelRing(t.nodes[chain[i+1]])
		if c.avoidSelfCrossing {
			s = c.step(b, pl, next, s, id, i)
		} else {
			s = c.blend(b, pl, next, s, id, i)
		}
		pl = next
	}
	Logger().Debug("connected rings by spiral", "rings", len(chain), "points", len(b.points))
	return b.points, b.origins
}

func (c *spiral) phase(level int) float64 {
	if c.offsetByHalf && level%2 == 1 {
		return c.spacing / 2.0
	}
	return 0.0
}

// blend adds one lap that starts at arc position s on pl and ends on next, and returns the arc position on next where it ends.
func (c *spiral) blend(b *pathBuilder, pl, next *polyline, s float64, id NodeID, level int) float64 {
	length := pl.Length()
	steps := 3
	if 0.0 < c.spacing {
		steps = max(steps, int(math.Ceil(length/c.spacing)))
	}
	phase := 0.0
	if c.offsetByHalf && level%2 == 1 {
		phase = 0.5
	}

	origin := Origin{id, level, OriginSpiral}
	for k := 0; k < steps; k++ {
		f := (float64(k) + phase) / float64(steps)
		p := pl.PointAt(s + f*length)
		_, q, _, _ := next.Project(p)
		b.addSpaced(p.Interpolate(q, f), origin, c.minSpacing)
	}
	sNext, _, _, _ := next.Project(pl.PointAt(s))
	return sNext
}

// step adds the points of pl from arc position s up to where the path moves to next, and returns the arc position on next where it arrives. The ring is left about one stitch before s.
func (c *spiral) step(b *pathBuilder, pl, next *polyline, s float64, id NodeID, level int) float64 {
	length := pl.Length()
	back := math.Max(math.Max(c.spacing, c.minSpacing), Epsilon)
	for w := back; w < length/2.0; w *= 2.0 {
		sa, sb := closestPair(pl, next, s-w)
		if lap := pl.wrap(sa - s); length/2.0 <= lap {
			c.trace(b, pl, s, lap, level, Origin{id, level, OriginRing})
			b.origins[len(b.origins)-1].Kind = OriginSpiral
			return sb
		}
	}

	// the ring is too short to search for a pair
	lap := length - math.Min(back, length/2.0)
	c.trace(b, pl, s, lap, level, Origin{id, level, OriginRing})
	b.origins[len(b.origins)-1].Kind = OriginSpiral
	sb, _, _, _ := next.Project(pl.PointAt(s + lap))
	return sb
}

// trace adds the points of pl from arc position s over the given length. All vertices are kept so that the path follows the ring exactly.
func (c *spiral) trace(b *pathBuilder, pl *polyline, s, length float64, level int, o Origin) {
	for _, st := range ringStations(length, c.spacing, c.minSpacing, c.phase(level), pl.vertices(s, length)) {
		b.addSpaced(pl.PointAt(s+st.pos), o, 0.0)
	}
}

// closestPair returns arc positions on a and b of two points that are each other's closest point on the other ring, starting the search at arc position s on a. The segment between such points crosses neither ring. The search stops after a few iterations, in which case only the point on b is closest to the point on a.
func closestPair(a, b *polyline, s float64) (float64, float64) {
	p := a.PointAt(s)
	sb, q, _, _ := b.Project(p)
	for i := 0; i < 4; i++ {
		sa, r, _, _ := a.Project(q)
		if r.Equals(p) {
			return sa, sb
		}
		p = r
		s = sa
		sb, q, _, _ = b.Project(p)
	}
	return s, sb
}
