package tangential

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
)

// polyline is a closed ring parametrized by arc length. The coordinates include the closing point, so that segment i runs from coords[i] to coords[i+1] and dists[i] is the arc length at coords[i].
type polyline struct {
	coords []Point
	dists  []float64
}

func newPolyline(r orb.Ring) *polyline {
	coords := ringPoints(r)
	if 0 < len(coords) {
		coords = append(coords, coords[0])
	}
	dists := make([]float64, len(coords))
	for i := 1; i < len(coords); i++ {
		dists[i] = dists[i-1] + coords[i-1].Distance(coords[i])
	}
	return &polyline{coords, dists}
}

// Empty returns true if the polyline has no length.
func (p *polyline) Empty() bool {
	return len(p.coords) < 2 || p.Length() == 0.0
}

// Length returns the perimeter.
func (p *polyline) Length() float64 {
	if len(p.dists) == 0 {
		return 0.0
	}
	return p.dists[len(p.dists)-1]
}

// wrap maps an arc position into [0,Length).
func (p *polyline) wrap(s float64) float64 {
	length := p.Length()
	if length == 0.0 {
		return 0.0
	}
	s = math.Mod(s, length)
	if s < 0.0 {
		s += length
	}
	return s
}

// PointAt returns the point at arc position s, which wraps around the ring.
func (p *polyline) PointAt(s float64) Point {
	if len(p.coords) == 0 {
		return Point{}
	} else if p.Empty() {
		return p.coords[0]
	}
	s = p.wrap(s)
	i := sort.SearchFloat64s(p.dists, s)
	if i < len(p.dists) && p.dists[i] == s {
		return p.coords[i]
	}
	i-- // segment index, dists[i] < s < dists[i+1]
	if len(p.coords)-1 <= i {
		i = len(p.coords) - 2
	}
	d := p.dists[i+1] - p.dists[i]
	if d == 0.0 {
		return p.coords[i]
	}
	return p.coords[i].Interpolate(p.coords[i+1], (s-p.dists[i])/d)
}

// Project returns the arc position, point, segment index and distance of the point on the ring closest to q.
func (p *polyline) Project(q Point) (float64, Point, int, float64) {
	if len(p.coords) == 0 {
		return 0.0, Point{}, -1, math.Inf(1)
	} else if len(p.coords) == 1 {
		return 0.0, p.coords[0], 0, q.Distance(p.coords[0])
	}

	bestS, bestPoint, bestSeg, bestDist := 0.0, p.coords[0], 0, math.Inf(1)
	for i := 0; i+1 < len(p.coords); i++ {
		a, b := p.coords[i], p.coords[i+1]
		ab := b.Sub(a)
		t := 0.0
		if l2 := ab.Dot(ab); l2 != 0.0 {
			t = math.Max(0.0, math.Min(1.0, q.Sub(a).Dot(ab)/l2))
		}
		c := a.Interpolate(b, t)
		if d := q.Distance(c); d < bestDist {
			bestS = p.dists[i] + t*(p.dists[i+1]-p.dists[i])
			bestPoint, bestSeg, bestDist = c, i, d
		}
	}
	return p.wrap(bestS), bestPoint, bestSeg, bestDist
}

// vertices returns the arc positions of the vertices relative to s that lie strictly within (0,length).
func (p *polyline) vertices(s, length float64) []float64 {
	ps := []float64{}
	for i := 0; i+1 < len(p.dists); i++ {
		if pos := p.wrap(p.dists[i] - s); 0.0 < pos && pos < length {
			ps = append(ps, pos)
		}
	}
	return ps
}
