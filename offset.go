package tangential

import (
	"fmt"
	"math"
	"sort"
	"strings"

	clipper "github.com/ctessum/go.clipper"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// JoinStyle is the shape of the corners that are created when offsetting a ring, see https://shapely.readthedocs.io/en/stable/manual.html#shapely.geometry.JOIN_STYLE for examples.
type JoinStyle int

// see JoinStyle
const (
	RoundJoin JoinStyle = iota
	MiterJoin
	BevelJoin
)

func (j JoinStyle) String() string {
	switch j {
	case RoundJoin:
		return "round"
	case MiterJoin:
		return "miter"
	case BevelJoin:
		return "bevel"
	}
	return fmt.Sprintf("JoinStyle(%d)", int(j))
}

// ParseJoinStyle parses the names returned by JoinStyle.String.
func ParseJoinStyle(s string) (JoinStyle, error) {
	switch strings.ToLower(s) {
	case "round":
		return RoundJoin, nil
	case "miter", "mitre", "mitered":
		return MiterJoin, nil
	case "bevel", "beveled":
		return BevelJoin, nil
	}
	return 0, fmt.Errorf("%w: unknown join style %q", ErrInvalidOptions, s)
}

func (j JoinStyle) clipper() clipper.JoinType {
	switch j {
	case MiterJoin:
		return clipper.JtMiter
	case BevelJoin:
		return clipper.JtSquare
	}
	return clipper.JtRound
}

////////////////////////////////////////////////////////////////

// offsetter shrinks and grows rings on an integer grid with a resolution of 1/scale.
type offsetter struct {
	join       clipper.JoinType
	miterLimit float64
	resolution int
	tolerance  float64
	scale      float64
}

func newOffsetter(opts Options) *offsetter {
	return &offsetter{
		join:       opts.JoinStyle.clipper(),
		miterLimit: opts.MiterLimit,
		resolution: opts.Resolution,
		tolerance:  opts.Tolerance,
		scale:      opts.Precision,
	}
}

func (o *offsetter) toPath(r orb.Ring) clipper.Path {
	ps := ringPoints(r)
	path := make(clipper.Path, 0, len(ps))
	for _, p := range ps {
		path = append(path, &clipper.IntPoint{
			X: clipper.CInt(math.Round(p.X * o.scale)),
			Y: clipper.CInt(math.Round(p.Y * o.scale)),
		})
	}
	return path
}

func (o *offsetter) fromPath(path clipper.Path) orb.Ring {
	r := make(orb.Ring, 0, len(path)+1)
	for _, p := range path {
		r = append(r, orb.Point{float64(p.X) / o.scale, float64(p.Y) / o.scale})
	}
	if 0 < len(r) && r[0] != r[len(r)-1] {
		r = append(r, r[0])
	}
	return r
}

// simplify reduces the number of vertices within tolerance and validates the result.
func (o *offsetter) simplify(r orb.Ring) (orb.Ring, bool) {
	if 0.0 < o.tolerance {
		r = simplify.DouglasPeucker(o.tolerance).Ring(r.Clone())
	}
	return validRing(r)
}

// Offset returns the rings at perpendicular distance d from r. A positive distance shrinks the area enclosed by the ring, a negative distance grows it. The ring may split into several rings, or vanish when the distance exceeds its width everywhere.
func (o *offsetter) Offset(r orb.Ring, d float64) []orb.Ring {
	if len(r) < 4 {
		return nil
	}

	delta := -d * o.scale
	co := clipper.NewClipperOffset()
	co.MiterLimit = o.miterLimit
	if 0 < o.resolution {
		// maximum deviation of a chord of a round join with resolution segments per quarter circle
		co.ArcTolerance = math.Abs(delta) * (1.0 - math.Cos(math.Pi/float64(4*o.resolution)))
	}
	co.AddPath(o.toPath(r), o.join, clipper.EtClosedPolygon)
	tree := co.Execute2(delta)
	if tree == nil {
		return nil
	}

	// only outer contours, holes created by growing a ring are filled
	rings := []orb.Ring{}
	var collect func([]*clipper.PolyNode)
	collect = func(nodes []*clipper.PolyNode) {
		for _, node := range nodes {
			if ring, ok := o.simplify(o.fromPath(node.Contour())); ok {
				rings = append(rings, ring)
			}
			for _, hole := range node.Childs() {
				collect(hole.Childs())
			}
		}
	}
	collect(tree.Childs())
	sortRingsByArea(rings)
	return rings
}

// difference returns the area of outers minus the area of holes as a list of polygons, each an exterior with its direct holes. The polygons are ordered by decreasing area.
func (o *offsetter) difference(outers, holes []orb.Ring) []orb.Polygon {
	c := clipper.NewClipper(clipper.IoNone)
	for _, r := range outers {
		c.AddPath(o.toPath(orientRing(r, orb.CCW)), clipper.PtSubject, true)
	}
	for _, r := range holes {
		c.AddPath(o.toPath(orientRing(r, orb.CCW)), clipper.PtClip, true)
	}
	tree, ok := c.Execute2(clipper.CtDifference, clipper.PftNonZero, clipper.PftNonZero)
	if !ok || tree == nil {
		return nil
	}

	polys := []orb.Polygon{}
	var collect func([]*clipper.PolyNode)
	collect = func(nodes []*clipper.PolyNode) {
		for _, node := range nodes {
			poly := orb.Polygon{o.fromPath(node.Contour())}
			for _, hole := range node.Childs() {
				poly = append(poly, o.fromPath(hole.Contour()))
				collect(hole.Childs())
			}
			polys = append(polys, poly)
		}
	}
	collect(tree.Childs())
	sort.SliceStable(polys, func(i, j int) bool {
		return polygonArea(polys[i]) > polygonArea(polys[j])
	})
	return polys
}

// ringArea returns the unsigned area of a ring.
func ringArea(r orb.Ring) float64 {
	return math.Abs(planar.Area(r))
}

// polygonArea returns the unsigned area of a polygon minus its holes.
func polygonArea(p orb.Polygon) float64 {
	if len(p) == 0 {
		return 0.0
	}
	a := ringArea(p[0])
	for _, hole := range p[1:] {
		a -= ringArea(hole)
	}
	return a
}

func sortRingsByArea(rs []orb.Ring) {
	sort.SliceStable(rs, func(i, j int) bool {
		return ringArea(rs[i]) > ringArea(rs[j])
	})
}
