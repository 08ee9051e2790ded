package svg

import (
	"io"

	"github.com/paulmach/orb"
	"github.com/tdewolff/tangential"
)

// Writer writes the rings and the stitch path of a fill as an SVG image.
func Writer(w io.Writer, res *tangential.Result, opts *Options) error {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}

	bounds := Bounds(res)
	r := New(w, bounds, opts)
	if opts.Rings && res.Tree != nil {
		r.AddClass("ring")
		res.Tree.Walk(func(n *tangential.Node, _ int) bool {
			r.DrawRing(n.Ring, opts.RingColor, opts.StrokeWidth/2.0)
			return true
		})
		r.RemoveClass("ring")
	}
	r.AddClass("stitches")
	r.DrawPath(res.Points, opts.PathColor, opts.StrokeWidth)
	if opts.Points {
		r.DrawPoints(res.Points, opts.PathColor, opts.StrokeWidth)
	}
	r.RemoveClass("stitches")
	return r.Close()
}

// Bounds returns the bounding box of the rings and the path of a fill.
func Bounds(res *tangential.Result) orb.Bound {
	ls := res.LineString()
	bounds := ls.Bound()
	empty := len(ls) == 0
	if res.Tree != nil {
		res.Tree.Walk(func(n *tangential.Node, _ int) bool {
			if len(n.Ring) == 0 {
				return true
			} else if empty {
				bounds, empty = n.Ring.Bound(), false
			} else {
				bounds = bounds.Union(n.Ring.Bound())
			}
			return true
		})
	}
	return bounds
}
