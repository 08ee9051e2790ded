package svg

import (
	"compress/gzip"
	"fmt"
	"io"
	"strings"

	"github.com/paulmach/orb"
	"github.com/tdewolff/tangential"
)

// SVG is a scalable vector graphics renderer of rings and stitch paths.
type SVG struct {
	w       io.Writer
	zw      *gzip.Writer
	bounds  orb.Bound
	opts    *Options
	classes []string
}

// New returns a renderer whose view box covers bounds. Coordinates are written as is, with the Y-axis pointing down.
func New(w io.Writer, bounds orb.Bound, opts *Options) *SVG {
	if opts == nil {
		defaultOptions := DefaultOptions
		opts = &defaultOptions
	}

	var zw *gzip.Writer
	if opts.Compression != 0 {
		if opts.Compression < gzip.HuffmanOnly || gzip.BestCompression < opts.Compression {
			opts.Compression = -1
		}
		zw, _ = gzip.NewWriterLevel(w, opts.Compression)
		w = zw
	}

	bounds = bounds.Pad(opts.Margin)
	x, y := dec{bounds.Min[0], opts.Precision}, dec{bounds.Min[1], opts.Precision}
	width, height := dec{bounds.Max[0] - bounds.Min[0], opts.Precision}, dec{bounds.Max[1] - bounds.Min[1], opts.Precision}
	fmt.Fprintf(w, `<svg version="1.1" width="%vmm" height="%vmm" viewBox="%v %v %v %v" xmlns="http://www.w3.org/2000/svg">`, width, height, x, y, width, height)
	return &SVG{
		w:      w,
		zw:     zw,
		bounds: bounds,
		opts:   opts,
	}
}

// Close finishes and closes the SVG.
func (r *SVG) Close() error {
	_, err := fmt.Fprintf(r.w, "</svg>")
	if r.zw != nil {
		if errClose := r.zw.Close(); err == nil {
			err = errClose // does not close underlying writer
		}
	}
	return err
}

// AddClass adds a class to the class list of drawn objects.
func (r *SVG) AddClass(class string) {
	if class == "" {
		return
	}
	for _, c := range r.classes {
		if c == class {
			return
		}
	}
	r.classes = append(r.classes, class)
}

// RemoveClass removes a class from the class list.
func (r *SVG) RemoveClass(class string) {
	for i, c := range r.classes {
		if c == class {
			r.classes = append(r.classes[:i], r.classes[i+1:]...)
			return
		}
	}
}

func (r *SVG) writeClasses() {
	if len(r.classes) != 0 {
		fmt.Fprintf(r.w, ` class="%s"`, strings.Join(r.classes, " "))
	}
}

func (r *SVG) writePoints(ps []tangential.Point, closed bool) {
	for i, p := range ps {
		if i == 0 {
			fmt.Fprintf(r.w, "M%v %v", dec{p.X, r.opts.Precision}, dec{p.Y, r.opts.Precision})
		} else {
			fmt.Fprintf(r.w, "L%v %v", dec{p.X, r.opts.Precision}, dec{p.Y, r.opts.Precision})
		}
	}
	if closed {
		fmt.Fprintf(r.w, "z")
	}
}

// DrawRing draws a closed ring outline.
func (r *SVG) DrawRing(ring orb.Ring, color string, width float64) {
	ps := make([]tangential.Point, 0, len(ring))
	for i, p := range ring {
		if i+1 == len(ring) && ring.Closed() {
			break
		}
		ps = append(ps, tangential.PointFromOrb(p))
	}
	if len(ps) < 2 {
		return
	}
	fmt.Fprintf(r.w, `<path d="`)
	r.writePoints(ps, true)
	fmt.Fprintf(r.w, `" fill="none" stroke="%s" stroke-width="%v"`, color, dec{width, r.opts.Precision})
	r.writeClasses()
	fmt.Fprintf(r.w, `/>`)
}

// DrawPath draws an open polyline.
func (r *SVG) DrawPath(ps []tangential.Point, color string, width float64) {
	if len(ps) < 2 {
		return
	}
	fmt.Fprintf(r.w, `<path d="`)
	r.writePoints(ps, false)
	fmt.Fprintf(r.w, `" fill="none" stroke="%s" stroke-width="%v" stroke-linejoin="round"`, color, dec{width, r.opts.Precision})
	r.writeClasses()
	fmt.Fprintf(r.w, `/>`)
}

// DrawPoints draws a dot at every point.
func (r *SVG) DrawPoints(ps []tangential.Point, color string, radius float64) {
	for _, p := range ps {
		fmt.Fprintf(r.w, `<circle cx="%v" cy="%v" r="%v" fill="%s"`, dec{p.X, r.opts.Precision}, dec{p.Y, r.opts.Precision}, dec{radius, r.opts.Precision}, color)
		r.writeClasses()
		fmt.Fprintf(r.w, `/>`)
	}
}
