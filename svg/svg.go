// Package svg writes a preview of a fill as a scalable vector graphics (SVG) image.
package svg

// Options configures the preview.
type Options struct {
	// Compression is the gzip level, zero writes an uncompressed file.
	Compression int

	// Precision is the number of decimals of coordinates.
	Precision int

	// Margin is added around the bounds of the fill.
	Margin float64

	// StrokeWidth is the width of the stitch path, rings are drawn at half width.
	StrokeWidth float64

	RingColor string
	PathColor string

	// Rings draws the rings of the tree underneath the path.
	Rings bool

	// Points marks every point of the path.
	Points bool
}

// DefaultOptions are the options used when nil is passed.
var DefaultOptions = Options{
	Precision:   3,
	Margin:      1.0,
	StrokeWidth: 0.2,
	RingColor:   "#bbbbbb",
	PathColor:   "#c0392b",
	Rings:       true,
}
