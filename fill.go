package tangential

import (
	"errors"
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

var (
	// ErrPrecondition is returned when the spiral strategy is requested for a polygon with more than one hole.
	ErrPrecondition = errors.New("tangential: precondition violated")

	// ErrSpiralInfeasible is returned when the tree of rings cannot be reduced to a single chain.
	ErrSpiralInfeasible = errors.New("tangential: spiral infeasible")

	// ErrInvalidStrategy is returned for an unknown strategy.
	ErrInvalidStrategy = errors.New("tangential: invalid strategy")

	// ErrInvalidOptions is returned when an option is out of range.
	ErrInvalidOptions = errors.New("tangential: invalid options")
)

// Options configures the fill.
type Options struct {
	// Offset is the distance between successive rings. Default: 1.
	Offset float64

	// JoinStyle is the corner shape of offset rings. Default: RoundJoin.
	JoinStyle JoinStyle

	// MiterLimit limits the length of mitered corners as a multiple of Offset. Only used with MiterJoin. Default: 10.
	MiterLimit float64

	// Resolution is the number of segments per quarter circle of round corners. Default: 5.
	Resolution int

	// Tolerance is the maximum deviation when simplifying rings, zero disables simplification. Default: 0.01.
	Tolerance float64

	// Precision is the number of grid units per unit length used for offsetting, ie. coordinates are rounded to 1/Precision. Default: 1000.
	Precision float64

	// StitchDistance is the maximum distance between consecutive path points. Default: 2.5.
	StitchDistance float64

	// MinStitchDistance is the minimum distance between regular points placed along a ring. Default: 0.5.
	MinStitchDistance float64

	// OffsetByHalf shifts the points of every other ring by half the stitch distance.
	OffsetByHalf bool

	// Strategy selects how rings are connected. Default: InnerToOuter.
	Strategy Strategy

	// StartingPoint is projected onto the outer boundary where the path starts.
	StartingPoint Point

	// AvoidSelfCrossing prevents two children from being spliced into the same segment of their parent ring. With the spiral strategy, rings are followed exactly and the path moves inward between closest points, so that it never crosses itself.
	AvoidSelfCrossing bool

	// Clockwise is the winding of outer rings in a Y-down coordinate system, hole rings wind the opposite way. Default: true.
	Clockwise bool
}

// DefaultOptions returns Options with reasonable defaults.
func DefaultOptions() Options {
	return Options{
		Offset:            1.0,
		JoinStyle:         RoundJoin,
		MiterLimit:        10.0,
		Resolution:        5,
		Tolerance:         0.01,
		Precision:         1000.0,
		StitchDistance:    2.5,
		MinStitchDistance: 0.5,
		Strategy:          InnerToOuter,
		Clockwise:         true,
	}
}

// validate checks that the options are valid and returns a descriptive error if not.
func (opts Options) validate() error {
	if err := opts.validateOffset(); err != nil {
		return err
	}
	if !(0.0 < opts.StitchDistance) {
		return fmt.Errorf("%w: StitchDistance must be > 0, got %g", ErrInvalidOptions, opts.StitchDistance)
	}
	if opts.MinStitchDistance < 0.0 || opts.StitchDistance < opts.MinStitchDistance {
		return fmt.Errorf("%w: MinStitchDistance must be in [0,StitchDistance], got %g", ErrInvalidOptions, opts.MinStitchDistance)
	}
	switch opts.Strategy {
	case InnerToOuter, Spiral:
		// valid
	default:
		return fmt.Errorf("%w: %v", ErrInvalidStrategy, opts.Strategy)
	}
	return nil
}

// validateOffset checks the options used for offsetting. Repeated offsetting only ends when every offset shrinks the rings by at least one grid unit.
func (opts Options) validateOffset() error {
	if !(0.0 < opts.Offset) {
		return fmt.Errorf("%w: Offset must be > 0, got %g", ErrInvalidOptions, opts.Offset)
	}
	if !(0.0 < opts.Precision) {
		return fmt.Errorf("%w: Precision must be > 0, got %g", ErrInvalidOptions, opts.Precision)
	}
	if opts.Offset*opts.Precision < 1.0 {
		return fmt.Errorf("%w: Offset must be >= 1/Precision, got %g", ErrInvalidOptions, opts.Offset)
	}
	switch opts.JoinStyle {
	case RoundJoin, MiterJoin, BevelJoin:
		// valid
	default:
		return fmt.Errorf("%w: invalid JoinStyle %v", ErrInvalidOptions, opts.JoinStyle)
	}
	if opts.JoinStyle == MiterJoin && opts.MiterLimit < 1.0 {
		return fmt.Errorf("%w: MiterLimit must be >= 1, got %g", ErrInvalidOptions, opts.MiterLimit)
	}
	if opts.Resolution < 0 {
		return fmt.Errorf("%w: Resolution must be >= 0, got %d", ErrInvalidOptions, opts.Resolution)
	}
	if !(0.0 <= opts.Tolerance) {
		return fmt.Errorf("%w: Tolerance must be >= 0, got %g", ErrInvalidOptions, opts.Tolerance)
	}
	return nil
}

// Result is the outcome of a fill.
type Result struct {
	// Points is the stitch path, no two consecutive points are farther apart than the stitch distance.
	Points []Point

	// Origins tags every point with the ring it was placed on.
	Origins []Origin

	// Tree is the tree of rings the path was created from.
	Tree *Tree
}

// LineString returns the path as an orb line string.
func (r *Result) LineString() orb.LineString {
	ls := make(orb.LineString, len(r.Points))
	for i, p := range r.Points {
		ls[i] = p.Orb()
	}
	return ls
}

// Length returns the length of the path.
func (r *Result) Length() float64 {
	return planar.Length(r.LineString())
}

// Fill covers the polygon with rings at fixed distances from its boundary and connects them into a single stitch path. An error wrapping ErrPrecondition or ErrSpiralInfeasible is returned when the spiral strategy cannot be used for the polygon, in which case the caller may fall back to InnerToOuter.
func Fill(poly orb.Polygon, opts Options) (*Result, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}
	if opts.Strategy == Spiral && 2 < len(poly) {
		return nil, fmt.Errorf("%w: spiral requires at most one hole, got %d", ErrPrecondition, len(poly)-1)
	}
	conn, err := newConnector(opts)
	if err != nil {
		return nil, err
	}

	t, err := BuildTree(poly, opts)
	if err != nil {
		return nil, err
	}
	if opts.Strategy == Spiral && !t.PruneSpiral() {
		return nil, fmt.Errorf("%w: rings branch into several sub-trees", ErrSpiralInfeasible)
	}

	points, origins := conn.Connect(t, opts.StartingPoint)
	points, origins = resampleOrigins(points, origins, opts.StitchDistance)
	Logger().Debug("filled polygon", "strategy", opts.Strategy, "rings", t.Len(), "points", len(points))
	return &Result{
		Points:  points,
		Origins: origins,
		Tree:    t,
	}, nil
}
