package tangential

import (
	"github.com/paulmach/orb"
)

// validRing closes an open ring and returns false for rings that do not enclose anything, ie. that have fewer than three distinct points and thus collapsed to a point or a line.
func validRing(r orb.Ring) (orb.Ring, bool) {
	if len(r) < 3 {
		return nil, false
	} else if len(r) == 3 && r[0] == r[2] {
		return nil, false
	}
	if !r.Closed() {
		r = append(r.Clone(), r[0])
	}
	if len(r) < 4 {
		return nil, false
	}

	// at least three distinct points that are not collinear
	a, b, distinct := r[0], r[0], 1
	for _, p := range r[1 : len(r)-1] {
		if p == a || p == b {
			continue
		} else if distinct == 1 {
			b = p
		}
		distinct++
		if distinct == 3 {
			break
		}
	}
	if distinct < 3 || r.Orientation() == 0 {
		return nil, false
	}
	return r, true
}

// validRings filters out all rings that are not valid.
func validRings(rs []orb.Ring) []orb.Ring {
	valid := rs[:0:0]
	for _, r := range rs {
		if r, ok := validRing(r); ok {
			valid = append(valid, r)
		}
	}
	return valid
}

// orientRing returns the ring with the given winding, reversing a copy of the point order if needed.
func orientRing(r orb.Ring, orientation orb.Orientation) orb.Ring {
	if o := r.Orientation(); o != 0 && o != orientation {
		return reversedRing(r)
	}
	return r
}

// outerOrientation returns the winding in the Y-up convention of orb that corresponds to clockwise (or counter clockwise) in the Y-down coordinate system of the document.
func outerOrientation(clockwise bool) orb.Orientation {
	if clockwise {
		return orb.CCW
	}
	return orb.CW
}
