package tangential

import (
	"math"
)

// Resample inserts evenly spaced points between consecutive points that are farther apart than maxDist, so that no two consecutive points are farther apart than maxDist. The original points are kept, and resampling a resampled path does not add points.
func Resample(points []Point, maxDist float64) []Point {
	ps, _ := resampleOrigins(points, nil, maxDist)
	return ps
}

// resampleOrigins is Resample that also tags inserted points, with the node and level of the point they follow. The origins are ignored when nil.
func resampleOrigins(points []Point, origins []Origin, maxDist float64) ([]Point, []Origin) {
	if len(points) < 2 || !(0.0 < maxDist) || math.IsInf(maxDist, 1) {
		return points, origins
	}

	ps := make([]Point, 0, len(points))
	var os []Origin
	if origins != nil {
		os = make([]Origin, 0, len(points))
	}

	ps = append(ps, points[0])
	if origins != nil {
		os = append(os, origins[0])
	}
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		if d := a.Distance(b); maxDist < d {
			n := int(math.Ceil(d / maxDist))
			for !splitsWithin(a, b, n, maxDist) {
				n++ // rounding
			}
			for j := 1; j < n; j++ {
				ps = append(ps, a.Interpolate(b, float64(j)/float64(n)))
				if origins != nil {
					os = append(os, Origin{origins[i-1].Node, origins[i-1].Level, OriginResample})
				}
			}
		}
		ps = append(ps, b)
		if origins != nil {
			os = append(os, origins[i])
		}
	}
	return ps, os
}

// splitsWithin returns true if the parts of AB split into n equal parts are no longer than maxDist, as computed for the interpolated points.
func splitsWithin(a, b Point, n int, maxDist float64) bool {
	prev := a
	for j := 1; j <= n; j++ {
		q := b
		if j < n {
			q = a.Interpolate(b, float64(j)/float64(n))
		}
		if maxDist < prev.Distance(q) {
			return false
		}
		prev = q
	}
	return true
}
