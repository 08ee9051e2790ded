package tangential

import (
	"math"
	"math/rand"
	"testing"

	"github.com/tdewolff/test"
)

func TestResample(t *testing.T) {
	var tts = []struct {
		name    string
		points  []Point
		maxDist float64
		n       int
	}{
		{"empty", nil, 1.0, 0},
		{"single", []Point{{0, 0}}, 1.0, 1},
		{"short", []Point{{0, 0}, {1, 0}}, 2.5, 2},
		{"exact", []Point{{0, 0}, {2.5, 0}}, 2.5, 2},
		{"long", []Point{{0, 0}, {10, 0}}, 2.5, 5},
		{"uneven", []Point{{0, 0}, {10, 0}}, 3.0, 5},
		{"polyline", []Point{{0, 0}, {4, 0}, {4, 2}}, 1.0, 7},
	}
	for _, tt := range tts {
		t.Run(tt.name, func(t *testing.T) {
			ps := Resample(tt.points, tt.maxDist)
			test.T(t, len(ps), tt.n)
			test.That(t, maxGap(ps) <= tt.maxDist, "max gap", maxGap(ps))
		})
	}

	ps := Resample([]Point{{0, 0}, {10, 0}}, 2.5)
	test.T(t, ps, []Point{{0, 0}, {2.5, 0}, {5, 0}, {7.5, 0}, {10, 0}})
}

func TestResampleProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 500; i++ {
		points := make([]Point, 2+rng.Intn(20))
		for j := range points {
			points[j] = Point{rng.Float64() * 100.0, rng.Float64() * 100.0}
		}
		maxDist := 0.1 + rng.Float64()*10.0

		ps := Resample(points, maxDist)
		test.That(t, maxGap(ps) <= maxDist, "max gap", maxGap(ps), maxDist)

		// the original points are kept in order
		j := 0
		for _, p := range ps {
			if j < len(points) && p == points[j] {
				j++
			}
		}
		test.T(t, j, len(points))

		// resampling again adds nothing
		test.T(t, len(Resample(ps, maxDist)), len(ps))
	}
}

func TestResampleOrigins(t *testing.T) {
	ps, os := resampleOrigins([]Point{{0, 0}, {4, 0}}, []Origin{{2, 1, OriginRing}, {3, 2, OriginTransfer}}, 1.5)
	test.T(t, len(ps), 4)
	test.T(t, os, []Origin{{2, 1, OriginRing}, {2, 1, OriginResample}, {2, 1, OriginResample}, {3, 2, OriginTransfer}})
}

func TestResampleStrict(t *testing.T) {
	// lengths just above the maximum and exact multiples of it
	rng := rand.New(rand.NewSource(2))
	for i := 0; i < 1000; i++ {
		maxDist := 0.1 + rng.Float64()*5.0
		n := 1 + rng.Intn(8)
		angle := rng.Float64() * 2.0 * math.Pi
		d := float64(n) * maxDist
		if i%2 == 1 {
			d = math.Nextafter(d, math.Inf(1))
		}
		a := Point{rng.Float64() * 100.0, rng.Float64() * 100.0}
		b := a.Add(Point{math.Cos(angle), math.Sin(angle)}.Mul(d))

		ps := Resample([]Point{a, b}, maxDist)
		test.That(t, maxGap(ps) <= maxDist, "max gap", maxGap(ps), maxDist)
		test.T(t, len(Resample(ps, maxDist)), len(ps))
	}
}
