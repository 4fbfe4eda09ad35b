package imbens

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// DistanceMetric measures similarity between feature vectors. Reduced
// distance is a monotone transform of the true distance that skips terminal
// roots (e.g. squared Euclidean); the spatial indexes prune in reduced space
// and convert with DistToRdist/RdistToDist.
type DistanceMetric interface {
	Distance(a, b []float64) float64
	ReducedDistance(a, b []float64) float64
	DistToRdist(d float64) float64
	RdistToDist(rd float64) float64
}

// DistanceFunc adapts a plain function into a DistanceMetric. The reduced
// distance is the distance itself, so there is no pruning speedup.
type DistanceFunc func(a, b []float64) float64

func (f DistanceFunc) Distance(a, b []float64) float64        { return f(a, b) }
func (f DistanceFunc) ReducedDistance(a, b []float64) float64 { return f(a, b) }
func (f DistanceFunc) DistToRdist(d float64) float64          { return d }
func (f DistanceFunc) RdistToDist(rd float64) float64         { return rd }

// EuclideanMetric computes the Euclidean (L2) distance.
// Reduced distance is the squared Euclidean distance.
type EuclideanMetric struct{}

func (EuclideanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 2)
}

func (EuclideanMetric) ReducedDistance(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}

func (EuclideanMetric) DistToRdist(d float64) float64  { return d * d }
func (EuclideanMetric) RdistToDist(rd float64) float64 { return math.Sqrt(rd) }

// ManhattanMetric computes the Manhattan (L1 / city-block) distance.
type ManhattanMetric struct{}

func (ManhattanMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, 1)
}

func (m ManhattanMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }
func (ManhattanMetric) DistToRdist(d float64) float64            { return d }
func (ManhattanMetric) RdistToDist(rd float64) float64           { return rd }

// ChebyshevMetric computes the Chebyshev (L-infinity) distance.
type ChebyshevMetric struct{}

func (ChebyshevMetric) Distance(a, b []float64) float64 {
	return floats.Distance(a, b, math.Inf(1))
}

func (m ChebyshevMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }
func (ChebyshevMetric) DistToRdist(d float64) float64            { return d }
func (ChebyshevMetric) RdistToDist(rd float64) float64           { return rd }

// CosineMetric computes the cosine distance: 1 - cosine_similarity.
// For two zero vectors, the result is NaN (0/0). Cosine distance does not
// satisfy the triangle inequality, so it is incompatible with the spatial
// indexes and forces brute-force search.
type CosineMetric struct{}

func (CosineMetric) Distance(a, b []float64) float64 {
	return 1.0 - floats.Dot(a, b)/(floats.Norm(a, 2)*floats.Norm(b, 2))
}

func (m CosineMetric) ReducedDistance(a, b []float64) float64 { return m.Distance(a, b) }
func (CosineMetric) DistToRdist(d float64) float64            { return d }
func (CosineMetric) RdistToDist(rd float64) float64           { return rd }

// MinkowskiMetric computes the Minkowski distance parameterized by P.
// P must be >= 1. Panics if P < 1.
// Reduced distance is sum(|a[i]-b[i]|^P) without the final root.
type MinkowskiMetric struct {
	P float64
}

func (m MinkowskiMetric) Distance(a, b []float64) float64 {
	m.checkP()
	return floats.Distance(a, b, m.P)
}

func (m MinkowskiMetric) ReducedDistance(a, b []float64) float64 {
	m.checkP()
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), m.P)
	}
	return sum
}

func (m MinkowskiMetric) DistToRdist(d float64) float64  { return math.Pow(d, m.P) }
func (m MinkowskiMetric) RdistToDist(rd float64) float64 { return math.Pow(rd, 1.0/m.P) }

func (m MinkowskiMetric) checkP() {
	if m.P < 1 {
		panic("MinkowskiMetric: P must be >= 1")
	}
}

// kdTreeValidMetric reports whether the metric supports KD-tree acceleration.
// KD-trees require metrics that decompose along coordinate axes:
// Euclidean, Manhattan, Chebyshev, Minkowski.
func kdTreeValidMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric, MinkowskiMetric:
		return true
	default:
		return false
	}
}

// ballTreeValidMetric reports whether the metric supports ball tree
// acceleration. Ball trees work with any metric that satisfies the triangle
// inequality.
func ballTreeValidMetric(m DistanceMetric) bool {
	switch m.(type) {
	case EuclideanMetric, ManhattanMetric, ChebyshevMetric, MinkowskiMetric:
		return true
	default:
		return false
	}
}

// metricP returns the Minkowski exponent for the metric, defaulting to
// 2 for Euclidean and 1 for Manhattan.
func metricP(m DistanceMetric) float64 {
	switch v := m.(type) {
	case EuclideanMetric:
		return 2.0
	case ManhattanMetric:
		return 1.0
	case MinkowskiMetric:
		return v.P
	case ChebyshevMetric:
		return math.Inf(1)
	default:
		return 2.0 // fallback; Euclidean-like
	}
}
