package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// DefaultMinkowskiP is the order used by the "minkowski" registry entry.
const DefaultMinkowskiP = 1.5

// Distances is a map of human–readable names to distance functions.
// You can use it to choose a distance metric by name.
var Distances = map[string]DistanceFunc{
	"manhattan":              Manhattan,
	"euclidean":              Euclidean,
	"tchebyshev":             Tchebyshev,
	"minkowski":              minkowskiDefault,
	"histogram_intersection": HistogramIntersection,
	"khi2":                   Khi2,
}

// DistanceFunc computes the distance between two vectors.
// a: the first vector.
// b: the second vector.
// Returns the computed distance as a float64, or an error when the
// vectors cannot be compared.
type DistanceFunc func(a, b []float64) (float64, error)

// Names returns the registered metric names in sorted order.
func Names() []string {
	names := make([]string, 0, len(Distances))
	for name := range Distances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns the distance function registered under name.
// The match is case-insensitive.
func Lookup(name string) (DistanceFunc, error) {
	fn, ok := Distances[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownMetric, name, strings.Join(Names(), ", "))
	}
	return fn, nil
}

func checkShape(a, b []float64) error {
	if len(a) != len(b) {
		return fmt.Errorf("%w: vectors have lengths %d and %d", ErrShapeMismatch, len(a), len(b))
	}
	if len(a) == 0 {
		return fmt.Errorf("%w: vectors must not be empty", ErrShapeMismatch)
	}
	return nil
}

// Manhattan computes the Manhattan (L1) distance between two vectors.
func Manhattan(a, b []float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		sum += math.Abs(a[i] - b[i])
	}
	return sum, nil
}

// Euclidean computes the Euclidean (L2) distance between two vectors.
func Euclidean(a, b []float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum), nil
}

// Tchebyshev computes the Tchebyshev (L-infinity) distance between two vectors.
func Tchebyshev(a, b []float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	var maxDiff float64
	for i := range a {
		// math.Max propagates NaN components.
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}
	return maxDiff, nil
}

// Minkowski computes the Minkowski distance of order p between two vectors:
//
//	(sum(|a_i - b_i|^p))^(1/p)
//
// p must be non-zero and not NaN. Fractional and negative orders follow
// math.Pow; the base is an absolute difference, so it is never negative.
// p = +Inf yields the Tchebyshev distance and p = -Inf the smallest
// absolute difference.
func Minkowski(a, b []float64, p float64) (float64, error) {
	if p == 0 || math.IsNaN(p) {
		return 0, fmt.Errorf("%w: minkowski order must be non-zero, got %v", ErrInvalidParameter, p)
	}
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	switch {
	case math.IsInf(p, 1):
		return Tchebyshev(a, b)
	case math.IsInf(p, -1):
		minDiff := math.Inf(1)
		for i := range a {
			minDiff = math.Min(minDiff, math.Abs(a[i]-b[i]))
		}
		return minDiff, nil
	}
	var sum float64
	for i := range a {
		sum += math.Pow(math.Abs(a[i]-b[i]), p)
	}
	return math.Pow(sum, 1/p), nil
}

// MinkowskiFunc returns a DistanceFunc bound to the order p.
func MinkowskiFunc(p float64) (DistanceFunc, error) {
	if p == 0 || math.IsNaN(p) {
		return nil, fmt.Errorf("%w: minkowski order must be non-zero, got %v", ErrInvalidParameter, p)
	}
	return func(a, b []float64) (float64, error) {
		return Minkowski(a, b, p)
	}, nil
}

func minkowskiDefault(a, b []float64) (float64, error) {
	return Minkowski(a, b, DefaultMinkowskiP)
}

// HistogramIntersection computes sum(min(a_i, b_i)) / sum(b).
// A zero sum of b is replaced by DivisionByZero. The inputs are expected to
// be non-negative histograms but this is not checked. The measure is not
// symmetric.
func HistogramIntersection(a, b []float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	var inter, total float64
	for i := range a {
		inter += math.Min(a[i], b[i])
		total += b[i]
	}
	return inter / SafeDivisor(total), nil
}

// Khi2 computes the chi-squared distance sum((a_i - b_i)^2 / (a_i + b_i)^2).
// Zero denominators are replaced elementwise by DivisionByZero.
func Khi2(a, b []float64) (float64, error) {
	if err := checkShape(a, b); err != nil {
		return 0, err
	}
	den := make([]float64, len(a))
	for i := range a {
		s := a[i] + b[i]
		den[i] = s * s
	}
	den = SafeDivisors(den)

	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d / den[i]
	}
	return sum, nil
}
