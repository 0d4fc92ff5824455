package core

import (
	"fmt"
	"math/rand"
	"strings"
)

// Distribution selects how random vector components are drawn.
type Distribution int

const (
	// Uniform draws components from [0, 1).
	Uniform Distribution = iota
	// Normal draws components from the standard normal distribution.
	Normal
)

func (d Distribution) String() string {
	switch d {
	case Uniform:
		return "uniform"
	case Normal:
		return "normal"
	default:
		return fmt.Sprintf("Unknown(%d)", int(d))
	}
}

// ParseDistribution returns the Distribution named s.
func ParseDistribution(s string) (Distribution, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "uniform":
		return Uniform, nil
	case "normal":
		return Normal, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidDistribution, s)
	}
}

// RandomVector returns a vector of the given size drawn from dist using rng.
func RandomVector(rng *rand.Rand, size int, dist Distribution) ([]float64, error) {
	if size < 0 {
		return nil, fmt.Errorf("%w: vector size must not be negative, got %d", ErrInvalidParameter, size)
	}
	var draw func() float64
	switch dist {
	case Uniform:
		draw = rng.Float64
	case Normal:
		draw = rng.NormFloat64
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidDistribution, dist)
	}
	vec := make([]float64, size)
	for i := range vec {
		vec[i] = draw()
	}
	return vec, nil
}

// RandomVectors returns count vectors of dimension dim.
func RandomVectors(rng *rand.Rand, count, dim int, dist Distribution) ([][]float64, error) {
	if count < 0 {
		return nil, fmt.Errorf("%w: vector count must not be negative, got %d", ErrInvalidParameter, count)
	}
	vecs := make([][]float64, count)
	for i := range vecs {
		vec, err := RandomVector(rng, dim, dist)
		if err != nil {
			return nil, err
		}
		vecs[i] = vec
	}
	return vecs, nil
}
