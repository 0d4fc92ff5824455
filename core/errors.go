package core

import "errors"

var (
	// ErrShapeMismatch is returned when two vectors do not have the same
	// length, or when a distance is requested over empty vectors.
	ErrShapeMismatch = errors.New("shape mismatch")

	// ErrInvalidParameter is returned when a metric parameter or a size is
	// outside of its domain (e.g. a Minkowski order of 0).
	ErrInvalidParameter = errors.New("invalid parameter")

	// ErrUnknownMetric is returned when a metric name is not registered.
	ErrUnknownMetric = errors.New("unknown metric")

	// ErrInvalidDistribution is returned for an unsupported random distribution.
	ErrInvalidDistribution = errors.New("invalid random distribution")

	// ErrEnvironment wraps every failure found by ValidateEnvironment.
	ErrEnvironment = errors.New("invalid environment")
)
