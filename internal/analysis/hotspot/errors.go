package hotspot

import "errors"

var (
	// ErrInvalidGridParameters is returned for a non-positive cell size or a
	// bounding box without extent
	ErrInvalidGridParameters = errors.New("invalid grid parameters")

	// ErrUnknownMetric is returned when a hotspot metric name is not registered
	ErrUnknownMetric = errors.New("unknown hotspot metric")
)

// Status values describing why a statistic produced no cells
const (
	StatusOK                  = "ok"
	StatusInsufficientSamples = "insufficient_samples"
	StatusNoVariance          = "no_variance"
	StatusDegenerateWeights   = "degenerate_weights"
)
