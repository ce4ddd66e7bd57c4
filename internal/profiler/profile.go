// Package profiler implements the three-pass Column Profiler of spec
// section 4.10, fanning Pass 1/2/3 queries across the session and
// handing samples to internal/typeinfer.
package profiler

import "github.com/pgEdge/dqcheck/internal/typeinfer"

// Config carries the profiler's tunable thresholds (spec section 4.10).
type Config struct {
	SampleSize          int
	CardinalityThreshold int
}

// DefaultConfig matches the spec's named defaults.
func DefaultConfig() Config {
	return Config{SampleSize: 10000, CardinalityThreshold: 100}
}

// CategoricalBucket is one value/count pair from Pass 2.
type CategoricalBucket struct {
	Value string
	Count int64
}

// NumericSummary is Pass 3's output.
type NumericSummary struct {
	Mean     float64
	StdDev   float64
	Variance float64
	// Quantiles maps a probe point (e.g. 0.5, 0.9, 0.95, 0.99) to its
	// approximate value. A probe missing from this map means the engine
	// had no approximate-percentile function for it — the pass is never
	// failed by a missing probe.
	Quantiles map[float64]float64
}

// ColumnProfile is the accumulated result of profiling one column. Only
// the fields populated by the passes actually run are non-zero; Decision
// records which passes ran.
type ColumnProfile struct {
	Column        string
	TotalRows     int64
	NonNullCount  int64
	DistinctCount int64
	Samples       []string
	DisplaySample []string
	TypeInference typeinfer.Result
	Min, Max      *float64

	RanPass2 bool
	RanPass3 bool

	Categorical          []CategoricalBucket
	CategoricalTruncated bool
	Entropy              float64

	Numeric NumericSummary
}

// decidePass2 reports whether the distinct count is low enough to run the
// categorical pass.
func decidePass2(distinct int64, cardinalityThreshold int) bool {
	return distinct <= int64(cardinalityThreshold)
}

// decidePass3 reports whether the inferred type is numeric, making the
// numeric summary pass worthwhile.
func decidePass3(t typeinfer.Type) bool {
	switch t {
	case typeinfer.Integer, typeinfer.Float, typeinfer.Decimal:
		return true
	default:
		return false
	}
}
