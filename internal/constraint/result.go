package constraint

import "encoding/json"

// Status is the three-way outcome of evaluating a constraint.
type Status int

const (
	Success Status = iota
	Failure
	Skipped
)

var statusNames = [...]string{"success", "failure", "skipped"}

func (s Status) String() string {
	if int(s) < 0 || int(s) >= len(statusNames) {
		return "unknown"
	}
	return statusNames[s]
}

func (s Status) MarshalJSON() ([]byte, error) { return json.Marshal(s.String()) }

// Result is what Constraint.Evaluate produces. Success carries the
// observed metric; Failure carries metric plus an explanation; Skipped
// carries a non-empty reason and no metric.
type Result struct {
	Status  Status   `json:"status"`
	Metric  *float64 `json:"metric,omitempty"`
	Message string   `json:"message,omitempty"`
}

// SuccessResult builds a Success Result carrying the given metric.
func SuccessResult(metric float64, message string) Result {
	m := metric
	return Result{Status: Success, Metric: &m, Message: message}
}

// FailureResult builds a Failure Result carrying metric and an explanation.
func FailureResult(metric float64, message string) Result {
	m := metric
	return Result{Status: Failure, Metric: &m, Message: message}
}

// SkippedResult builds a Skipped Result with a non-null reason.
func SkippedResult(reason string) Result {
	return Result{Status: Skipped, Message: reason}
}

// Canonical ConstraintMetadata keys (spec section 3).
const (
	MetaConstraintType = "constraint_type"
	MetaColumn         = "column"
	MetaColumns        = "columns"
	MetaThreshold      = "threshold"
	MetaNullHandling   = "null_handling"
)

// Metadata is the open key/value bag attached to every constraint for
// reporting purposes.
type Metadata map[string]any

// With returns a copy of m with key set to value.
func (m Metadata) With(key string, value any) Metadata {
	out := make(Metadata, len(m)+1)
	for k, v := range m {
		out[k] = v
	}
	out[key] = value
	return out
}
