// Package suite implements the orchestrator of spec section 4.8: a Suite
// runs its Checks' constraints against a session, aggregating outcomes
// into a ValidationResult the same way the teacher's scanner.RunScan
// drives its check.Check registry into a models.ScanReport.
package suite

import (
	"encoding/json"

	"github.com/pgEdge/dqcheck/internal/severity"
)

// ValidationIssue records one failed constraint.
type ValidationIssue struct {
	CheckName      string         `json:"check_name"`
	ConstraintName string         `json:"constraint_name"`
	Level          severity.Level `json:"level"`
	Message        string         `json:"message"`
	Metric         *float64       `json:"metric,omitempty"`
}

// ValidationMetrics aggregates per-run counters and named constraint
// metrics.
type ValidationMetrics struct {
	Total            int                `json:"total"`
	Passed           int                `json:"passed"`
	Failed           int                `json:"failed"`
	Skipped          int                `json:"skipped"`
	ExecutionTimeMs  int64              `json:"execution_time_ms"`
	CustomMetrics    map[string]float64 `json:"custom_metrics"`
}

func newValidationMetrics() *ValidationMetrics {
	return &ValidationMetrics{CustomMetrics: make(map[string]float64)}
}

// ValidationReport is the accumulated record of one suite run.
type ValidationReport struct {
	SuiteName string             `json:"suite_name"`
	Issues    []ValidationIssue  `json:"issues"`
	Metrics   ValidationMetrics  `json:"metrics"`
}

// ValidationResult is the terminal outcome of Suite.Run, standing in for
// spec section 3's Success{metrics, report} / Failure{report} sum: Ok tells
// the two apart, and Report (metrics included) is filled in either case.
type ValidationResult struct {
	Ok     bool
	Report ValidationReport
}

// Success reports whether the run completed with no Error-level failures.
func (r ValidationResult) Success() bool { return r.Ok }

// MarshalJSON renders the stable {"status", "report"} shape spec section
// 6.6 requires, regardless of the Ok/Report field names used internally.
func (r ValidationResult) MarshalJSON() ([]byte, error) {
	status := "failure"
	if r.Ok {
		status = "success"
	}
	return json.Marshal(struct {
		Status string           `json:"status"`
		Report ValidationReport `json:"report"`
	}{Status: status, Report: r.Report})
}

// UnmarshalJSON restores a ValidationResult from the stable JSON shape.
func (r *ValidationResult) UnmarshalJSON(data []byte) error {
	var wire struct {
		Status string           `json:"status"`
		Report ValidationReport `json:"report"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	r.Ok = wire.Status == "success"
	r.Report = wire.Report
	return nil
}
