package anomaly

import (
	"context"
	"strings"
	"time"
)

// Route binds a metric-name pattern (an exact name, or a "*"-suffixed
// prefix wildcard) to the detector that should evaluate it.
type Route struct {
	Pattern  string
	Detector Detector
}

// DefaultMinConfidence is the suppression floor named in spec section 4.13.
const DefaultMinConfidence = 0.7

// Runner dispatches fresh metric values to the route whose pattern
// matches, recording history via repo and suppressing low-confidence
// verdicts.
type Runner struct {
	repo          MetricsRepository
	routes        []Route
	minConfidence float64
}

// NewRunner constructs a Runner backed by repo. minConfidence <= 0 uses
// DefaultMinConfidence.
func NewRunner(repo MetricsRepository, minConfidence float64, routes []Route) *Runner {
	if minConfidence <= 0 {
		minConfidence = DefaultMinConfidence
	}
	return &Runner{repo: repo, routes: routes, minConfidence: minConfidence}
}

func matches(pattern, name string) bool {
	if strings.HasSuffix(pattern, "*") {
		return strings.HasPrefix(name, strings.TrimSuffix(pattern, "*"))
	}
	return pattern == name
}

// Check evaluates metric's fresh value against its history via the first
// matching route, then records the value for future checks. A verdict
// below minConfidence is suppressed (reported as non-anomalous).
func (r *Runner) Check(ctx context.Context, metric string, value float64, at time.Time) (Verdict, error) {
	history, err := r.repo.History(ctx, metric)
	if err != nil {
		return Verdict{}, err
	}

	var verdict Verdict
	for _, route := range r.routes {
		if matches(route.Pattern, metric) {
			verdict = route.Detector.Detect(history, value)
			break
		}
	}

	if err := r.repo.Record(ctx, metric, MetricPoint{Timestamp: at, Value: value}); err != nil {
		return Verdict{}, err
	}

	if verdict.Anomalous && verdict.Confidence < r.minConfidence {
		return Verdict{}, nil
	}
	return verdict, nil
}
