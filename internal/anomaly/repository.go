// Package anomaly implements the Anomaly Detection system of spec
// section 4.13: a pluggable metrics history behind a reader/writer
// abstraction, and detectors that compare a fresh value against that
// history.
package anomaly

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MetricPoint is one historical observation.
type MetricPoint struct {
	Timestamp time.Time
	Value     float64
}

// MetricsRepository stores and retrieves metric history. Writes are
// serialised per metric name; reads return values sorted by timestamp
// ascending (spec section 5).
type MetricsRepository interface {
	Record(ctx context.Context, metric string, point MetricPoint) error
	History(ctx context.Context, metric string) ([]MetricPoint, error)
}

// InMemoryRepository is the default MetricsRepository: a per-metric
// timestamp-sorted slice behind a single RWMutex, mirroring the pattern
// cache's reader-preferring discipline elsewhere in this module.
type InMemoryRepository struct {
	mu   sync.RWMutex
	data map[string][]MetricPoint
}

// NewInMemoryRepository constructs an empty repository.
func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{data: make(map[string][]MetricPoint)}
}

// Record appends point to metric's history, keeping it timestamp-sorted.
func (r *InMemoryRepository) Record(_ context.Context, metric string, point MetricPoint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	points := append(r.data[metric], point)
	sort.Slice(points, func(i, j int) bool { return points[i].Timestamp.Before(points[j].Timestamp) })
	r.data[metric] = points
	return nil
}

// History returns a copy of metric's recorded points, oldest first.
func (r *InMemoryRepository) History(_ context.Context, metric string) ([]MetricPoint, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]MetricPoint, len(r.data[metric]))
	copy(out, r.data[metric])
	return out, nil
}
