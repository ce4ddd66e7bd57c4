package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// HistogramPredicate evaluates a value-frequency distribution, built from
// {value -> count} pairs decoded off the engine's GROUP BY result.
type HistogramPredicate func(buckets map[string]int64, total int64) (bool, string)

// Histogram checks a predicate over a column's value-frequency
// distribution.
type Histogram struct {
	column    string
	predicate HistogramPredicate
	maxBuckets int
}

// NewHistogram constructs a Histogram constraint.
func NewHistogram(column string, predicate HistogramPredicate) (*Histogram, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if predicate == nil {
		return nil, dqerrConfig("NewHistogram", "predicate must not be nil")
	}
	return &Histogram{column: column, predicate: predicate, maxBuckets: 1000}, nil
}

// MaxBucketCountPredicate rejects when more than maxDistinct buckets are
// present — a common histogram shape ("column should have at most N
// categories").
func MaxBucketCountPredicate(maxDistinct int) HistogramPredicate {
	return func(buckets map[string]int64, total int64) (bool, string) {
		if len(buckets) <= maxDistinct {
			return true, fmt.Sprintf("%d distinct value(s) <= max %d", len(buckets), maxDistinct)
		}
		return false, fmt.Sprintf("%d distinct value(s) exceeds max %d", len(buckets), maxDistinct)
	}
}

// MinBucketRatioPredicate requires every bucket's share of total to be at
// least minRatio — catches a single dominant outlier category.
func MinBucketRatioPredicate(minRatio float64) HistogramPredicate {
	return func(buckets map[string]int64, total int64) (bool, string) {
		if total == 0 {
			return true, "no data"
		}
		for v, c := range buckets {
			ratio := float64(c) / float64(total)
			if ratio < minRatio {
				return false, fmt.Sprintf("value %q has ratio %.4f below minimum %.4f", v, ratio, minRatio)
			}
		}
		return true, "every bucket meets the minimum ratio"
	}
}

func (h *Histogram) Name() string { return fmt.Sprintf("histogram(%s)", h.column) }

func (h *Histogram) Metadata() Metadata {
	return Metadata{MetaConstraintType: "histogram", MetaColumn: h.column}
}

func (h *Histogram) Column() (string, bool) { return h.column, true }

func (h *Histogram) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(h.column)

	query := fmt.Sprintf(
		`SELECT %s::text AS v, COUNT(*) AS c FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY c DESC LIMIT %d`,
		col, table, col, col, h.maxBuckets,
	)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	rows := session.Rows(batches, h.maxBuckets)
	if len(rows) == 0 {
		return SkippedResult("No data to validate"), nil
	}

	buckets := make(map[string]int64, len(rows))
	var total int64
	for _, r := range rows {
		v, _ := r[0].(string)
		c, _ := asInt64(r[1])
		buckets[v] = c
		total += c
	}

	ok, message := h.predicate(buckets, total)
	metric := float64(len(buckets))
	if ok {
		return SuccessResult(metric, message), nil
	}
	return FailureResult(metric, message), nil
}
