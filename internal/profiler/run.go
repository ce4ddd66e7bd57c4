package profiler

import (
	"context"
	"fmt"
	"math"

	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/typeinfer"
)

var quantileProbes = []float64{0.5, 0.9, 0.95, 0.99}

// maxCategoricalBuckets bounds how many distinct-value buckets Pass 2 will
// decode; in practice Pass 2 only runs when the distinct count is already
// at or below Config.CardinalityThreshold, so this is a defensive ceiling
// rather than a bound expected to bind, and ColumnProfile.CategoricalTruncated
// surfaces it to the caller instead of silently dropping buckets.
const maxCategoricalBuckets = 1_000_000

// Profile runs the three-pass profile for one column of table.
func Profile(ctx context.Context, sess session.Session, cfg Config, table, column string) (ColumnProfile, error) {
	tbl, err := ident.ValidateAndEscape(table)
	if err != nil {
		return ColumnProfile{}, err
	}
	col, err := ident.ValidateAndEscape(column)
	if err != nil {
		return ColumnProfile{}, err
	}

	profile := ColumnProfile{Column: column}

	statsQuery := fmt.Sprintf(`SELECT COUNT(*) AS total, COUNT(%s) AS non_null, COUNT(DISTINCT %s) AS distinct_count FROM %s`, col, col, tbl)
	batches, err := collect(ctx, sess, statsQuery)
	if err != nil {
		return ColumnProfile{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 3)
	if err != nil {
		return ColumnProfile{}, err
	}
	if !ok {
		return profile, nil
	}
	profile.TotalRows = int64(vals[0])
	profile.NonNullCount = int64(vals[1])
	profile.DistinctCount = int64(vals[2])

	sampleQuery := fmt.Sprintf(`SELECT %s AS v FROM %s WHERE %s IS NOT NULL LIMIT %d`, col, tbl, col, cfg.SampleSize)
	sampleBatches, err := collect(ctx, sess, sampleQuery)
	if err != nil {
		return ColumnProfile{}, err
	}
	samples := stringColumn(sampleBatches, 0)
	profile.Samples = samples
	if len(samples) > 10 {
		profile.DisplaySample = append([]string(nil), samples[:10]...)
	} else {
		profile.DisplaySample = append([]string(nil), samples...)
	}
	profile.TypeInference = typeinfer.Classify(samples, typeinfer.DefaultConfidenceThreshold, typeinfer.DefaultCategoricalThreshold)

	if looksNumeric(profile.TypeInference.Type) {
		minMaxQuery := fmt.Sprintf(`SELECT MIN(%s), MAX(%s) FROM %s WHERE %s IS NOT NULL`, col, col, tbl, col)
		mmBatches, err := collect(ctx, sess, minMaxQuery)
		if err == nil {
			if mm, ok, err := session.FirstRowFloats(mmBatches, 2); err == nil && ok {
				minV, maxV := mm[0], mm[1]
				profile.Min, profile.Max = &minV, &maxV
			}
		}
	}

	if !decidePass2(profile.DistinctCount, cfg.CardinalityThreshold) {
		if decidePass3(profile.TypeInference.Type) {
			if err := runNumericPass(ctx, sess, &profile, tbl, col); err != nil {
				return profile, err
			}
		}
		return profile, nil
	}

	if err := runCategoricalPass(ctx, sess, &profile, tbl, col); err != nil {
		return profile, err
	}
	return profile, nil
}

func looksNumeric(t typeinfer.Type) bool {
	return t == typeinfer.Integer || t == typeinfer.Float || t == typeinfer.Decimal
}

func runCategoricalPass(ctx context.Context, sess session.Session, profile *ColumnProfile, tbl, col string) error {
	profile.RanPass2 = true
	query := fmt.Sprintf(`SELECT %s AS v, COUNT(*) AS n FROM %s WHERE %s IS NOT NULL GROUP BY %s ORDER BY COUNT(*) DESC`, col, tbl, col, col)
	batches, err := collect(ctx, sess, query)
	if err != nil {
		return err
	}
	rows := session.Rows(batches, maxCategoricalBuckets)
	profile.CategoricalTruncated = len(rows) == maxCategoricalBuckets
	var total int64
	buckets := make([]CategoricalBucket, 0, len(rows))
	for _, row := range rows {
		n, _ := asInt64(row[1])
		buckets = append(buckets, CategoricalBucket{Value: fmt.Sprintf("%v", row[0]), Count: n})
		total += n
	}
	profile.Categorical = buckets

	var entropy float64
	if total > 0 {
		for _, b := range buckets {
			p := float64(b.Count) / float64(total)
			if p > 0 {
				entropy -= p * math.Log2(p)
			}
		}
	}
	profile.Entropy = entropy
	return nil
}

func runNumericPass(ctx context.Context, sess session.Session, profile *ColumnProfile, tbl, col string) error {
	profile.RanPass3 = true
	statQuery := fmt.Sprintf(`SELECT AVG(%s), STDDEV(%s), VAR_SAMP(%s) FROM %s WHERE %s IS NOT NULL`, col, col, col, tbl, col)
	batches, err := collect(ctx, sess, statQuery)
	if err != nil {
		return err
	}
	vals, ok, err := session.FirstRowFloats(batches, 3)
	if err != nil {
		return err
	}
	summary := NumericSummary{Quantiles: make(map[float64]float64)}
	if ok {
		summary.Mean, summary.StdDev, summary.Variance = vals[0], vals[1], vals[2]
	}

	for _, q := range quantileProbes {
		qQuery := fmt.Sprintf(`SELECT approx_percentile(%s, %v) FROM %s WHERE %s IS NOT NULL`, col, q, tbl, col)
		qBatches, err := collect(ctx, sess, qQuery)
		if err != nil {
			// Missing approximate-percentile function: skip this probe,
			// never fail the pass (spec section 4.10).
			continue
		}
		if qv, ok, err := session.FirstRowFloats(qBatches, 1); err == nil && ok {
			summary.Quantiles[q] = qv[0]
		}
	}
	profile.Numeric = summary
	return nil
}

func collect(ctx context.Context, sess session.Session, query string) ([]session.RecordBatch, error) {
	pending, err := sess.SQL(ctx, query)
	if err != nil {
		return nil, dqerr.Exec("profiler", "query submission failed", err)
	}
	batches, err := pending.Collect(ctx)
	if err != nil {
		return nil, dqerr.Exec("profiler", "batch collection failed", err)
	}
	return batches, nil
}

func stringColumn(batches []session.RecordBatch, col int) []string {
	var out []string
	for _, b := range batches {
		for r := 0; r < b.NumRows(); r++ {
			switch b.ColumnType(r, col) {
			case session.StringType:
				out = append(out, b.String(r, col))
			case session.Int64Type:
				out = append(out, fmt.Sprintf("%d", b.Int64(r, col)))
			case session.Float64Type:
				out = append(out, fmt.Sprintf("%v", b.Float64(r, col)))
			case session.BoolType:
				out = append(out, fmt.Sprintf("%v", b.Bool(r, col)))
			}
		}
	}
	return out
}

func asInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}
