package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/typeinfer"
)

// DataTypeConsistency checks the fraction of sampled values whose inferred
// type matches the dominant type for the column.
type DataTypeConsistency struct {
	column     string
	threshold  float64
	sampleSize int
}

// NewDataTypeConsistency constructs a DataTypeConsistency constraint.
func NewDataTypeConsistency(column string, threshold float64) (*DataTypeConsistency, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 1 {
		return nil, dqerrConfigf("NewDataTypeConsistency", "threshold %v must be in [0,1]", threshold)
	}
	return &DataTypeConsistency{column: column, threshold: threshold, sampleSize: 10000}, nil
}

func (d *DataTypeConsistency) Name() string { return fmt.Sprintf("data_type_consistency(%s)", d.column) }

func (d *DataTypeConsistency) Metadata() Metadata {
	return Metadata{MetaConstraintType: "data_type_consistency", MetaColumn: d.column, MetaThreshold: d.threshold}
}

func (d *DataTypeConsistency) Column() (string, bool) { return d.column, true }

func (d *DataTypeConsistency) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(d.column)

	query := fmt.Sprintf(
		`SELECT %s::text AS v FROM %s WHERE %s IS NOT NULL LIMIT %d`,
		col, table, col, d.sampleSize,
	)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	rows := session.Rows(batches, d.sampleSize)
	if len(rows) == 0 {
		return SkippedResult("No data to validate"), nil
	}

	samples := make([]string, 0, len(rows))
	for _, r := range rows {
		if s, ok := r[0].(string); ok {
			samples = append(samples, s)
		}
	}

	classified := typeinfer.Classify(samples, typeinfer.DefaultConfidenceThreshold, typeinfer.DefaultCategoricalThreshold)
	if classified.Type == typeinfer.Mixed {
		var best float64
		for _, c := range classified.MixedConfidences {
			if c > best {
				best = c
			}
		}
		if best >= d.threshold {
			return SuccessResult(best, fmt.Sprintf("dominant-type match ratio %.4f >= threshold %.4f", best, d.threshold)), nil
		}
		return FailureResult(best, fmt.Sprintf("column %s shows mixed types; dominant-type match ratio %.4f below threshold %.4f", d.column, best, d.threshold)), nil
	}

	if classified.Confidence >= d.threshold {
		return SuccessResult(classified.Confidence, fmt.Sprintf("dominant type %s matches %.4f of samples", classified.Type, classified.Confidence)), nil
	}
	return FailureResult(classified.Confidence, fmt.Sprintf(
		"column %s: dominant type %s matches only %.4f of samples, below threshold %.4f",
		d.column, classified.Type, classified.Confidence, d.threshold,
	)), nil
}
