package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// ForeignKey verifies that a fraction of child rows have a matching
// parent row, via child.col -> parent.col.
type ForeignKey struct {
	childTable, childCol   string
	parentTable, parentCol string
	threshold              float64
	exampleLimit           int
}

// NewForeignKey constructs a ForeignKey constraint from "table.col"
// qualified references. threshold defaults to 1.0 when 0.
func NewForeignKey(childRef, parentRef string, threshold float64) (*ForeignKey, error) {
	childTable, childCol, err := ident.SplitQualified(childRef)
	if err != nil {
		return nil, err
	}
	parentTable, parentCol, err := ident.SplitQualified(parentRef)
	if err != nil {
		return nil, err
	}
	if threshold == 0 {
		threshold = 1.0
	}
	return &ForeignKey{
		childTable: childTable, childCol: childCol,
		parentTable: parentTable, parentCol: parentCol,
		threshold: threshold, exampleLimit: defaultViolationLimit,
	}, nil
}

func (f *ForeignKey) Name() string {
	return fmt.Sprintf("foreign_key(%s.%s->%s.%s)", f.childTable, f.childCol, f.parentTable, f.parentCol)
}

func (f *ForeignKey) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "foreign_key",
		"child":            f.childTable + "." + f.childCol,
		"parent":           f.parentTable + "." + f.parentCol,
		MetaThreshold:      f.threshold,
	}
}

func (f *ForeignKey) Column() (string, bool) { return f.childCol, true }

func (f *ForeignKey) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	childTable, childCol := ident.Escape(f.childTable), ident.Escape(f.childCol)
	parentTable, parentCol := ident.Escape(f.parentTable), ident.Escape(f.parentCol)

	query := fmt.Sprintf(`
		SELECT
		  COUNT(*) AS total,
		  COUNT(CASE WHEN p.%s IS NOT NULL THEN 1 END) AS matched
		FROM %s c LEFT JOIN %s p ON c.%s = p.%s
		WHERE c.%s IS NOT NULL
	`, parentCol, childTable, parentTable, childCol, parentCol, childCol)

	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 2)
	if err != nil {
		return Result{}, err
	}
	if !ok || vals[0] == 0 {
		return SkippedResult("No data to validate"), nil
	}
	metric := vals[1] / vals[0]
	if metric >= f.threshold {
		return SuccessResult(metric, fmt.Sprintf("foreign key coverage %.4f >= threshold %.4f", metric, f.threshold)), nil
	}

	examples, exErr := f.unmatchedExamples(ctx, sess, childTable, parentTable, childCol, parentCol)
	msg := fmt.Sprintf(
		"foreign key coverage %.4f below threshold %.4f for %s.%s -> %s.%s",
		metric, f.threshold, f.childTable, f.childCol, f.parentTable, f.parentCol,
	)
	if exErr == nil && len(examples) > 0 {
		msg += fmt.Sprintf("; unmatched examples: %v", examples)
	}
	return FailureResult(metric, msg), nil
}

func (f *ForeignKey) unmatchedExamples(ctx context.Context, sess session.Session, childTable, parentTable, childCol, parentCol string) ([]string, error) {
	query := fmt.Sprintf(`
		SELECT DISTINCT c.%s::text AS v
		FROM %s c LEFT JOIN %s p ON c.%s = p.%s
		WHERE c.%s IS NOT NULL AND p.%s IS NULL
		LIMIT %d
	`, childCol, childTable, parentTable, childCol, parentCol, childCol, parentCol, f.exampleLimit)

	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return nil, err
	}
	rows := session.Rows(batches, f.exampleLimit)
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		if s, ok := r[0].(string); ok {
			out = append(out, s)
		}
	}
	return out, nil
}
