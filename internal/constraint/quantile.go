package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// Quantile asserts that the approximate q-th percentile of a column
// satisfies an Assertion.
type Quantile struct {
	column    string
	q         float64
	assertion assertion.Assertion
}

// NewQuantile constructs a Quantile constraint. q must be in [0,1].
func NewQuantile(column string, q float64, a assertion.Assertion) (*Quantile, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if q < 0 || q > 1 {
		return nil, dqerrConfigf("NewQuantile", "q %v must be in [0,1]", q)
	}
	return &Quantile{column: column, q: q, assertion: a}, nil
}

func (q *Quantile) Name() string { return fmt.Sprintf("quantile(%s,%.2f)", q.column, q.q) }

func (q *Quantile) Metadata() Metadata {
	return Metadata{MetaConstraintType: "quantile", MetaColumn: q.column, "q": q.q}
}

func (q *Quantile) Column() (string, bool) { return q.column, true }

func (q *Quantile) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(q.column)

	query := fmt.Sprintf(
		`SELECT approx_percentile(%s, %v) AS p FROM %s WHERE %s IS NOT NULL`,
		col, q.q, table, col,
	)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	value, typ, ok, err := session.FirstRowScalar(batches, 0)
	if err != nil {
		return Result{}, err
	}
	if !ok || typ == session.NullType {
		return SkippedResult("No data to validate"), nil
	}
	metric, isFloat := value.(float64)
	if !isFloat {
		if asInt, isInt := value.(int64); isInt {
			metric = float64(asInt)
		}
	}
	if q.assertion.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("p%.0f(%s) = %v %s", q.q*100, q.column, metric, q.assertion.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf("p%.0f(%s) = %v does not satisfy: %s", q.q*100, q.column, metric, q.assertion.Description())), nil
}
