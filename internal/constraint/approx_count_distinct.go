package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// ApproxCountDistinct asserts the engine's approximate (HLL-style)
// cardinality estimate for a column satisfies an Assertion.
type ApproxCountDistinct struct {
	column    string
	assertion assertion.Assertion
}

// NewApproxCountDistinct constructs an ApproxCountDistinct constraint.
func NewApproxCountDistinct(column string, a assertion.Assertion) (*ApproxCountDistinct, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	return &ApproxCountDistinct{column: column, assertion: a}, nil
}

func (a *ApproxCountDistinct) Name() string { return fmt.Sprintf("approx_count_distinct(%s)", a.column) }

func (a *ApproxCountDistinct) Metadata() Metadata {
	return Metadata{MetaConstraintType: "approx_count_distinct", MetaColumn: a.column}
}

func (a *ApproxCountDistinct) Column() (string, bool) { return a.column, true }

func (a *ApproxCountDistinct) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(a.column)

	query := fmt.Sprintf(
		`SELECT approx_count_distinct(%s) AS cardinality, COUNT(%s) AS non_null FROM %s`,
		col, col, table,
	)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 2)
	if err != nil {
		return Result{}, err
	}
	if !ok || vals[1] == 0 {
		return SkippedResult("No data to validate"), nil
	}
	metric := vals[0]
	if a.assertion.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("approx distinct count %.0f %s", metric, a.assertion.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf("approx distinct count %.0f does not satisfy: %s", metric, a.assertion.Description())), nil
}
