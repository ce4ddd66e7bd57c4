package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// CustomSql checks a user-supplied boolean SQL expression as a row-level
// predicate; the metric is the fraction of rows for which it is true.
type CustomSql struct {
	expression string
	hint       string
}

// NewCustomSql constructs a CustomSql constraint. expr is rejected if it
// contains a statement separator or a top-level DML/DDL keyword (spec
// section 4.3.7).
func NewCustomSql(expr, hint string) (*CustomSql, error) {
	if err := ident.ValidateExpression(expr); err != nil {
		return nil, err
	}
	return &CustomSql{expression: expr, hint: hint}, nil
}

func (c *CustomSql) Name() string {
	if c.hint != "" {
		return fmt.Sprintf("custom_sql(%s)", c.hint)
	}
	return "custom_sql"
}

func (c *CustomSql) Metadata() Metadata {
	return Metadata{MetaConstraintType: "custom_sql", "expression": c.expression, "hint": c.hint}
}

func (c *CustomSql) Column() (string, bool) { return "", false }

func (c *CustomSql) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}

	query := fmt.Sprintf(
		`SELECT COUNT(CASE WHEN (%s) THEN 1 END) AS matches, COUNT(*) AS total FROM %s`,
		c.expression, table,
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
	metric := vals[0] / vals[1]
	if metric >= 1.0 {
		return SuccessResult(metric, fmt.Sprintf("all rows satisfy: %s", c.expression)), nil
	}
	return FailureResult(metric, fmt.Sprintf("only %.4f of rows satisfy: %s", metric, c.expression)), nil
}
