package constraint

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// Completeness is a row-level combinator over per-column NOT-NULL,
// compared against a fraction threshold.
type Completeness struct {
	columns   []string
	op        LogicalOperator
	threshold float64
}

// NewCompleteness constructs a Completeness constraint. columns must be
// non-empty and each must be a valid bare identifier; threshold must be in
// [0, 1].
func NewCompleteness(columns []string, op LogicalOperator, threshold float64) (*Completeness, error) {
	if len(columns) == 0 {
		return nil, dqerrConfig("NewCompleteness", "columns must not be empty")
	}
	if threshold < 0 || threshold > 1 {
		return nil, dqerrConfigf("NewCompleteness", "threshold %v must be in [0,1]", threshold)
	}
	for _, c := range columns {
		if err := ident.ValidateIdentifier(c); err != nil {
			return nil, err
		}
	}
	return &Completeness{columns: append([]string(nil), columns...), op: op, threshold: threshold}, nil
}

func (c *Completeness) Name() string {
	return fmt.Sprintf("completeness(%s)", strings.Join(c.columns, ","))
}

func (c *Completeness) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "completeness",
		MetaColumns:        c.columns,
		MetaThreshold:      c.threshold,
	}
}

func (c *Completeness) Column() (string, bool) {
	if len(c.columns) == 1 {
		return c.columns[0], true
	}
	return "", false
}

func (c *Completeness) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}

	escaped := make([]string, len(c.columns))
	for i, col := range c.columns {
		escaped[i] = ident.Escape(col)
	}

	var query string
	if len(c.columns) == 1 {
		query = fmt.Sprintf(
			`SELECT COUNT(*) AS total, COUNT(%s) AS non_null FROM %s`,
			escaped[0], table,
		)
	} else {
		query = fmt.Sprintf(
			`SELECT COUNT(*) AS total, COUNT(CASE WHEN %s THEN 1 END) AS non_null FROM %s`,
			c.op.rowPredicate(escaped), table,
		)
	}

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
	if metric >= c.threshold {
		return SuccessResult(metric, fmt.Sprintf("completeness %.4f >= threshold %.4f", metric, c.threshold)), nil
	}
	return FailureResult(metric, fmt.Sprintf(
		"completeness %.4f for column(s) %s below threshold %.4f",
		metric, strings.Join(c.columns, ","), c.threshold,
	)), nil
}
