package constraint

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// Containment checks the fraction of non-null values in a column that
// belong to an allowed set.
type Containment struct {
	column    string
	allowed   []string
	threshold float64
}

// NewContainment constructs a Containment constraint. allowed must be
// non-empty; threshold must be in [0,1].
func NewContainment(column string, allowed []string, threshold float64) (*Containment, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if len(allowed) == 0 {
		return nil, dqerrConfig("NewContainment", "allowed set must not be empty")
	}
	if threshold < 0 || threshold > 1 {
		return nil, dqerrConfigf("NewContainment", "threshold %v must be in [0,1]", threshold)
	}
	return &Containment{column: column, allowed: append([]string(nil), allowed...), threshold: threshold}, nil
}

func (c *Containment) Name() string { return fmt.Sprintf("containment(%s)", c.column) }

func (c *Containment) Metadata() Metadata {
	return Metadata{MetaConstraintType: "containment", MetaColumn: c.column, MetaThreshold: c.threshold}
}

func (c *Containment) Column() (string, bool) { return c.column, true }

func (c *Containment) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(c.column)

	literals := make([]string, len(c.allowed))
	for i, v := range c.allowed {
		literals[i] = "'" + strings.ReplaceAll(v, "'", "''") + "'"
	}
	inList := strings.Join(literals, ", ")

	query := fmt.Sprintf(
		`SELECT COUNT(CASE WHEN %s IN (%s) THEN 1 END) AS matches, COUNT(%s) AS total FROM %s`,
		col, inList, col, table,
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
	if metric >= c.threshold {
		return SuccessResult(metric, fmt.Sprintf("containment ratio %.4f >= threshold %.4f", metric, c.threshold)), nil
	}
	return FailureResult(metric, fmt.Sprintf("containment ratio %.4f below threshold %.4f for column %s", metric, c.threshold, c.column)), nil
}
