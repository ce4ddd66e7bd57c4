package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// ColumnCount asserts the number of columns in the target table's schema
// satisfies an Assertion.
type ColumnCount struct {
	assertion assertion.Assertion
}

// NewColumnCount constructs a ColumnCount constraint.
func NewColumnCount(a assertion.Assertion) *ColumnCount {
	return &ColumnCount{assertion: a}
}

func (c *ColumnCount) Name() string { return "column_count" }

func (c *ColumnCount) Metadata() Metadata {
	return Metadata{MetaConstraintType: "column_count", MetaThreshold: c.assertion.Description()}
}

func (c *ColumnCount) Column() (string, bool) { return "", false }

func (c *ColumnCount) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table := tableName(ctx)
	if err := ident.ValidateIdentifier(table); err != nil {
		return Result{}, err
	}
	query := fmt.Sprintf(
		`SELECT COUNT(*) AS total FROM information_schema.columns WHERE table_name = '%s'`,
		escapeLiteral(table),
	)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 1)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return SkippedResult("No data to validate"), nil
	}
	n := vals[0]
	if c.assertion.Evaluate(n) {
		return SuccessResult(n, fmt.Sprintf("column count %.0f %s", n, c.assertion.Description())), nil
	}
	return FailureResult(n, fmt.Sprintf("column count %.0f does not satisfy: %s", n, c.assertion.Description())), nil
}

// escapeLiteral doubles single quotes for embedding a validated identifier
// (never raw user text) as a string literal — used only where the SQL
// shape needs the table name as a literal (information_schema lookups)
// rather than as an identifier.
func escapeLiteral(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\'' {
			out = append(out, '\'', '\'')
			continue
		}
		out = append(out, s[i])
	}
	return string(out)
}
