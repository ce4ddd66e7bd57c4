package constraint

import "fmt"

// LogicalOpKind discriminates the LogicalOperator variant used by
// multi-column Completeness constraints.
type LogicalOpKind int

const (
	LogicalAll LogicalOpKind = iota
	LogicalAny
	LogicalAtLeast
	LogicalExactly
)

// LogicalOperator combines per-column NOT-NULL checks into a single
// row-level predicate.
type LogicalOperator struct {
	kind LogicalOpKind
	n    int
}

// All requires every column to be non-null.
func All() LogicalOperator { return LogicalOperator{kind: LogicalAll} }

// Any requires at least one column to be non-null.
func Any() LogicalOperator { return LogicalOperator{kind: LogicalAny} }

// AtLeast requires at least n columns to be non-null.
func AtLeast(n int) LogicalOperator { return LogicalOperator{kind: LogicalAtLeast, n: n} }

// Exactly requires exactly n columns to be non-null.
func Exactly(n int) LogicalOperator { return LogicalOperator{kind: LogicalExactly, n: n} }

func (op LogicalOperator) Kind() LogicalOpKind { return op.kind }
func (op LogicalOperator) N() int              { return op.n }

// rowPredicate builds the SQL boolean expression for a row given the
// escaped column identifiers.
func (op LogicalOperator) rowPredicate(cols []string) string {
	switch op.kind {
	case LogicalAll:
		expr := ""
		for i, c := range cols {
			if i > 0 {
				expr += " AND "
			}
			expr += c + " IS NOT NULL"
		}
		return expr
	case LogicalAny:
		expr := ""
		for i, c := range cols {
			if i > 0 {
				expr += " OR "
			}
			expr += c + " IS NOT NULL"
		}
		return expr
	case LogicalAtLeast:
		return fmt.Sprintf("(%s) >= %d", sumCase(cols), op.n)
	case LogicalExactly:
		return fmt.Sprintf("(%s) = %d", sumCase(cols), op.n)
	default:
		return "FALSE"
	}
}

func sumCase(cols []string) string {
	expr := ""
	for i, c := range cols {
		if i > 0 {
			expr += " + "
		}
		expr += fmt.Sprintf("CASE WHEN %s IS NOT NULL THEN 1 ELSE 0 END", c)
	}
	return expr
}
