package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// LengthKind discriminates the LengthAssertion variant.
type LengthKind int

const (
	LengthRange LengthKind = iota
	LengthExact
	LengthMin
	LengthMax
	LengthNonEmpty
)

// LengthAssertion specifies a string-length predicate lowered to
// CHAR_LENGTH comparisons.
type LengthAssertion struct {
	kind   LengthKind
	lo, hi int
}

func LengthInRange(lo, hi int) LengthAssertion { return LengthAssertion{kind: LengthRange, lo: lo, hi: hi} }
func LengthIs(n int) LengthAssertion           { return LengthAssertion{kind: LengthExact, lo: n} }
func LengthAtLeast(n int) LengthAssertion      { return LengthAssertion{kind: LengthMin, lo: n} }
func LengthAtMost(n int) LengthAssertion       { return LengthAssertion{kind: LengthMax, lo: n} }
func LengthNonEmptyAssertion() LengthAssertion { return LengthAssertion{kind: LengthNonEmpty} }

func (l LengthAssertion) predicate(expr string) string {
	switch l.kind {
	case LengthRange:
		return fmt.Sprintf("CHAR_LENGTH(%s) BETWEEN %d AND %d", expr, l.lo, l.hi)
	case LengthExact:
		return fmt.Sprintf("CHAR_LENGTH(%s) = %d", expr, l.lo)
	case LengthMin:
		return fmt.Sprintf("CHAR_LENGTH(%s) >= %d", expr, l.lo)
	case LengthMax:
		return fmt.Sprintf("CHAR_LENGTH(%s) <= %d", expr, l.lo)
	case LengthNonEmpty:
		return fmt.Sprintf("CHAR_LENGTH(%s) > 0", expr)
	default:
		return "FALSE"
	}
}

func (l LengthAssertion) description() string {
	switch l.kind {
	case LengthRange:
		return fmt.Sprintf("length between %d and %d", l.lo, l.hi)
	case LengthExact:
		return fmt.Sprintf("length = %d", l.lo)
	case LengthMin:
		return fmt.Sprintf("length >= %d", l.lo)
	case LengthMax:
		return fmt.Sprintf("length <= %d", l.lo)
	case LengthNonEmpty:
		return "non-empty"
	default:
		return "invalid"
	}
}

// Length checks the fraction of non-null values in a column whose string
// length satisfies a LengthAssertion.
type Length struct {
	column    string
	assertion LengthAssertion
}

// NewLength constructs a Length constraint.
func NewLength(column string, la LengthAssertion) (*Length, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if la.kind == LengthRange && la.lo > la.hi {
		return nil, dqerrConfigf("NewLength", "lo (%d) must be <= hi (%d)", la.lo, la.hi)
	}
	return &Length{column: column, assertion: la}, nil
}

func (l *Length) Name() string { return fmt.Sprintf("length(%s)", l.column) }

func (l *Length) Metadata() Metadata {
	return Metadata{MetaConstraintType: "length", MetaColumn: l.column}
}

func (l *Length) Column() (string, bool) { return l.column, true }

func (l *Length) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(l.column)

	query := fmt.Sprintf(
		`SELECT COUNT(CASE WHEN %s IS NOT NULL AND %s THEN 1 END) AS matches, COUNT(%s) AS total FROM %s`,
		col, l.assertion.predicate(col), col, table,
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
		return SuccessResult(metric, fmt.Sprintf("all non-null values in %s satisfy: %s", l.column, l.assertion.description())), nil
	}
	return FailureResult(metric, fmt.Sprintf(
		"only %.4f of non-null values in %s satisfy: %s",
		metric, l.column, l.assertion.description(),
	)), nil
}
