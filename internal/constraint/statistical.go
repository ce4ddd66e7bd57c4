package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// StatisticKind names the aggregate function a Statistical constraint
// applies.
type StatisticKind int

const (
	StatMin StatisticKind = iota
	StatMax
	StatMean
	StatSum
	StatVariance
	StatStdDev
)

func (k StatisticKind) sqlFunc() string {
	switch k {
	case StatMin:
		return "MIN"
	case StatMax:
		return "MAX"
	case StatMean:
		return "AVG"
	case StatSum:
		return "SUM"
	case StatVariance:
		return "VAR_SAMP"
	case StatStdDev:
		return "STDDEV_SAMP"
	default:
		return ""
	}
}

func (k StatisticKind) String() string {
	switch k {
	case StatMin:
		return "min"
	case StatMax:
		return "max"
	case StatMean:
		return "mean"
	case StatSum:
		return "sum"
	case StatVariance:
		return "variance"
	case StatStdDev:
		return "stddev"
	default:
		return "unknown"
	}
}

// Statistical asserts that Min/Max/Mean/Sum/Variance/StdDev of a column
// satisfies an Assertion.
type Statistical struct {
	column    string
	statistic StatisticKind
	assertion assertion.Assertion
}

// NewStatistical constructs a Statistical constraint.
func NewStatistical(column string, stat StatisticKind, a assertion.Assertion) (*Statistical, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	return &Statistical{column: column, statistic: stat, assertion: a}, nil
}

func (s *Statistical) Name() string { return fmt.Sprintf("statistical(%s:%s)", s.statistic, s.column) }

func (s *Statistical) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "statistical",
		MetaColumn:         s.column,
		"statistic":        s.statistic.String(),
	}
}

func (s *Statistical) Column() (string, bool) { return s.column, true }

func (s *Statistical) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(s.column)

	query := fmt.Sprintf(
		`SELECT %s(%s) AS stat, COUNT(%s) AS non_null FROM %s`,
		s.statistic.sqlFunc(), col, col, table,
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
	if s.assertion.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("%s(%s) = %v %s", s.statistic, s.column, metric, s.assertion.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf("%s(%s) = %v does not satisfy: %s", s.statistic, s.column, metric, s.assertion.Description())), nil
}
