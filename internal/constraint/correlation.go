package constraint

import (
	"context"
	"fmt"
	"math"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// CorrelationMethod selects Pearson correlation or a binned
// mutual-information estimate.
type CorrelationMethod int

const (
	MethodPearson CorrelationMethod = iota
	MethodMutualInformation
)

// defaultMIBins is N in spec section 4.3.6.
const defaultMIBins = 10

// Correlation asserts that the correlation between two columns satisfies
// an Assertion.
type Correlation struct {
	col1, col2 string
	method     CorrelationMethod
	bins       int
	assertion  assertion.Assertion
}

// NewCorrelation constructs a Correlation constraint.
func NewCorrelation(col1, col2 string, method CorrelationMethod, a assertion.Assertion) (*Correlation, error) {
	if err := ident.ValidateIdentifier(col1); err != nil {
		return nil, err
	}
	if err := ident.ValidateIdentifier(col2); err != nil {
		return nil, err
	}
	return &Correlation{col1: col1, col2: col2, method: method, bins: defaultMIBins, assertion: a}, nil
}

func (c *Correlation) Name() string { return fmt.Sprintf("correlation(%s,%s)", c.col1, c.col2) }

func (c *Correlation) Metadata() Metadata {
	return Metadata{MetaConstraintType: "correlation", MetaColumns: []string{c.col1, c.col2}}
}

func (c *Correlation) Column() (string, bool) { return "", false }

func (c *Correlation) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	switch c.method {
	case MethodPearson:
		return c.evaluatePearson(ctx, sess)
	default:
		return c.evaluateMutualInformation(ctx, sess)
	}
}

func (c *Correlation) evaluatePearson(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	a1, a2 := ident.Escape(c.col1), ident.Escape(c.col2)

	query := fmt.Sprintf(
		`SELECT corr(%s, %s) AS r, COUNT(*) AS n FROM %s WHERE %s IS NOT NULL AND %s IS NOT NULL`,
		a1, a2, table, a1, a2,
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
	if math.IsNaN(metric) {
		return SkippedResult("No data to validate"), nil
	}
	if c.assertion.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("pearson(%s,%s) = %.4f %s", c.col1, c.col2, metric, c.assertion.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf("pearson(%s,%s) = %.4f does not satisfy: %s", c.col1, c.col2, metric, c.assertion.Description())), nil
}

func (c *Correlation) evaluateMutualInformation(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	a1, a2 := ident.Escape(c.col1), ident.Escape(c.col2)
	bins := c.bins

	query := fmt.Sprintf(`
		SELECT
		  WIDTH_BUCKET(%s, mn1.m, mx1.m, %d) AS b1,
		  WIDTH_BUCKET(%s, mn2.m, mx2.m, %d) AS b2,
		  COUNT(*) AS joint
		FROM %s,
		  (SELECT MIN(%s) AS m FROM %s) mn1,
		  (SELECT MAX(%s) AS m FROM %s) mx1,
		  (SELECT MIN(%s) AS m FROM %s) mn2,
		  (SELECT MAX(%s) AS m FROM %s) mx2
		WHERE %s IS NOT NULL AND %s IS NOT NULL
		GROUP BY b1, b2
	`, a1, bins, a2, bins, table, a1, table, a1, table, a2, table, a2, table, a1, a2)

	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	rows := session.Rows(batches, 10000)
	if len(rows) == 0 {
		return SkippedResult("No data to validate"), nil
	}

	joint := make(map[[2]int64]float64)
	marg1 := make(map[int64]float64)
	marg2 := make(map[int64]float64)
	var total float64
	for _, r := range rows {
		b1, _ := asInt64(r[0])
		b2, _ := asInt64(r[1])
		n, _ := asFloat(r[2])
		joint[[2]int64{b1, b2}] += n
		marg1[b1] += n
		marg2[b2] += n
		total += n
	}
	if total == 0 {
		return SkippedResult("No data to validate"), nil
	}

	var mi float64
	for key, jn := range joint {
		pxy := jn / total
		px := marg1[key[0]] / total
		py := marg2[key[1]] / total
		if pxy > 0 && px > 0 && py > 0 {
			mi += pxy * math.Log2(pxy/(px*py))
		}
	}

	if c.assertion.Evaluate(mi) {
		return SuccessResult(mi, fmt.Sprintf("MI(%s,%s) = %.4f %s", c.col1, c.col2, mi, c.assertion.Description())), nil
	}
	return FailureResult(mi, fmt.Sprintf("MI(%s,%s) = %.4f does not satisfy: %s", c.col1, c.col2, mi, c.assertion.Description())), nil
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int64:
		return x, true
	case float64:
		return int64(x), true
	default:
		return 0, false
	}
}

func asFloat(v any) (float64, bool) {
	switch x := v.(type) {
	case int64:
		return float64(x), true
	case float64:
		return x, true
	default:
		return 0, false
	}
}
