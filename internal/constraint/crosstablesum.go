package constraint

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// CrossTableSum checks that grouped sums of two columns in two tables
// match within a tolerance.
type CrossTableSum struct {
	leftTable, leftCol   string
	rightTable, rightCol string
	groupBy              []string
	tolerance            float64
	exampleLimit         int
}

// NewCrossTableSum constructs a CrossTableSum constraint. groupBy may be
// empty for an ungrouped (scalar) comparison.
func NewCrossTableSum(leftRef, rightRef string, groupBy []string, tolerance float64) (*CrossTableSum, error) {
	leftTable, leftCol, err := ident.SplitQualified(leftRef)
	if err != nil {
		return nil, err
	}
	rightTable, rightCol, err := ident.SplitQualified(rightRef)
	if err != nil {
		return nil, err
	}
	for _, g := range groupBy {
		if err := ident.ValidateIdentifier(g); err != nil {
			return nil, err
		}
	}
	if tolerance < 0 {
		return nil, dqerrConfigf("NewCrossTableSum", "tolerance %v must be >= 0", tolerance)
	}
	return &CrossTableSum{
		leftTable: leftTable, leftCol: leftCol,
		rightTable: rightTable, rightCol: rightCol,
		groupBy: append([]string(nil), groupBy...), tolerance: tolerance,
		exampleLimit: defaultViolationLimit,
	}, nil
}

func (c *CrossTableSum) Name() string {
	return fmt.Sprintf("cross_table_sum(%s.%s,%s.%s)", c.leftTable, c.leftCol, c.rightTable, c.rightCol)
}

func (c *CrossTableSum) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "cross_table_sum",
		"left":             c.leftTable + "." + c.leftCol,
		"right":            c.rightTable + "." + c.rightCol,
		"tolerance":        c.tolerance,
	}
}

func (c *CrossTableSum) Column() (string, bool) { return "", false }

func (c *CrossTableSum) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	if len(c.groupBy) == 0 {
		return c.evaluateUngrouped(ctx, sess)
	}
	return c.evaluateGrouped(ctx, sess)
}

func (c *CrossTableSum) evaluateUngrouped(ctx context.Context, sess session.Session) (Result, error) {
	leftTable, leftCol := ident.Escape(c.leftTable), ident.Escape(c.leftCol)
	rightTable, rightCol := ident.Escape(c.rightTable), ident.Escape(c.rightCol)

	query := fmt.Sprintf(`
		SELECT
		  COALESCE((SELECT SUM(%s) FROM %s), 0) AS l,
		  COALESCE((SELECT SUM(%s) FROM %s), 0) AS r
	`, leftCol, leftTable, rightCol, rightTable)

	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 2)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return SkippedResult("No data to validate"), nil
	}
	l, r := vals[0], vals[1]
	delta := l - r
	if delta < 0 {
		delta = -delta
	}
	if delta <= c.tolerance {
		return SuccessResult(delta, fmt.Sprintf("sums match within tolerance %.4f (|%.4f - %.4f| = %.4f)", c.tolerance, l, r, delta)), nil
	}
	return FailureResult(delta, fmt.Sprintf(
		"sums differ by %.4f, exceeding tolerance %.4f: %s.%s = %.4f, %s.%s = %.4f",
		delta, c.tolerance, c.leftTable, c.leftCol, l, c.rightTable, c.rightCol, r,
	)), nil
}

func (c *CrossTableSum) evaluateGrouped(ctx context.Context, sess session.Session) (Result, error) {
	leftTable, leftCol := ident.Escape(c.leftTable), ident.Escape(c.leftCol)
	rightTable, rightCol := ident.Escape(c.rightTable), ident.Escape(c.rightCol)
	groupCols := make([]string, len(c.groupBy))
	for i, g := range c.groupBy {
		groupCols[i] = ident.Escape(g)
	}
	groupList := strings.Join(groupCols, ", ")

	onClause := make([]string, len(groupCols))
	coalesceSelect := make([]string, len(groupCols))
	for i, g := range groupCols {
		onClause[i] = fmt.Sprintf("l.%s = r.%s", g, g)
		coalesceSelect[i] = fmt.Sprintf("COALESCE(l.%s, r.%s) AS %s", g, g, g)
	}

	query := fmt.Sprintf(`
		WITH l AS (SELECT %s, SUM(%s) AS s FROM %s GROUP BY %s),
		     r AS (SELECT %s, SUM(%s) AS s FROM %s GROUP BY %s)
		SELECT
		  %s,
		  COALESCE(l.s, 0) AS l_sum,
		  COALESCE(r.s, 0) AS r_sum
		FROM l FULL OUTER JOIN r ON %s
	`, groupList, leftCol, leftTable, groupList,
		groupList, rightCol, rightTable, groupList,
		strings.Join(coalesceSelect, ", "),
		strings.Join(onClause, " AND "))

	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	rows := session.Rows(batches, maxCrossTableSumGroups)
	if len(rows) == 0 {
		return SkippedResult("No data to validate"), nil
	}
	truncated := len(rows) == maxCrossTableSumGroups

	nGroups := len(groupCols)
	var violatingGroups int
	var examples []string
	for _, row := range rows {
		lSum, _ := asFloat(row[nGroups])
		rSum, _ := asFloat(row[nGroups+1])
		delta := lSum - rSum
		if delta < 0 {
			delta = -delta
		}
		if delta > c.tolerance {
			violatingGroups++
			if len(examples) < 5 {
				keyParts := make([]string, nGroups)
				for i := 0; i < nGroups; i++ {
					keyParts[i] = fmt.Sprintf("%v", row[i])
				}
				examples = append(examples, fmt.Sprintf("group(%s): left=%.4f right=%.4f delta=%.4f", strings.Join(keyParts, ","), lSum, rSum, delta))
			}
		}
	}

	truncNote := ""
	if truncated {
		truncNote = fmt.Sprintf(" (group inspection capped at %d; more may exist)", maxCrossTableSumGroups)
	}

	metric := float64(violatingGroups)
	if violatingGroups == 0 {
		return SuccessResult(metric, fmt.Sprintf("all %d group(s) match within tolerance %.4f%s", len(rows), c.tolerance, truncNote)), nil
	}
	return FailureResult(metric, fmt.Sprintf(
		"%d of %d group(s) exceed tolerance %.4f%s; examples: %s",
		violatingGroups, len(rows), c.tolerance, truncNote, strings.Join(examples, "; "),
	)), nil
}
