package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// FormatOptions tunes how a Format constraint matches values.
type FormatOptions struct {
	CaseSensitive   bool
	TrimBeforeCheck bool
	NullIsValid     bool
}

// Format checks the fraction of all rows whose value in a column matches a
// canonical pattern for FormatType. NULLs count as non-matching unless
// FormatOptions.NullIsValid is set.
type Format struct {
	column    string
	format    FormatType
	threshold float64
	options   FormatOptions
}

// NewFormat constructs a Format constraint. threshold must be in [0,1].
func NewFormat(column string, format FormatType, threshold float64, options FormatOptions) (*Format, error) {
	if err := ident.ValidateIdentifier(column); err != nil {
		return nil, err
	}
	if threshold < 0 || threshold > 1 {
		return nil, dqerrConfigf("NewFormat", "threshold %v must be in [0,1]", threshold)
	}
	if format.kind == FormatRegex {
		if _, err := ident.ValidatePattern(format.pattern); err != nil {
			return nil, err
		}
	}
	return &Format{column: column, format: format, threshold: threshold, options: options}, nil
}

func (f *Format) Name() string { return fmt.Sprintf("format(%s)", f.column) }

func (f *Format) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "format",
		MetaColumn:         f.column,
		MetaThreshold:      f.threshold,
	}
}

func (f *Format) Column() (string, bool) { return f.column, true }

func (f *Format) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	col := ident.Escape(f.column)

	pattern, err := ident.ValidatePattern(globalPatternCache.Get(f.format))
	if err != nil {
		return Result{}, err
	}

	valueExpr := col
	if f.options.TrimBeforeCheck {
		valueExpr = fmt.Sprintf("TRIM(%s)", col)
	}

	op := "~"
	if !f.options.CaseSensitive {
		op = "~*"
	}

	matchExpr := fmt.Sprintf("%s %s '%s'", valueExpr, op, pattern)
	whenClause := fmt.Sprintf("WHEN %s THEN 1", matchExpr)
	if f.options.NullIsValid {
		whenClause = fmt.Sprintf("WHEN %s THEN 1 WHEN %s IS NULL THEN 1", matchExpr, col)
	}

	query := fmt.Sprintf(
		`SELECT COUNT(CASE %s END) AS matches, COUNT(*) AS total FROM %s`,
		whenClause, table,
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

	if f.format.kind == FormatCreditCard && f.format.detectOnly {
		if metric <= f.threshold {
			return SuccessResult(metric, fmt.Sprintf("credit-card-like ratio %.4f <= threshold %.4f", metric, f.threshold)), nil
		}
		return FailureResult(metric, fmt.Sprintf("credit-card-like ratio %.4f exceeds threshold %.4f for column %s", metric, f.threshold, f.column)), nil
	}

	if metric >= f.threshold {
		return SuccessResult(metric, fmt.Sprintf("format match ratio %.4f >= threshold %.4f", metric, f.threshold)), nil
	}
	return FailureResult(metric, fmt.Sprintf("format match ratio %.4f below threshold %.4f for column %s", metric, f.threshold, f.column)), nil
}
