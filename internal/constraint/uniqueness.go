package constraint

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// NullHandling controls how NULLs participate in a DISTINCT count.
type NullHandling int

const (
	// NullExclude (default) does not count NULLs as distinct values —
	// it is the native behaviour of SQL's COUNT(DISTINCT col).
	NullExclude NullHandling = iota
	// NullInclude coalesces all NULLs into one equivalence class.
	NullInclude
	// NullDistinct treats each NULL as distinct from every other value,
	// including other NULLs.
	NullDistinct
)

// UniquenessKind discriminates the UniquenessType variant.
type UniquenessKind int

const (
	KindFullUniqueness UniquenessKind = iota
	KindDistinctness
	KindUniqueValueRatio
	KindPrimaryKey
	KindUniqueWithNulls
	KindUniqueComposite
)

// UniquenessType parametrises the Uniqueness constraint.
type UniquenessType struct {
	kind         UniquenessKind
	threshold    assertion.Assertion
	nullHandling NullHandling
	caseSens     bool
}

func FullUniqueness(a assertion.Assertion) UniquenessType {
	return UniquenessType{kind: KindFullUniqueness, threshold: a}
}

func Distinctness(a assertion.Assertion) UniquenessType {
	return UniquenessType{kind: KindDistinctness, threshold: a}
}

func UniqueValueRatio(a assertion.Assertion) UniquenessType {
	return UniquenessType{kind: KindUniqueValueRatio, threshold: a}
}

func PrimaryKeyUniqueness() UniquenessType {
	return UniquenessType{kind: KindPrimaryKey}
}

func UniqueWithNulls(a assertion.Assertion, nh NullHandling) UniquenessType {
	return UniquenessType{kind: KindUniqueWithNulls, threshold: a, nullHandling: nh}
}

func UniqueComposite(a assertion.Assertion, nh NullHandling, caseSensitive bool) UniquenessType {
	return UniquenessType{kind: KindUniqueComposite, threshold: a, nullHandling: nh, caseSens: caseSensitive}
}

// Uniqueness evaluates one of the UniquenessType variants over one or more
// columns.
type Uniqueness struct {
	columns []string
	typ     UniquenessType
}

// NewUniqueness constructs a Uniqueness constraint. columns must be
// non-empty bare identifiers.
func NewUniqueness(columns []string, typ UniquenessType) (*Uniqueness, error) {
	if len(columns) == 0 {
		return nil, dqerrConfig("NewUniqueness", "columns must not be empty")
	}
	for _, c := range columns {
		if err := ident.ValidateIdentifier(c); err != nil {
			return nil, err
		}
	}
	if typ.kind == KindUniqueComposite && len(columns) < 2 {
		return nil, dqerrConfig("NewUniqueness", "UniqueComposite requires at least two columns")
	}
	return &Uniqueness{columns: append([]string(nil), columns...), typ: typ}, nil
}

func (u *Uniqueness) Name() string {
	return fmt.Sprintf("uniqueness(%s)", strings.Join(u.columns, ","))
}

func (u *Uniqueness) Metadata() Metadata {
	return Metadata{
		MetaConstraintType: "uniqueness",
		MetaColumns:        u.columns,
		MetaNullHandling:   u.typ.nullHandling,
	}
}

func (u *Uniqueness) Column() (string, bool) {
	if len(u.columns) == 1 {
		return u.columns[0], true
	}
	return "", false
}

// sentinel is used to coalesce NULLs into one equivalence class for
// NullInclude. It is not a valid identifier character sequence and cannot
// collide with an escaped SQL identifier.
const nullSentinel = `'<NULL>'`

// compositeKeyExpr builds the (possibly NULL-coalesced) expression used to
// compute DISTINCT over one or more columns, joined by a delimiter that is
// not a valid identifier character (spec section 4.3.2).
func compositeKeyExpr(escaped []string, nh NullHandling) string {
	if len(escaped) == 1 && nh == NullExclude {
		return escaped[0]
	}
	parts := make([]string, len(escaped))
	for i, c := range escaped {
		if nh == NullInclude {
			parts[i] = fmt.Sprintf("COALESCE(%s::text, %s)", c, nullSentinel)
		} else {
			parts[i] = fmt.Sprintf("%s::text", c)
		}
	}
	if len(parts) == 1 {
		return parts[0]
	}
	return strings.Join(parts, " || '|' || ")
}

func (u *Uniqueness) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	escaped := make([]string, len(u.columns))
	for i, c := range u.columns {
		escaped[i] = ident.Escape(c)
	}

	switch u.typ.kind {
	case KindUniqueValueRatio:
		return u.evaluateUniqueValueRatio(ctx, sess, table, escaped)
	case KindPrimaryKey:
		return u.evaluatePrimaryKey(ctx, sess, table, escaped)
	default:
		return u.evaluateDistinctRatio(ctx, sess, table, escaped)
	}
}

func (u *Uniqueness) evaluateDistinctRatio(ctx context.Context, sess session.Session, table string, escaped []string) (Result, error) {
	nh := u.typ.nullHandling
	keyExpr := compositeKeyExpr(escaped, nh)
	query := fmt.Sprintf(
		`SELECT COUNT(*) AS total, COUNT(DISTINCT %s) AS distinct_count FROM %s`,
		keyExpr, table,
	)
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
	total, distinctCount := vals[0], vals[1]

	if nh == NullDistinct {
		// Each NULL is a distinct value: add (total - non_null) extra
		// distinct identities beyond what COUNT(DISTINCT) already saw
		// (which excludes NULLs entirely). For a multi-column key, a row
		// with any NULL component has a NULL key and is one such identity.
		nonNullQuery := fmt.Sprintf(`SELECT COUNT(%s) AS non_null FROM %s`, keyExpr, table)
		nnBatches, err := runCollect(ctx, sess, nonNullQuery)
		if err != nil {
			return Result{}, err
		}
		nn, ok, err := session.FirstRowFloats(nnBatches, 1)
		if err != nil {
			return Result{}, err
		}
		if ok {
			distinctCount += total - nn[0]
		}
	}

	metric := distinctCount / total
	var a assertion.Assertion
	switch u.typ.kind {
	case KindFullUniqueness, KindUniqueWithNulls, KindUniqueComposite:
		a = u.typ.threshold
	case KindDistinctness:
		a = u.typ.threshold
	default:
		a = u.typ.threshold
	}
	if a.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("distinctness %.4f %s", metric, a.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf(
		"distinctness %.4f for column(s) %s below threshold %.4f (%s)",
		metric, strings.Join(u.columns, ","), thresholdFor(a), a.Description(),
	)), nil
}

func thresholdFor(a assertion.Assertion) float64 {
	if a.Kind() == assertion.Between {
		_, hi := a.Bounds()
		return hi
	}
	return a.Threshold()
}

func (u *Uniqueness) evaluateUniqueValueRatio(ctx context.Context, sess session.Session, table string, escaped []string) (Result, error) {
	keyExpr := compositeKeyExpr(escaped, u.typ.nullHandling)
	query := fmt.Sprintf(
		`WITH g AS (SELECT %s AS key, COUNT(*) AS c FROM %s GROUP BY %s)
		 SELECT SUM(CASE WHEN c = 1 THEN 1 ELSE 0 END) AS singletons, SUM(c) AS total FROM g`,
		keyExpr, table, keyExpr,
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
	if u.typ.threshold.Evaluate(metric) {
		return SuccessResult(metric, fmt.Sprintf("unique value ratio %.4f %s", metric, u.typ.threshold.Description())), nil
	}
	return FailureResult(metric, fmt.Sprintf("unique value ratio %.4f does not satisfy: %s", metric, u.typ.threshold.Description())), nil
}

func (u *Uniqueness) evaluatePrimaryKey(ctx context.Context, sess session.Session, table string, escaped []string) (Result, error) {
	keyExpr := compositeKeyExpr(escaped, NullExclude)
	nullCheck := make([]string, len(escaped))
	for i, c := range escaped {
		nullCheck[i] = fmt.Sprintf("%s IS NULL", c)
	}
	// Count violating rows directly (a row with a NULL key component, or
	// whose non-null key value recurs) instead of summing per-column NULL
	// counts and a separate duplicate count: a row with two NULL key
	// columns would otherwise be counted twice, and the two counts could
	// double-count the same row, pushing the violation ratio above 1.0.
	query := fmt.Sprintf(`
		WITH keyed AS (
		  SELECT (%s) AS has_null, %s AS key FROM %s
		),
		dupes AS (
		  SELECT key, COUNT(*) AS cnt FROM keyed WHERE NOT has_null GROUP BY key
		)
		SELECT
		  (SELECT COUNT(*) FROM keyed) AS total,
		  (SELECT COUNT(*) FROM keyed k LEFT JOIN dupes d ON k.key = d.key
		     WHERE k.has_null OR COALESCE(d.cnt, 1) > 1) AS violations
	`, strings.Join(nullCheck, " OR "), keyExpr, table)

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
	total, violations := vals[0], vals[1]

	if violations > 0 {
		metric := violations / total
		return FailureResult(metric, fmt.Sprintf(
			"primary key violated: %.0f of %.0f row(s) have a null or duplicate key",
			violations, total,
		)), nil
	}
	return SuccessResult(1.0, "all rows have a non-null, unique key"), nil
}
