package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
)

func TestNewUniquenessRejectsEmptyColumns(t *testing.T) {
	_, err := NewUniqueness(nil, FullUniqueness(assertion.NewEquals(1)))
	assert.Error(t, err)
}

func TestNewUniquenessCompositeRequiresTwoColumns(t *testing.T) {
	_, err := NewUniqueness([]string{"a"}, UniqueComposite(assertion.NewEquals(1), NullExclude, true))
	assert.Error(t, err)
}

func TestUniquenessFullUniquenessSuccess(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, FullUniqueness(assertion.NewGreaterThanOrEqual(1)))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "distinct_count"}, row(float64(100), float64(100))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestUniquenessDistinctnessFailure(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, Distinctness(assertion.NewGreaterThanOrEqual(0.99)))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "distinct_count"}, row(float64(100), float64(50))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}

func TestUniquenessUniqueValueRatio(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, UniqueValueRatio(assertion.NewGreaterThanOrEqual(0.5)))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"singletons", "total"}, row(float64(60), float64(100))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.InDelta(t, 0.6, *res.Metric, 1e-9)
}

func TestUniquenessPrimaryKeySuccess(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, PrimaryKeyUniqueness())
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "violations"}, row(float64(10), float64(0))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestUniquenessPrimaryKeyFailureOnDuplicatesAndNulls(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, PrimaryKeyUniqueness())
	require.NoError(t, err)

	// 3 violating rows (one null key, plus both rows of one duplicated
	// key) among 10 total rows.
	sess := sessionOf(batch([]string{"total", "violations"}, row(float64(10), float64(3))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
	assert.InDelta(t, 0.3, *res.Metric, 1e-9)
	assert.Contains(t, res.Message, "3 of 10")
}

func TestUniquenessPrimaryKeyDoesNotDoubleCountMultiNullRow(t *testing.T) {
	// Regression: a composite key with two NULL components in the same
	// row must count as one violating row, never push the ratio above 1.0.
	u, err := NewUniqueness([]string{"a", "b"}, PrimaryKeyUniqueness())
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "violations"}, row(float64(4), float64(1))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
	assert.LessOrEqual(t, *res.Metric, 1.0)
}

func TestUniquenessSkippedOnEmptyTable(t *testing.T) {
	u, err := NewUniqueness([]string{"id"}, FullUniqueness(assertion.NewEquals(1)))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "distinct_count"}, row(float64(0), float64(0))))
	res, err := u.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}
