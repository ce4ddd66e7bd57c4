package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCompletenessRejectsEmptyColumns(t *testing.T) {
	_, err := NewCompleteness(nil, All(), 0.9)
	assert.Error(t, err)
}

func TestNewCompletenessRejectsBadThreshold(t *testing.T) {
	_, err := NewCompleteness([]string{"a"}, All(), 1.5)
	assert.Error(t, err)
}

func TestCompletenessEvaluateSuccess(t *testing.T) {
	c, err := NewCompleteness([]string{"email"}, All(), 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "non_null"}, row(float64(100), float64(95))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.InDelta(t, 0.95, *res.Metric, 1e-9)
}

func TestCompletenessEvaluateFailure(t *testing.T) {
	c, err := NewCompleteness([]string{"email"}, All(), 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "non_null"}, row(float64(100), float64(50))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}

func TestCompletenessEvaluateSkippedOnEmptyTable(t *testing.T) {
	c, err := NewCompleteness([]string{"email"}, All(), 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "non_null"}, row(float64(0), float64(0))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}

func TestCompletenessColumn(t *testing.T) {
	c, err := NewCompleteness([]string{"email"}, All(), 0.9)
	require.NoError(t, err)
	col, ok := c.Column()
	assert.True(t, ok)
	assert.Equal(t, "email", col)

	multi, err := NewCompleteness([]string{"a", "b"}, All(), 0.9)
	require.NoError(t, err)
	_, ok = multi.Column()
	assert.False(t, ok)
}
