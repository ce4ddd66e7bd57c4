package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
)

func TestStatisticalMeanSuccess(t *testing.T) {
	s, err := NewStatistical("amount", StatMean, assertion.NewGreaterThan(10))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"stat", "non_null"}, row(float64(15), float64(100))))
	res, err := s.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestStatisticalMaxFailure(t *testing.T) {
	s, err := NewStatistical("amount", StatMax, assertion.NewLessThan(100))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"stat", "non_null"}, row(float64(500), float64(10))))
	res, err := s.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}

func TestStatisticalSkippedWhenNoNonNullRows(t *testing.T) {
	s, err := NewStatistical("amount", StatSum, assertion.NewGreaterThan(0))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"stat", "non_null"}, row(float64(0), float64(0))))
	res, err := s.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}

func TestStatisticalRejectsBadColumn(t *testing.T) {
	_, err := NewStatistical("bad;column", StatMean, assertion.NewGreaterThan(0))
	assert.Error(t, err)
}
