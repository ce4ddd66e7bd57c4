package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/session"
)

func TestNewJoinCoverageRequiresBetween(t *testing.T) {
	_, err := NewJoinCoverage("orders.customer_id", "customers.id", JoinLeft, LeftToRight, assertion.NewGreaterThan(0.5))
	assert.Error(t, err)
}

func TestJoinCoverageLeftToRightSuccess(t *testing.T) {
	j, err := NewJoinCoverage("orders.customer_id", "customers.id", JoinLeft, LeftToRight, assertion.MustBetween(0.9, 1.0))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "matched"}, row(float64(100), float64(95))))
	res, err := j.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestJoinCoverageBidirectionalUsesMinimum(t *testing.T) {
	j, err := NewJoinCoverage("orders.customer_id", "customers.id", JoinLeft, Bidirectional, assertion.MustBetween(0.9, 1.0))
	require.NoError(t, err)

	sess := &queuedSession{queue: [][]session.RecordBatch{
		{batch([]string{"total", "matched"}, row(float64(100), float64(95)))},
		{batch([]string{"total", "matched"}, row(float64(100), float64(50)))},
	}}
	res, err := j.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}
