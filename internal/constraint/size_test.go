package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
)

func TestSizeEvaluateSuccess(t *testing.T) {
	s := NewSize(assertion.NewGreaterThan(0))
	sess := sessionOf(batch([]string{"total"}, row(float64(42))))
	res, err := s.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.Equal(t, 42.0, *res.Metric)
}

func TestSizeEvaluateFailure(t *testing.T) {
	s := NewSize(assertion.NewGreaterThan(100))
	sess := sessionOf(batch([]string{"total"}, row(float64(42))))
	res, err := s.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}

func TestSizeColumnless(t *testing.T) {
	s := NewSize(assertion.NewGreaterThan(0))
	_, ok := s.Column()
	assert.False(t, ok)
}
