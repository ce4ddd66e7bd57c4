package constraint

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
)

func TestCorrelationPearsonSuccess(t *testing.T) {
	c, err := NewCorrelation("age", "income", MethodPearson, assertion.NewGreaterThan(0.5))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"r", "n"}, row(float64(0.8), float64(50))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestCorrelationPearsonSkippedWhenNaN(t *testing.T) {
	c, err := NewCorrelation("age", "income", MethodPearson, assertion.NewGreaterThan(0.5))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"r", "n"}, row(math.NaN(), float64(50))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Skipped, res.Status)
}

func TestCorrelationMutualInformationComputesPositiveMI(t *testing.T) {
	c, err := NewCorrelation("age", "income", MethodMutualInformation, assertion.NewGreaterThan(0))
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"b1", "b2", "joint"},
		row(int64(1), int64(1), float64(10)),
		row(int64(2), int64(2), float64(10)),
	))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
	assert.Greater(t, *res.Metric, 0.0)
}
