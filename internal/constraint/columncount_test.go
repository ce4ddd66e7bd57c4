package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/assertion"
)

func TestColumnCountEvaluateSuccess(t *testing.T) {
	c := NewColumnCount(assertion.MustBetween(1, 20))
	sess := sessionOf(batch([]string{"total"}, row(float64(8))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestColumnCountEvaluateFailure(t *testing.T) {
	c := NewColumnCount(assertion.MustBetween(1, 5))
	sess := sessionOf(batch([]string{"total"}, row(float64(8))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}
