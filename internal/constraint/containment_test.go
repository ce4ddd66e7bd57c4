package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewContainmentRejectsEmptyAllowed(t *testing.T) {
	_, err := NewContainment("status", nil, 0.9)
	assert.Error(t, err)
}

func TestContainmentEvaluateSuccess(t *testing.T) {
	c, err := NewContainment("status", []string{"open", "closed"}, 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"matches", "total"}, row(float64(95), float64(100))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestContainmentEvaluateFailure(t *testing.T) {
	c, err := NewContainment("status", []string{"open", "closed"}, 0.9)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"matches", "total"}, row(float64(10), float64(100))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}
