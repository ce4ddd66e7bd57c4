package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrossTableSumUngroupedSuccess(t *testing.T) {
	c, err := NewCrossTableSum("orders.total_amount", "invoices.balance", nil, 0.01)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"l", "r"}, row(float64(1000), float64(1000))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestCrossTableSumUngroupedFailure(t *testing.T) {
	c, err := NewCrossTableSum("orders.total_amount", "invoices.balance", nil, 0.01)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"l", "r"}, row(float64(1000), float64(900))))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
}

func TestCrossTableSumGroupedMixedResult(t *testing.T) {
	c, err := NewCrossTableSum("orders.total_amount", "invoices.balance", []string{"region"}, 0.01)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"region", "l_sum", "r_sum"},
		row("east", float64(100), float64(100)),
		row("west", float64(100), float64(50)),
	))
	res, err := c.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
	assert.Contains(t, res.Message, "1 of 2 group(s)")
}

func TestCrossTableSumRejectsNegativeTolerance(t *testing.T) {
	_, err := NewCrossTableSum("orders.total_amount", "invoices.balance", nil, -1)
	assert.Error(t, err)
}
