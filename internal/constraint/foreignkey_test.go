package constraint

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/session"
)

func TestNewForeignKeyDefaultsThreshold(t *testing.T) {
	fk, err := NewForeignKey("orders.customer_id", "customers.id", 0)
	require.NoError(t, err)
	assert.Equal(t, 1.0, fk.threshold)
	assert.Equal(t, "customer_id", func() string { c, _ := fk.Column(); return c }())
}

func TestForeignKeyEvaluateSuccess(t *testing.T) {
	fk, err := NewForeignKey("orders.customer_id", "customers.id", 1.0)
	require.NoError(t, err)

	sess := sessionOf(batch([]string{"total", "matched"}, row(float64(100), float64(100))))
	res, err := fk.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Success, res.Status)
}

func TestForeignKeyEvaluateFailureWithExamples(t *testing.T) {
	fk, err := NewForeignKey("orders.customer_id", "customers.id", 1.0)
	require.NoError(t, err)

	sess := &queuedSession{queue: [][]session.RecordBatch{
		{batch([]string{"total", "matched"}, row(float64(100), float64(90)))},
		{batch([]string{"v"}, row("cust-404"))},
	}}
	res, err := fk.Evaluate(context.Background(), sess)
	require.NoError(t, err)
	assert.Equal(t, Failure, res.Status)
	assert.Contains(t, res.Message, "unmatched examples")
}
