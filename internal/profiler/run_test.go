package profiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/session"
)

func TestProfileCategoricalColumn(t *testing.T) {
	sess := &scriptedSession{
		order: []string{"AS total", "LIMIT", "MIN(", "GROUP BY"},
		responses: map[string][]session.RecordBatch{
			"AS total": {&fakeBatch{rows: [][]any{{int64(100), int64(100), int64(3)}}}},
			"LIMIT":    {&fakeBatch{rows: [][]any{{"active"}, {"active"}, {"closed"}}}},
			"GROUP BY": {&fakeBatch{rows: [][]any{{"active", int64(2)}, {"closed", int64(1)}}}},
		},
	}

	p, err := Profile(context.Background(), sess, DefaultConfig(), "orders", "status")
	require.NoError(t, err)
	assert.Equal(t, int64(100), p.TotalRows)
	assert.Equal(t, int64(3), p.DistinctCount)
	assert.True(t, p.RanPass2)
	assert.False(t, p.RanPass3)
	require.Len(t, p.Categorical, 2)
	assert.Greater(t, p.Entropy, 0.0)
}

func TestProfileNumericColumn(t *testing.T) {
	cfg := Config{SampleSize: 1000, CardinalityThreshold: 1}
	sess := &scriptedSession{
		order: []string{"AS total", "LIMIT", "MIN(", "AVG(", "approx_percentile"},
		responses: map[string][]session.RecordBatch{
			"AS total":          {&fakeBatch{rows: [][]any{{int64(1000), int64(1000), int64(500)}}}},
			"LIMIT":             {&fakeBatch{rows: [][]any{{"10"}, {"20"}, {"30"}}}},
			"MIN(":              {&fakeBatch{rows: [][]any{{float64(1), float64(999)}}}},
			"AVG(":              {&fakeBatch{rows: [][]any{{float64(50), float64(10), float64(100)}}}},
			"approx_percentile": {&fakeBatch{rows: [][]any{{float64(75)}}}},
		},
	}

	p, err := Profile(context.Background(), sess, cfg, "orders", "amount")
	require.NoError(t, err)
	assert.True(t, p.RanPass3)
	assert.False(t, p.RanPass2)
	require.NotNil(t, p.Min)
	require.NotNil(t, p.Max)
	assert.Equal(t, float64(50), p.Numeric.Mean)
	assert.Equal(t, float64(75), p.Numeric.Quantiles[0.5])
}

func TestProfileEmptyTableReturnsZeroValue(t *testing.T) {
	sess := &scriptedSession{
		order:     []string{"AS total"},
		responses: map[string][]session.RecordBatch{"AS total": {&fakeBatch{rows: nil}}},
	}

	p, err := Profile(context.Background(), sess, DefaultConfig(), "orders", "status")
	require.NoError(t, err)
	assert.Zero(t, p.TotalRows)
}

func TestProfileRejectsBadIdentifier(t *testing.T) {
	_, err := Profile(context.Background(), &scriptedSession{}, DefaultConfig(), "orders; drop table x", "status")
	assert.Error(t, err)
}
