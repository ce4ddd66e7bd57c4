package profiler

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/session"
)

func categoricalScript() *scriptedSession {
	return &scriptedSession{
		order: []string{"AS total", "LIMIT", "MIN(", "GROUP BY"},
		responses: map[string][]session.RecordBatch{
			"AS total": {&fakeBatch{rows: [][]any{{int64(10), int64(10), int64(2)}}}},
			"LIMIT":    {&fakeBatch{rows: [][]any{{"a"}, {"b"}}}},
			"GROUP BY": {&fakeBatch{rows: [][]any{{"a", int64(1)}, {"b", int64(1)}}}},
		},
	}
}

func TestProfileColumnsSequential(t *testing.T) {
	sess := categoricalScript()
	results, err := ProfileColumns(context.Background(), sess, DefaultConfig(), "orders", []string{"status", "region"}, 0)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "status", results[0].Column)
	assert.Equal(t, "region", results[1].Column)
}

func TestProfileColumnsConcurrentPreservesOrder(t *testing.T) {
	sess := categoricalScript()
	cols := []string{"status", "region", "channel", "tier"}
	results, err := ProfileColumns(context.Background(), sess, DefaultConfig(), "orders", cols, 4)
	require.NoError(t, err)
	require.Len(t, results, len(cols))
	for i, col := range cols {
		assert.Equal(t, col, results[i].Column)
	}
}

func TestProfileColumnsPropagatesError(t *testing.T) {
	sess := categoricalScript()
	_, err := ProfileColumns(context.Background(), sess, DefaultConfig(), "orders; drop", []string{"status"}, 2)
	assert.Error(t, err)
}
