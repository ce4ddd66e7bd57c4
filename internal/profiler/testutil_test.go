package profiler

import (
	"context"
	"fmt"
	"strings"

	"github.com/pgEdge/dqcheck/internal/session"
)

// fakeBatch is an in-memory RecordBatch used to script query responses in
// tests without a real database.
type fakeBatch struct {
	names []string
	rows  [][]any
}

func (b *fakeBatch) NumRows() int { return len(b.rows) }
func (b *fakeBatch) NumCols() int {
	if len(b.names) > 0 {
		return len(b.names)
	}
	if len(b.rows) > 0 {
		return len(b.rows[0])
	}
	return 0
}
func (b *fakeBatch) ColumnName(i int) string {
	if i < len(b.names) {
		return b.names[i]
	}
	return ""
}
func (b *fakeBatch) ColumnType(r, i int) session.ColumnType {
	switch b.rows[r][i].(type) {
	case int64:
		return session.Int64Type
	case float64:
		return session.Float64Type
	case string:
		return session.StringType
	case bool:
		return session.BoolType
	default:
		return session.NullType
	}
}
func (b *fakeBatch) Int64(r, i int) int64     { return b.rows[r][i].(int64) }
func (b *fakeBatch) Float64(r, i int) float64 { return b.rows[r][i].(float64) }
func (b *fakeBatch) String(r, i int) string   { return b.rows[r][i].(string) }
func (b *fakeBatch) Bool(r, i int) bool       { return b.rows[r][i].(bool) }

// scriptedSession answers a query by matching the first substring key found
// in it, in map-iteration-independent priority order supplied by order.
type scriptedSession struct {
	responses map[string][]session.RecordBatch
	order     []string
	err       map[string]error
}

func (s *scriptedSession) SQL(ctx context.Context, query string) (session.Pending, error) {
	for _, key := range s.order {
		if strings.Contains(query, key) {
			if err, ok := s.err[key]; ok {
				return nil, err
			}
			return &scriptedPending{batches: s.responses[key]}, nil
		}
	}
	return nil, fmt.Errorf("scriptedSession: no match for query %q", query)
}

type scriptedPending struct {
	batches []session.RecordBatch
}

func (p *scriptedPending) Collect(ctx context.Context) ([]session.RecordBatch, error) {
	return p.batches, nil
}
