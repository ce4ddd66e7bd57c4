package constraint

import (
	"context"

	"github.com/pgEdge/dqcheck/internal/session"
)

// fakeBatch is an in-memory RecordBatch used to script query responses.
type fakeBatch struct {
	names []string
	rows  [][]any
}

func row(vals ...any) []any { return vals }

func batch(names []string, rows ...[]any) *fakeBatch {
	return &fakeBatch{names: names, rows: rows}
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

// fixedSession returns the same batches for every query issued against it,
// regardless of the SQL text — sufficient for constraints that issue a
// single query per Evaluate call.
type fixedSession struct {
	batches []session.RecordBatch
	err     error
}

func sessionOf(batches ...session.RecordBatch) *fixedSession {
	return &fixedSession{batches: batches}
}

func (s *fixedSession) SQL(ctx context.Context, query string) (session.Pending, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &fixedPending{batches: s.batches}, nil
}

type fixedPending struct {
	batches []session.RecordBatch
	err     error
}

func (p *fixedPending) Collect(ctx context.Context) ([]session.RecordBatch, error) {
	if p.err != nil {
		return nil, p.err
	}
	return p.batches, nil
}

// queuedSession answers successive SQL calls with successive batch sets,
// for constraints that issue more than one query per Evaluate call.
type queuedSession struct {
	queue [][]session.RecordBatch
	pos   int
}

func (s *queuedSession) SQL(ctx context.Context, query string) (session.Pending, error) {
	if s.pos >= len(s.queue) {
		return &fixedPending{batches: nil}, nil
	}
	b := s.queue[s.pos]
	s.pos++
	return &fixedPending{batches: b}, nil
}
