package pgxsession

import (
	"context"
	"fmt"
	"math/big"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/session"
)

// Session adapts a pgxpool.Pool to the session.Session contract.
type Session struct {
	pool *pgxpool.Pool
}

// New wraps an already-connected pool.
func New(pool *pgxpool.Pool) *Session { return &Session{pool: pool} }

// SQL submits query for execution and returns a handle whose Collect
// runs it and buffers every row into RecordBatches.
func (s *Session) SQL(ctx context.Context, query string) (session.Pending, error) {
	return &pending{pool: s.pool, query: query}, nil
}

// TableExists satisfies the multisource package's optional catalog
// pre-check.
func (s *Session) TableExists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM information_schema.tables WHERE table_name = $1)`, name).Scan(&exists)
	if err != nil {
		return false, dqerr.Exec("pgxsession.TableExists", "catalog lookup failed", err)
	}
	return exists, nil
}

type pending struct {
	pool  *pgxpool.Pool
	query string
}

// Collect runs the query and decodes the result into one in-memory
// RecordBatch. The core never holds a suspension point across a lock, so
// buffering here (rather than streaming) keeps the session boundary the
// only place row decoding happens.
func (p *pending) Collect(ctx context.Context) ([]session.RecordBatch, error) {
	rows, err := p.pool.Query(ctx, p.query)
	if err != nil {
		return nil, dqerr.Exec("pgxsession", fmt.Sprintf("query failed: %s", p.query), err)
	}
	defer rows.Close()

	fields := rows.FieldDescriptions()
	names := make([]string, len(fields))
	for i, f := range fields {
		names[i] = f.Name
	}

	batch := &recordBatch{names: names}
	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, dqerr.Exec("pgxsession", "row decode failed", err)
		}
		row := make([]cell, len(vals))
		for i, v := range vals {
			row[i] = decodeCell(v)
		}
		batch.rows = append(batch.rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, dqerr.Exec("pgxsession", "row iteration failed", err)
	}
	return []session.RecordBatch{batch}, nil
}

type cell struct {
	typ session.ColumnType
	i   int64
	f   float64
	s   string
	b   bool
}

// decodeCell classifies a pgx-decoded value into the session package's
// narrow scalar taxonomy. pgtype.Numeric (PostgreSQL NUMERIC/DECIMAL) is
// converted to float64 by numericToFloat (Int scaled by 10^Exp) since the
// engine-facing API only ever needs ratios and comparisons, never arbitrary
// precision; a Numeric that is not Valid decodes as NULL.
func decodeCell(v any) cell {
	switch t := v.(type) {
	case nil:
		return cell{typ: session.NullType}
	case int64:
		return cell{typ: session.Int64Type, i: t}
	case int32:
		return cell{typ: session.Int64Type, i: int64(t)}
	case int16:
		return cell{typ: session.Int64Type, i: int64(t)}
	case float64:
		return cell{typ: session.Float64Type, f: t}
	case float32:
		return cell{typ: session.Float64Type, f: float64(t)}
	case bool:
		return cell{typ: session.BoolType, b: t}
	case string:
		return cell{typ: session.StringType, s: t}
	case []byte:
		return cell{typ: session.StringType, s: string(t)}
	case pgtype.Numeric:
		f, err := numericToFloat(t)
		if err != nil {
			return cell{typ: session.NullType}
		}
		return cell{typ: session.Float64Type, f: f}
	case fmt.Stringer:
		return cell{typ: session.StringType, s: t.String()}
	default:
		return cell{typ: session.StringType, s: fmt.Sprintf("%v", t)}
	}
}

func numericToFloat(n pgtype.Numeric) (float64, error) {
	if !n.Valid {
		return 0, dqerr.Exec("pgxsession", "numeric value not valid", nil)
	}
	f := new(big.Float).SetInt(n.Int)
	if n.Exp != 0 {
		scale := new(big.Float).SetFloat64(1)
		base := new(big.Float).SetInt64(10)
		exp := n.Exp
		if exp > 0 {
			for i := int32(0); i < exp; i++ {
				scale.Mul(scale, base)
			}
			f.Mul(f, scale)
		} else {
			for i := int32(0); i > exp; i-- {
				scale.Mul(scale, base)
			}
			f.Quo(f, scale)
		}
	}
	out, _ := f.Float64()
	return out, nil
}

type recordBatch struct {
	names []string
	rows  [][]cell
}

func (b *recordBatch) NumRows() int { return len(b.rows) }
func (b *recordBatch) NumCols() int {
	if len(b.rows) == 0 {
		return len(b.names)
	}
	return len(b.rows[0])
}
func (b *recordBatch) ColumnName(i int) string {
	if i < 0 || i >= len(b.names) {
		return ""
	}
	return b.names[i]
}
func (b *recordBatch) ColumnType(r, i int) session.ColumnType { return b.rows[r][i].typ }
func (b *recordBatch) Int64(r, i int) int64                   { return b.rows[r][i].i }
func (b *recordBatch) Float64(r, i int) float64               { return b.rows[r][i].f }
func (b *recordBatch) String(r, i int) string                 { return b.rows[r][i].s }
func (b *recordBatch) Bool(r, i int) bool                     { return b.rows[r][i].b }
