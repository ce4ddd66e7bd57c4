package session

import (
	"fmt"

	"github.com/pgEdge/dqcheck/internal/dqerr"
)

// FirstRowFloats extracts n scalar columns from position (row 0, col i)
// of the first non-empty batch, coercing Int64/Float64/Bool columns to
// float64. A type mismatch against a String column is an internal
// (Execution) error — it is never decoded silently. An empty result set
// (no batches, or a sole batch with zero rows) returns ok=false, which
// callers translate into a Skipped("No data") constraint result.
func FirstRowFloats(batches []RecordBatch, n int) (values []float64, ok bool, err error) {
	for _, b := range batches {
		if b.NumRows() == 0 {
			continue
		}
		if b.NumCols() < n {
			return nil, false, dqerr.Exec("FirstRowFloats", fmt.Sprintf("expected at least %d columns, got %d", n, b.NumCols()), nil)
		}
		out := make([]float64, n)
		for i := 0; i < n; i++ {
			v, err := scalarAsFloat(b, 0, i)
			if err != nil {
				return nil, false, err
			}
			out[i] = v
		}
		return out, true, nil
	}
	return nil, false, nil
}

// FirstRowScalar extracts a single arbitrary-typed scalar at (row 0, col
// i) of the first non-empty batch. ok is false when there are no rows.
func FirstRowScalar(batches []RecordBatch, i int) (value any, typ ColumnType, ok bool, err error) {
	for _, b := range batches {
		if b.NumRows() == 0 {
			continue
		}
		t := b.ColumnType(0, i)
		switch t {
		case Int64Type:
			return b.Int64(0, i), t, true, nil
		case Float64Type:
			return b.Float64(0, i), t, true, nil
		case StringType:
			return b.String(0, i), t, true, nil
		case BoolType:
			return b.Bool(0, i), t, true, nil
		case NullType:
			return nil, t, true, nil
		default:
			return nil, t, false, dqerr.Exec("FirstRowScalar", "unknown column type", nil)
		}
	}
	return nil, Unknown, false, nil
}

func scalarAsFloat(b RecordBatch, r, i int) (float64, error) {
	switch t := b.ColumnType(r, i); t {
	case Int64Type:
		return float64(b.Int64(r, i)), nil
	case Float64Type:
		return b.Float64(r, i), nil
	case NullType:
		return 0, nil
	case BoolType:
		if b.Bool(r, i) {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, dqerr.Exec("scalarAsFloat", fmt.Sprintf("column %d: expected numeric type, got string/unknown", i), nil)
	}
}

// Rows flattens every batch into rows of values indexed by column position
// (int64, float64, string, bool, or nil), bounded at limit entries — callers that request violation examples push
// LIMIT into the generated SQL (section 4.3.9) and additionally pass that
// same bound here so the decoder never grows its container past the SQL
// LIMIT, even if an engine implementation ignored it.
func Rows(batches []RecordBatch, limit int) [][]any {
	out := make([][]any, 0, limit)
	for _, b := range batches {
		for r := 0; r < b.NumRows() && len(out) < limit; r++ {
			row := make([]any, b.NumCols())
			for i := 0; i < b.NumCols(); i++ {
				switch b.ColumnType(r, i) {
				case Int64Type:
					row[i] = b.Int64(r, i)
				case Float64Type:
					row[i] = b.Float64(r, i)
				case StringType:
					row[i] = b.String(r, i)
				case BoolType:
					row[i] = b.Bool(r, i)
				default:
					row[i] = nil
				}
			}
			out = append(out, row)
		}
		if len(out) >= limit {
			break
		}
	}
	return out
}
