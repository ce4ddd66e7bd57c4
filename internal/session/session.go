// Package session defines the only I/O surface the core engine consumes:
// an abstract SQL-capable analytic query session and the columnar batches
// it returns. The core never parses data files and never knows which
// engine backs Session; internal/pgxsession supplies the reference
// implementation over jackc/pgx/v5.
package session

import "context"

// Session issues SQL text against an analytic query engine and collects
// the resulting record batches. Both methods are suspension points: no
// caller may hold a lock across a call to either.
type Session interface {
	// SQL submits a statement for execution, returning a handle whose
	// results are obtained via Collect.
	SQL(ctx context.Context, query string) (Pending, error)
}

// Pending represents an in-flight or completed query.
type Pending interface {
	// Collect gathers all result batches, blocking until the query
	// completes or ctx is cancelled.
	Collect(ctx context.Context) ([]RecordBatch, error)
}

// ColumnType enumerates the scalar types the decoder understands.
type ColumnType int

const (
	Unknown ColumnType = iota
	Int64Type
	Float64Type
	StringType
	BoolType
	NullType
)

// RecordBatch exposes columns by index with typed downcasts. Implementations
// are expected to be immutable snapshots of one engine result page.
type RecordBatch interface {
	// NumRows returns the number of rows in this batch.
	NumRows() int
	// NumCols returns the number of columns in this batch.
	NumCols() int
	// ColumnName returns the name of column i, if known.
	ColumnName(i int) string
	// ColumnType reports the scalar type of column i at row r.
	ColumnType(r, i int) ColumnType
	// Int64 downcasts (r, i) to an int64. Only valid when ColumnType is Int64Type.
	Int64(r, i int) int64
	// Float64 downcasts (r, i) to a float64. Only valid when ColumnType is Float64Type.
	Float64(r, i int) float64
	// String downcasts (r, i) to a UTF-8 string. Only valid when ColumnType is StringType.
	String(r, i int) string
	// Bool downcasts (r, i) to a bool. Only valid when ColumnType is BoolType.
	Bool(r, i int) bool
}
