// Package constraint implements the constraint taxonomy of spec section 3:
// a tagged sum of concrete variants rather than an open inheritance
// hierarchy, each lowering itself to SQL and exposing a narrow capability
// interface so the orchestrator (and third-party plugins) can treat every
// variant uniformly.
package constraint

import (
	"context"

	"github.com/pgEdge/dqcheck/internal/session"
)

// Constraint is the capability interface the orchestrator drives. Every
// concrete variant below (Size, Completeness, Uniqueness, ...) implements
// it. Constraints are immutable after construction — construction is where
// invariants (threshold ranges, non-empty column lists, valid identifiers,
// valid regexes) are validated, never at Evaluate time.
type Constraint interface {
	// Name returns a human-readable constraint name used in reports and
	// telemetry attributes.
	Name() string
	// Metadata returns the constraint's reporting metadata bag.
	Metadata() Metadata
	// Column returns the single column this constraint targets, if it
	// has exactly one (ok is false for multi-column or columnless
	// constraints such as Size).
	Column() (col string, ok bool)
	// Evaluate resolves the ambient ValidationContext via ctx, lowers
	// itself to SQL, runs it against sess, decodes the result, and
	// returns a Result. It never panics and never returns a Skipped
	// status via the error return — Skipped is only ever a Result
	// value, per spec section 7.
	Evaluate(ctx context.Context, sess session.Session) (Result, error)
}

// tableName resolves the ambient table name via vctx, falling back to the
// package default when no scope was established. Defined here to avoid
// every variant importing vctx directly in a dozen near-identical lines.
func tableName(ctx context.Context) string {
	return ambientTableName(ctx)
}
