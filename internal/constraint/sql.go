package constraint

import (
	"context"

	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/session"
)

// runCollect submits query and collects all resulting batches. It is the
// single suspension-point chokepoint every variant's Evaluate goes
// through, matching spec section 5: every SQL submission and every
// result-batch collection is a suspension point, and no caller may hold a
// lock across one.
func runCollect(ctx context.Context, sess session.Session, query string) ([]session.RecordBatch, error) {
	pending, err := sess.SQL(ctx, query)
	if err != nil {
		return nil, dqerr.Exec("runCollect", "query submission failed", err)
	}
	batches, err := pending.Collect(ctx)
	if err != nil {
		return nil, dqerr.Exec("runCollect", "result collection failed", err)
	}
	return batches, nil
}

// defaultViolationLimit is the default N of spec section 4.3.9.
const defaultViolationLimit = 100

// maxCrossTableSumGroups bounds how many grouped-sum rows CrossTableSum
// will decode from the full outer join before giving up on inspecting the
// rest; the bound is surfaced in the result message rather than applied
// silently.
const maxCrossTableSumGroups = 100000
