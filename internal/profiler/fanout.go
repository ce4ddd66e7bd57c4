package profiler

import (
	"context"

	"github.com/pgEdge/dqcheck/internal/session"
	"golang.org/x/sync/errgroup"
)

// ProfileColumns profiles each of columns against table, optionally
// fanning out one task per column (spec section 4.10's "Parallelism").
// When maxConcurrent <= 1, columns are profiled sequentially in order;
// otherwise up to maxConcurrent columns profile concurrently via
// errgroup, each running its three passes sequentially as required.
func ProfileColumns(ctx context.Context, sess session.Session, cfg Config, table string, columns []string, maxConcurrent int) ([]ColumnProfile, error) {
	results := make([]ColumnProfile, len(columns))

	if maxConcurrent <= 1 {
		for i, col := range columns {
			p, err := Profile(ctx, sess, cfg, table, col)
			if err != nil {
				return nil, err
			}
			results[i] = p
		}
		return results, nil
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)
	for i, col := range columns {
		i, col := i, col
		g.Go(func() error {
			p, err := Profile(gctx, sess, cfg, table, col)
			if err != nil {
				return err
			}
			results[i] = p
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
