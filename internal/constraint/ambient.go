package constraint

import (
	"context"

	"github.com/pgEdge/dqcheck/internal/vctx"
)

func ambientTableName(ctx context.Context) string {
	return vctx.FromContext(ctx).TableName
}
