package constraint

import (
	"context"
	"fmt"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
)

// Size asserts that the target table's row count satisfies an Assertion.
type Size struct {
	assertion assertion.Assertion
}

// NewSize constructs a Size constraint.
func NewSize(a assertion.Assertion) *Size {
	return &Size{assertion: a}
}

func (s *Size) Name() string { return "size" }

func (s *Size) Metadata() Metadata {
	return Metadata{MetaConstraintType: "size", MetaThreshold: s.assertion.Description()}
}

func (s *Size) Column() (string, bool) { return "", false }

func (s *Size) Evaluate(ctx context.Context, sess session.Session) (Result, error) {
	table, err := ident.ValidateAndEscape(tableName(ctx))
	if err != nil {
		return Result{}, err
	}
	query := fmt.Sprintf(`SELECT COUNT(*) AS total FROM %s`, table)
	batches, err := runCollect(ctx, sess, query)
	if err != nil {
		return Result{}, err
	}
	vals, ok, err := session.FirstRowFloats(batches, 1)
	if err != nil {
		return Result{}, err
	}
	if !ok {
		return SkippedResult("No data to validate"), nil
	}
	count := vals[0]
	if s.assertion.Evaluate(count) {
		return SuccessResult(count, fmt.Sprintf("row count %.0f %s", count, s.assertion.Description())), nil
	}
	return FailureResult(count, fmt.Sprintf("row count %.0f does not satisfy: %s", count, s.assertion.Description())), nil
}
