package suite

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/check"
	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/severity"
)

// fakeConstraint returns a fixed Result or error, for orchestrator tests
// that don't need real SQL lowering.
type fakeConstraint struct {
	name   string
	result constraint.Result
	err    error
}

func (f *fakeConstraint) Name() string               { return f.name }
func (f *fakeConstraint) Metadata() constraint.Metadata { return constraint.Metadata{} }
func (f *fakeConstraint) Column() (string, bool)     { return "", false }
func (f *fakeConstraint) Evaluate(ctx context.Context, sess session.Session) (constraint.Result, error) {
	return f.result, f.err
}

// fakeSession answers every SQL call with a handle whose Collect fails,
// enough for Suite.Run's best-effort row-count probe to fail silently.
type fakeSession struct{}

func (fakeSession) SQL(ctx context.Context, query string) (session.Pending, error) {
	return fakePending{}, nil
}

type fakePending struct{}

func (fakePending) Collect(ctx context.Context) ([]session.RecordBatch, error) {
	return nil, fmt.Errorf("no data source configured")
}

func buildCheck(t *testing.T, name string, level severity.Level, cons ...constraint.Constraint) *check.Check {
	t.Helper()
	b := check.NewBuilder(name).WithLevel(level)
	for _, c := range cons {
		b.AddConstraint(c)
	}
	c, err := b.Build()
	require.NoError(t, err)
	return c
}

func TestBuilderRejectsEmptyName(t *testing.T) {
	_, err := NewBuilder("", "orders").Build()
	assert.Error(t, err)
}

func TestBuilderRejectsBadTableName(t *testing.T) {
	_, err := NewBuilder("orders_suite", "drop table;").Build()
	assert.Error(t, err)
}

func TestBuilderRejectsNilCheck(t *testing.T) {
	_, err := NewBuilder("orders_suite", "orders").AddCheck(nil).Build()
	assert.Error(t, err)
}

func TestRunAllPassing(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Error,
		&fakeConstraint{name: "has_completeness", result: constraint.SuccessResult(1.0, "")})

	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	result := s.Run(context.Background(), fakeSession{})
	assert.True(t, result.Ok)
	assert.True(t, result.Success())
	assert.Equal(t, 1, result.Report.Metrics.Passed)
	assert.Empty(t, result.Report.Issues)
}

func TestRunErrorLevelFailureFailsSuite(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Error,
		&fakeConstraint{name: "has_completeness", result: constraint.FailureResult(0.5, "below threshold")})

	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	result := s.Run(context.Background(), fakeSession{})
	assert.False(t, result.Ok)
	require.Len(t, result.Report.Issues, 1)
	assert.Equal(t, "below threshold", result.Report.Issues[0].Message)
}

func TestRunWarningLevelFailureDoesNotFailSuite(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Warning,
		&fakeConstraint{name: "has_completeness", result: constraint.FailureResult(0.5, "below threshold")})

	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	result := s.Run(context.Background(), fakeSession{})
	assert.True(t, result.Ok)
	assert.Equal(t, 1, result.Report.Metrics.Failed)
}

func TestRunConstraintErrorCountsAsFailed(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Error,
		&fakeConstraint{name: "has_completeness", err: fmt.Errorf("query failed")})

	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	result := s.Run(context.Background(), fakeSession{})
	assert.False(t, result.Ok)
	require.Len(t, result.Report.Issues, 1)
	assert.Equal(t, "query failed", result.Report.Issues[0].Message)
}

func TestRunSkippedDoesNotFailSuite(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Error,
		&fakeConstraint{name: "has_completeness", result: constraint.SkippedResult("column not present")})

	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	result := s.Run(context.Background(), fakeSession{})
	assert.True(t, result.Ok)
	assert.Equal(t, 1, result.Report.Metrics.Skipped)
}

func TestFilterChecksNoOpOnEmpty(t *testing.T) {
	c1 := buildCheck(t, "completeness", severity.Error,
		&fakeConstraint{name: "has_completeness", result: constraint.SuccessResult(1.0, "")})
	s, err := NewBuilder("orders_suite", "orders").AddCheck(c1).Build()
	require.NoError(t, err)

	filtered := s.FilterChecks(nil)
	assert.Same(t, s, filtered)
}

func TestMustBuildPanicsOnError(t *testing.T) {
	assert.Panics(t, func() {
		NewBuilder("", "orders").MustBuild()
	})
}
