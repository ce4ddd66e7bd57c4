package multisource

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/severity"
)

type fakeConstraint struct {
	name  string
	delay time.Duration
	res   constraint.Result
	err   error
}

func (f *fakeConstraint) Name() string                 { return f.name }
func (f *fakeConstraint) Metadata() constraint.Metadata { return constraint.Metadata{} }
func (f *fakeConstraint) Column() (string, bool)       { return "", false }
func (f *fakeConstraint) Evaluate(ctx context.Context, sess session.Session) (constraint.Result, error) {
	if f.delay > 0 {
		select {
		case <-time.After(f.delay):
		case <-ctx.Done():
			return constraint.Result{}, ctx.Err()
		}
	}
	return f.res, f.err
}

type fakeSession struct{}

func (fakeSession) SQL(ctx context.Context, query string) (session.Pending, error) { return nil, nil }

func TestRegisterTableRejectsDuplicate(t *testing.T) {
	v := New(DefaultConfig())
	require.NoError(t, v.RegisterTable("orders"))
	assert.Error(t, v.RegisterTable("orders"))
}

func TestRegisterTableRejectsBadIdentifier(t *testing.T) {
	v := New(DefaultConfig())
	assert.Error(t, v.RegisterTable("orders; drop table users"))
}

func TestAddConstraintRejectsUnregisteredTable(t *testing.T) {
	v := New(DefaultConfig())
	require.NoError(t, v.RegisterTable("orders"))
	err := v.AddConstraint(&fakeConstraint{name: "sum_matches"}, severity.Error, "orders", "invoices")
	assert.Error(t, err)
}

func TestValidateNoCatalogCheckerSkipsPrecheck(t *testing.T) {
	v := New(DefaultConfig())
	require.NoError(t, v.RegisterTable("orders"))
	require.NoError(t, v.AddConstraint(&fakeConstraint{name: "ok", res: constraint.SuccessResult(1, "")}, severity.Error, "orders"))

	report, err := v.Validate(context.Background(), fakeSession{})
	require.NoError(t, err)
	assert.Equal(t, 1, report.Passed)
	assert.Zero(t, report.Failed)
}

func TestValidateRecordsFailure(t *testing.T) {
	v := New(DefaultConfig())
	require.NoError(t, v.RegisterTable("orders"))
	require.NoError(t, v.AddConstraint(&fakeConstraint{name: "sums_match", res: constraint.FailureResult(0, "mismatch")}, severity.Error, "orders"))

	report, err := v.Validate(context.Background(), fakeSession{})
	require.NoError(t, err)
	require.Len(t, report.Issues, 1)
	assert.Equal(t, "mismatch", report.Issues[0].Message)
}

func TestValidateTimeoutProducesFailureWithMessage(t *testing.T) {
	cfg := NewConfig(4, 512, 30, false)
	v := New(cfg)
	require.NoError(t, v.RegisterTable("orders"))

	slow := &fakeConstraint{name: "slow_join", delay: 10 * time.Second}
	require.NoError(t, v.AddConstraint(slow, severity.Error, "orders"))

	issue, status := v.runOne(context.Background(), fakeSession{}, v.constraints[0], 50*time.Millisecond)
	assert.Equal(t, constraint.Failure, status)
	assert.Contains(t, issue.Message, "timed out")
	assert.Contains(t, issue.Message, "50ms")
}

func TestDefaultConfigValues(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 4, cfg.MaxConcurrentValidations)
	assert.Equal(t, 512, cfg.MemoryBudgetMB)
	assert.Equal(t, 300, cfg.ValidationTimeoutSeconds)
	assert.False(t, cfg.EnableQueryOptimization)
}

func TestNewConfigClampsToBounds(t *testing.T) {
	cfg := NewConfig(0, 1, 1, true)
	assert.Equal(t, 1, cfg.MaxConcurrentValidations)
	assert.Equal(t, 64, cfg.MemoryBudgetMB)
	assert.Equal(t, 30, cfg.ValidationTimeoutSeconds)

	cfg = NewConfig(100, 100000, 100000, false)
	assert.Equal(t, 32, cfg.MaxConcurrentValidations)
	assert.Equal(t, 4096, cfg.MemoryBudgetMB)
	assert.Equal(t, 3600, cfg.ValidationTimeoutSeconds)
}
