package suite

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/dqcheck/internal/check"
	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/severity"
	"github.com/pgEdge/dqcheck/internal/telemetry"
	"github.com/pgEdge/dqcheck/internal/vctx"
)

// Suite is an immutable, named collection of Checks bound to a table.
type Suite struct {
	name      string
	tableName string
	checks    []*check.Check
	telemetry *telemetry.Handle
}

// Builder constructs a Suite.
type Builder struct {
	name      string
	tableName string
	checks    []*check.Check
	telemetry *telemetry.Handle
	err       error
}

// NewBuilder starts a Suite builder targeting tableName.
func NewBuilder(name, tableName string) *Builder {
	return &Builder{name: name, tableName: tableName}
}

// WithTelemetry attaches a telemetry handle. Omit to run with no-op
// tracing/metrics.
func (b *Builder) WithTelemetry(h *telemetry.Handle) *Builder {
	b.telemetry = h
	return b
}

// AddCheck appends a pre-built check.
func (b *Builder) AddCheck(c *check.Check) *Builder {
	if c == nil {
		b.err = dqerr.Config("Builder.AddCheck", "check must not be nil")
		return b
	}
	b.checks = append(b.checks, c)
	return b
}

// Build finalises the Suite.
func (b *Builder) Build() (*Suite, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, dqerr.Config("Builder.Build", "suite name must not be empty")
	}
	if err := ident.ValidateIdentifier(b.tableName); err != nil {
		return nil, err
	}
	th := b.telemetry
	if th == nil {
		th = telemetry.NoOp()
	}
	return &Suite{
		name:      b.name,
		tableName: b.tableName,
		checks:    append([]*check.Check(nil), b.checks...),
		telemetry: th,
	}, nil
}

// MustBuild panics if Build returns an error.
func (b *Builder) MustBuild() *Suite {
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
}

// FilterChecks returns a new Suite running only the checks whose
// constraints' Metadata()[constraint.MetaConstraintType] matches one of
// categories. An empty categories list is a no-op.
func (s *Suite) FilterChecks(categories []string) *Suite {
	if len(categories) == 0 {
		return s
	}
	want := make(map[string]bool, len(categories))
	for _, c := range categories {
		want[c] = true
	}
	var kept []*check.Check
	for _, c := range s.checks {
		for _, con := range c.Constraints() {
			if t, ok := con.Metadata()[constraint.MetaConstraintType].(string); ok && want[t] {
				kept = append(kept, c)
				break
			}
		}
	}
	return &Suite{name: s.name, tableName: s.tableName, checks: kept, telemetry: s.telemetry}
}

// Checks returns the suite's ordered checks.
func (s *Suite) Checks() []*check.Check { return append([]*check.Check(nil), s.checks...) }

// Run executes every check's constraints against sess in order, per spec
// section 4.8.
func (s *Suite) Run(ctx context.Context, sess session.Session) ValidationResult {
	start := time.Now()

	ctx, span := s.telemetry.StartSuiteSpan(ctx, s.name, len(s.checks))
	s.telemetry.SetActiveValidations(ctx, 1)
	defer s.telemetry.SetActiveValidations(ctx, -1)
	defer span.End()

	s.recordRowCount(ctx, sess)

	ctx = vctx.With(ctx, vctx.ValidationContext{TableName: s.tableName})

	metrics := newValidationMetrics()
	var issues []ValidationIssue
	hasErrors := false

	for _, c := range s.checks {
		checkStart := time.Now()
		cctx, checkSpan := s.telemetry.StartCheckSpan(ctx, c.Name(), len(c.Constraints()))

		for _, con := range c.Constraints() {
			metrics.Total++
			conCtx, conSpan := s.telemetry.StartConstraintSpan(cctx, con.Name(), firstCol(con))

			result, err := con.Evaluate(conCtx, sess)
			if err != nil {
				metrics.Failed++
				issues = append(issues, ValidationIssue{
					CheckName:      c.Name(),
					ConstraintName: con.Name(),
					Level:          c.Level(),
					Message:        err.Error(),
				})
				if c.Level() == severity.Error {
					hasErrors = true
				}
				s.telemetry.RecordFailed(conCtx)
				s.telemetry.EndConstraintSpan(conCtx, conSpan, "error", err.Error(), nil)
				continue
			}

			switch result.Status {
			case constraint.Success:
				metrics.Passed++
				if result.Metric != nil {
					metrics.CustomMetrics[fmt.Sprintf("%s.%s", c.Name(), con.Name())] = *result.Metric
				}
				s.telemetry.RecordPassed(conCtx)
			case constraint.Failure:
				metrics.Failed++
				issues = append(issues, ValidationIssue{
					CheckName:      c.Name(),
					ConstraintName: con.Name(),
					Level:          c.Level(),
					Message:        result.Message,
					Metric:         result.Metric,
				})
				if c.Level() == severity.Error {
					hasErrors = true
				}
				s.telemetry.RecordFailed(conCtx)
			case constraint.Skipped:
				metrics.Skipped++
			}

			s.telemetry.EndConstraintSpan(conCtx, conSpan, result.Status.String(), result.Message, result.Metric)
		}

		checkSpan.End()
		s.telemetry.RecordCheckDuration(cctx, time.Since(checkStart).Seconds())
	}

	metrics.ExecutionTimeMs = time.Since(start).Milliseconds()
	s.telemetry.RecordSuiteDuration(ctx, time.Since(start).Seconds())

	report := ValidationReport{SuiteName: s.name, Issues: issues, Metrics: *metrics}
	return ValidationResult{Ok: !hasErrors, Report: report}
}

func firstCol(c constraint.Constraint) string {
	col, ok := c.Column()
	if !ok {
		return ""
	}
	return col
}

// recordRowCount issues a best-effort SELECT COUNT(*) against the suite's
// table and, if it succeeds, records it on the rows-processed counter.
// Failure here is swallowed — it is diagnostic, not part of the run's
// pass/fail outcome.
func (s *Suite) recordRowCount(ctx context.Context, sess session.Session) {
	escaped, err := ident.ValidateAndEscape(s.tableName)
	if err != nil {
		return
	}
	pending, err := sess.SQL(ctx, fmt.Sprintf("SELECT COUNT(*) AS total FROM %s", escaped))
	if err != nil {
		return
	}
	batches, err := pending.Collect(ctx)
	if err != nil {
		return
	}
	vals, ok, err := session.FirstRowFloats(batches, 1)
	if err != nil || !ok {
		return
	}
	s.telemetry.RecordRowsProcessed(ctx, int64(vals[0]))
}
