// Package multisource implements the Multi-Source Validator of spec
// section 4.9: named-table registration, cross-table constraint wiring
// with configuration-time reference checking, and a timeout-bounded run
// that reports expiry as a Failure rather than letting it propagate.
package multisource

import (
	"context"
	"fmt"
	"time"

	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/ident"
	"github.com/pgEdge/dqcheck/internal/session"
	"github.com/pgEdge/dqcheck/internal/severity"
)

// crossTableConstraint pairs a constraint with the table names it
// references, recorded at registration time so Validate can catalog-check
// them without re-parsing the constraint's SQL.
type crossTableConstraint struct {
	constraint constraint.Constraint
	tables     []string
	level      severity.Level
}

// Validator registers named tables and the cross-table constraints that
// span them.
type Validator struct {
	tables      map[string]bool
	constraints []crossTableConstraint
	config      Config
}

// New creates an empty Validator with the given budgets.
func New(cfg Config) *Validator {
	return &Validator{tables: make(map[string]bool), config: cfg}
}

// RegisterTable registers a caller-chosen table name. Duplicate or
// invalid names are a ConfigurationError.
func (v *Validator) RegisterTable(name string) error {
	if err := ident.ValidateIdentifier(name); err != nil {
		return err
	}
	if v.tables[name] {
		return dqerr.Configf("Validator.RegisterTable", "table %q already registered", name)
	}
	v.tables[name] = true
	return nil
}

// AddConstraint registers a cross-table constraint referencing tables by
// name. Every name must already be registered via RegisterTable; an
// unregistered reference is a ConfigurationError raised here, not at run
// time.
func (v *Validator) AddConstraint(c constraint.Constraint, level severity.Level, refTables ...string) error {
	for _, t := range refTables {
		if !v.tables[t] {
			return dqerr.Configf("Validator.AddConstraint", "constraint %q references unregistered table %q", c.Name(), t)
		}
	}
	v.constraints = append(v.constraints, crossTableConstraint{constraint: c, tables: append([]string(nil), refTables...), level: level})
	return nil
}

// Issue is a cross-table validation outcome, mirroring suite.ValidationIssue.
type Issue struct {
	ConstraintName string
	Level          severity.Level
	Message        string
	Metric         *float64
}

// Report is the outcome of one Validate call.
type Report struct {
	Issues    []Issue
	Passed    int
	Failed    int
	Skipped   int
}

// catalogChecker is implemented by sessions that can confirm table
// presence. pgxsession implements this; a fake session in tests may
// choose not to, in which case Validate skips the catalog pre-check.
type catalogChecker interface {
	TableExists(ctx context.Context, name string) (bool, error)
}

// Validate confirms every registered table is present in the engine's
// catalog, then runs each cross-table constraint under its own timeout.
func (v *Validator) Validate(ctx context.Context, sess session.Session) (Report, error) {
	if cc, ok := sess.(catalogChecker); ok {
		for name := range v.tables {
			exists, err := cc.TableExists(ctx, name)
			if err != nil {
				return Report{}, dqerr.Exec("Validator.Validate", "catalog lookup failed", err)
			}
			if !exists {
				return Report{}, dqerr.Configf("Validator.Validate", "registered table %q not found in catalog", name)
			}
		}
	}

	timeout := time.Duration(v.config.ValidationTimeoutSeconds) * time.Second
	perConstraint := PerConstraintTimeout
	if timeout < perConstraint {
		perConstraint = timeout
	}

	var report Report
	for _, cc := range v.constraints {
		issue, status := v.runOne(ctx, sess, cc, perConstraint)
		switch status {
		case constraint.Success:
			report.Passed++
		case constraint.Skipped:
			report.Skipped++
		default:
			report.Failed++
			report.Issues = append(report.Issues, issue)
		}
	}
	return report, nil
}

func (v *Validator) runOne(ctx context.Context, sess session.Session, cc crossTableConstraint, timeout time.Duration) (Issue, constraint.Status) {
	cctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type outcome struct {
		result constraint.Result
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		r, err := cc.constraint.Evaluate(cctx, sess)
		done <- outcome{r, err}
	}()

	select {
	case <-cctx.Done():
		return Issue{
			ConstraintName: cc.constraint.Name(),
			Level:          cc.level,
			Message:        fmt.Sprintf("constraint %q timed out after %s", cc.constraint.Name(), timeout),
		}, constraint.Failure
	case o := <-done:
		if o.err != nil {
			return Issue{ConstraintName: cc.constraint.Name(), Level: cc.level, Message: o.err.Error()}, constraint.Failure
		}
		if o.result.Status == constraint.Failure {
			return Issue{
				ConstraintName: cc.constraint.Name(),
				Level:          cc.level,
				Message:        o.result.Message,
				Metric:         o.result.Metric,
			}, constraint.Failure
		}
		return Issue{}, o.result.Status
	}
}
