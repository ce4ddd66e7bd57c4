// Package check defines Check: a named, severity-tagged, ordered list of
// constraints. A Check owns no execution logic — the suite orchestrator
// drives its constraints sequentially, the same division of labour the
// teacher's scanner.RunScan has over its check.Check registry.
package check

import (
	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/dqerr"
	"github.com/pgEdge/dqcheck/internal/severity"
)

// Check is an immutable, named group of constraints sharing a severity
// level.
type Check struct {
	name        string
	level       severity.Level
	description string
	constraints []constraint.Constraint
}

// Name returns the check's name.
func (c *Check) Name() string { return c.name }

// Level returns the check's severity level.
func (c *Check) Level() severity.Level { return c.level }

// Description returns the check's human-readable description, if any.
func (c *Check) Description() string { return c.description }

// Constraints returns the check's ordered constraints.
func (c *Check) Constraints() []constraint.Constraint {
	out := make([]constraint.Constraint, len(c.constraints))
	copy(out, c.constraints)
	return out
}

// Builder constructs a Check from pre-constructed constraints. A nil
// constraint passed to AddConstraint surfaces as a ConfigurationError from
// Build; MustBuild panics on the same error instead.
type Builder struct {
	name        string
	level       severity.Level
	description string
	constraints []constraint.Constraint
	err         error
}

// NewBuilder starts a Check builder with the default severity (Warning).
func NewBuilder(name string) *Builder {
	return &Builder{name: name, level: severity.Default}
}

// WithLevel sets the check's severity level.
func (b *Builder) WithLevel(level severity.Level) *Builder {
	b.level = level
	return b
}

// WithDescription sets the check's description.
func (b *Builder) WithDescription(desc string) *Builder {
	b.description = desc
	return b
}

// AddConstraint appends a pre-constructed constraint.
func (b *Builder) AddConstraint(c constraint.Constraint) *Builder {
	if c == nil {
		b.err = dqerr.Config("Builder.AddConstraint", "constraint must not be nil")
		return b
	}
	b.constraints = append(b.constraints, c)
	return b
}

// Build finalises the Check, returning a ConfigurationError if the name is
// empty or a prior AddConstraint call failed.
func (b *Builder) Build() (*Check, error) {
	if b.err != nil {
		return nil, b.err
	}
	if b.name == "" {
		return nil, dqerr.Config("Builder.Build", "check name must not be empty")
	}
	return &Check{
		name:        b.name,
		level:       b.level,
		description: b.description,
		constraints: append([]constraint.Constraint(nil), b.constraints...),
	}, nil
}

// MustBuild panics if Build returns an error.
func (b *Builder) MustBuild() *Check {
	c, err := b.Build()
	if err != nil {
		panic(err)
	}
	return c
}
