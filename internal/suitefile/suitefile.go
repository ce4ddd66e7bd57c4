// Package suitefile parses a YAML suite definition into a suite.Suite,
// giving the CLI a declarative entry point without requiring a caller to
// write Go against the constraint builders directly. It covers the
// common constraint shapes; anything more specialised is expected to be
// wired up in Go using internal/constraint directly.
package suitefile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pgEdge/dqcheck/internal/assertion"
	"github.com/pgEdge/dqcheck/internal/check"
	"github.com/pgEdge/dqcheck/internal/constraint"
	"github.com/pgEdge/dqcheck/internal/severity"
	"github.com/pgEdge/dqcheck/internal/suite"
)

// File is the top-level YAML shape.
type File struct {
	Suite string      `yaml:"suite"`
	Table string      `yaml:"table"`
	Checks []CheckSpec `yaml:"checks"`
}

// CheckSpec describes one Check.
type CheckSpec struct {
	Name        string           `yaml:"name"`
	Level       string           `yaml:"level"`
	Description string           `yaml:"description"`
	Constraints []ConstraintSpec `yaml:"constraints"`
}

// ConstraintSpec describes one constraint. Type selects which builder is
// invoked; the remaining fields are interpreted according to Type.
type ConstraintSpec struct {
	Type      string   `yaml:"type"`
	Column    string   `yaml:"column"`
	Columns   []string `yaml:"columns"`
	Threshold float64  `yaml:"threshold"`
	Tolerance float64  `yaml:"tolerance"`
	Min       float64  `yaml:"min"`
	Max       float64  `yaml:"max"`
}

// Load reads a YAML suite file from path and builds a suite.Suite.
func Load(path string) (*suite.Suite, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return Build(f)
}

// Build constructs a suite.Suite from an already-parsed File.
func Build(f File) (*suite.Suite, error) {
	sb := suite.NewBuilder(f.Suite, f.Table)
	for _, cs := range f.Checks {
		level, err := severity.Parse(cs.Level)
		if err != nil {
			level = severity.Default
		}
		cb := check.NewBuilder(cs.Name).WithLevel(level).WithDescription(cs.Description)
		for _, conSpec := range cs.Constraints {
			con, err := buildConstraint(conSpec)
			if err != nil {
				return nil, fmt.Errorf("check %q: %w", cs.Name, err)
			}
			cb.AddConstraint(con)
		}
		c, err := cb.Build()
		if err != nil {
			return nil, err
		}
		sb.AddCheck(c)
	}
	return sb.Build()
}

func buildConstraint(cs ConstraintSpec) (constraint.Constraint, error) {
	switch cs.Type {
	case "is_complete", "has_completeness":
		threshold := cs.Threshold
		if cs.Type == "is_complete" {
			threshold = 1.0
		}
		return constraint.NewCompleteness([]string{cs.Column}, constraint.All(), threshold)
	case "is_unique":
		return constraint.NewUniqueness([]string{cs.Column}, constraint.FullUniqueness(assertion.NewGreaterThanOrEqual(1.0)))
	case "has_min":
		return constraint.NewStatistical(cs.Column, constraint.StatMin, assertion.NewGreaterThanOrEqual(cs.Min))
	case "has_max":
		return constraint.NewStatistical(cs.Column, constraint.StatMax, assertion.NewLessThanOrEqual(cs.Max))
	case "row_count":
		bounds, err := assertion.NewBetween(cs.Min, cs.Max)
		if err != nil {
			return nil, err
		}
		return constraint.NewSize(bounds), nil
	default:
		return nil, fmt.Errorf("unknown constraint type %q", cs.Type)
	}
}
