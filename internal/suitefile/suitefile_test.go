package suitefile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
suite: orders_suite
table: orders
checks:
  - name: completeness
    level: error
    description: required fields must be present
    constraints:
      - type: is_complete
        column: customer_id
  - name: uniqueness
    level: warning
    constraints:
      - type: is_unique
        column: order_number
  - name: bounds
    level: warning
    constraints:
      - type: has_min
        column: total_amount
        min: 0
      - type: row_count
        min: 1
        max: 1000000
`

func TestLoadBuildsSuite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "suite.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o644))

	s, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Len(t, s.Checks(), 3)
}

func TestBuildRejectsUnknownConstraintType(t *testing.T) {
	f := File{
		Suite: "s", Table: "orders",
		Checks: []CheckSpec{
			{Name: "c1", Constraints: []ConstraintSpec{{Type: "not_a_real_type", Column: "x"}}},
		},
	}
	_, err := Build(f)
	assert.Error(t, err)
}

func TestBuildDefaultsUnknownLevel(t *testing.T) {
	f := File{
		Suite: "s", Table: "orders",
		Checks: []CheckSpec{
			{Name: "c1", Level: "bogus", Constraints: []ConstraintSpec{{Type: "is_complete", Column: "id"}}},
		},
	}
	s, err := Build(f)
	require.NoError(t, err)
	require.Len(t, s.Checks(), 1)
}

func TestBuildRowCountConstraint(t *testing.T) {
	f := File{
		Suite: "s", Table: "orders",
		Checks: []CheckSpec{
			{Name: "bounds", Constraints: []ConstraintSpec{{Type: "row_count", Min: 1, Max: 100}}},
		},
	}
	s, err := Build(f)
	require.NoError(t, err)
	require.Len(t, s.Checks(), 1)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/suite.yaml")
	assert.Error(t, err)
}
