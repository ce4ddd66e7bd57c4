package suggest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/profiler"
	"github.com/pgEdge/dqcheck/internal/typeinfer"
)

func TestCompletenessRuleBands(t *testing.T) {
	complete := CompletenessRule(profiler.ColumnProfile{TotalRows: 1000, NonNullCount: 1000})
	require.Len(t, complete, 1)
	assert.Equal(t, "is_complete", complete[0].CheckType)

	partial := CompletenessRule(profiler.ColumnProfile{TotalRows: 1000, NonNullCount: 950})
	require.Len(t, partial, 1)
	assert.Equal(t, "has_completeness", partial[0].CheckType)

	sparse := CompletenessRule(profiler.ColumnProfile{TotalRows: 1000, NonNullCount: 100})
	require.Len(t, sparse, 1)
	assert.Equal(t, "monitor_completeness", sparse[0].CheckType)
}

func TestUniquenessRulePrimaryKeyCandidate(t *testing.T) {
	out := UniquenessRule(profiler.ColumnProfile{Column: "order_id", NonNullCount: 1000, DistinctCount: 999})
	var types []string
	for _, s := range out {
		types = append(types, s.CheckType)
	}
	assert.Contains(t, types, "is_unique")
	assert.Contains(t, types, "primary_key_candidate")
}

func TestUniquenessRuleNonIDColumnNoPKCandidate(t *testing.T) {
	out := UniquenessRule(profiler.ColumnProfile{Column: "email", NonNullCount: 1000, DistinctCount: 850})
	for _, s := range out {
		assert.NotEqual(t, "primary_key_candidate", s.CheckType)
	}
}

func TestPatternRuleDetectsEmail(t *testing.T) {
	p := profiler.ColumnProfile{Column: "contact_email", Samples: []string{"a@example.com", "b@example.com"}}
	out := PatternRule(p)
	require.Len(t, out, 1)
	assert.Equal(t, "has_format", out[0].CheckType)
	assert.Equal(t, "email", out[0].Parameters["format"])
}

func TestPatternRuleNoMatch(t *testing.T) {
	p := profiler.ColumnProfile{Column: "notes", Samples: []string{"hello world", "foo bar"}}
	assert.Empty(t, PatternRule(p))
}

func TestRangeRuleEmitsMinMaxAndOutlier(t *testing.T) {
	min, max := 0.0, 500.0
	p := profiler.ColumnProfile{
		Column: "amount", Min: &min, Max: &max,
		Numeric: profiler.NumericSummary{Quantiles: map[float64]float64{0.99: 480}},
	}
	out := RangeRule(p)
	var types []string
	for _, s := range out {
		types = append(types, s.CheckType)
	}
	assert.Contains(t, types, "has_min")
	assert.Contains(t, types, "is_positive")
	assert.Contains(t, types, "has_max")
	assert.Contains(t, types, "outlier_threshold")
}

func TestDataTypeRuleMixedIsCritical(t *testing.T) {
	out := DataTypeRule(profiler.ColumnProfile{TypeInference: typeinfer.Result{Type: typeinfer.Mixed}})
	require.Len(t, out, 1)
	assert.Equal(t, "has_consistent_type", out[0].CheckType)
	assert.Equal(t, Critical, out[0].Priority)
}

func TestCardinalityRuleLowCardinalityEmitsEnum(t *testing.T) {
	p := profiler.ColumnProfile{
		DistinctCount: 3,
		Categorical:   []profiler.CategoricalBucket{{Value: "a"}, {Value: "b"}, {Value: "c"}},
	}
	out := CardinalityRule(p)
	var types []string
	for _, s := range out {
		types = append(types, s.CheckType)
	}
	assert.Contains(t, types, "is_categorical")
	assert.Contains(t, types, "is_in_set")
}

func TestCardinalityRuleNaturalKey(t *testing.T) {
	out := CardinalityRule(profiler.ColumnProfile{TotalRows: 1000, DistinctCount: 950})
	require.Len(t, out, 1)
	assert.Equal(t, "monitor_cardinality", out[0].CheckType)
}

func TestSuggestFiltersByConfidenceAndSorts(t *testing.T) {
	rules := []Rule{
		func(p profiler.ColumnProfile) []SuggestedConstraint {
			return []SuggestedConstraint{
				{CheckType: "low_conf", Confidence: 0.1, Priority: Low},
				{CheckType: "high_conf_low_pri", Confidence: 0.9, Priority: Low},
				{CheckType: "high_conf_high_pri", Confidence: 0.9, Priority: Critical},
			}
		},
	}
	out := Suggest(profiler.ColumnProfile{}, Config{ConfidenceThreshold: 0.5, MaxSuggestionsPerColumn: 10}, rules)
	require.Len(t, out, 2)
	assert.Equal(t, "high_conf_high_pri", out[0].CheckType)
	assert.Equal(t, "high_conf_low_pri", out[1].CheckType)
}

func TestSuggestTruncatesToMax(t *testing.T) {
	rules := []Rule{
		func(p profiler.ColumnProfile) []SuggestedConstraint {
			return []SuggestedConstraint{
				{CheckType: "a", Confidence: 0.9},
				{CheckType: "b", Confidence: 0.8},
				{CheckType: "c", Confidence: 0.7},
			}
		},
	}
	out := Suggest(profiler.ColumnProfile{}, Config{ConfidenceThreshold: 0.5, MaxSuggestionsPerColumn: 2}, rules)
	assert.Len(t, out, 2)
}

func TestSuggestDefaultsWhenConfigZero(t *testing.T) {
	out := Suggest(profiler.ColumnProfile{TotalRows: 100, NonNullCount: 100}, Config{}, nil)
	assert.NotEmpty(t, out)
}
