// Package suggest implements the Suggestion Engine and Schema Analyzer of
// spec section 4.12: a chain of independent rules over a column profile,
// each emitting zero or more ranked SuggestedConstraints.
package suggest

import (
	"fmt"
	"sort"

	"github.com/pgEdge/dqcheck/internal/profiler"
	"github.com/pgEdge/dqcheck/internal/typeinfer"
)

// Priority ranks a suggestion's urgency, ascending in importance order
// for sorting (Critical sorts first).
type Priority int

const (
	Critical Priority = iota
	High
	Medium
	Low
)

// SuggestedConstraint is one rule's output.
type SuggestedConstraint struct {
	CheckType  string
	Column     string
	Parameters map[string]any
	Confidence float64
	Rationale  string
	Priority   Priority
}

// Config carries the engine's tunables.
type Config struct {
	ConfidenceThreshold      float64
	MaxSuggestionsPerColumn  int
}

// DefaultConfig matches spec section 4.12's named defaults.
func DefaultConfig() Config {
	return Config{ConfidenceThreshold: 0.5, MaxSuggestionsPerColumn: 10}
}

// Rule inspects a profile and returns zero or more suggestions.
type Rule func(p profiler.ColumnProfile) []SuggestedConstraint

// DefaultRules is the chain run by Suggest, in spec section 4.12's order.
func DefaultRules() []Rule {
	return []Rule{
		CompletenessRule,
		UniquenessRule,
		PatternRule,
		RangeRule,
		DataTypeRule,
		CardinalityRule,
	}
}

// Suggest runs every rule against p, filters by confidence, and sorts by
// (confidence desc, priority ascending), truncating to
// MaxSuggestionsPerColumn.
func Suggest(p profiler.ColumnProfile, cfg Config, rules []Rule) []SuggestedConstraint {
	if cfg.ConfidenceThreshold <= 0 {
		cfg.ConfidenceThreshold = DefaultConfig().ConfidenceThreshold
	}
	if cfg.MaxSuggestionsPerColumn <= 0 {
		cfg.MaxSuggestionsPerColumn = DefaultConfig().MaxSuggestionsPerColumn
	}
	if rules == nil {
		rules = DefaultRules()
	}

	var all []SuggestedConstraint
	for _, rule := range rules {
		for _, s := range rule(p) {
			if s.Confidence >= cfg.ConfidenceThreshold {
				all = append(all, s)
			}
		}
	}

	sort.SliceStable(all, func(i, j int) bool {
		if all[i].Confidence != all[j].Confidence {
			return all[i].Confidence > all[j].Confidence
		}
		return all[i].Priority < all[j].Priority
	})

	if len(all) > cfg.MaxSuggestionsPerColumn {
		all = all[:cfg.MaxSuggestionsPerColumn]
	}
	return all
}

func completenessRatio(p profiler.ColumnProfile) float64 {
	if p.TotalRows == 0 {
		return 0
	}
	return float64(p.NonNullCount) / float64(p.TotalRows)
}

// CompletenessRule suggests is_complete / has_completeness / monitor_completeness
// bands by observed completeness ratio.
func CompletenessRule(p profiler.ColumnProfile) []SuggestedConstraint {
	ratio := completenessRatio(p)
	switch {
	case ratio >= 0.999:
		return []SuggestedConstraint{{
			CheckType: "is_complete", Column: p.Column, Confidence: ratio, Priority: High,
			Rationale: fmt.Sprintf("observed completeness %.4f is effectively total", ratio),
		}}
	case ratio >= 0.9:
		return []SuggestedConstraint{{
			CheckType: "has_completeness", Column: p.Column, Confidence: ratio, Priority: Medium,
			Parameters: map[string]any{"threshold": ratio},
			Rationale:  fmt.Sprintf("observed completeness %.4f suggests a %.2f threshold", ratio, ratio),
		}}
	default:
		return []SuggestedConstraint{{
			CheckType: "monitor_completeness", Column: p.Column, Confidence: 0.5, Priority: Low,
			Rationale: fmt.Sprintf("observed completeness %.4f is too low to assert a hard floor", ratio),
		}}
	}
}

func distinctRatio(p profiler.ColumnProfile) float64 {
	if p.NonNullCount == 0 {
		return 0
	}
	return float64(p.DistinctCount) / float64(p.NonNullCount)
}

// UniquenessRule suggests is_unique for high distinct ratios, and
// primary_key_candidate for id-named columns with moderate uniqueness.
func UniquenessRule(p profiler.ColumnProfile) []SuggestedConstraint {
	ratio := distinctRatio(p)
	var out []SuggestedConstraint
	if ratio >= 0.999 {
		out = append(out, SuggestedConstraint{
			CheckType: "is_unique", Column: p.Column, Confidence: ratio, Priority: High,
			Rationale: fmt.Sprintf("distinct ratio %.4f indicates the column is effectively unique", ratio),
		})
	}
	if looksLikeID(p.Column) && ratio >= 0.8 {
		out = append(out, SuggestedConstraint{
			CheckType: "primary_key_candidate", Column: p.Column, Confidence: ratio, Priority: Critical,
			Rationale: fmt.Sprintf("id-shaped column name with distinct ratio %.4f", ratio),
		})
	}
	return out
}

func looksLikeID(col string) bool {
	return hasSuffix(col, "_id") || col == "id" || hasSuffix(col, "_key") || hasSuffix(col, "_pk")
}

// PatternRule suggests a Format constraint when every sample matches one
// of the common shape heuristics.
func PatternRule(p profiler.ColumnProfile) []SuggestedConstraint {
	if len(p.Samples) == 0 {
		return nil
	}
	for _, kind := range []string{"email", "iso8601_datetime", "phone"} {
		if allMatch(p.Samples, kind) {
			return []SuggestedConstraint{{
				CheckType: "has_format", Column: p.Column, Confidence: 0.9, Priority: Medium,
				Parameters: map[string]any{"format": kind},
				Rationale:  fmt.Sprintf("all %d sampled values match the %s shape", len(p.Samples), kind),
			}}
		}
	}
	return nil
}

// RangeRule suggests has_min/has_max/is_positive/outlier-threshold
// suggestions from the profile's numeric summary.
func RangeRule(p profiler.ColumnProfile) []SuggestedConstraint {
	var out []SuggestedConstraint
	if p.Min != nil {
		out = append(out, SuggestedConstraint{
			CheckType: "has_min", Column: p.Column, Confidence: 0.7, Priority: Low,
			Parameters: map[string]any{"min": *p.Min},
			Rationale:  fmt.Sprintf("observed minimum %.4f", *p.Min),
		})
		if *p.Min >= 0 {
			out = append(out, SuggestedConstraint{
				CheckType: "is_positive", Column: p.Column, Confidence: 0.7, Priority: Low,
				Rationale: "observed minimum is non-negative",
			})
		}
	}
	if p.Max != nil {
		out = append(out, SuggestedConstraint{
			CheckType: "has_max", Column: p.Column, Confidence: 0.7, Priority: Low,
			Parameters: map[string]any{"max": *p.Max},
			Rationale:  fmt.Sprintf("observed maximum %.4f", *p.Max),
		})
	}
	if p99, ok := p.Numeric.Quantiles[0.99]; ok {
		out = append(out, SuggestedConstraint{
			CheckType: "outlier_threshold", Column: p.Column, Confidence: 0.6, Priority: Medium,
			Parameters: map[string]any{"p99": p99},
			Rationale:  fmt.Sprintf("p99 %.4f suggests an outlier threshold", p99),
		})
	}
	return out
}

// DataTypeRule suggests has_consistent_type at Critical for Mixed
// inference, else has_data_type.
func DataTypeRule(p profiler.ColumnProfile) []SuggestedConstraint {
	if p.TypeInference.Type == typeinfer.Mixed {
		return []SuggestedConstraint{{
			CheckType: "has_consistent_type", Column: p.Column, Confidence: 0.9, Priority: Critical,
			Rationale: "sampled values classify under more than one type",
		}}
	}
	return []SuggestedConstraint{{
		CheckType: "has_data_type", Column: p.Column, Confidence: p.TypeInference.Confidence, Priority: Medium,
		Parameters: map[string]any{"type": p.TypeInference.Type.String()},
		Rationale:  fmt.Sprintf("inferred type %s at confidence %.4f", p.TypeInference.Type, p.TypeInference.Confidence),
	}}
}

// CardinalityRule suggests is_categorical/is_in_set, has_max_cardinality,
// or monitor_cardinality bands by distinct count relative to row count.
func CardinalityRule(p profiler.ColumnProfile) []SuggestedConstraint {
	const lowThreshold = 20
	const highThreshold = 100

	if p.DistinctCount <= lowThreshold && p.DistinctCount > 0 {
		values := make([]string, 0, len(p.Categorical))
		for _, b := range p.Categorical {
			values = append(values, b.Value)
		}
		return []SuggestedConstraint{
			{CheckType: "is_categorical", Column: p.Column, Confidence: 0.85, Priority: Medium,
				Rationale: fmt.Sprintf("only %d distinct values observed", p.DistinctCount)},
			{CheckType: "is_in_set", Column: p.Column, Confidence: 0.8, Priority: Medium,
				Parameters: map[string]any{"values": values},
				Rationale:  "distinct values enumerated from the categorical pass"},
		}
	}
	if p.DistinctCount <= highThreshold {
		return []SuggestedConstraint{{
			CheckType: "has_max_cardinality", Column: p.Column, Confidence: 0.6, Priority: Low,
			Parameters: map[string]any{"max": p.DistinctCount},
			Rationale:  fmt.Sprintf("distinct count %d within bounded range", p.DistinctCount),
		}}
	}
	if p.TotalRows > 0 && float64(p.DistinctCount) > 0.8*float64(p.TotalRows) {
		return []SuggestedConstraint{{
			CheckType: "monitor_cardinality", Column: p.Column, Confidence: 0.55, Priority: Low,
			Rationale: "distinct count tracks row count closely; likely a natural key",
		}}
	}
	return nil
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}
