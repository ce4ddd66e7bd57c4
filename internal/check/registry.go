package check

import (
	"sort"

	"github.com/pgEdge/dqcheck/internal/severity"
)

// FilterByLevel returns the subset of checks at or above minLevel, sorted
// by name — the same filter-then-stable-sort idiom the teacher's
// check.GetChecks used for mode/category filtering.
func FilterByLevel(checks []*Check, minLevel severity.Level) []*Check {
	var result []*Check
	for _, c := range checks {
		if c.Level() >= minLevel {
			result = append(result, c)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Names returns the ordered names of checks, for introspection/CLI output.
func Names(checks []*Check) []string {
	out := make([]string, len(checks))
	for i, c := range checks {
		out[i] = c.Name()
	}
	return out
}
