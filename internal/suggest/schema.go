package suggest

import (
	"fmt"
	"strings"
)

// TableSchema is the minimal catalog shape the Schema Analyzer consumes:
// a table name and its column names.
type TableSchema struct {
	Name    string
	Columns []string
}

// fkSuffixes are the suffix patterns suggesting a column references
// another table's key (spec section 4.12).
var fkSuffixes = []string{"_id", "_key", "_fk", "_ref"}

// ForeignKeySuggestion names a candidate foreign-key relationship.
type ForeignKeySuggestion struct {
	FromTable, FromColumn string
	ToTable, ToColumn     string
	Confidence            float64
	Rationale             string
}

// AnalyzeForeignKeys scans tables for columns matching an FK suffix
// pattern and proposes a target table via pluralisation-aware matching.
func AnalyzeForeignKeys(tables []TableSchema) []ForeignKeySuggestion {
	byName := make(map[string]TableSchema, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	var out []ForeignKeySuggestion
	for _, t := range tables {
		for _, col := range t.Columns {
			base, matchedSuffix, ok := stripFKSuffix(col)
			if !ok || base == "" {
				continue
			}
			target, targetCol, ok := resolveTarget(byName, base)
			if !ok || target == t.Name {
				continue
			}
			out = append(out, ForeignKeySuggestion{
				FromTable: t.Name, FromColumn: col,
				ToTable: target, ToColumn: targetCol,
				Confidence: 0.75,
				Rationale:  fmt.Sprintf("column %q matches suffix %q, resolved to table %q", col, matchedSuffix, target),
			})
		}
	}
	return out
}

func stripFKSuffix(col string) (base, suffix string, ok bool) {
	for _, s := range fkSuffixes {
		if strings.HasSuffix(col, s) {
			return strings.TrimSuffix(col, s), s, true
		}
	}
	return "", "", false
}

// resolveTarget tries base, base+"s", base+"es", and base with a
// trailing "y" swapped for "ies", matching the pluralisation-aware
// candidates named in spec section 4.12.
func resolveTarget(byName map[string]TableSchema, base string) (table, pkColumn string, ok bool) {
	candidates := []string{base, base + "s", base + "es"}
	if strings.HasSuffix(base, "y") {
		candidates = append(candidates, strings.TrimSuffix(base, "y")+"ies")
	}
	for _, c := range candidates {
		if schema, found := byName[c]; found {
			return c, pickPKColumn(schema), true
		}
	}
	return "", "", false
}

func pickPKColumn(t TableSchema) string {
	for _, c := range t.Columns {
		if c == "id" {
			return c
		}
	}
	if len(t.Columns) > 0 {
		return t.Columns[0]
	}
	return "id"
}

// temporalOrder is the expected chronological sequence of lifecycle
// column names (spec section 4.12).
var temporalOrder = []string{"created", "updated", "processed", "completed"}

// TemporalOrderingSuggestion names a pair of columns expected to be
// chronologically ordered.
type TemporalOrderingSuggestion struct {
	Table        string
	EarlierCol   string
	LaterCol     string
	Rationale    string
}

// AnalyzeTemporalOrdering proposes ordering checks between lifecycle
// timestamp columns present on the same table, following the
// created -> updated -> processed -> completed convention.
func AnalyzeTemporalOrdering(tables []TableSchema) []TemporalOrderingSuggestion {
	var out []TemporalOrderingSuggestion
	for _, t := range tables {
		present := map[string]string{}
		for _, col := range t.Columns {
			for _, stage := range temporalOrder {
				if strings.Contains(strings.ToLower(col), stage) {
					present[stage] = col
				}
			}
		}
		var stages []string
		for _, stage := range temporalOrder {
			if col, ok := present[stage]; ok {
				stages = append(stages, col)
			}
		}
		for i := 0; i+1 < len(stages); i++ {
			a, b := stages[i], stages[i+1]
			out = append(out, TemporalOrderingSuggestion{
				Table: t.Name, EarlierCol: a, LaterCol: b,
				Rationale: fmt.Sprintf("%q is expected no later than %q", a, b),
			})
		}
	}
	return out
}

// CrossTableSumSuggestion proposes comparing amount-like columns across
// two related tables.
type CrossTableSumSuggestion struct {
	LeftTable, LeftColumn   string
	RightTable, RightColumn string
	Rationale               string
}

var amountHints = []string{"amount", "total", "sum", "price", "balance"}

// AnalyzeCrossTableSums proposes CrossTableSum checks between
// amount-like columns of tables linked by an inferred foreign key.
func AnalyzeCrossTableSums(tables []TableSchema, fks []ForeignKeySuggestion) []CrossTableSumSuggestion {
	byName := make(map[string]TableSchema, len(tables))
	for _, t := range tables {
		byName[t.Name] = t
	}

	var out []CrossTableSumSuggestion
	for _, fk := range fks {
		from, ok1 := byName[fk.FromTable]
		to, ok2 := byName[fk.ToTable]
		if !ok1 || !ok2 {
			continue
		}
		leftCol, ok1 := amountColumn(from)
		rightCol, ok2 := amountColumn(to)
		if !ok1 || !ok2 {
			continue
		}
		out = append(out, CrossTableSumSuggestion{
			LeftTable: from.Name, LeftColumn: leftCol,
			RightTable: to.Name, RightColumn: rightCol,
			Rationale: fmt.Sprintf("tables linked by %q share amount-like columns", fk.FromColumn),
		})
	}
	return out
}

func amountColumn(t TableSchema) (string, bool) {
	for _, col := range t.Columns {
		lower := strings.ToLower(col)
		for _, hint := range amountHints {
			if strings.Contains(lower, hint) {
				return col, true
			}
		}
	}
	return "", false
}
