package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/pgEdge/dqcheck/internal/suite"
)

// RenderMarkdown renders result as a Markdown report, grouped by check.
func RenderMarkdown(result suite.ValidationResult) string {
	var b strings.Builder
	status := "FAILURE"
	if result.Ok {
		status = "SUCCESS"
	}
	report := result.Report
	m := report.Metrics

	fmt.Fprintf(&b, "# Validation Report: %s\n\n", report.SuiteName)
	fmt.Fprintf(&b, "**Status:** %s\n\n", status)
	fmt.Fprintf(&b, "| total | passed | failed | skipped | duration (ms) |\n")
	fmt.Fprintf(&b, "|---|---|---|---|---|\n")
	fmt.Fprintf(&b, "| %d | %d | %d | %d | %d |\n\n", m.Total, m.Passed, m.Failed, m.Skipped, m.ExecutionTimeMs)

	if len(report.Issues) == 0 {
		b.WriteString("No issues.\n")
		return b.String()
	}

	byCheck := make(map[string][]suite.ValidationIssue)
	var order []string
	for _, issue := range report.Issues {
		if _, seen := byCheck[issue.CheckName]; !seen {
			order = append(order, issue.CheckName)
		}
		byCheck[issue.CheckName] = append(byCheck[issue.CheckName], issue)
	}
	sort.Strings(order)

	b.WriteString("## Issues\n\n")
	for _, checkName := range order {
		fmt.Fprintf(&b, "### %s\n\n", checkName)
		for _, issue := range byCheck[checkName] {
			metric := ""
			if issue.Metric != nil {
				metric = fmt.Sprintf(" (metric=%.4f)", *issue.Metric)
			}
			fmt.Fprintf(&b, "- **%s** [%s]%s: %s\n", issue.ConstraintName, issue.Level, metric, issue.Message)
		}
		b.WriteString("\n")
	}

	if len(m.CustomMetrics) > 0 {
		b.WriteString("## Metrics\n\n")
		keys := make([]string, 0, len(m.CustomMetrics))
		for k := range m.CustomMetrics {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(&b, "- `%s` = %.4f\n", k, m.CustomMetrics[k])
		}
	}

	return b.String()
}
