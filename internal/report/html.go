package report

import (
	"fmt"
	"html"
	"sort"
	"strings"

	"github.com/pgEdge/dqcheck/internal/suite"
)

const reportCSS = `
body { font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif; margin: 0; padding: 24px; color: #333; background: #f9fafb; }
h1 { font-size: 1.4em; }
.badge { display: inline-block; padding: 2px 10px; border-radius: 10px; font-weight: 700; color: #fff; }
.badge.success { background: #16a34a; }
.badge.failure { background: #dc2626; }
table { border-collapse: collapse; margin: 12px 0; }
td, th { border: 1px solid #ddd; padding: 6px 12px; text-align: left; }
.issue { border-left: 3px solid #dc2626; padding: 6px 12px; margin: 6px 0; background: #fff; }
.issue .level { font-weight: 600; text-transform: uppercase; font-size: 0.8em; }
`

// RenderHTML renders result as a standalone HTML document.
func RenderHTML(result suite.ValidationResult) string {
	report := result.Report
	m := report.Metrics
	status := "failure"
	if result.Ok {
		status = "success"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<!DOCTYPE html><html><head><meta charset=\"utf-8\"><title>%s</title><style>%s</style></head><body>",
		html.EscapeString(report.SuiteName), reportCSS)
	fmt.Fprintf(&b, "<h1>%s <span class=\"badge %s\">%s</span></h1>", html.EscapeString(report.SuiteName), status, strings.ToUpper(status))
	fmt.Fprintf(&b, "<table><tr><th>total</th><th>passed</th><th>failed</th><th>skipped</th><th>duration (ms)</th></tr>")
	fmt.Fprintf(&b, "<tr><td>%d</td><td>%d</td><td>%d</td><td>%d</td><td>%d</td></tr></table>",
		m.Total, m.Passed, m.Failed, m.Skipped, m.ExecutionTimeMs)

	if len(report.Issues) == 0 {
		b.WriteString("<p>No issues.</p>")
	} else {
		issues := append([]suite.ValidationIssue(nil), report.Issues...)
		sort.Slice(issues, func(i, j int) bool { return issues[i].CheckName < issues[j].CheckName })
		b.WriteString("<h2>Issues</h2>")
		for _, issue := range issues {
			metric := ""
			if issue.Metric != nil {
				metric = fmt.Sprintf(" (metric=%.4f)", *issue.Metric)
			}
			fmt.Fprintf(&b, "<div class=\"issue\"><div class=\"level\">%s / %s</div><div>%s%s</div></div>",
				html.EscapeString(issue.CheckName), html.EscapeString(issue.ConstraintName),
				html.EscapeString(issue.Message), metric)
		}
	}

	b.WriteString("</body></html>")
	return b.String()
}
