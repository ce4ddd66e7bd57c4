// Package report renders a suite.ValidationResult into JSON, Markdown, or
// HTML, the same three-format, one-dispatcher shape as the teacher's
// reporter.Render.
package report

import (
	"fmt"

	"github.com/pgEdge/dqcheck/internal/suite"
)

// Render dispatches to the named format.
func Render(result suite.ValidationResult, format string) (string, error) {
	switch format {
	case "json":
		return RenderJSON(result)
	case "markdown":
		return RenderMarkdown(result), nil
	case "html":
		return RenderHTML(result), nil
	default:
		return "", fmt.Errorf("unknown format: %s", format)
	}
}
