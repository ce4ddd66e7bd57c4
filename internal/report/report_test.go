package report

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pgEdge/dqcheck/internal/severity"
	"github.com/pgEdge/dqcheck/internal/suite"
)

func sampleResult(ok bool) suite.ValidationResult {
	metric := 0.42
	return suite.ValidationResult{
		Ok: ok,
		Report: suite.ValidationReport{
			SuiteName: "orders_suite",
			Issues: []suite.ValidationIssue{
				{CheckName: "completeness", ConstraintName: "has_completeness", Level: severity.Error, Message: "below threshold", Metric: &metric},
			},
			Metrics: suite.ValidationMetrics{Total: 2, Passed: 1, Failed: 1, ExecutionTimeMs: 12, CustomMetrics: map[string]float64{"completeness.has_completeness": 0.42}},
		},
	}
}

func TestRenderJSONStableShape(t *testing.T) {
	out, err := Render(sampleResult(false), "json")
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &decoded))
	assert.Equal(t, "failure", decoded["status"])
	assert.Contains(t, decoded, "report")
}

func TestRenderMarkdownContainsStatusAndIssues(t *testing.T) {
	out, err := Render(sampleResult(false), "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "FAILURE")
	assert.Contains(t, out, "below threshold")
	assert.Contains(t, out, "completeness")
}

func TestRenderHTMLEscapesAndIncludesBadge(t *testing.T) {
	out, err := Render(sampleResult(true), "html")
	require.NoError(t, err)
	assert.Contains(t, out, "SUCCESS")
	assert.Contains(t, out, "<html>")

	escaped := RenderHTML(suite.ValidationResult{Report: suite.ValidationReport{SuiteName: "<orders>"}})
	assert.Contains(t, escaped, "&lt;orders&gt;")
	assert.NotContains(t, escaped, "<orders>")
}

func TestRenderUnknownFormat(t *testing.T) {
	_, err := Render(sampleResult(true), "xml")
	assert.Error(t, err)
}

func TestRenderMarkdownNoIssues(t *testing.T) {
	out, err := Render(suite.ValidationResult{Ok: true, Report: suite.ValidationReport{SuiteName: "s", Metrics: suite.ValidationMetrics{CustomMetrics: map[string]float64{}}}}, "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "No issues")
}
