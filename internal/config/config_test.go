package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
connection:
  host: db.internal
  port: 5432
  dbname: orders
validator:
  max_concurrent_validations: 8
  validation_timeout_seconds: 60
profiler:
  sample_size: 500
suggest:
  confidence_threshold: 0.8
anomaly:
  min_confidence: 0.9
`

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "dqcheck.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadParsesAllSections(t *testing.T) {
	path := writeTemp(t, sampleYAML)
	f, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "db.internal", f.Connection.Host)
	assert.Equal(t, "orders", f.Connection.DBName)
	assert.Equal(t, 8, f.Validator.MaxConcurrentValidations)
	assert.Equal(t, 500, f.Profiler.SampleSize)
	assert.Equal(t, 0.8, f.Suggest.ConfidenceThreshold)
	assert.Equal(t, 0.9, f.Anomaly.MinConfidence)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/dqcheck.yaml")
	assert.Error(t, err)
}

func TestToMultisourceConfigClamps(t *testing.T) {
	v := ValidatorConfig{MaxConcurrentValidations: 100, MemoryBudgetMB: 1, ValidationTimeoutSeconds: 1}
	mc := v.ToMultisourceConfig()
	assert.Equal(t, 32, mc.MaxConcurrentValidations)
	assert.Equal(t, 64, mc.MemoryBudgetMB)
	assert.Equal(t, 30, mc.ValidationTimeoutSeconds)
}

func TestToProfilerConfigFillsDefaults(t *testing.T) {
	pc := ProfilerConfig{}.ToProfilerConfig()
	assert.Equal(t, 10000, pc.SampleSize)
	assert.Equal(t, 100, pc.CardinalityThreshold)

	pc = ProfilerConfig{SampleSize: 42}.ToProfilerConfig()
	assert.Equal(t, 42, pc.SampleSize)
	assert.Equal(t, 100, pc.CardinalityThreshold)
}

func TestToSuggestConfigFillsDefaults(t *testing.T) {
	sc := SuggestConfig{}.ToSuggestConfig()
	assert.Equal(t, 0.5, sc.ConfidenceThreshold)
	assert.Equal(t, 10, sc.MaxSuggestionsPerColumn)
}

func TestToMinConfidenceFallsBackToDefault(t *testing.T) {
	assert.Equal(t, 0.7, AnomalyConfig{}.ToMinConfidence())
	assert.Equal(t, 0.95, AnomalyConfig{MinConfidence: 0.95}.ToMinConfidence())
}
