// Package config loads the tunable budgets of spec section 6.5 from a
// YAML file, the same gopkg.in/yaml.v3 library the teacher's suite
// depended on. Every knob also has a programmatic builder-style default
// so a config file is never required.
package config

import (
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pgEdge/dqcheck/internal/anomaly"
	"github.com/pgEdge/dqcheck/internal/multisource"
	"github.com/pgEdge/dqcheck/internal/profiler"
	"github.com/pgEdge/dqcheck/internal/suggest"
)

// File is the top-level shape of a dqcheck config file.
type File struct {
	Connection ConnectionConfig `yaml:"connection"`
	Validator  ValidatorConfig  `yaml:"validator"`
	Profiler   ProfilerConfig   `yaml:"profiler"`
	Suggest    SuggestConfig    `yaml:"suggest"`
	Anomaly    AnomalyConfig    `yaml:"anomaly"`
}

// ConnectionConfig mirrors pgxsession.Config's YAML-facing fields.
type ConnectionConfig struct {
	DSN      string `yaml:"dsn"`
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	DBName   string `yaml:"dbname"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	MaxConns int32  `yaml:"max_conns"`
}

// ValidatorConfig mirrors multisource.Config's YAML-facing fields, before clamping.
type ValidatorConfig struct {
	MaxConcurrentValidations int  `yaml:"max_concurrent_validations"`
	MemoryBudgetMB           int  `yaml:"memory_budget_mb"`
	ValidationTimeoutSeconds int  `yaml:"validation_timeout_seconds"`
	EnableQueryOptimization  bool `yaml:"enable_query_optimization"`
}

// ToMultisourceConfig clamps into a multisource.Config.
func (v ValidatorConfig) ToMultisourceConfig() multisource.Config {
	return multisource.NewConfig(v.MaxConcurrentValidations, v.MemoryBudgetMB, v.ValidationTimeoutSeconds, v.EnableQueryOptimization)
}

// ProfilerConfig mirrors profiler.Config's YAML-facing fields.
type ProfilerConfig struct {
	SampleSize           int `yaml:"sample_size"`
	CardinalityThreshold int `yaml:"cardinality_threshold"`
}

// ToProfilerConfig fills in spec defaults for any zero field.
func (p ProfilerConfig) ToProfilerConfig() profiler.Config {
	d := profiler.DefaultConfig()
	if p.SampleSize > 0 {
		d.SampleSize = p.SampleSize
	}
	if p.CardinalityThreshold > 0 {
		d.CardinalityThreshold = p.CardinalityThreshold
	}
	return d
}

// SuggestConfig mirrors suggest.Config's YAML-facing fields.
type SuggestConfig struct {
	ConfidenceThreshold     float64 `yaml:"confidence_threshold"`
	MaxSuggestionsPerColumn int     `yaml:"max_suggestions_per_column"`
}

// ToSuggestConfig fills in spec defaults for any zero field.
func (s SuggestConfig) ToSuggestConfig() suggest.Config {
	d := suggest.DefaultConfig()
	if s.ConfidenceThreshold > 0 {
		d.ConfidenceThreshold = s.ConfidenceThreshold
	}
	if s.MaxSuggestionsPerColumn > 0 {
		d.MaxSuggestionsPerColumn = s.MaxSuggestionsPerColumn
	}
	return d
}

// AnomalyConfig mirrors the anomaly runner's YAML-facing fields.
type AnomalyConfig struct {
	MinConfidence float64 `yaml:"min_confidence"`
}

// ToMinConfidence returns the configured floor, or anomaly.DefaultMinConfidence.
func (a AnomalyConfig) ToMinConfidence() float64 {
	if a.MinConfidence > 0 {
		return a.MinConfidence
	}
	return anomaly.DefaultMinConfidence
}

// Load reads and parses a YAML config file at path.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, err
	}
	return f, nil
}
