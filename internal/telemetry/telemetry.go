// Package telemetry wraps the user-supplied OpenTelemetry tracer/meter of
// spec section 6.3. The tracer and meter are always supplied by the
// caller — this package never initialises an SDK. When the caller passes
// nil, Handle falls back to the otel noop implementations, so "no
// telemetry configured" is a real no-op SDK object rather than a
// hand-rolled stub riddled with nil checks at every call site.
package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	noopmetric "go.opentelemetry.io/otel/metric/noop"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"
)

// Handle bundles a tracer and the named instruments the suite orchestrator
// emits (spec section 6.3). The multi-source validator does not use it.
type Handle struct {
	tracer trace.Tracer

	validationDuration      metric.Float64Histogram
	checkDuration           metric.Float64Histogram
	loadDuration            metric.Float64Histogram
	customMetric            metric.Float64Histogram
	validationTotal         metric.Int64Counter
	rowsProcessed           metric.Int64Counter
	failures                metric.Int64Counter
	checksPassed            metric.Int64Counter
	checksFailed            metric.Int64Counter
	activeValidationsGauge  metric.Int64UpDownCounter
}

// New builds a Handle from a tracer and meter. Either may be nil, in which
// case the corresponding otel noop implementation is used.
func New(tracer trace.Tracer, meter metric.Meter) *Handle {
	if tracer == nil {
		tracer = nooptrace.NewTracerProvider().Tracer("dqcheck")
	}
	if meter == nil {
		meter = noopmetric.NewMeterProvider().Meter("dqcheck")
	}

	h := &Handle{tracer: tracer}
	h.validationDuration, _ = meter.Float64Histogram("data.validation.duration", metric.WithUnit("s"))
	h.checkDuration, _ = meter.Float64Histogram("data.validation.check.duration", metric.WithUnit("s"))
	h.loadDuration, _ = meter.Float64Histogram("data.processing.load.duration", metric.WithUnit("s"))
	h.customMetric, _ = meter.Float64Histogram("data.validation.custom_metric", metric.WithUnit("1"))
	h.validationTotal, _ = meter.Int64Counter("data.validation.total")
	h.rowsProcessed, _ = meter.Int64Counter("data.validation.rows")
	h.failures, _ = meter.Int64Counter("data.validation.failures")
	h.checksPassed, _ = meter.Int64Counter("data.validation.checks.passed")
	h.checksFailed, _ = meter.Int64Counter("data.validation.checks.failed")
	h.activeValidationsGauge, _ = meter.Int64UpDownCounter("data.validation.memory", metric.WithUnit("bytes"))
	return h
}

// NoOp returns a Handle wired entirely to otel's noop SDKs.
func NoOp() *Handle { return New(nil, nil) }

// StartSuiteSpan opens the top-level "validation_suite.<name>" span.
func (h *Handle) StartSuiteSpan(ctx context.Context, suiteName string, checkCount int) (context.Context, trace.Span) {
	ctx, span := h.tracer.Start(ctx, "validation_suite."+suiteName)
	span.SetAttributes(
		attribute.String("validation.suite.name", suiteName),
		attribute.Int("validation.suite.check_count", checkCount),
	)
	h.validationTotal.Add(ctx, 1)
	return ctx, span
}

// StartCheckSpan opens a "validation_check.<name>" span.
func (h *Handle) StartCheckSpan(ctx context.Context, checkName string, constraintCount int) (context.Context, trace.Span) {
	ctx, span := h.tracer.Start(ctx, "validation_check."+checkName)
	span.SetAttributes(
		attribute.String("validation.check.name", checkName),
		attribute.Int("validation.check.constraint_count", constraintCount),
	)
	return ctx, span
}

// StartConstraintSpan opens a "validation_constraint.<name>" span.
func (h *Handle) StartConstraintSpan(ctx context.Context, constraintName, column string) (context.Context, trace.Span) {
	ctx, span := h.tracer.Start(ctx, "validation_constraint."+constraintName)
	attrs := []attribute.KeyValue{attribute.String("validation.constraint.name", constraintName)}
	if column != "" {
		attrs = append(attrs, attribute.String("validation.constraint.column", column))
	}
	span.SetAttributes(attrs...)
	return ctx, span
}

// EndConstraintSpan records the outcome attributes and ends span.
func (h *Handle) EndConstraintSpan(ctx context.Context, span trace.Span, status, message string, metric *float64) {
	attrs := []attribute.KeyValue{attribute.String("validation.constraint.status", status)}
	if message != "" {
		attrs = append(attrs, attribute.String("validation.constraint.message", message))
	}
	if metric != nil {
		attrs = append(attrs, attribute.Float64("validation.constraint.metric", *metric))
		h.customMetric.Record(ctx, *metric)
	}
	span.SetAttributes(attrs...)
	span.End()
}

// RecordSuiteDuration records the duration histogram for a completed suite
// run; the run counter is incremented by StartSuiteSpan.
func (h *Handle) RecordSuiteDuration(ctx context.Context, seconds float64) {
	h.validationDuration.Record(ctx, seconds)
}

// RecordCheckDuration records a single check's wall-clock duration.
func (h *Handle) RecordCheckDuration(ctx context.Context, seconds float64) {
	h.checkDuration.Record(ctx, seconds)
}

// RecordRowsProcessed records the best-effort row count counter.
func (h *Handle) RecordRowsProcessed(ctx context.Context, n int64) {
	h.rowsProcessed.Add(ctx, n)
}

// RecordLoadDuration records data.processing.load.duration.
func (h *Handle) RecordLoadDuration(ctx context.Context, seconds float64) {
	h.loadDuration.Record(ctx, seconds)
}

// RecordPassed/RecordFailed increment the checks.passed/checks.failed
// counters and, for failures, the overall failures counter.
func (h *Handle) RecordPassed(ctx context.Context) { h.checksPassed.Add(ctx, 1) }

func (h *Handle) RecordFailed(ctx context.Context) {
	h.checksFailed.Add(ctx, 1)
	h.failures.Add(ctx, 1)
}

// SetActiveValidations adjusts the observable "active validations" gauge
// by delta (+1 on start, -1 on completion).
func (h *Handle) SetActiveValidations(ctx context.Context, delta int64) {
	h.activeValidationsGauge.Add(ctx, delta)
}
