package telemetry

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ToolCallOutcome classifies the result of a tool execution for metrics.
type ToolCallOutcome string

const (
	ToolCallOutcomeSuccess  ToolCallOutcome = "success"
	ToolCallOutcomeDegraded ToolCallOutcome = "degraded"
	ToolCallOutcomeError    ToolCallOutcome = "error"
)

// ToolMetrics records tool execution metrics.
//
// The rest of the code uses this interface without worrying about whether
// metrics are enabled. When they are disabled, the no-op implementation
// simply does nothing, which also avoids nil checks at every call site.
type ToolMetrics interface {
	// RecordToolCall records a single tool execution with its outcome and duration.
	RecordToolCall(ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration)
}

type noopToolMetrics struct{}

// NewNoopToolMetrics returns a ToolMetrics implementation that discards everything.
func NewNoopToolMetrics() ToolMetrics {
	return &noopToolMetrics{}
}

func (n *noopToolMetrics) RecordToolCall(context.Context, string, ToolCallOutcome, time.Duration) {
}

type otelToolMetrics struct {
	toolCalls    metric.Int64Counter
	callDuration metric.Float64Histogram
}

// NewOtelToolMetrics creates a ToolMetrics implementation backed by the given meter.
func NewOtelToolMetrics(meter metric.Meter) (ToolMetrics, error) {
	toolCalls, err := meter.Int64Counter(
		"mcp.tool.calls",
		metric.WithDescription("Number of MCP tool calls, by tool and outcome"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call counter: %w", err)
	}

	callDuration, err := meter.Float64Histogram(
		"mcp.tool.call.duration",
		metric.WithDescription("Duration of MCP tool calls in seconds"),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create tool call duration histogram: %w", err)
	}

	return &otelToolMetrics{toolCalls: toolCalls, callDuration: callDuration}, nil
}

func (o *otelToolMetrics) RecordToolCall(ctx context.Context, tool string, outcome ToolCallOutcome, duration time.Duration) {
	attrs := metric.WithAttributes(
		attribute.String("tool", tool),
		attribute.String("outcome", string(outcome)),
	)
	o.toolCalls.Add(ctx, 1, attrs)
	o.callDuration.Record(ctx, duration.Seconds(), attrs)
}
