package tools

import "github.com/rakesh1308/screenapp-mcp-server/internal/telemetry"

// Status classifies a tool execution result.
type Status int

const (
	// StatusOk means the tool produced its full payload.
	StatusOk Status = iota
	// StatusDegraded means the tool produced a placeholder payload because an
	// upstream dependency failed. The payload carries the diagnostic reason.
	StatusDegraded
	// StatusFailed means the tool produced no payload at all.
	StatusFailed
)

// Result is the outcome of a single tool execution.
// Every execution yields exactly one Result; failures are data, never panics.
type Result struct {
	Status  Status
	Payload any
	Reason  string
}

// Ok builds a successful result.
func Ok(payload any) Result {
	return Result{Status: StatusOk, Payload: payload}
}

// Degraded builds a degraded result carrying a placeholder payload and the
// reason the real payload is unavailable.
func Degraded(payload any, reason string) Result {
	return Result{Status: StatusDegraded, Payload: payload, Reason: reason}
}

// Failed builds a failure result with a human-readable reason.
func Failed(reason string) Result {
	return Result{Status: StatusFailed, Reason: reason}
}

// Outcome maps the result status to its metrics outcome label.
func (r Result) Outcome() telemetry.ToolCallOutcome {
	switch r.Status {
	case StatusOk:
		return telemetry.ToolCallOutcomeSuccess
	case StatusDegraded:
		return telemetry.ToolCallOutcomeDegraded
	default:
		return telemetry.ToolCallOutcomeError
	}
}
