package dispatch

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rakesh1308/screenapp-mcp-server/internal/config"
	"github.com/rakesh1308/screenapp-mcp-server/internal/jsonrpc"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/tools"
	"github.com/rakesh1308/screenapp-mcp-server/internal/telemetry"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubAPI returns fixed upstream responses. Execution paths that need richer
// behavior are covered in the tools package tests.
type stubAPI struct{}

func (stubAPI) ListRecordings(context.Context, int, int) (json.RawMessage, error) {
	return json.RawMessage(`{"data": [{"id": "r1", "title": "Demo"}]}`), nil
}
func (stubAPI) GetRecording(_ context.Context, id string) (json.RawMessage, error) {
	return json.RawMessage(`{"id": "` + id + `", "title": "Demo"}`), nil
}
func (stubAPI) GetTranscript(context.Context, string, string) (json.RawMessage, error) {
	return json.RawMessage(`{"transcript": "hello"}`), nil
}
func (stubAPI) GetSummary(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{"summary": "s"}`), nil
}
func (stubAPI) ListTeams(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`[]`), nil
}
func (stubAPI) GetTeam(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubAPI) GetProfile(context.Context) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubAPI) AddFileTag(context.Context, string, string, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubAPI) RemoveFileTag(context.Context, string, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubAPI) RegisterWebhook(context.Context, string, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}
func (stubAPI) UnregisterWebhook(context.Context, string) (json.RawMessage, error) {
	return json.RawMessage(`{}`), nil
}

func newTestDispatcher(behavior config.UnknownMethodBehavior) *Dispatcher {
	registry := tools.NewRegistry()
	executor := tools.NewExecutor(stubAPI{}, telemetry.NewNoopToolMetrics())
	return NewDispatcher(registry, executor, behavior)
}

func request(method string, id any, params string) jsonrpc.Request {
	req := jsonrpc.Request{JSONRPC: jsonrpc.Version, Method: method, ID: id}
	if params != "" {
		req.Params = json.RawMessage(params)
	}
	return req
}

func TestDispatchInitialize(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	resp := d.Dispatch(context.Background(), request("initialize", float64(1), ""))

	require.Nil(t, resp.Error)
	assert.Equal(t, float64(1), resp.ID)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, ProtocolVersion, result["protocolVersion"])

	serverInfo, ok := result["serverInfo"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, ServerName, serverInfo["name"])
	assert.NotEmpty(t, serverInfo["version"])

	capabilities, ok := result["capabilities"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, capabilities, "tools")
}

func TestDispatchListTools(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	resp := d.Dispatch(context.Background(), request("tools/list", "abc", ""))

	require.Nil(t, resp.Error)
	assert.Equal(t, "abc", resp.ID)

	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)

	catalog, ok := result["tools"].([]mcp.Tool)
	require.True(t, ok)
	assert.NotEmpty(t, catalog)
}

func TestDispatchCallToolParamAliases(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	// the same call expressed with each tolerated param spelling
	paramVariants := []string{
		`{"name": "get_recording_details", "arguments": {"recording_id": "r1"}}`,
		`{"tool": "get_recording_details", "args": {"recording_id": "r1"}}`,
		`{"name": "get_recording_details", "args": {"recording_id": "r1"}}`,
	}

	for _, params := range paramVariants {
		resp := d.Dispatch(context.Background(), request("tools/call", float64(7), params))

		require.Nil(t, resp.Error, "params: %s", params)

		result, ok := resp.Result.(*types.ToolCallResult)
		require.True(t, ok)
		assert.False(t, result.IsError)
		require.Len(t, result.Content, 1)
		assert.Contains(t, result.Content[0].Text, `"title": "Demo"`)
	}
}

func TestDispatchCallToolMalformedParams(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	resp := d.Dispatch(context.Background(), request("tools/call", float64(3), `"not an object"`))

	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrInvalidParams, resp.Error.Code)
	assert.Equal(t, float64(3), resp.ID)
}

func TestDispatchCallToolUnknownName(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	resp := d.Dispatch(context.Background(), request("tools/call", float64(4), `{"name": "nope"}`))

	// a failed tool is still a successful RPC
	require.Nil(t, resp.Error)

	result, ok := resp.Result.(*types.ToolCallResult)
	require.True(t, ok)
	assert.True(t, result.IsError)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "Error executing nope: Unknown tool: nope", result.Content[0].Text)
}

func TestDispatchUnrecognizedMethodLenient(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodLenient)

	resp := d.Dispatch(context.Background(), request("ping", float64(9), ""))

	require.Nil(t, resp.Error)
	result, ok := resp.Result.(map[string]any)
	require.True(t, ok)
	assert.Contains(t, result, "tools")
}

func TestDispatchUnrecognizedMethodStrict(t *testing.T) {
	d := newTestDispatcher(config.UnknownMethodStrict)

	resp := d.Dispatch(context.Background(), request("ping", float64(9), ""))

	require.NotNil(t, resp.Error)
	assert.Equal(t, jsonrpc.ErrMethodNotFound, resp.Error.Code)
	assert.Equal(t, float64(9), resp.ID)
}

func TestWrapToolResult(t *testing.T) {
	ok := wrapToolResult("get_summary", tools.Ok(map[string]any{"summary": "fine"}))
	assert.False(t, ok.IsError)
	assert.Contains(t, ok.Content[0].Text, `"summary": "fine"`)

	// degraded results keep their payload so the placeholder markers survive
	degraded := wrapToolResult("get_transcript", tools.Degraded(
		map[string]any{"transcript": "[transcript unavailable]", "success": false},
		"upstream down",
	))
	assert.True(t, degraded.IsError)
	assert.Contains(t, degraded.Content[0].Text, "[transcript unavailable]")
	assert.NotContains(t, degraded.Content[0].Text, "Error executing")

	failed := wrapToolResult("get_transcript", tools.Failed("bad args"))
	assert.True(t, failed.IsError)
	assert.Equal(t, "Error executing get_transcript: bad args", failed.Content[0].Text)
}
