package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/rakesh1308/screenapp-mcp-server/internal/config"
	"github.com/rakesh1308/screenapp-mcp-server/internal/jsonrpc"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/tools"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/types"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/version"
)

// ProtocolVersion is the MCP protocol version advertised during initialize.
const ProtocolVersion = "2024-11-05"

// ServerName is the serverInfo name advertised during initialize.
const ServerName = "screenapp-mcp-server"

// callToolParams is the tolerated params shape for tool-call methods.
// Clients disagree on the key names, so both spellings of each are accepted.
type callToolParams struct {
	Name string `json:"name"`
	Tool string `json:"tool"`

	Arguments map[string]any `json:"arguments"`
	Args      map[string]any `json:"args"`
}

// Dispatcher routes classified RPC requests to the registry or the executor
// and produces complete JSON-RPC responses.
type Dispatcher struct {
	registry *tools.Registry
	executor *tools.Executor

	unknownMethod config.UnknownMethodBehavior
}

// NewDispatcher creates a dispatcher.
func NewDispatcher(registry *tools.Registry, executor *tools.Executor, unknownMethod config.UnknownMethodBehavior) *Dispatcher {
	return &Dispatcher{
		registry:      registry,
		executor:      executor,
		unknownMethod: unknownMethod,
	}
}

// Dispatch handles a single validated JSON-RPC request.
// It never panics: any fault escaping a handler is converted into a JSON-RPC
// internal error echoing the request id.
func (d *Dispatcher) Dispatch(ctx context.Context, req jsonrpc.Request) (resp jsonrpc.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] panic while handling method %q: %v", req.Method, r)
			resp = jsonrpc.NewErrorResponse(req.ID, jsonrpc.NewError(jsonrpc.ErrInternal, fmt.Sprint(r)))
		}
	}()

	switch Classify(req.Method) {
	case MethodInitialize:
		return jsonrpc.NewResultResponse(req.ID, d.initializeResult())
	case MethodListTools:
		return jsonrpc.NewResultResponse(req.ID, d.listToolsResult())
	case MethodCallTool:
		return d.callTool(ctx, req)
	default:
		if d.unknownMethod == config.UnknownMethodStrict {
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.NewError(
				jsonrpc.ErrMethodNotFound,
				map[string]string{"method": req.Method},
			))
		}
		// Lenient policy: unrecognized methods get the tool catalog. This
		// trades strict protocol conformance for compatibility with clients
		// that probe with nonstandard discovery methods.
		return jsonrpc.NewResultResponse(req.ID, d.listToolsResult())
	}
}

func (d *Dispatcher) initializeResult() map[string]any {
	return map[string]any{
		"protocolVersion": ProtocolVersion,
		"capabilities": map[string]any{
			"tools": map[string]any{},
		},
		"serverInfo": map[string]any{
			"name":    ServerName,
			"version": version.GetVersion(),
		},
	}
}

func (d *Dispatcher) listToolsResult() map[string]any {
	return map[string]any{"tools": d.registry.List()}
}

func (d *Dispatcher) callTool(ctx context.Context, req jsonrpc.Request) jsonrpc.Response {
	var params callToolParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc.NewErrorResponse(req.ID, jsonrpc.NewError(jsonrpc.ErrInvalidParams, err.Error()))
		}
	}

	name := params.Name
	if name == "" {
		name = params.Tool
	}
	args := params.Arguments
	if args == nil {
		args = params.Args
	}

	result := d.executor.Execute(ctx, name, args)
	return jsonrpc.NewResultResponse(req.ID, wrapToolResult(name, result))
}

// wrapToolResult converts an executor Result into the MCP content envelope.
// Ok results carry the pretty-printed payload with isError=false. Degraded
// results keep their placeholder payload (so the unavailability markers and
// diagnostic error survive) but set isError=true. Failed results carry only
// an explanatory message.
func wrapToolResult(tool string, result tools.Result) *types.ToolCallResult {
	switch result.Status {
	case tools.StatusOk:
		return types.NewTextToolCallResult(marshalPayload(result.Payload), false)
	case tools.StatusDegraded:
		return types.NewTextToolCallResult(marshalPayload(result.Payload), true)
	default:
		return types.NewTextToolCallResult(
			fmt.Sprintf("Error executing %s: %s", tool, result.Reason), true,
		)
	}
}

func marshalPayload(payload any) string {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		// Payloads are built from plain maps and decoded JSON, so this is
		// effectively unreachable.
		return fmt.Sprintf("%v", payload)
	}
	return string(data)
}
