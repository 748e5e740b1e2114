// Package dispatch normalizes raw JSON-RPC method names and routes requests
// to the tool registry or executor.
package dispatch

import "strings"

// Method is the closed classification of a raw RPC method string.
type Method int

const (
	MethodInitialize Method = iota
	MethodListTools
	MethodCallTool
	MethodUnrecognized
)

func (m Method) String() string {
	switch m {
	case MethodInitialize:
		return "initialize"
	case MethodListTools:
		return "list_tools"
	case MethodCallTool:
		return "call_tool"
	default:
		return "unrecognized"
	}
}

// Real-world MCP clients vary in their exact method spelling, so the alias
// sets below are deliberately loose. Strict matching would reject clients
// that otherwise speak the protocol fine.
var (
	listToolsAliases = map[string]struct{}{
		"tools/list": {},
		"list_tools": {},
		"tools_list": {},
	}

	callToolAliases = map[string]struct{}{
		"tools/call":    {},
		"tool/call":     {},
		"call_tool":     {},
		"tools/execute": {},
		"execute_tool":  {},
	}
)

// Classify maps a raw method string onto a Method.
// It is pure and total: any string it cannot place ends up as
// MethodUnrecognized, never an error.
//
// Matching order: exact aliases first (case- and whitespace-insensitive),
// then a substring heuristic for call-like methods, then one for list-like
// methods.
func Classify(raw string) Method {
	method := strings.ToLower(strings.TrimSpace(raw))

	if method == "initialize" {
		return MethodInitialize
	}
	if _, ok := listToolsAliases[method]; ok {
		return MethodListTools
	}
	if _, ok := callToolAliases[method]; ok {
		return MethodCallTool
	}

	if strings.Contains(method, "call") || strings.Contains(method, "execute") {
		return MethodCallTool
	}
	if strings.Contains(method, "list") || strings.Contains(method, "manifest") {
		return MethodListTools
	}

	return MethodUnrecognized
}
