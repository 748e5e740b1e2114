package types

// ToolContent is a single content block inside a tool call result.
// Only text content is produced by this server.
type ToolContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// ToolCallResult is the MCP-style envelope for a tool invocation result.
// It is designed to be passed down to the end user.
type ToolCallResult struct {
	Content []ToolContent `json:"content"`
	IsError bool          `json:"isError"`
}

// NewTextToolCallResult builds a tool call result with a single text content block.
func NewTextToolCallResult(text string, isError bool) *ToolCallResult {
	return &ToolCallResult{
		Content: []ToolContent{{Type: "text", Text: text}},
		IsError: isError,
	}
}
