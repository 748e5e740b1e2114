package types

// HealthResponse is returned by the unauthenticated /health endpoint.
type HealthResponse struct {
	Status    string `json:"status"`
	Service   string `json:"service"`
	Version   string `json:"version"`
	Timestamp string `json:"timestamp"`
}

// ServerInfo is returned by the unauthenticated root endpoint.
// It mirrors what the server advertises during the MCP initialize handshake,
// plus the names of all available tools.
type ServerInfo struct {
	Name      string   `json:"name"`
	Version   string   `json:"version"`
	Protocol  string   `json:"protocol"`
	Tools     int      `json:"tools"`
	ToolNames []string `json:"tool_names"`
}
