// Package client provides a Go client for the screenapp-mcp-server's
// JSON-RPC endpoint. It is used by the CLI and by integration tests.
package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/rakesh1308/screenapp-mcp-server/internal/jsonrpc"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/types"
)

// Client talks to a running screenapp-mcp-server.
type Client struct {
	baseURL string
	apiKey  string

	httpClient *http.Client
}

// NewClient creates a client for the server at baseURL authenticating with
// the given API key.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{},
	}
}

// Initialize performs the MCP handshake and returns the raw result object.
func (c *Client) Initialize() (map[string]any, error) {
	var result map[string]any
	if err := c.rpc("initialize", nil, &result); err != nil {
		return nil, err
	}
	return result, nil
}

// ListTools fetches the server's tool catalog.
func (c *Client) ListTools() ([]mcp.Tool, error) {
	var result struct {
		Tools []mcp.Tool `json:"tools"`
	}
	if err := c.rpc("tools/list", nil, &result); err != nil {
		return nil, err
	}
	return result.Tools, nil
}

// CallTool invokes a tool by name with the given arguments.
func (c *Client) CallTool(name string, args map[string]any) (*types.ToolCallResult, error) {
	params := map[string]any{"name": name, "arguments": args}
	var result types.ToolCallResult
	if err := c.rpc("tools/call", params, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// rpc sends a single JSON-RPC request and decodes the result into out.
func (c *Client) rpc(method string, params any, out any) error {
	reqBody := map[string]any{
		"jsonrpc": jsonrpc.Version,
		"method":  method,
		"id":      1,
	}
	if params != nil {
		reqBody["params"] = params
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request to %s: %w", c.baseURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return c.parseErrorResponse(resp)
	}

	var rpcResp struct {
		Result json.RawMessage `json:"result"`
		Error  *jsonrpc.Error  `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rpcResp); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	if rpcResp.Error != nil {
		return fmt.Errorf("rpc call %s failed: %w", method, rpcResp.Error)
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(rpcResp.Result, out); err != nil {
		return fmt.Errorf("failed to decode result: %w", err)
	}
	return nil
}

// parseErrorResponse extracts the error message from a non-200 response.
func (c *Client) parseErrorResponse(resp *http.Response) error {
	var body struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil || body.Error == "" {
		return fmt.Errorf("server returned status %d", resp.StatusCode)
	}
	if body.Message != "" {
		return fmt.Errorf("%s: %s", body.Error, body.Message)
	}
	return fmt.Errorf("%s", body.Error)
}
