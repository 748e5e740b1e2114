// Package jsonrpc provides the JSON-RPC 2.0 wire types used by the server.
package jsonrpc

import "encoding/json"

// Version is the only protocol version accepted and emitted by this server.
const Version = "2.0"

// Request represents a JSON-RPC request object.
type Request struct {
	JSONRPC string          `json:"jsonrpc"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`

	// ID is the request identifier. JSON strings decode as string, numbers
	// as float64. A request without an id leaves this nil.
	ID any `json:"id"`
}

// Response represents a JSON-RPC response object.
// The ID field deliberately has no omitempty: a response always echoes the
// request's id, and requests without an id get an explicit "id": null.
type Response struct {
	JSONRPC string `json:"jsonrpc"`
	Result  any    `json:"result,omitempty"`
	Error   *Error `json:"error,omitempty"`
	ID      any    `json:"id"`
}

// NewResultResponse builds a success response echoing the given request id.
func NewResultResponse(id any, result any) Response {
	return Response{JSONRPC: Version, Result: result, ID: id}
}

// NewErrorResponse builds an error response echoing the given request id.
func NewErrorResponse(id any, err *Error) Response {
	return Response{JSONRPC: Version, Error: err, ID: id}
}
