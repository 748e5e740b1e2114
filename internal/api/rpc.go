package api

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rakesh1308/screenapp-mcp-server/internal/jsonrpc"
)

// rpcHandler is the single JSON-RPC endpoint. It validates the envelope,
// hands the request to the dispatcher, and always answers HTTP 200 —
// protocol-level failures live inside the JSON-RPC error object, matching
// what MCP clients expect.
func (s *Server) rpcHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.JSON(http.StatusOK, jsonrpc.NewErrorResponse(nil, jsonrpc.NewError(jsonrpc.ErrParse, err.Error())))
			return
		}

		var req jsonrpc.Request
		if err := json.Unmarshal(body, &req); err != nil {
			c.JSON(http.StatusOK, jsonrpc.NewErrorResponse(nil, jsonrpc.NewError(jsonrpc.ErrParse, err.Error())))
			return
		}

		if req.JSONRPC != jsonrpc.Version || req.Method == "" {
			// Echo the id when the malformed request carried one.
			c.JSON(http.StatusOK, jsonrpc.NewErrorResponse(req.ID, jsonrpc.NewError(jsonrpc.ErrInvalidRequest, nil)))
			return
		}

		c.JSON(http.StatusOK, s.dispatcher.Dispatch(c.Request.Context(), req))
	}
}
