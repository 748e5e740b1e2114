// Package api provides the HTTP surface of the screenapp-mcp-server.
package api

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/dispatch"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/tools"
	"github.com/rakesh1308/screenapp-mcp-server/internal/telemetry"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/types"
	"github.com/rakesh1308/screenapp-mcp-server/pkg/version"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.uber.org/zap"
)

// ServerOptions holds everything needed to construct the HTTP server.
type ServerOptions struct {
	// Port is the HTTP port to bind the server to.
	Port string

	// APIKey is the shared secret expected from MCP clients.
	APIKey string

	Dispatcher *dispatch.Dispatcher
	Registry   *tools.Registry

	OtelProviders *telemetry.Providers
	Logger        *zap.Logger
}

// Server is the HTTP server exposing the JSON-RPC endpoint plus health and
// metadata endpoints.
type Server struct {
	port   string
	apiKey string
	router *gin.Engine

	dispatcher *dispatch.Dispatcher
	registry   *tools.Registry

	otelProviders *telemetry.Providers
	logger        *zap.Logger
}

// NewServer initializes a new Gin server for the MCP adapter.
func NewServer(opts *ServerOptions) (*Server, error) {
	if opts.Dispatcher == nil || opts.Registry == nil {
		return nil, fmt.Errorf("dispatcher and registry are required")
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	s := &Server{
		port:          opts.Port,
		apiKey:        opts.APIKey,
		dispatcher:    opts.Dispatcher,
		registry:      opts.Registry,
		otelProviders: opts.OtelProviders,
		logger:        opts.Logger,
	}
	s.router = s.setupRouter()

	return s, nil
}

// Start runs the Gin server (blocking call).
func (s *Server) Start() error {
	if err := s.router.Run(":" + s.port); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}
	return nil
}

// Router exposes the underlying handler, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) setupRouter() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(s.requestLogger())

	if s.otelProviders != nil && s.otelProviders.IsEnabled() {
		// instrument gin and expose the prometheus metrics endpoint
		r.Use(otelgin.Middleware(s.otelProviders.ServiceName()))
		r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	// Liveness and server info bypass authentication.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, types.HealthResponse{
			Status:    "ok",
			Service:   dispatch.ServerName,
			Version:   version.GetVersion(),
			Timestamp: time.Now().UTC().Format(time.RFC3339),
		})
	})

	r.GET("/", func(c *gin.Context) {
		names := s.registry.Names()
		c.JSON(http.StatusOK, types.ServerInfo{
			Name:      dispatch.ServerName,
			Version:   version.GetVersion(),
			Protocol:  "MCP over JSON-RPC 2.0",
			Tools:     len(names),
			ToolNames: names,
		})
	})

	r.POST("/", s.requireAPIKey(), s.rpcHandler())

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"error":   "Not found",
			"message": fmt.Sprintf("no route for %s %s", c.Request.Method, c.Request.URL.Path),
		})
	})

	return r
}
