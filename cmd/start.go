package cmd

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/rakesh1308/screenapp-mcp-server/internal/api"
	"github.com/rakesh1308/screenapp-mcp-server/internal/config"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/dispatch"
	"github.com/rakesh1308/screenapp-mcp-server/internal/service/tools"
	"github.com/rakesh1308/screenapp-mcp-server/internal/telemetry"
	"github.com/rakesh1308/screenapp-mcp-server/internal/upstream"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var startServerCmdBindPort string

var startServerCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the ScreenApp MCP server",
	Long: "Starts the HTTP server exposing ScreenApp tools over JSON-RPC.\n\n" +
		"Required environment variables:\n" +
		"  " + config.APITokenEnvVar + "  bearer token for the ScreenApp API\n" +
		"  " + config.TeamIDEnvVar + "     ScreenApp team identifier\n\n" +
		"Both also accept a _FILE suffix pointing at a file holding the value.\n" +
		"Optional: " + config.InboundAPIKeyEnvVar + " (inbound shared secret), " + config.BindPortEnvVar + " (listen port),\n" +
		config.ConfigFileEnvVar + " (YAML config file), " + config.TelemetryEnvVar + " (enable metrics),\n" +
		config.UnknownMethodEnvVar + " ('lenient' serves the tool catalog for unknown RPC methods, 'strict' rejects them).",
	RunE: runStartServer,
}

func init() {
	startServerCmd.Flags().StringVar(
		&startServerCmdBindPort,
		"port",
		"",
		fmt.Sprintf("port to bind the HTTP server to (overrides env var %s)", config.BindPortEnvVar),
	)
	rootCmd.AddCommand(startServerCmd)
}

func runStartServer(cmd *cobra.Command, args []string) error {
	_ = godotenv.Load()

	cfg, err := config.Load(afero.NewOsFs())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if startServerCmdBindPort != "" {
		cfg.BindPort = startServerCmdBindPort
	}

	logger, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	otelProviders, err := telemetry.Init(cmd.Context(), &telemetry.Config{
		ServiceName: dispatch.ServerName,
		Enabled:     cfg.TelemetryEnabled,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry providers: %w", err)
	}
	defer func() {
		if err := otelProviders.Shutdown(cmd.Context()); err != nil {
			logger.Warn("failed to shutdown telemetry providers", zap.Error(err))
		}
	}()

	// By default a no-op metrics implementation is used; the real one is
	// only created when telemetry is enabled. Call sites use the ToolMetrics
	// interface either way.
	toolMetrics := telemetry.NewNoopToolMetrics()
	if otelProviders.IsEnabled() {
		toolMetrics, err = telemetry.NewOtelToolMetrics(otelProviders.Meter)
		if err != nil {
			return fmt.Errorf("failed to create tool metrics: %w", err)
		}
	}

	upstreamClient := upstream.NewClient(
		cfg.APIBaseURL,
		cfg.APIToken,
		cfg.TeamID,
		time.Duration(cfg.UpstreamTimeoutSec)*time.Second,
	)

	registry := tools.NewRegistry()
	executor := tools.NewExecutor(upstreamClient, toolMetrics)
	dispatcher := dispatch.NewDispatcher(registry, executor, cfg.UnknownMethod)

	s, err := api.NewServer(&api.ServerOptions{
		Port:          cfg.BindPort,
		APIKey:        cfg.InboundAPIKey,
		Dispatcher:    dispatcher,
		Registry:      registry,
		OtelProviders: otelProviders,
		Logger:        logger,
	})
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	if cfg.IsDefaultInboundAPIKey() {
		logger.Warn("server is using the built-in default API key; set " +
			config.InboundAPIKeyEnvVar + " to secure this endpoint")
	}

	logger.Info("starting screenapp-mcp-server",
		zap.String("port", cfg.BindPort),
		zap.String("upstream", cfg.APIBaseURL),
		zap.Int("tools", len(registry.List())),
		zap.Bool("telemetry", cfg.TelemetryEnabled),
		zap.String("unknown_method_behavior", string(cfg.UnknownMethod)),
	)
	if err := s.Start(); err != nil {
		return fmt.Errorf("failed to run the server: %w", err)
	}

	return nil
}
