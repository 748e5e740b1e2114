// Package cmd contains the CLI commands for the screenapp-mcp-server.
package cmd

import (
	"os"

	"github.com/rakesh1308/screenapp-mcp-server/client"
	"github.com/rakesh1308/screenapp-mcp-server/internal/config"
	"github.com/spf13/cobra"
)

var (
	rootCmdServerURL string
	rootCmdAPIKey    string

	// apiClient talks to a running server. It is initialized lazily by the
	// commands that need it (tools, call), not by start.
	apiClient *client.Client
)

var rootCmd = &cobra.Command{
	Use:   "screenapp-mcp-server",
	Short: "MCP server for ScreenApp recordings",
	Long: "screenapp-mcp-server exposes ScreenApp recordings, transcripts and summaries\n" +
		"as MCP tools over a JSON-RPC 2.0 HTTP endpoint.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&rootCmdServerURL,
		"server",
		"http://127.0.0.1:"+config.BindPortDefault,
		"base URL of a running screenapp-mcp-server (used by client commands)",
	)
	rootCmd.PersistentFlags().StringVar(
		&rootCmdAPIKey,
		"api-key",
		"",
		"API key for the server (falls back to the "+config.InboundAPIKeyEnvVar+" env var)",
	)
}

// initAPIClient builds the client used by the client-side commands.
func initAPIClient() {
	key := rootCmdAPIKey
	if key == "" {
		key = os.Getenv(config.InboundAPIKeyEnvVar)
	}
	if key == "" {
		key = config.DefaultInboundAPIKey
	}
	apiClient = client.NewClient(rootCmdServerURL, key)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
