package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var callCmdArgsJSON string

var callCmd = &cobra.Command{
	Use:   "call <tool>",
	Short: "Invoke a tool on a running server",
	Long: "Invokes a tool by name on a running screenapp-mcp-server.\n" +
		"Tool arguments are supplied as a JSON object via --args.\n\n" +
		"eg- screenapp-mcp-server call list_recordings --args '{\"limit\": 5}'",
	Args: cobra.ExactArgs(1),
	RunE: runCallTool,
}

func init() {
	callCmd.Flags().StringVar(&callCmdArgsJSON, "args", "{}", "tool arguments as a JSON object")
	rootCmd.AddCommand(callCmd)
}

func runCallTool(cmd *cobra.Command, args []string) error {
	initAPIClient()

	var toolArgs map[string]any
	if err := json.Unmarshal([]byte(callCmdArgsJSON), &toolArgs); err != nil {
		return fmt.Errorf("invalid --args value, must be a JSON object: %w", err)
	}

	result, err := apiClient.CallTool(args[0], toolArgs)
	if err != nil {
		return fmt.Errorf("failed to call tool '%s': %w", args[0], err)
	}

	for _, content := range result.Content {
		cmd.Println(content.Text)
	}
	if result.IsError {
		return fmt.Errorf("tool '%s' reported an error", args[0])
	}
	return nil
}
