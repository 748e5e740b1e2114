package cmd

import (
	"encoding/json"
	"fmt"
	"slices"

	"github.com/spf13/cobra"
)

var toolsCmd = &cobra.Command{
	Use:   "tools",
	Short: "List the tools exposed by a running server",
	RunE:  runListTools,
}

func init() {
	rootCmd.AddCommand(toolsCmd)
}

func runListTools(cmd *cobra.Command, args []string) error {
	initAPIClient()

	catalog, err := apiClient.ListTools()
	if err != nil {
		return fmt.Errorf("failed to list tools: %w", err)
	}

	for _, t := range catalog {
		cmd.Println(t.GetName())
		cmd.Println("  " + t.Description)

		for name, prop := range t.InputSchema.Properties {
			requiredOrOptional := "optional"
			if slices.Contains(t.InputSchema.Required, name) {
				requiredOrOptional = "required"
			}
			j, err := json.Marshal(prop)
			if err != nil {
				// Simply print the raw object if we fail to marshal it
				cmd.Printf("  - %s (%s): %v\n", name, requiredOrOptional, prop)
				continue
			}
			cmd.Printf("  - %s (%s): %s\n", name, requiredOrOptional, string(j))
		}
		cmd.Println()
	}

	return nil
}
