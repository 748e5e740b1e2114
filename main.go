package main

import (
	"os"

	"github.com/rakesh1308/screenapp-mcp-server/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
