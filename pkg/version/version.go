// Package version provides the server's version information.
package version

// Version is the current version of the screenapp-mcp-server.
// It is overridden at build time via -ldflags.
var Version = "1.0.0"

// GetVersion returns the current server version.
func GetVersion() string {
	return Version
}
