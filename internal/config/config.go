// Package config loads and validates the server's startup configuration.
//
// Configuration is read once at process start and the resulting Config is
// immutable. Values come from environment variables, which take precedence
// over an optional YAML configuration file, which takes precedence over
// built-in defaults.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

const (
	APIBaseURLEnvVar      = "SCREENAPP_API_BASE_URL"
	APITokenEnvVar        = "SCREENAPP_API_TOKEN"
	TeamIDEnvVar          = "SCREENAPP_TEAM_ID"
	InboundAPIKeyEnvVar   = "MCP_API_KEY"
	BindPortEnvVar        = "PORT"
	UpstreamTimeoutEnvVar = "SCREENAPP_API_TIMEOUT_SEC"
	UnknownMethodEnvVar   = "MCP_UNKNOWN_METHOD_BEHAVIOR"
	TelemetryEnvVar       = "OTEL_ENABLED"
	ConfigFileEnvVar      = "CONFIG_FILE"
)

const (
	APIBaseURLDefault      = "https://api.screenapp.io/v2"
	BindPortDefault        = "8000"
	UpstreamTimeoutDefault = 10

	// DefaultInboundAPIKey is the fallback shared secret for inbound requests
	// when MCP_API_KEY is unset. Relying on it is a known security weakness
	// carried over from the original deployment; the server warns at startup
	// when it is in effect.
	DefaultInboundAPIKey = "screenapp-mcp-dev-key"
)

// UnknownMethodBehavior controls how the dispatcher treats RPC methods it
// cannot classify.
type UnknownMethodBehavior string

const (
	// UnknownMethodLenient serves the tool catalog for unrecognized methods.
	// This maximizes compatibility with non-conformant MCP clients.
	UnknownMethodLenient UnknownMethodBehavior = "lenient"

	// UnknownMethodStrict returns a JSON-RPC "Method not found" error for
	// unrecognized methods.
	UnknownMethodStrict UnknownMethodBehavior = "strict"
)

// Config holds the complete server configuration.
// It is constructed once by Load and never mutated afterwards.
type Config struct {
	// APIBaseURL is the base URL of the upstream ScreenApp REST API.
	APIBaseURL string
	// APIToken is the bearer token for the upstream API (required).
	APIToken string
	// TeamID is the ScreenApp team identifier sent with every upstream call (required).
	TeamID string

	// InboundAPIKey is the shared secret expected from MCP clients.
	InboundAPIKey string

	// BindPort is the TCP port the HTTP server listens on.
	BindPort string

	// UpstreamTimeoutSec bounds every upstream HTTP call, in seconds.
	UpstreamTimeoutSec int

	// UnknownMethod selects the dispatcher's policy for unrecognized RPC methods.
	UnknownMethod UnknownMethodBehavior

	// TelemetryEnabled turns on the OpenTelemetry metrics pipeline.
	TelemetryEnabled bool
}

// fileConfig is the YAML shape of the optional configuration file.
// Secrets (api token, team id) are deliberately env-only.
type fileConfig struct {
	APIBaseURL         string `yaml:"api_base_url"`
	InboundAPIKey      string `yaml:"api_key"`
	BindPort           string `yaml:"port"`
	UpstreamTimeoutSec int    `yaml:"upstream_timeout_sec"`
	UnknownMethod      string `yaml:"unknown_method_behavior"`
}

// Load reads configuration from the environment and, if CONFIG_FILE is set,
// from a YAML file on the given filesystem. It returns an error when a
// required value is missing or any value is invalid; the caller is expected
// to refuse to start in that case.
func Load(fsys afero.Fs) (*Config, error) {
	var fc fileConfig
	if path := os.Getenv(ConfigFileEnvVar); path != "" {
		data, err := afero.ReadFile(fsys, path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &fc); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	c := &Config{
		APIBaseURL:         firstNonEmpty(os.Getenv(APIBaseURLEnvVar), fc.APIBaseURL, APIBaseURLDefault),
		InboundAPIKey:      firstNonEmpty(os.Getenv(InboundAPIKeyEnvVar), fc.InboundAPIKey, DefaultInboundAPIKey),
		BindPort:           firstNonEmpty(os.Getenv(BindPortEnvVar), fc.BindPort, BindPortDefault),
		UpstreamTimeoutSec: UpstreamTimeoutDefault,
		UnknownMethod:      UnknownMethodLenient,
		TelemetryEnabled:   false,
	}

	token, err := getEnvOrFile(APITokenEnvVar)
	if err != nil {
		return nil, err
	}
	if token == "" {
		return nil, fmt.Errorf("%s environment variable is required", APITokenEnvVar)
	}
	c.APIToken = token

	teamID, err := getEnvOrFile(TeamIDEnvVar)
	if err != nil {
		return nil, err
	}
	if teamID == "" {
		return nil, fmt.Errorf("%s environment variable is required", TeamIDEnvVar)
	}
	c.TeamID = teamID

	if fc.UpstreamTimeoutSec > 0 {
		c.UpstreamTimeoutSec = fc.UpstreamTimeoutSec
	}
	if raw := strings.TrimSpace(os.Getenv(UpstreamTimeoutEnvVar)); raw != "" {
		timeout, err := strconv.Atoi(raw)
		if err != nil || timeout < 1 {
			return nil, fmt.Errorf(
				"invalid value for %s: '%s', must be a positive integer", UpstreamTimeoutEnvVar, raw,
			)
		}
		c.UpstreamTimeoutSec = timeout
	}

	behavior := firstNonEmpty(os.Getenv(UnknownMethodEnvVar), fc.UnknownMethod)
	if behavior != "" {
		switch UnknownMethodBehavior(strings.ToLower(behavior)) {
		case UnknownMethodLenient:
			c.UnknownMethod = UnknownMethodLenient
		case UnknownMethodStrict:
			c.UnknownMethod = UnknownMethodStrict
		default:
			return nil, fmt.Errorf(
				"invalid value for %s: '%s', valid values are '%s' and '%s'",
				UnknownMethodEnvVar, behavior, UnknownMethodLenient, UnknownMethodStrict,
			)
		}
	}

	if raw := strings.ToLower(os.Getenv(TelemetryEnvVar)); raw != "" {
		switch raw {
		case "true", "1":
			c.TelemetryEnabled = true
		case "false", "0":
			c.TelemetryEnabled = false
		default:
			return nil, fmt.Errorf(
				"invalid value for %s environment variable: '%s', valid values are 'true' or 'false'",
				TelemetryEnvVar, raw,
			)
		}
	}

	return c, nil
}

// IsDefaultInboundAPIKey reports whether the server is protected only by the
// built-in default API key.
func (c *Config) IsDefaultInboundAPIKey() bool {
	return c.InboundAPIKey == DefaultInboundAPIKey
}

// getEnvOrFile returns the value of the given environment variable.
// If the environment variable is not set, it checks for a corresponding
// _FILE environment variable and reads the value from the file if it exists.
// If neither is set, it returns an empty string.
func getEnvOrFile(envVar string) (string, error) {
	val := os.Getenv(envVar)
	if val != "" {
		return val, nil
	}

	fileEnvVar := envVar + "_FILE"
	filePath := os.Getenv(fileEnvVar)
	if filePath != "" {
		data, err := os.ReadFile(filePath)
		if err != nil {
			return "", fmt.Errorf("failed to read %s: %w", fileEnvVar, err)
		}
		return strings.TrimSpace(string(data)), nil
	}

	return "", nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
