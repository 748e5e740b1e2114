package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setRequired sets the two mandatory env vars so tests can focus on the
// value under test.
func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv(APITokenEnvVar, "test-token")
	t.Setenv(TeamIDEnvVar, "test-team")
}

// clearOptional unsets the optional env vars that would otherwise leak
// between tests run in the same process.
func clearOptional(t *testing.T) {
	t.Helper()
	for _, v := range []string{
		APIBaseURLEnvVar, InboundAPIKeyEnvVar, BindPortEnvVar,
		UpstreamTimeoutEnvVar, UnknownMethodEnvVar, TelemetryEnvVar, ConfigFileEnvVar,
	} {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	c, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, APIBaseURLDefault, c.APIBaseURL)
	assert.Equal(t, "test-token", c.APIToken)
	assert.Equal(t, "test-team", c.TeamID)
	assert.Equal(t, BindPortDefault, c.BindPort)
	assert.Equal(t, UpstreamTimeoutDefault, c.UpstreamTimeoutSec)
	assert.Equal(t, UnknownMethodLenient, c.UnknownMethod)
	assert.False(t, c.TelemetryEnabled)
	assert.True(t, c.IsDefaultInboundAPIKey())
}

func TestLoadMissingRequired(t *testing.T) {
	clearOptional(t)

	t.Setenv(APITokenEnvVar, "")
	os.Unsetenv(APITokenEnvVar)
	t.Setenv(TeamIDEnvVar, "test-team")

	_, err := Load(afero.NewMemMapFs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), APITokenEnvVar)

	t.Setenv(APITokenEnvVar, "test-token")
	t.Setenv(TeamIDEnvVar, "")
	os.Unsetenv(TeamIDEnvVar)

	_, err = Load(afero.NewMemMapFs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), TeamIDEnvVar)
}

func TestLoadTokenFromFile(t *testing.T) {
	clearOptional(t)

	tokenFile := filepath.Join(t.TempDir(), "token")
	require.NoError(t, os.WriteFile(tokenFile, []byte("file-token\n"), 0o600))

	t.Setenv(APITokenEnvVar, "")
	os.Unsetenv(APITokenEnvVar)
	t.Setenv(APITokenEnvVar+"_FILE", tokenFile)
	t.Setenv(TeamIDEnvVar, "test-team")

	c, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)
	assert.Equal(t, "file-token", c.APIToken)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	t.Setenv(APIBaseURLEnvVar, "https://staging.screenapp.io/v2")
	t.Setenv(InboundAPIKeyEnvVar, "real-secret")
	t.Setenv(BindPortEnvVar, "9090")
	t.Setenv(UpstreamTimeoutEnvVar, "30")
	t.Setenv(UnknownMethodEnvVar, "STRICT")
	t.Setenv(TelemetryEnvVar, "true")

	c, err := Load(afero.NewMemMapFs())
	require.NoError(t, err)

	assert.Equal(t, "https://staging.screenapp.io/v2", c.APIBaseURL)
	assert.Equal(t, "real-secret", c.InboundAPIKey)
	assert.False(t, c.IsDefaultInboundAPIKey())
	assert.Equal(t, "9090", c.BindPort)
	assert.Equal(t, 30, c.UpstreamTimeoutSec)
	assert.Equal(t, UnknownMethodStrict, c.UnknownMethod)
	assert.True(t, c.TelemetryEnabled)
}

func TestLoadConfigFile(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/etc/mcp/config.yaml", []byte(`
api_base_url: https://file.screenapp.io/v2
port: "7070"
upstream_timeout_sec: 25
unknown_method_behavior: strict
`), 0o644))
	t.Setenv(ConfigFileEnvVar, "/etc/mcp/config.yaml")

	c, err := Load(fsys)
	require.NoError(t, err)

	assert.Equal(t, "https://file.screenapp.io/v2", c.APIBaseURL)
	assert.Equal(t, "7070", c.BindPort)
	assert.Equal(t, 25, c.UpstreamTimeoutSec)
	assert.Equal(t, UnknownMethodStrict, c.UnknownMethod)
}

func TestLoadEnvBeatsConfigFile(t *testing.T) {
	clearOptional(t)
	setRequired(t)

	fsys := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fsys, "/config.yaml", []byte("port: \"7070\"\n"), 0o644))
	t.Setenv(ConfigFileEnvVar, "/config.yaml")
	t.Setenv(BindPortEnvVar, "9090")

	c, err := Load(fsys)
	require.NoError(t, err)
	assert.Equal(t, "9090", c.BindPort)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		envVar string
		value  string
	}{
		{name: "timeout not a number", envVar: UpstreamTimeoutEnvVar, value: "soon"},
		{name: "timeout zero", envVar: UpstreamTimeoutEnvVar, value: "0"},
		{name: "timeout negative", envVar: UpstreamTimeoutEnvVar, value: "-3"},
		{name: "unknown method behavior", envVar: UnknownMethodEnvVar, value: "forgiving"},
		{name: "telemetry flag", envVar: TelemetryEnvVar, value: "maybe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearOptional(t)
			setRequired(t)
			t.Setenv(tt.envVar, tt.value)

			_, err := Load(afero.NewMemMapFs())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.value)
		})
	}
}

func TestLoadMissingConfigFile(t *testing.T) {
	clearOptional(t)
	setRequired(t)
	t.Setenv(ConfigFileEnvVar, "/does/not/exist.yaml")

	_, err := Load(afero.NewMemMapFs())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "/does/not/exist.yaml")
}
