package modelenv

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv blanks every variable Resolve consults so tests are insulated from
// the invoking shell (CI runners commonly export GITHUB_TOKEN).
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		EnvModelHost,
		EnvAzureEndpoint, EnvAzureAPIKey, EnvAzureDeployment, EnvAzureAPIVersion,
		EnvGitHubToken, EnvGitHubModel,
		EnvOllamaEndpoint, EnvOllamaModel,
	} {
		t.Setenv(key, "")
	}
}

func TestResolve_AzureOnly(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAzureEndpoint, "https://x")
	t.Setenv(EnvAzureAPIKey, "k")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendAzure, cfg.Backend)
	assert.Equal(t, "https://x", cfg.BaseURL)
	assert.Equal(t, "k", cfg.Credential)
	assert.Equal(t, DefaultAzureDeployment, cfg.Model)
	assert.Equal(t, DefaultAzureAPIVersion, cfg.APIVersion)
}

func TestResolve_AzureRefinements(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAzureEndpoint, "https://myresource.openai.azure.com")
	t.Setenv(EnvAzureAPIKey, "secret")
	t.Setenv(EnvAzureDeployment, "gpt-4o-eastus")
	t.Setenv(EnvAzureAPIVersion, "2025-01-01-preview")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "gpt-4o-eastus", cfg.Model)
	assert.Equal(t, "2025-01-01-preview", cfg.APIVersion)
}

func TestResolve_AzureEndpointWithoutKey(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAzureEndpoint, "https://x")

	_, err := Resolve()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, EnvAzureAPIKey)
	assert.Contains(t, cfgErr.Error(), EnvAzureAPIKey)
}

func TestResolve_GitHubToken(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGitHubToken, "abc")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendGitHubModels, cfg.Backend)
	assert.Equal(t, GitHubModelsBaseURL, cfg.BaseURL)
	assert.Equal(t, "abc", cfg.Credential)
	assert.Equal(t, DefaultGitHubModel, cfg.Model)
	assert.Empty(t, cfg.APIVersion)
}

func TestResolve_GitHubModelOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGitHubToken, "abc")
	t.Setenv(EnvGitHubModel, "mistral-large-2407")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "mistral-large-2407", cfg.Model)
}

func TestResolve_OllamaDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOllamaModel, "llama3.1")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendOllama, cfg.Backend)
	assert.Equal(t, DefaultOllamaBaseURL, cfg.BaseURL)
	assert.Equal(t, OllamaCredential, cfg.Credential)
	assert.Equal(t, "llama3.1", cfg.Model)
}

func TestResolve_OllamaEndpointOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOllamaEndpoint, "http://127.0.0.1:9999/v1")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, "http://127.0.0.1:9999/v1", cfg.BaseURL)
	assert.Equal(t, DefaultOllamaModel, cfg.Model)
}

func TestResolve_NothingConfigured(t *testing.T) {
	clearEnv(t)

	_, err := Resolve()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "no usable model backend configured", cfgErr.Reason)
}

func TestResolve_PriorityOrder(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want Backend
	}{
		{
			name: "azure beats github",
			env: map[string]string{
				EnvAzureEndpoint: "https://x",
				EnvAzureAPIKey:   "k",
				EnvGitHubToken:   "abc",
			},
			want: BackendAzure,
		},
		{
			name: "github beats ollama",
			env: map[string]string{
				EnvGitHubToken: "abc",
				EnvOllamaModel: "llama3.1",
			},
			want: BackendGitHubModels,
		},
		{
			name: "azure beats all",
			env: map[string]string{
				EnvAzureEndpoint: "https://x",
				EnvAzureAPIKey:   "k",
				EnvGitHubToken:   "abc",
				EnvOllamaModel:   "llama3.1",
			},
			want: BackendAzure,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Resolve()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Backend)
		})
	}
}

func TestResolve_ModelHostOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAzureEndpoint, "https://x")
	t.Setenv(EnvAzureAPIKey, "k")
	t.Setenv(EnvGitHubToken, "abc")
	t.Setenv(EnvModelHost, "github")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendGitHubModels, cfg.Backend, "explicit host skips azure detection")
}

func TestResolve_ModelHostMissingRequirements(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModelHost, "github")

	_, err := Resolve()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Missing, EnvGitHubToken)
}

func TestResolve_ModelHostUnknown(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModelHost, "bedrock")

	_, err := Resolve()
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
	assert.Contains(t, cfgErr.Error(), "bedrock")
}

func TestResolve_ModelHostCaseInsensitive(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvModelHost, "Ollama")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendOllama, cfg.Backend)
}

func TestResolve_WhitespaceCountsAsAbsent(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvAzureEndpoint, "   ")
	t.Setenv(EnvGitHubToken, "abc")

	cfg, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, BackendGitHubModels, cfg.Backend)
}

func TestResolve_Idempotent(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvGitHubToken, "abc")
	t.Setenv(EnvGitHubModel, "gpt-4o-mini")

	first, err := Resolve()
	require.NoError(t, err)
	second, err := Resolve()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_CredentialNeverEmptyForHostedBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvOllamaModel, "llama3.1")
	cfg, err := Resolve()
	require.NoError(t, err)
	assert.NotEmpty(t, cfg.Credential)
	assert.NotEmpty(t, cfg.Model)
}

func TestBackend_String(t *testing.T) {
	assert.Equal(t, "azure", BackendAzure.String())
	assert.Equal(t, "github", BackendGitHubModels.String())
	assert.Equal(t, "ollama", BackendOllama.String())
	assert.Equal(t, "unknown", Backend(42).String())
}

func TestConfigError_Error(t *testing.T) {
	err := &ConfigError{Reason: "azure backend selected but no endpoint configured", Missing: []string{EnvAzureEndpoint}}
	assert.Equal(t, "azure backend selected but no endpoint configured (set AZURE_OPENAI_ENDPOINT)", err.Error())

	bare := &ConfigError{Reason: "boom"}
	assert.Equal(t, "boom", bare.Error())

	var target *ConfigError
	assert.True(t, errors.As(error(err), &target))
}
