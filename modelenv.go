// Package modelenv resolves which hosted language-model endpoint a process
// should talk to. It inspects the environment once at startup and produces an
// immutable ClientConfig (backend, base URL, credential, model name, API
// version) that any of the example programs hand to a framework client
// constructor.
//
// Three backends are supported:
//  1. Azure OpenAI — a provisioned cloud deployment, selected by
//     AZURE_OPENAI_ENDPOINT.
//  2. GitHub Models — the free hosted model catalog, selected by GITHUB_TOKEN.
//  3. Ollama — a local model runtime on loopback, selected by OLLAMA_ENDPOINT
//     or OLLAMA_MODEL.
//
// When more than one indicator is present the first match in the order above
// wins. MODEL_HOST (azure, github or ollama) skips detection and forces a
// backend. Resolution performs no network I/O and never logs credentials.
package modelenv

import (
	"fmt"
	"os"
	"strings"
)

// Backend identifies a source of language-model inference.
type Backend int

const (
	// BackendAzure is a provisioned Azure OpenAI deployment.
	BackendAzure Backend = iota
	// BackendGitHubModels is the free GitHub Models catalog, gated by a
	// personal access token.
	BackendGitHubModels
	// BackendOllama is a locally running Ollama server reachable over loopback.
	BackendOllama
)

// String returns the MODEL_HOST spelling of the backend.
func (b Backend) String() string {
	switch b {
	case BackendAzure:
		return "azure"
	case BackendGitHubModels:
		return "github"
	case BackendOllama:
		return "ollama"
	default:
		return "unknown"
	}
}

// Environment variables consumed by Resolve. Exported so examples and tests
// can reference them without restating the strings.
const (
	// EnvModelHost forces a backend (azure, github or ollama) instead of
	// relying on presence detection.
	EnvModelHost = "MODEL_HOST"

	// EnvAzureEndpoint selects the Azure backend when non-empty.
	EnvAzureEndpoint = "AZURE_OPENAI_ENDPOINT"
	// EnvAzureAPIKey holds the Azure OpenAI API key. Required once the Azure
	// backend is selected.
	EnvAzureAPIKey = "AZURE_OPENAI_API_KEY"
	// EnvAzureDeployment names the chat deployment to target.
	EnvAzureDeployment = "AZURE_OPENAI_CHAT_DEPLOYMENT"
	// EnvAzureAPIVersion overrides the Azure OpenAI API version.
	EnvAzureAPIVersion = "AZURE_OPENAI_VERSION"

	// EnvGitHubToken selects the GitHub Models backend when non-empty and
	// doubles as its credential.
	EnvGitHubToken = "GITHUB_TOKEN"
	// EnvGitHubModel overrides the GitHub Models model name.
	EnvGitHubModel = "GITHUB_MODEL"

	// EnvOllamaEndpoint selects the Ollama backend and overrides its base URL.
	EnvOllamaEndpoint = "OLLAMA_ENDPOINT"
	// EnvOllamaModel selects the Ollama backend and overrides its model name.
	EnvOllamaModel = "OLLAMA_MODEL"
)

// Defaults applied when the corresponding override variable is unset.
const (
	// GitHubModelsBaseURL is the fixed inference endpoint of the GitHub
	// Models catalog.
	GitHubModelsBaseURL = "https://models.inference.ai.azure.com"
	// DefaultGitHubModel is used when GITHUB_MODEL is unset.
	DefaultGitHubModel = "gpt-4o"
	// DefaultAzureDeployment is used when AZURE_OPENAI_CHAT_DEPLOYMENT is unset.
	DefaultAzureDeployment = "gpt-4o"
	// DefaultAzureAPIVersion is used when AZURE_OPENAI_VERSION is unset.
	DefaultAzureAPIVersion = "2024-08-01-preview"
	// DefaultOllamaBaseURL is the conventional local Ollama endpoint.
	DefaultOllamaBaseURL = "http://localhost:11434/v1"
	// DefaultOllamaModel is used when OLLAMA_MODEL is unset.
	DefaultOllamaModel = "llama3.1"
	// OllamaCredential is a placeholder key. Ollama ignores it, but several
	// OpenAI-compatible clients reject an entirely empty credential.
	OllamaCredential = "none"
)

// ClientConfig is the resolved bundle of connection parameters handed to a
// framework client constructor. It is built once by Resolve and never
// mutated afterwards.
type ClientConfig struct {
	// Backend that was selected.
	Backend Backend
	// BaseURL of the endpoint. For Azure this is the resource endpoint, for
	// GitHub Models the fixed catalog URL, for Ollama the local server.
	BaseURL string
	// Credential presented to the endpoint. Never empty; the Ollama backend
	// carries the OllamaCredential placeholder.
	Credential string
	// Model is the model name or, for Azure, the deployment name.
	Model string
	// APIVersion is only meaningful for the Azure backend.
	APIVersion string
}

// Resolve inspects the process environment and returns the configuration for
// exactly one backend. Detection order: Azure, then GitHub Models, then
// Ollama. A *ConfigError is returned when nothing usable is configured or a
// selected backend is missing required variables.
func Resolve() (ClientConfig, error) {
	if host := getenv(EnvModelHost); host != "" {
		return resolveHost(host)
	}
	switch {
	case getenv(EnvAzureEndpoint) != "":
		return resolveAzure()
	case getenv(EnvGitHubToken) != "":
		return resolveGitHubModels()
	case getenv(EnvOllamaEndpoint) != "" || getenv(EnvOllamaModel) != "":
		return resolveOllama()
	}
	return ClientConfig{}, &ConfigError{
		Reason:  "no usable model backend configured",
		Missing: []string{EnvAzureEndpoint, EnvGitHubToken, EnvOllamaEndpoint},
	}
}

func resolveHost(host string) (ClientConfig, error) {
	switch strings.ToLower(host) {
	case "azure":
		return resolveAzure()
	case "github":
		return resolveGitHubModels()
	case "ollama":
		return resolveOllama()
	default:
		return ClientConfig{}, &ConfigError{
			Reason: fmt.Sprintf("unknown %s value %q (want azure, github or ollama)", EnvModelHost, host),
		}
	}
}

func resolveAzure() (ClientConfig, error) {
	endpoint := getenv(EnvAzureEndpoint)
	if endpoint == "" {
		return ClientConfig{}, &ConfigError{
			Reason:  "azure backend selected but no endpoint configured",
			Missing: []string{EnvAzureEndpoint},
		}
	}
	key := getenv(EnvAzureAPIKey)
	if key == "" {
		return ClientConfig{}, &ConfigError{
			Reason:  fmt.Sprintf("%s is set but the API key is missing", EnvAzureEndpoint),
			Missing: []string{EnvAzureAPIKey},
		}
	}
	return ClientConfig{
		Backend:    BackendAzure,
		BaseURL:    endpoint,
		Credential: key,
		Model:      getenvDefault(EnvAzureDeployment, DefaultAzureDeployment),
		APIVersion: getenvDefault(EnvAzureAPIVersion, DefaultAzureAPIVersion),
	}, nil
}

func resolveGitHubModels() (ClientConfig, error) {
	token := getenv(EnvGitHubToken)
	if token == "" {
		return ClientConfig{}, &ConfigError{
			Reason:  "github backend selected but no token configured",
			Missing: []string{EnvGitHubToken},
		}
	}
	return ClientConfig{
		Backend:    BackendGitHubModels,
		BaseURL:    GitHubModelsBaseURL,
		Credential: token,
		Model:      getenvDefault(EnvGitHubModel, DefaultGitHubModel),
	}, nil
}

func resolveOllama() (ClientConfig, error) {
	return ClientConfig{
		Backend:    BackendOllama,
		BaseURL:    getenvDefault(EnvOllamaEndpoint, DefaultOllamaBaseURL),
		Credential: OllamaCredential,
		Model:      getenvDefault(EnvOllamaModel, DefaultOllamaModel),
	}, nil
}

// getenv reads an environment variable treating whitespace-only values as absent.
func getenv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

func getenvDefault(key, fallback string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return fallback
}
