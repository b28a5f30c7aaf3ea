// Package client turns a resolved modelenv.ClientConfig into ready-to-use SDK
// clients. Constructors never read the environment themselves; everything
// they need arrives in the config.
//
// Two OpenAI-compatible client families are supported: the official
// openai-go client (used by agentmesh and the plain chat examples) and the
// sashabaranov community client (consumed by instructor-go and
// atomic-agents).
package client

import (
	"fmt"

	"github.com/bububa/instructor-go/pkg/instructor"
	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"
	legacy "github.com/sashabaranov/go-openai"

	"github.com/modelwire/modelenv"
)

// NewOpenAI builds an official openai-go client for the resolved backend.
// Azure deployments go through the SDK's azure request options so the API
// version and api-key header are wired correctly; GitHub Models and Ollama
// are plain OpenAI-compatible endpoints.
func NewOpenAI(cfg modelenv.ClientConfig) (*openai.Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: config has no base URL")
	}
	var opts []option.RequestOption
	switch cfg.Backend {
	case modelenv.BackendAzure:
		opts = append(opts,
			azure.WithEndpoint(cfg.BaseURL, cfg.APIVersion),
			azure.WithAPIKey(cfg.Credential),
		)
	case modelenv.BackendGitHubModels, modelenv.BackendOllama:
		opts = append(opts,
			option.WithBaseURL(cfg.BaseURL),
			option.WithAPIKey(cfg.Credential),
		)
	default:
		return nil, fmt.Errorf("client: unknown backend %d", cfg.Backend)
	}
	c := openai.NewClient(opts...)
	return &c, nil
}

// NewLegacyOpenAI builds a sashabaranov/go-openai client for the resolved
// backend. This is the client instructor-go and atomic-agents expect.
func NewLegacyOpenAI(cfg modelenv.ClientConfig) (*legacy.Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("client: config has no base URL")
	}
	switch cfg.Backend {
	case modelenv.BackendAzure:
		conf := legacy.DefaultAzureConfig(cfg.Credential, cfg.BaseURL)
		if cfg.APIVersion != "" {
			conf.APIVersion = cfg.APIVersion
		}
		return legacy.NewClientWithConfig(conf), nil
	case modelenv.BackendGitHubModels, modelenv.BackendOllama:
		conf := legacy.DefaultConfig(cfg.Credential)
		conf.BaseURL = cfg.BaseURL
		return legacy.NewClientWithConfig(conf), nil
	default:
		return nil, fmt.Errorf("client: unknown backend %d", cfg.Backend)
	}
}

// NewInstructor wraps the legacy client in an instructor-go instructor with
// JSON mode, retries and schema validation enabled. Structured-output agents
// (atomic-agents) consume this directly.
func NewInstructor(cfg modelenv.ClientConfig) (instructor.Instructor, error) {
	clt, err := NewLegacyOpenAI(cfg)
	if err != nil {
		return nil, err
	}
	return instructor.FromOpenAI(
		clt,
		instructor.WithMode(instructor.ModeJSON),
		instructor.WithMaxRetries(3),
		instructor.WithValidation(),
	), nil
}
