// Package llm provides the text-generation capability used by persona agents.
// It supports OpenAI-compatible endpoints (OpenRouter, OpenAI, Ollama),
// Anthropic, and Gemini, plus throttling and retry decorators.
package llm

import (
	"context"
	"time"
)

// Provider names.
const (
	ProviderOpenRouter = "openrouter"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderOllama     = "ollama"
	ProviderMock       = "mock"
)

// Request is a single generation call.
type Request struct {
	// System is the persona system prompt. May be empty.
	System string

	// Prompt is the user-turn content.
	Prompt string

	// Temperature is the sampling temperature. Zero uses the provider default.
	Temperature float64

	// MaxTokens caps the response length. Zero uses the client default.
	MaxTokens int
}

// ClientConfig configures an LLM client.
type ClientConfig struct {
	// Provider identifies the backend: "openrouter", "openai", "anthropic", "gemini", "ollama".
	Provider string `json:"provider" yaml:"provider"`

	// APIKey is the API key for the provider (not used for ollama).
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint root.
	BaseURL string `json:"base_url,omitempty" yaml:"base_url,omitempty"`

	// Model is the model identifier to use for requests.
	Model string `json:"model,omitempty" yaml:"model,omitempty"`

	// AppName and AppURL are sent as attribution headers to OpenRouter.
	AppName string `json:"app_name,omitempty" yaml:"app_name,omitempty"`
	AppURL  string `json:"app_url,omitempty" yaml:"app_url,omitempty"`

	// Timeout is the maximum duration to wait for a response.
	Timeout time.Duration `json:"timeout,omitempty" yaml:"timeout,omitempty"`

	// MaxTokens is the default response cap when a Request sets none.
	MaxTokens int `json:"max_tokens,omitempty" yaml:"max_tokens,omitempty"`
}

// DefaultConfig returns a ClientConfig with sensible defaults.
func DefaultConfig() ClientConfig {
	return ClientConfig{
		Provider:  ProviderOpenRouter,
		Model:     "meta-llama/llama-3.1-70b-instruct",
		AppName:   "Auralie",
		Timeout:   60 * time.Second,
		MaxTokens: 500,
	}
}

// Client generates text for a prompt.
type Client interface {
	// Generate returns the raw generated text. Errors are transport or
	// provider failures; the text itself is never validated here.
	Generate(ctx context.Context, req Request) (string, error)

	// Available returns true if the client is configured and ready to handle requests.
	Available() bool
}

// Closer is an optional interface for clients that hold resources requiring cleanup.
type Closer interface {
	Close() error
}

func withDefaults(config ClientConfig, model string) ClientConfig {
	if config.Model == "" {
		config.Model = model
	}
	if config.Timeout == 0 {
		config.Timeout = 60 * time.Second
	}
	if config.MaxTokens == 0 {
		config.MaxTokens = 500
	}
	return config
}

func maxTokens(req Request, fallback int) int {
	if req.MaxTokens > 0 {
		return req.MaxTokens
	}
	return fallback
}
