package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
)

const (
	openRouterBaseURL = "https://openrouter.ai/api/v1"
	openAIBaseURL     = "https://api.openai.com/v1"
	ollamaBaseURL     = "http://localhost:11434/v1"

	openAIDefaultModel = "gpt-4o-mini"
	ollamaDefaultModel = "llama3.1"
)

// OpenAIClient talks to any OpenAI-compatible chat completions endpoint.
// OpenRouter is the default deployment.
type OpenAIClient struct {
	provider string
	apiKey   string
	baseURL  string
	config   ClientConfig
	client   *http.Client
}

// NewOpenAIClient creates an OpenAIClient for config.Provider.
// An empty APIKey falls back to the provider's environment variable,
// and an empty BaseURL to the provider's public endpoint.
func NewOpenAIClient(config ClientConfig) *OpenAIClient {
	provider := config.Provider
	if provider == "" {
		provider = ProviderOpenRouter
	}

	var baseURL, envKey, model string
	switch provider {
	case ProviderOpenAI:
		baseURL, envKey, model = openAIBaseURL, "OPENAI_API_KEY", openAIDefaultModel
	case ProviderOllama:
		baseURL, model = ollamaBaseURL, ollamaDefaultModel
	default:
		baseURL, envKey, model = openRouterBaseURL, "OPENROUTER_API_KEY", DefaultConfig().Model
	}

	apiKey := config.APIKey
	if apiKey == "" && envKey != "" {
		apiKey = os.Getenv(envKey)
	}
	if config.BaseURL != "" {
		baseURL = config.BaseURL
	}

	config = withDefaults(config, model)
	return &OpenAIClient{
		provider: provider,
		apiKey:   apiKey,
		baseURL:  strings.TrimRight(baseURL, "/"),
		config:   config,
		client:   &http.Client{Timeout: config.Timeout},
	}
}

type openAIChatRequest struct {
	Model       string              `json:"model"`
	Messages    []openAIChatMessage `json:"messages"`
	Temperature float64             `json:"temperature,omitempty"`
	MaxTokens   int                 `json:"max_tokens,omitempty"`
}

type openAIChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// Available returns true if the client has a key, or needs none.
func (c *OpenAIClient) Available() bool {
	return c.provider == ProviderOllama || c.apiKey != ""
}

// Model returns the configured model identifier.
func (c *OpenAIClient) Model() string {
	return c.config.Model
}

// Generate sends req to the chat completions endpoint.
func (c *OpenAIClient) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("%s: %w: missing API key", c.provider, ErrUnavailable)
	}

	messages := make([]openAIChatMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openAIChatMessage{Role: "system", Content: req.System})
	}
	messages = append(messages, openAIChatMessage{Role: "user", Content: req.Prompt})

	body, err := json.Marshal(openAIChatRequest{
		Model:       c.config.Model,
		Messages:    messages,
		Temperature: req.Temperature,
		MaxTokens:   maxTokens(req, c.config.MaxTokens),
	})
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
	if c.provider == ProviderOpenRouter {
		if c.config.AppURL != "" {
			httpReq.Header.Set("HTTP-Referer", c.config.AppURL)
		}
		if c.config.AppName != "" {
			httpReq.Header.Set("X-Title", c.config.AppName)
		}
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{Provider: c.provider, Code: resp.StatusCode, Body: string(respBody)}
	}

	var chatResp openAIChatResponse
	if err := json.Unmarshal(respBody, &chatResp); err != nil {
		return "", fmt.Errorf("parsing API response: %w", err)
	}
	if chatResp.Error != nil {
		return "", fmt.Errorf("%s API error: %s", c.provider, chatResp.Error.Message)
	}
	if len(chatResp.Choices) == 0 {
		return "", fmt.Errorf("no choices in API response")
	}

	return chatResp.Choices[0].Message.Content, nil
}
