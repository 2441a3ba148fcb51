package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"google.golang.org/genai"
)

const geminiDefaultModel = "gemini-2.5-flash"

// GeminiClient implements Client on the Gemini API.
type GeminiClient struct {
	config ClientConfig
	client *genai.Client
}

// NewGeminiClient creates a GeminiClient. If config.APIKey is empty, it
// falls back to the GEMINI_API_KEY environment variable.
func NewGeminiClient(ctx context.Context, config ClientConfig) (*GeminiClient, error) {
	if config.APIKey == "" {
		config.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	config = withDefaults(config, geminiDefaultModel)
	if config.APIKey == "" {
		return &GeminiClient{config: config}, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{config: config, client: client}, nil
}

// Available returns true if a genai client was created.
func (c *GeminiClient) Available() bool {
	return c.client != nil
}

// Generate calls GenerateContent with the persona prompt as system instruction.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (string, error) {
	if !c.Available() {
		return "", fmt.Errorf("gemini: %w: missing API key", ErrUnavailable)
	}

	conf := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(maxTokens(req, c.config.MaxTokens)),
	}
	if req.System != "" {
		conf.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if req.Temperature > 0 {
		conf.Temperature = genai.Ptr(float32(req.Temperature))
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.config.Model, genai.Text(req.Prompt), conf)
	if err != nil {
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &StatusError{Provider: ProviderGemini, Code: apiErr.Code, Body: apiErr.Message}
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}
