package llm

import (
	"context"
	"fmt"
)

// NewClient builds the client for config.Provider.
func NewClient(ctx context.Context, config ClientConfig) (Client, error) {
	switch config.Provider {
	case "", ProviderOpenRouter, ProviderOpenAI, ProviderOllama:
		return NewOpenAIClient(config), nil
	case ProviderAnthropic:
		return NewAnthropicClient(config), nil
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderMock:
		return NewMockClient().WithDefault(`{"message": "Hey there!", "emotion": "curious", "internal_thought": "", "fondness_change": 0}`), nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", config.Provider)
	}
}
