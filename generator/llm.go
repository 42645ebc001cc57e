package generator

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
)

// LLMClient abstracts the language model so providers can be swapped or stubbed.
// Complete makes exactly one attempt; failures are *GenerationError.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// LLMSettings is the provider configuration handed to concrete clients.
type LLMSettings struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

const (
	DefaultGeminiModel = "gemini-2.0-flash"
	DefaultOpenAIModel = "gpt-4o-mini"
)

// NewLLMFromConfig picks the client implementation for cfg.Provider.
func NewLLMFromConfig(ctx context.Context, cfg *LLMSettings, logger logrus.FieldLogger) (LLMClient, error) {
	if cfg == nil || cfg.Provider == "" {
		return nil, fmt.Errorf("%w: llm.provider is required", ErrInvalidConfig)
	}
	switch cfg.Provider {
	case "gemini":
		return NewGeminiLLMFromConfig(ctx, cfg, logger)
	case "openai":
		return NewOpenAILLMFromConfig(cfg, logger)
	case "deepseek":
		// DeepSeek exposes an OpenAI-compatible API behind its own base URL.
		if cfg.BaseURL == "" {
			return nil, fmt.Errorf("%w: provider deepseek requires llm.base_url", ErrInvalidConfig)
		}
		return NewOpenAILLMFromConfig(cfg, logger)
	case "mock":
		return MockLLM{}, nil
	default:
		return nil, fmt.Errorf("%w: provider %s not supported", ErrInvalidConfig, cfg.Provider)
	}
}
