package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/genai"
)

// GeminiLLM implements LLMClient on the Gemini API via google.golang.org/genai.
type GeminiLLM struct {
	client *genai.Client
	model  string
	logger logrus.FieldLogger
}

// NewGeminiLLMFromConfig requires an API key; BaseURL overrides the endpoint.
func NewGeminiLLMFromConfig(ctx context.Context, cfg *LLMSettings, logger logrus.FieldLogger) (*GeminiLLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key missing; set GEMINI_API_KEY or llm.api_key", ErrInvalidConfig)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}
	clientCfg := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		clientCfg.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.BaseURL}
	}
	client, err := genai.NewClient(ctx, clientCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: create gemini client: %v", ErrInvalidConfig, err)
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &GeminiLLM{client: client, model: model, logger: logger}, nil
}

// Complete makes one GenerateContent call. A safety stop or blank text is
// ErrEmptyResponse; any transport or API failure is ErrServiceUnavailable.
func (g *GeminiLLM) Complete(ctx context.Context, prompt string) (string, error) {
	log := g.logger.WithFields(logrus.Fields{"model": g.model, "prompt_length": len(prompt)})
	log.Debug("[gemini] generate content")

	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		log.WithError(err).Error("[gemini] generate content failed")
		return "", unavailable("gemini", err)
	}
	if resp == nil || len(resp.Candidates) == 0 {
		return "", emptyResponse("gemini", "no candidates")
	}
	if resp.Candidates[0].FinishReason == genai.FinishReasonSafety {
		return "", emptyResponse("gemini", "content blocked by safety filters")
	}
	text := resp.Text()
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse("gemini", "no text parts")
	}
	log.WithField("text_length", len(text)).Debug("[gemini] generate content done")
	return text, nil
}
