package generator

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
	"github.com/sirupsen/logrus"
)

const systemPrompt = "You are an experienced educator. Answer with Markdown only, without extra commentary."

// OpenAILLM implements LLMClient using the official openai-go SDK (chat completions).
type OpenAILLM struct {
	Model  string
	Opts   []option.RequestOption
	logger logrus.FieldLogger
}

// NewOpenAILLMFromConfig builds a client for OpenAI or any compatible endpoint set by BaseURL.
func NewOpenAILLMFromConfig(cfg *LLMSettings, logger logrus.FieldLogger) (*OpenAILLM, error) {
	if cfg == nil {
		return nil, fmt.Errorf("%w: llm config is nil", ErrInvalidConfig)
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai api key missing; set OPENAI_API_KEY or llm.api_key", ErrInvalidConfig)
	}
	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &OpenAILLM{Model: model, Opts: opts, logger: logger}, nil
}

// Complete sends prompt as a single chat completion with SDK retries disabled.
func (o *OpenAILLM) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.Opts...)
	log := o.logger.WithFields(logrus.Fields{"model": o.Model, "prompt_length": len(prompt)})
	log.Debug("[openai] chat completion")

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.Model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(systemPrompt),
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		log.WithError(err).Error("[openai] chat completion failed")
		return "", unavailable("openai", err)
	}
	if len(resp.Choices) == 0 {
		return "", emptyResponse("openai", "empty choices")
	}
	text := resp.Choices[0].Message.Content
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse("openai", "empty message content")
	}
	return text, nil
}
