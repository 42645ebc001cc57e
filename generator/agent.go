package generator

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// Agent composes the prompt for a request and hands it to the LLM.
type Agent struct {
	llm     LLMClient
	timeout time.Duration
	logger  logrus.FieldLogger
}

// NewAgent builds an Agent. A zero timeout leaves the deadline to the caller's context.
func NewAgent(llm LLMClient, timeout time.Duration, logger logrus.FieldLogger) (*Agent, error) {
	if llm == nil {
		return nil, errors.New("llm client is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Agent{llm: llm, timeout: timeout, logger: logger}, nil
}

// Generate returns the raw model text for req, unmodified.
func (a *Agent) Generate(ctx context.Context, req ContentRequest) (string, error) {
	prompt, err := Compose(req)
	if err != nil {
		return "", err
	}

	if a.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, a.timeout)
		defer cancel()
	}

	start := time.Now()
	text, err := a.llm.Complete(ctx, prompt)
	log := a.logger.WithFields(logrus.Fields{
		"category": req.Category,
		"elapsed":  time.Since(start).Round(time.Millisecond).String(),
	})
	if err != nil {
		var genErr *GenerationError
		if !errors.As(err, &genErr) {
			err = unavailable("llm", err)
		}
		log.WithError(err).Warn("[generator] generation failed")
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", emptyResponse("llm", "")
	}
	log.WithField("text_length", len(text)).Info("[generator] generation done")
	return text, nil
}
