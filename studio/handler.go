// Package studio orchestrates one content request end to end: it validates
// the form input, asks the generator for text, records the result on the
// caller's Session and exports it on demand.
package studio

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"eduforge/generator"
	"eduforge/publisher"
)

// Generator produces raw text for a validated request.
type Generator interface {
	Generate(ctx context.Context, req generator.ContentRequest) (string, error)
}

// Exporter renders generated content into a downloadable document.
type Exporter interface {
	Export(ctx context.Context, content generator.GeneratedContent) (publisher.Artifact, error)
}

// Handler runs generate and export requests against caller-owned sessions.
type Handler struct {
	gen      Generator
	exporter Exporter
	logger   logrus.FieldLogger
	now      func() time.Time
}

// NewHandler wires a Handler; gen and exporter are required.
func NewHandler(gen Generator, exporter Exporter, logger logrus.FieldLogger) (*Handler, error) {
	if gen == nil {
		return nil, errors.New("generator is required")
	}
	if exporter == nil {
		return nil, errors.New("exporter is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Handler{gen: gen, exporter: exporter, logger: logger, now: time.Now}, nil
}

// HandleGenerate validates in, generates content and stores it on sess.
// On any error sess keeps its previous content.
func (h *Handler) HandleGenerate(ctx context.Context, sess *Session, in GenerateInput) (generator.GeneratedContent, error) {
	if sess == nil {
		return generator.GeneratedContent{}, errors.New("session is required")
	}
	log := h.logger.WithField("session_id", sess.ID)

	req, err := buildRequest(in, sess.Category())
	if err != nil {
		log.WithError(err).Info("[studio] rejected input")
		return generator.GeneratedContent{}, err
	}

	if err := sess.begin(); err != nil {
		return generator.GeneratedContent{}, err
	}
	defer sess.end()

	log = log.WithFields(logrus.Fields{"category": req.Category, "audience_age": req.AudienceAge})
	log.Info("[studio] generating")
	text, err := h.gen.Generate(ctx, req)
	if err != nil {
		return generator.GeneratedContent{}, err
	}

	content := generator.GeneratedContent{
		Category:    req.Category,
		Topic:       req.Topic,
		AudienceAge: req.AudienceAge,
		Text:        text,
		GeneratedAt: h.now(),
	}
	sess.commit(content, resolvedInput(req))
	log.Info("[studio] content stored")
	return content, nil
}

// Export renders the session's last generated content.
func (h *Handler) Export(ctx context.Context, sess *Session) (publisher.Artifact, error) {
	if sess == nil {
		return publisher.Artifact{}, errors.New("session is required")
	}
	content, ok := sess.Content()
	if !ok {
		return publisher.Artifact{}, publisher.ErrNoContent
	}
	return h.exporter.Export(ctx, content)
}
