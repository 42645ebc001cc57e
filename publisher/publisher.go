package publisher

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"eduforge/generator"
)

const pdfMimeType = "application/pdf"

// Artifact is an exported document. It is built on demand and never cached.
type Artifact struct {
	Bytes             []byte
	SuggestedFilename string
	MimeType          string
}

// Exporter converts generated markdown into a downloadable PDF.
type Exporter struct {
	renderer Renderer
	timeout  time.Duration
	logger   logrus.FieldLogger
}

// New creates an Exporter. A zero timeout leaves the deadline to the caller's context.
func New(renderer Renderer, timeout time.Duration, logger logrus.FieldLogger) (*Exporter, error) {
	if renderer == nil {
		return nil, errors.New("renderer is required")
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Exporter{renderer: renderer, timeout: timeout, logger: logger}, nil
}

// Available reports whether the rendering engine can be used right now.
func (e *Exporter) Available() error {
	return e.renderer.Available()
}

// Export renders content.Text into a PDF artifact.
func (e *Exporter) Export(ctx context.Context, content generator.GeneratedContent) (Artifact, error) {
	log := e.logger.WithFields(logrus.Fields{"category": content.Category, "topic": content.Topic})

	if err := e.renderer.Available(); err != nil {
		log.WithError(err).Warn("[export] rendering engine unavailable")
		return Artifact{}, err
	}

	title := extractTitle(content.Text)
	if title == "" {
		title = fmt.Sprintf("Generated %s", content.Category)
	}
	body, err := mdToHTML(content.Text)
	if err != nil {
		return Artifact{}, renderFailed(err)
	}
	log.Debug("[export] converted markdown to html")

	if e.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, e.timeout)
		defer cancel()
	}
	pdf, err := e.renderer.Render(ctx, title, htmlDocument(title, body))
	if err != nil {
		log.WithError(err).Error("[export] render failed")
		return Artifact{}, err
	}

	name := Filename(content)
	log.WithFields(logrus.Fields{"filename": name, "bytes": len(pdf)}).Info("[export] pdf ready")
	return Artifact{Bytes: pdf, SuggestedFilename: name, MimeType: pdfMimeType}, nil
}

// Filename derives "{topic}_{category}.pdf" with spaces in the category
// replaced by underscores. Path separators in the topic are replaced too so
// the name stays a single path element.
func Filename(content generator.GeneratedContent) string {
	topic := strings.NewReplacer("/", "_", `\`, "_").Replace(content.Topic)
	category := strings.ReplaceAll(string(content.Category), " ", "_")
	return fmt.Sprintf("%s_%s.pdf", topic, category)
}
