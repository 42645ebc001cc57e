package publisher

import (
	"errors"
	"fmt"
)

var (
	// ErrEngineUnavailable means the rendering engine is not installed or not
	// reachable on this host. It is recoverable by installing the engine.
	ErrEngineUnavailable = errors.New("pdf rendering engine unavailable")

	// ErrRenderFailed means the engine ran but could not produce a document.
	ErrRenderFailed = errors.New("pdf rendering failed")

	// ErrNoContent is returned when export is requested before anything was generated.
	ErrNoContent = errors.New("no generated content to export")
)

// InstallGuidance is shown to users whenever ErrEngineUnavailable is returned.
const InstallGuidance = `PDF export requires wkhtmltopdf installation:
  - Windows: download from https://wkhtmltopdf.org/downloads.html
  - Mac: brew install --cask wkhtmltopdf
  - Linux: sudo apt-get install wkhtmltopdf`

// ExportError wraps export failures. Guidance is user-facing text; Err is the
// underlying cause and is not part of Error() for unavailable engines.
type ExportError struct {
	Kind     error
	Guidance string
	Err      error
}

func (e *ExportError) Error() string {
	if e.Guidance != "" {
		return fmt.Sprintf("%v. %s", e.Kind, e.Guidance)
	}
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", e.Kind, e.Err)
	}
	return e.Kind.Error()
}

func (e *ExportError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func engineUnavailable(cause error) error {
	return &ExportError{Kind: ErrEngineUnavailable, Guidance: InstallGuidance, Err: cause}
}

func renderFailed(cause error) error {
	return &ExportError{Kind: ErrRenderFailed, Err: cause}
}
