package publisher

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"

	"github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// Renderer turns an HTML document into PDF bytes. Available is a capability
// check; it returns ErrEngineUnavailable when the engine cannot be used.
type Renderer interface {
	Available() error
	Render(ctx context.Context, title, html string) ([]byte, error)
}

// WkhtmltopdfRenderer drives the wkhtmltopdf executable.
type WkhtmltopdfRenderer struct {
	// BinPath is a command name looked up on PATH or an absolute path.
	BinPath  string
	PageSize string
}

// NewWkhtmltopdfRenderer defaults to "wkhtmltopdf" on PATH and A4 pages.
func NewWkhtmltopdfRenderer(binPath, pageSize string) *WkhtmltopdfRenderer {
	if binPath == "" {
		binPath = "wkhtmltopdf"
	}
	if pageSize == "" {
		pageSize = wkhtmltopdf.PageSizeA4
	}
	return &WkhtmltopdfRenderer{BinPath: binPath, PageSize: pageSize}
}

func (r *WkhtmltopdfRenderer) resolve() (string, error) {
	path, err := exec.LookPath(r.BinPath)
	if err != nil {
		return "", engineUnavailable(err)
	}
	return path, nil
}

// Available reports ErrEngineUnavailable when BinPath cannot be resolved.
func (r *WkhtmltopdfRenderer) Available() error {
	_, err := r.resolve()
	return err
}

// Render feeds html to the engine on stdin and returns the PDF it writes.
func (r *WkhtmltopdfRenderer) Render(ctx context.Context, title, html string) ([]byte, error) {
	path, err := r.resolve()
	if err != nil {
		return nil, err
	}

	// The binary path is package-wide in go-wkhtmltopdf; each renderer sets
	// its own before building a generator.
	wkhtmltopdf.SetPath(path)
	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, engineUnavailable(err)
	}
	pdfg.PageSize.Set(r.PageSize)
	if title != "" {
		pdfg.Title.Set(title)
	}
	page := wkhtmltopdf.NewPageReader(strings.NewReader(html))
	page.Encoding.Set("utf-8")
	pdfg.AddPage(page)

	if err := pdfg.CreateContext(ctx); err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, os.ErrNotExist) {
			return nil, engineUnavailable(err)
		}
		return nil, renderFailed(err)
	}
	return pdfg.Bytes(), nil
}
