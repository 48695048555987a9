package doctext

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lenderdesk/notice-validator/constants"
	"github.com/lenderdesk/notice-validator/internal/common"
)

// PlainText reads a text document as-is. Form feeds are treated as page
// separators, matching pdftotext output.
type PlainText struct{}

func (PlainText) Pages(_ context.Context, path string) ([]string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return splitPages(string(b)), nil
}

// PDF extracts the text layer of a PDF via pdftotext. No OCR: documents must
// already be machine-extractable.
type PDF struct {
	Bin    string
	runner Runner
}

func NewPDF(cfg common.DocTextConfig) *PDF {
	return &PDF{Bin: cfg.PdftotextBin, runner: execRunner{}}
}

func (p *PDF) Pages(ctx context.Context, path string) ([]string, error) {
	r := p.runner
	if r == nil {
		r = execRunner{}
	}
	out, errb, err := r.Run(ctx, p.Bin, "-layout", "-enc", "UTF-8", "-eol", "unix", path, "-")
	if err != nil {
		return nil, fmt.Errorf("pdftotext: %w: %s", err, strings.TrimSpace(string(errb)))
	}
	return splitPages(string(out)), nil
}

// Dispatcher picks a Provider by file extension.
type Dispatcher struct {
	PDF Provider
	TXT Provider
}

func NewDispatcher(cfg common.DocTextConfig) *Dispatcher {
	return &Dispatcher{PDF: NewPDF(cfg), TXT: PlainText{}}
}

func (d *Dispatcher) Pages(ctx context.Context, path string) ([]string, error) {
	switch constants.MapExtToFormat(filepath.Ext(path)) {
	case "PDF":
		return d.PDF.Pages(ctx, path)
	case "TXT":
		return d.TXT.Pages(ctx, path)
	default:
		return nil, fmt.Errorf("unsupported document format: %s", filepath.Ext(path))
	}
}

// splitPages splits extracted text on form feeds, the conventional page
// separator.
func splitPages(text string) []string {
	return strings.Split(text, "\f")
}
