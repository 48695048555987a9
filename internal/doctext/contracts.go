// Package doctext provides the Document Text Provider collaborator: turning
// an uploaded notice document into per-page plain text. The validation core
// only ever consumes the page slice.
package doctext

import "context"

// Provider turns a document file into per-page extracted text.
type Provider interface {
	Pages(ctx context.Context, path string) ([]string, error)
}
