package port

import (
	"context"

	"invoiceforge/internal/layout"
)

// DocumentRenderer encodes a laid-out document into output bytes.
type DocumentRenderer interface {
	Render(ctx context.Context, doc *layout.Document) ([]byte, error)
	ContentType() string
}
