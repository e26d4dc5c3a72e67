package layout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"invoiceforge/internal/domain"
)

// Mode selects how the engine handles content running past the bottom
// margin.
type Mode string

const (
	// ModePaginate starts a new page whenever a block would cross the
	// bottom margin.
	ModePaginate Mode = "paginate"
	// ModeLegacy lays everything out on a single page without overflow
	// checks. Content may land below the margin.
	ModeLegacy Mode = "legacy"
)

// ParseMode maps a config value to a Mode. Empty selects ModePaginate.
func ParseMode(s string) (Mode, error) {
	switch Mode(strings.ToLower(strings.TrimSpace(s))) {
	case "", ModePaginate:
		return ModePaginate, nil
	case ModeLegacy:
		return ModeLegacy, nil
	default:
		return "", fmt.Errorf("unknown layout mode %q", s)
	}
}

// ImageEmbedder validates raw image bytes and turns them into a handle
// instructions can reference.
type ImageEmbedder interface {
	Embed(ctx context.Context, data []byte, mimeType string) (domain.ImageHandle, error)
}

// Engine converts invoice data into positioned drawing instructions.
// An Engine holds no per-call state and is safe for concurrent use.
type Engine struct {
	geometry PageGeometry
	embedder ImageEmbedder
	mode     Mode
	logger   *zap.Logger
}

// NewEngine creates an engine. The geometry must pass Validate.
func NewEngine(geometry PageGeometry, embedder ImageEmbedder, mode Mode, logger *zap.Logger) (*Engine, error) {
	if err := geometry.Validate(); err != nil {
		return nil, err
	}
	if embedder == nil {
		return nil, errors.New("layout: image embedder is required")
	}
	if mode == "" {
		mode = ModePaginate
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		geometry: geometry,
		embedder: embedder,
		mode:     mode,
		logger:   logger.Named("layout"),
	}, nil
}

// Geometry returns the page geometry the engine lays out against.
func (e *Engine) Geometry() PageGeometry {
	return e.geometry
}

// Layout produces the instruction sequence for data. Totals are taken from
// data as given; callers recompute them first. The only failures are image
// embedding errors, in which case no document is returned.
func (e *Engine) Layout(ctx context.Context, data *domain.InvoiceData) (*Document, error) {
	if data == nil {
		return nil, fmt.Errorf("%w: no invoice data", domain.ErrInvalidInvoice)
	}

	logo, err := e.embed(ctx, SectionLogo, data.Logo)
	if err != nil {
		return nil, err
	}
	signature, err := e.embed(ctx, SectionSignature, data.Signature)
	if err != nil {
		return nil, err
	}

	b := newBuilder(e.geometry, e.mode == ModePaginate, data.CurrencySymbol)
	b.logo(logo)
	b.from(data.From)
	b.metadata(data)
	b.addresses(data.BillTo, data.ShipTo)
	b.items(data.Items, data.AnyItemHasTax())
	b.totals(data.Items, data.Totals, signature != nil)
	b.signature(signature)
	b.terms(data.TermsAndConditions)
	b.bankDetails(data.BankDetails)
	b.notes(data.Notes)

	doc := &Document{Geometry: e.geometry, Mode: e.mode, Pages: b.pages}
	e.logger.Debug("invoice laid out",
		zap.String("invoice_number", data.InvoiceNumber),
		zap.String("mode", string(e.mode)),
		zap.Int("pages", doc.PageCount()),
		zap.Int("items", len(data.Items)),
	)
	return doc, nil
}

// embed runs the embedder for an optional attachment. Attachments without
// bytes are treated as absent.
func (e *Engine) embed(ctx context.Context, section Section, att *domain.ImageAttachment) (*domain.ImageHandle, error) {
	if att == nil || len(att.Data) == 0 {
		return nil, nil
	}
	handle, err := e.embedder.Embed(ctx, att.Data, att.MimeType)
	if err != nil {
		e.logger.Warn("image embed failed",
			zap.String("section", string(section)),
			zap.String("mime_type", att.MimeType),
			zap.Error(err),
		)
		return nil, fmt.Errorf("embedding %s: %w", section, err)
	}
	return &handle, nil
}
