package service

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"invoiceforge/internal/csvexport"
	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
	"invoiceforge/internal/invoice"
	"invoiceforge/internal/layout"
	"invoiceforge/internal/port"
	"invoiceforge/internal/validator"
)

// ItemEditInput is the DTO for a single line-item field edit.
type ItemEditInput struct {
	Items []domain.LineItem
	Index int
	Field domain.ItemField
	Value string
}

// ItemEditResult carries the edited item list and the totals derived from it.
type ItemEditResult struct {
	Items  []domain.LineItem
	Totals domain.Totals
}

// LayoutResult is a laid-out invoice together with the values it was laid
// out from.
type LayoutResult struct {
	Document       *layout.Document
	Totals         domain.Totals
	CurrencyCode   string
	CurrencySymbol string
}

// ExportResult is a rendered invoice ready for download or delivery.
type ExportResult struct {
	PDF            []byte
	FileName       string
	ContentType    string
	PageCount      int
	Totals         domain.Totals
	CurrencySymbol string
}

// CSVResult is the spreadsheet export of an invoice's line items.
type CSVResult struct {
	CSV      []byte
	FileName string
}

// SendInput is the DTO for e-mailing an invoice.
type SendInput struct {
	Invoice domain.InvoiceData
	To      string
	Subject string
	Body    string
}

// InvoiceService defines the invoice computation and export contract.
type InvoiceService interface {
	Totals(data domain.InvoiceData) domain.InvoiceData
	EditItem(input ItemEditInput) (*ItemEditResult, error)
	Layout(ctx context.Context, data domain.InvoiceData) (*LayoutResult, error)
	Export(ctx context.Context, data domain.InvoiceData) (*ExportResult, error)
	ExportCSV(ctx context.Context, data domain.InvoiceData) (*CSVResult, error)
	Send(ctx context.Context, input SendInput) (*ExportResult, error)
	Check(ctx context.Context, data domain.InvoiceData) *validator.Report
}

// Option customises an InvoiceService.
type Option func(*invoiceService)

// WithClock overrides the time source used for export file names.
func WithClock(now func() time.Time) Option {
	return func(s *invoiceService) { s.now = now }
}

// WithValidator replaces the built-in pre-flight checks.
func WithValidator(v *validator.Engine) Option {
	return func(s *invoiceService) { s.checks = v }
}

type invoiceService struct {
	engine   *layout.Engine
	renderer port.DocumentRenderer
	assets   port.AssetStore
	sender   port.EmailSender
	logger   *zap.Logger
	checks   *validator.Engine
	now      func() time.Time
}

// NewInvoiceService creates a new InvoiceService implementation. assets and
// sender may be nil; requests that need them then fail.
func NewInvoiceService(
	engine *layout.Engine,
	renderer port.DocumentRenderer,
	assets port.AssetStore,
	sender port.EmailSender,
	logger *zap.Logger,
	opts ...Option,
) InvoiceService {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &invoiceService{
		engine:   engine,
		renderer: renderer,
		assets:   assets,
		sender:   sender,
		logger:   logger.Named("invoice_service"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.checks == nil {
		s.checks = validator.NewEngine(validator.DefaultRegistry(), logger)
	}
	return s
}

func (s *invoiceService) Totals(data domain.InvoiceData) domain.InvoiceData {
	return invoice.Recompute(data)
}

// Check reports problems with data as submitted, before any recomputation.
func (s *invoiceService) Check(ctx context.Context, data domain.InvoiceData) *validator.Report {
	return s.checks.Check(ctx, &data)
}

func (s *invoiceService) EditItem(input ItemEditInput) (*ItemEditResult, error) {
	items, err := invoice.EditItemAt(input.Items, input.Index, input.Field, input.Value)
	if err != nil {
		return nil, err
	}
	return &ItemEditResult{Items: items, Totals: invoice.Calculate(items)}, nil
}

func (s *invoiceService) Layout(ctx context.Context, data domain.InvoiceData) (*LayoutResult, error) {
	prepared, err := s.prepare(ctx, data)
	if err != nil {
		return nil, err
	}
	doc, err := s.engine.Layout(ctx, prepared)
	if err != nil {
		return nil, err
	}
	return &LayoutResult{
		Document:       doc,
		Totals:         prepared.Totals,
		CurrencyCode:   prepared.CurrencyCode,
		CurrencySymbol: prepared.CurrencySymbol,
	}, nil
}

func (s *invoiceService) Export(ctx context.Context, data domain.InvoiceData) (*ExportResult, error) {
	laid, err := s.Layout(ctx, data)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("export cancelled before rendering: %w", err)
	}
	pdf, err := s.renderer.Render(ctx, laid.Document)
	if err != nil {
		return nil, err
	}

	result := &ExportResult{
		PDF:            pdf,
		FileName:       csvexport.BuildFilename(data.InvoiceNumber, "pdf", s.now()),
		ContentType:    s.renderer.ContentType(),
		PageCount:      laid.Document.PageCount(),
		Totals:         laid.Totals,
		CurrencySymbol: laid.CurrencySymbol,
	}
	s.logger.Info("invoice exported",
		zap.String("invoice_number", data.InvoiceNumber),
		zap.String("file_name", result.FileName),
		zap.Int("pages", result.PageCount),
		zap.Int("bytes", len(pdf)),
	)
	return result, nil
}

func (s *invoiceService) ExportCSV(ctx context.Context, data domain.InvoiceData) (*CSVResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	recomputed := invoice.Recompute(data)

	var buf bytes.Buffer
	if err := csvexport.Export(&buf, &recomputed); err != nil {
		return nil, fmt.Errorf("writing csv: %w", err)
	}
	return &CSVResult{
		CSV:      buf.Bytes(),
		FileName: csvexport.BuildFilename(data.InvoiceNumber, "csv", s.now()),
	}, nil
}

func (s *invoiceService) Send(ctx context.Context, input SendInput) (*ExportResult, error) {
	to := strings.TrimSpace(input.To)
	if to == "" {
		return nil, domain.ErrRecipientRequired
	}
	if s.sender == nil {
		return nil, fmt.Errorf("%w: no email sender configured", domain.ErrEmailFailed)
	}

	result, err := s.Export(ctx, input.Invoice)
	if err != nil {
		return nil, err
	}

	subject := input.Subject
	if subject == "" {
		subject = defaultSubject(input.Invoice.InvoiceNumber)
	}
	body := input.Body
	if body == "" {
		body = defaultBody(input.Invoice.InvoiceNumber, result.Totals, result.CurrencySymbol)
	}

	if err := s.sender.SendInvoice(ctx, port.InvoiceEmail{
		To:       to,
		Subject:  subject,
		Body:     body,
		FileName: result.FileName,
		PDF:      result.PDF,
	}); err != nil {
		s.logger.Error("sending invoice failed", zap.String("to", to), zap.Error(err))
		return nil, err
	}
	return result, nil
}

// prepare produces the snapshot the layout engine works from: derived fields
// recomputed, currency resolved and asset-backed images fetched. data itself
// is left untouched.
func (s *invoiceService) prepare(ctx context.Context, data domain.InvoiceData) (*domain.InvoiceData, error) {
	if code := strings.TrimSpace(data.CurrencyCode); code != "" && data.CurrencySymbol == "" {
		if _, err := currency.Normalize(code); err != nil {
			return nil, err
		}
	}

	prepared := invoice.Recompute(data)
	prepared.CurrencyCode, prepared.CurrencySymbol = currency.Resolve(data.CurrencyCode, data.CurrencySymbol)

	var err error
	if prepared.Logo, err = s.resolveAsset(ctx, layout.SectionLogo, data.Logo); err != nil {
		return nil, err
	}
	if prepared.Signature, err = s.resolveAsset(ctx, layout.SectionSignature, data.Signature); err != nil {
		return nil, err
	}
	return &prepared, nil
}

func (s *invoiceService) resolveAsset(ctx context.Context, section layout.Section, att *domain.ImageAttachment) (*domain.ImageAttachment, error) {
	if att == nil || len(att.Data) > 0 || att.AssetKey == "" {
		return att, nil
	}
	if s.assets == nil {
		return nil, fmt.Errorf("%s %q: %w", section, att.AssetKey, domain.ErrAssetStoreDisabled)
	}
	data, err := s.assets.Download(ctx, "", att.AssetKey)
	if err != nil {
		return nil, fmt.Errorf("fetching %s asset: %w", section, err)
	}
	resolved := *att
	resolved.Data = data
	return &resolved, nil
}

func defaultSubject(number string) string {
	if number == "" {
		return "Your invoice"
	}
	return "Invoice " + number
}

func defaultBody(number string, totals domain.Totals, symbol string) string {
	ref := "your invoice"
	if number != "" {
		ref = "invoice " + number
	}
	return fmt.Sprintf("Hello,\n\nPlease find %s attached. Amount due: %s.\n\nThank you for your business.",
		ref, currency.Format(totals.BalanceDue, symbol))
}
