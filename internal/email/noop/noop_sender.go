package noop

import (
	"context"

	"go.uber.org/zap"

	"invoiceforge/internal/port"
)

type noopSender struct {
	logger *zap.Logger
}

// NewNoopSender creates a no-op EmailSender that only logs what would have
// been sent.
func NewNoopSender(logger *zap.Logger) port.EmailSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &noopSender{logger: logger.Named("noop_email")}
}

func (s *noopSender) SendInvoice(_ context.Context, msg port.InvoiceEmail) error {
	s.logger.Info("[NOOP EMAIL] invoice email",
		zap.String("to", msg.To),
		zap.String("subject", msg.Subject),
		zap.String("file_name", msg.FileName),
		zap.Int("pdf_bytes", len(msg.PDF)),
	)
	return nil
}
