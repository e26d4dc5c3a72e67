package port

import "context"

// InvoiceEmail is an outgoing message carrying a rendered invoice.
type InvoiceEmail struct {
	To       string
	Subject  string
	Body     string
	FileName string
	PDF      []byte
}

// EmailSender defines the contract for delivering invoices by e-mail.
type EmailSender interface {
	SendInvoice(ctx context.Context, msg InvoiceEmail) error
}
