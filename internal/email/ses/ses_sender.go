package ses

import (
	"context"
	"fmt"
	"html"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/port"
)

type sendAPI interface {
	SendEmail(ctx context.Context, params *sesv2.SendEmailInput, optFns ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error)
}

type sesSender struct {
	client      sendAPI
	fromAddress string
	fromName    string
	logger      *zap.Logger
}

// NewSESSender creates a new SES-backed EmailSender.
func NewSESSender(region, fromAddress, fromName string, logger *zap.Logger) (port.EmailSender, error) {
	cfg, err := awsconfig.LoadDefaultConfig(context.Background(), awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config for SES: %w", err)
	}
	return newSESSender(sesv2.NewFromConfig(cfg), fromAddress, fromName, logger), nil
}

func newSESSender(client sendAPI, fromAddress, fromName string, logger *zap.Logger) *sesSender {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &sesSender{
		client:      client,
		fromAddress: fromAddress,
		fromName:    fromName,
		logger:      logger.Named("ses"),
	}
}

func (s *sesSender) SendInvoice(ctx context.Context, msg port.InvoiceEmail) error {
	if strings.TrimSpace(msg.To) == "" {
		return fmt.Errorf("%w: recipient is required", domain.ErrEmailFailed)
	}

	from := fmt.Sprintf("%s <%s>", s.fromName, s.fromAddress)
	raw, err := buildRawMessage(from, msg, buildInvoiceHTML(msg.Body))
	if err != nil {
		return fmt.Errorf("%w: building message: %v", domain.ErrEmailFailed, err)
	}

	out, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: &from,
		Destination: &types.Destination{
			ToAddresses: []string{msg.To},
		},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: raw},
		},
	})
	if err != nil {
		return fmt.Errorf("%w: SES SendEmail: %v", domain.ErrEmailFailed, err)
	}

	fields := []zap.Field{zap.String("to", msg.To), zap.String("file_name", msg.FileName)}
	if out != nil && out.MessageId != nil {
		fields = append(fields, zap.String("message_id", *out.MessageId))
	}
	s.logger.Info("invoice email sent", fields...)
	return nil
}

func buildInvoiceHTML(body string) string {
	paragraphs := strings.Split(strings.TrimSpace(body), "\n\n")
	var b strings.Builder
	for _, p := range paragraphs {
		if p == "" {
			continue
		}
		b.WriteString("  <p>")
		b.WriteString(strings.ReplaceAll(html.EscapeString(p), "\n", "<br>"))
		b.WriteString("</p>\n")
	}
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
%s  <p style="color: #666;">Your invoice is attached to this email as a PDF.</p>
  <hr style="border: none; border-top: 1px solid #eee; margin: 20px 0;">
  <p style="color: #999; font-size: 12px;">Sent with Invoiceforge</p>
</body>
</html>`, b.String())
}
