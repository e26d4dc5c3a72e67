package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/layout"
	"invoiceforge/internal/port"
	"invoiceforge/internal/service"
	"invoiceforge/internal/validator"
	"invoiceforge/mocks"
)

var fixedNow = time.Date(2024, 3, 9, 14, 5, 6, 0, time.UTC)

type fixture struct {
	embedder *mocks.MockImageEmbedder
	renderer *mocks.MockDocumentRenderer
	assets   *mocks.MockAssetStore
	sender   *mocks.MockEmailSender
	svc      service.InvoiceService
}

func newFixture(t *testing.T, withAssets bool) *fixture {
	t.Helper()
	f := &fixture{
		embedder: new(mocks.MockImageEmbedder),
		renderer: new(mocks.MockDocumentRenderer),
		assets:   new(mocks.MockAssetStore),
		sender:   new(mocks.MockEmailSender),
	}
	engine, err := layout.NewEngine(layout.DefaultGeometry(), f.embedder, layout.ModePaginate, nil)
	require.NoError(t, err)

	var assets port.AssetStore
	if withAssets {
		assets = f.assets
	}
	f.svc = service.NewInvoiceService(engine, f.renderer, assets, f.sender, nil, service.WithClock(func() time.Time { return fixedNow }))
	return f
}

func sampleInvoice() domain.InvoiceData {
	return domain.InvoiceData{
		From:          "Acme Ltd\n1 Road",
		BillTo:        "Client Co",
		InvoiceNumber: "INV/001",
		InvoiceDate:   "2024-03-09",
		CurrencyCode:  "eur",
		Items: []domain.LineItem{
			{Description: "Widget", Quantity: "2", UnitPrice: "10"},
			{Description: "Setup", Amount: "5", AmountIsManual: true, Tax: &domain.ItemTax{Name: "VAT", Percentage: "20"}},
		},
	}
}

func TestTotals_RecomputesDerivedFields(t *testing.T) {
	f := newFixture(t, false)

	out := f.svc.Totals(sampleInvoice())

	assert.Equal(t, "20.00", out.Items[0].Amount)
	assert.Equal(t, 25.0, out.Totals.Subtotal)
	assert.Equal(t, 1.0, out.Totals.TaxTotal)
	assert.Equal(t, 26.0, out.Totals.GrandTotal)
}

func TestEditItem(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()

	res, err := f.svc.EditItem(service.ItemEditInput{Items: data.Items, Index: 0, Field: domain.ItemFieldQuantity, Value: "3"})

	require.NoError(t, err)
	assert.Equal(t, "30.00", res.Items[0].Amount)
	assert.Equal(t, 35.0, res.Totals.Subtotal)
	assert.Equal(t, "2", data.Items[0].Quantity, "input items must not be mutated")
}

func TestEditItem_IndexOutOfRange(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.EditItem(service.ItemEditInput{Items: sampleInvoice().Items, Index: 5, Field: domain.ItemFieldQuantity, Value: "1"})

	assert.ErrorIs(t, err, domain.ErrItemIndexOutOfRange)
}

func TestLayout_ResolvesCurrency(t *testing.T) {
	f := newFixture(t, false)

	res, err := f.svc.Layout(context.Background(), sampleInvoice())

	require.NoError(t, err)
	assert.Equal(t, "EUR", res.CurrencyCode)
	assert.Equal(t, "€", res.CurrencySymbol)
	assert.Equal(t, 26.0, res.Totals.GrandTotal)
	assert.Equal(t, 1, res.Document.PageCount())
	f.embedder.AssertNotCalled(t, "Embed", mock.Anything, mock.Anything, mock.Anything)
}

func TestLayout_UnknownCurrencyWithoutSymbol(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()
	data.CurrencyCode = "ZZ1"

	_, err := f.svc.Layout(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrUnknownCurrency)
}

func TestLayout_ExplicitSymbolWins(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()
	data.CurrencyCode = "ZZ1"
	data.CurrencySymbol = "pts "

	res, err := f.svc.Layout(context.Background(), data)

	require.NoError(t, err)
	assert.Equal(t, "pts ", res.CurrencySymbol)
}

func TestExport_Success(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.AnythingOfType("*layout.Document")).Return([]byte("%PDF-1.3"), nil)
	f.renderer.On("ContentType").Return("application/pdf")

	res, err := f.svc.Export(context.Background(), sampleInvoice())

	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF-1.3"), res.PDF)
	assert.Equal(t, "invoice_INV_001_20240309-140506.pdf", res.FileName)
	assert.Equal(t, "application/pdf", res.ContentType)
	assert.Equal(t, 1, res.PageCount)
	assert.Equal(t, 26.0, res.Totals.GrandTotal)
	assert.Equal(t, "€", res.CurrencySymbol)
	f.renderer.AssertExpectations(t)
}

func TestExport_ImageErrorAbortsBeforeRender(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()
	data.Logo = &domain.ImageAttachment{Data: []byte("GIF89a"), MimeType: "image/gif"}
	f.embedder.On("Embed", mock.Anything, data.Logo.Data, "image/gif").Return(domain.ImageHandle{}, domain.ErrUnsupportedImageFormat)

	res, err := f.svc.Export(context.Background(), data)

	assert.Nil(t, res)
	assert.ErrorIs(t, err, domain.ErrUnsupportedImageFormat)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestExport_CancelledContextSkipsRender(t *testing.T) {
	f := newFixture(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.svc.Export(ctx, sampleInvoice())

	assert.ErrorIs(t, err, context.Canceled)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestExport_RenderFailure(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return(nil, domain.ErrRenderFailed)

	_, err := f.svc.Export(context.Background(), sampleInvoice())

	assert.ErrorIs(t, err, domain.ErrRenderFailed)
}

func TestExport_AssetKeyResolvedThroughStore(t *testing.T) {
	f := newFixture(t, true)
	data := sampleInvoice()
	data.Logo = &domain.ImageAttachment{AssetKey: "logos/acme.png"}
	logoBytes := []byte("png-bytes")

	f.assets.On("Download", mock.Anything, "", "logos/acme.png").Return(logoBytes, nil)
	f.embedder.On("Embed", mock.Anything, logoBytes, "").Return(domain.ImageHandle{Ref: "r1", Format: domain.ImageFormatPNG, Data: logoBytes}, nil)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")

	_, err := f.svc.Export(context.Background(), data)

	require.NoError(t, err)
	assert.Nil(t, data.Logo.Data, "caller's attachment must not be filled in")
	f.assets.AssertExpectations(t)
	f.embedder.AssertExpectations(t)
}

func TestExport_AssetKeyWithoutStore(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()
	data.Signature = &domain.ImageAttachment{AssetKey: "sig.png"}

	_, err := f.svc.Export(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrAssetStoreDisabled)
}

func TestExport_AssetMissing(t *testing.T) {
	f := newFixture(t, true)
	data := sampleInvoice()
	data.Logo = &domain.ImageAttachment{AssetKey: "nope.png"}
	f.assets.On("Download", mock.Anything, "", "nope.png").Return(nil, domain.ErrAssetNotFound)

	_, err := f.svc.Export(context.Background(), data)

	assert.ErrorIs(t, err, domain.ErrAssetNotFound)
}

func TestExportCSV(t *testing.T) {
	f := newFixture(t, false)

	res, err := f.svc.ExportCSV(context.Background(), sampleInvoice())

	require.NoError(t, err)
	assert.Equal(t, "invoice_INV_001_20240309-140506.csv", res.FileName)
	assert.Contains(t, string(res.CSV), "Widget")
	assert.Contains(t, string(res.CSV), "26.00")
}

func TestSend_DefaultsSubjectAndBody(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")
	f.sender.On("SendInvoice", mock.Anything, mock.MatchedBy(func(msg port.InvoiceEmail) bool {
		return msg.To == "client@example.com" &&
			msg.Subject == "Invoice INV/001" &&
			msg.FileName == "invoice_INV_001_20240309-140506.pdf" &&
			string(msg.PDF) == "%PDF"
	})).Return(nil)

	res, err := f.svc.Send(context.Background(), service.SendInput{Invoice: sampleInvoice(), To: " client@example.com "})

	require.NoError(t, err)
	assert.Equal(t, 1, res.PageCount)
	f.sender.AssertExpectations(t)
	msg := f.sender.Calls[0].Arguments.Get(1).(port.InvoiceEmail)
	assert.Contains(t, msg.Body, "€26.00")
}

func TestSend_BodyUsesExplicitSymbol(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")
	f.sender.On("SendInvoice", mock.Anything, mock.Anything).Return(nil)
	data := sampleInvoice()
	data.CurrencyCode = ""
	data.CurrencySymbol = "CHF "

	_, err := f.svc.Send(context.Background(), service.SendInput{Invoice: data, To: "client@example.com"})

	require.NoError(t, err)
	msg := f.sender.Calls[0].Arguments.Get(1).(port.InvoiceEmail)
	assert.Contains(t, msg.Body, "Amount due: CHF 26.00.")
}

func TestSend_BodyShowsBalanceAfterPayment(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")
	f.sender.On("SendInvoice", mock.Anything, mock.Anything).Return(nil)
	data := sampleInvoice()
	data.AmountPaid = "6"

	res, err := f.svc.Send(context.Background(), service.SendInput{Invoice: data, To: "client@example.com"})

	require.NoError(t, err)
	assert.InDelta(t, 20.0, res.Totals.BalanceDue, 0.001)
	msg := f.sender.Calls[0].Arguments.Get(1).(port.InvoiceEmail)
	assert.Contains(t, msg.Body, "Amount due: €20.00.")
}

func TestSend_RecipientRequired(t *testing.T) {
	f := newFixture(t, false)

	_, err := f.svc.Send(context.Background(), service.SendInput{Invoice: sampleInvoice()})

	assert.ErrorIs(t, err, domain.ErrRecipientRequired)
	f.renderer.AssertNotCalled(t, "Render", mock.Anything, mock.Anything)
}

func TestSend_SenderFailure(t *testing.T) {
	f := newFixture(t, false)
	f.renderer.On("Render", mock.Anything, mock.Anything).Return([]byte("%PDF"), nil)
	f.renderer.On("ContentType").Return("application/pdf")
	f.sender.On("SendInvoice", mock.Anything, mock.Anything).Return(errors.Join(domain.ErrEmailFailed, errors.New("throttled")))

	_, err := f.svc.Send(context.Background(), service.SendInput{Invoice: sampleInvoice(), To: "a@b.c"})

	assert.ErrorIs(t, err, domain.ErrEmailFailed)
}

func TestCheck_SampleIsValid(t *testing.T) {
	f := newFixture(t, false)

	report := f.svc.Check(context.Background(), sampleInvoice())

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.Empty(t, report.Findings)
}

func TestCheck_SeesAmountsAsSubmitted(t *testing.T) {
	f := newFixture(t, false)
	data := sampleInvoice()
	data.Items[0].Amount = "15.00"
	data.CurrencyCode = "ZZZ"

	report := f.svc.Check(context.Background(), data)

	assert.Equal(t, domain.ValidationStatusInvalid, report.Status)
	require.Len(t, report.Findings, 2)
	assert.Equal(t, "fmt.currency_code", report.Findings[0].RuleKey)
	assert.Equal(t, "items[0].amount", report.Findings[1].FieldPath)
}

func TestCheck_CustomValidator(t *testing.T) {
	engine, err := layout.NewEngine(layout.DefaultGeometry(), new(mocks.MockImageEmbedder), layout.ModePaginate, nil)
	require.NoError(t, err)
	svc := service.NewInvoiceService(engine, nil, nil, nil, nil,
		service.WithValidator(validator.NewEngine(validator.NewRegistry(), nil)))

	report := svc.Check(context.Background(), domain.InvoiceData{})

	assert.Equal(t, domain.ValidationStatusValid, report.Status)
	assert.Zero(t, report.Checked)
}
