package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/service"
)

// InvoiceHandler handles invoice computation and export endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
	errors         errorHandler
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService, logger *zap.Logger) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService, errors: newErrorHandler(logger)}
}

// Totals handles POST /api/v1/invoices/totals
// @Summary      Recompute totals
// @Description  Refreshes auto-computed item amounts and returns subtotal, tax, grand total and effective tax percentage
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body domain.InvoiceData true "Invoice data"
// @Success      200 {object} APIResponse{data=TotalsResponse}
// @Failure      400 {object} APIResponse
// @Router       /invoices/totals [post]
func (h *InvoiceHandler) Totals(c *gin.Context) {
	var data domain.InvoiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.errors.bindError(c, err)
		return
	}

	out := h.invoiceService.Totals(data)
	RespondOK(c, TotalsResponse{Items: out.Items, Totals: out.Totals})
}

// Check handles POST /api/v1/invoices/check
// @Summary      Check an invoice
// @Description  Runs pre-flight checks on the invoice as submitted and reports findings without changing it
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body domain.InvoiceData true "Invoice data"
// @Success      200 {object} APIResponse{data=validator.Report}
// @Failure      400 {object} APIResponse
// @Router       /invoices/check [post]
func (h *InvoiceHandler) Check(c *gin.Context) {
	var data domain.InvoiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.errors.bindError(c, err)
		return
	}

	RespondOK(c, h.invoiceService.Check(c.Request.Context(), data))
}

// EditItem handles POST /api/v1/invoices/items/edit
// @Summary      Edit a line item field
// @Description  Applies one field edit with form semantics: non-numeric input becomes 0, editing amount freezes it
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body EditItemRequest true "Edit request"
// @Success      200 {object} APIResponse{data=TotalsResponse}
// @Failure      400 {object} APIResponse
// @Router       /invoices/items/edit [post]
func (h *InvoiceHandler) EditItem(c *gin.Context) {
	var req EditItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.bindError(c, err)
		return
	}

	res, err := h.invoiceService.EditItem(service.ItemEditInput{
		Items: req.Items,
		Index: *req.Index,
		Field: domain.ItemField(req.Field),
		Value: req.Value,
	})
	if err != nil {
		h.errors.handle(c, err)
		return
	}
	RespondOK(c, TotalsResponse{Items: res.Items, Totals: res.Totals})
}

// Layout handles POST /api/v1/invoices/layout
// @Summary      Lay out an invoice
// @Description  Returns the positioned drawing instructions for every page, without rendering
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body domain.InvoiceData true "Invoice data"
// @Success      200 {object} APIResponse{data=LayoutResponse}
// @Failure      400 {object} APIResponse
// @Failure      404 {object} APIResponse
// @Router       /invoices/layout [post]
func (h *InvoiceHandler) Layout(c *gin.Context) {
	var data domain.InvoiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.errors.bindError(c, err)
		return
	}

	res, err := h.invoiceService.Layout(c.Request.Context(), data)
	if err != nil {
		h.errors.handle(c, err)
		return
	}
	RespondOK(c, LayoutResponse{
		Document:       res.Document,
		PageCount:      res.Document.PageCount(),
		Totals:         res.Totals,
		CurrencyCode:   res.CurrencyCode,
		CurrencySymbol: res.CurrencySymbol,
	})
}

// Export handles POST /api/v1/invoices/export
// @Summary      Export invoice as PDF
// @Description  Lays out and renders the invoice. The PDF is returned as a download.
// @Tags         invoices
// @Accept       json
// @Produce      application/pdf
// @Param        body body domain.InvoiceData true "Invoice data"
// @Success      200 {file} file
// @Header       200 {int} X-Page-Count "Number of pages"
// @Failure      400 {object} APIResponse
// @Failure      413 {object} APIResponse
// @Failure      500 {object} APIResponse
// @Router       /invoices/export [post]
func (h *InvoiceHandler) Export(c *gin.Context) {
	var data domain.InvoiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.errors.bindError(c, err)
		return
	}

	res, err := h.invoiceService.Export(c.Request.Context(), data)
	if err != nil {
		h.errors.handle(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Header("X-Page-Count", strconv.Itoa(res.PageCount))
	c.Data(http.StatusOK, res.ContentType, res.PDF)
}

// ExportCSV handles POST /api/v1/invoices/export/csv
// @Summary      Export line items as CSV
// @Description  Line items and totals as a UTF-8 CSV with BOM
// @Tags         invoices
// @Accept       json
// @Produce      text/csv
// @Param        body body domain.InvoiceData true "Invoice data"
// @Success      200 {file} file
// @Failure      400 {object} APIResponse
// @Router       /invoices/export/csv [post]
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	var data domain.InvoiceData
	if err := c.ShouldBindJSON(&data); err != nil {
		h.errors.bindError(c, err)
		return
	}

	res, err := h.invoiceService.ExportCSV(c.Request.Context(), data)
	if err != nil {
		h.errors.handle(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", res.FileName))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", res.CSV)
}

// Send handles POST /api/v1/invoices/send
// @Summary      E-mail an invoice
// @Description  Renders the invoice and sends it as a PDF attachment
// @Tags         invoices
// @Accept       json
// @Produce      json
// @Param        body body SendInvoiceRequest true "Send request"
// @Success      200 {object} APIResponse{data=SendInvoiceResponse}
// @Failure      400 {object} APIResponse
// @Failure      502 {object} APIResponse
// @Router       /invoices/send [post]
func (h *InvoiceHandler) Send(c *gin.Context) {
	var req SendInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.bindError(c, err)
		return
	}

	res, err := h.invoiceService.Send(c.Request.Context(), service.SendInput{
		Invoice: req.Invoice,
		To:      req.To,
		Subject: req.Subject,
		Body:    req.Body,
	})
	if err != nil {
		h.errors.handle(c, err)
		return
	}
	RespondOK(c, SendInvoiceResponse{
		To:        req.To,
		FileName:  res.FileName,
		PageCount: res.PageCount,
		Totals:    res.Totals,
	})
}
