package handler

import (
	"invoiceforge/internal/catalog"
	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
	"invoiceforge/internal/layout"
)

// Swagger type definitions for API documentation.
// These types are used by swag to generate OpenAPI documentation.

// --- Request Types ---

// EditItemRequest represents a single line-item field edit.
type EditItemRequest struct {
	Items []domain.LineItem `json:"items" binding:"required"`
	Index *int              `json:"index" binding:"required" example:"0"`
	Field string            `json:"field" binding:"required" example:"quantity"`
	Value string            `json:"value" example:"3"`
}

// SendInvoiceRequest represents the e-mail delivery request body.
type SendInvoiceRequest struct {
	Invoice domain.InvoiceData `json:"invoice"`
	To      string             `json:"to" binding:"required,email" example:"billing@client.example"`
	Subject string             `json:"subject" example:"Invoice INV-001"`
	Body    string             `json:"body" example:"Please find your invoice attached."`
}

// CatalogLineItemsRequest selects catalog entries to turn into line items.
type CatalogLineItemsRequest struct {
	IDs []int `json:"ids" binding:"required" example:"0,2"`
}

// --- Response Types ---

// TotalsResponse is the recomputed item list and totals.
type TotalsResponse struct {
	Items  []domain.LineItem `json:"items"`
	Totals domain.Totals     `json:"totals"`
}

// LayoutResponse is a laid-out invoice.
type LayoutResponse struct {
	Document       *layout.Document `json:"document"`
	PageCount      int              `json:"page_count"`
	Totals         domain.Totals    `json:"totals"`
	CurrencyCode   string           `json:"currency_code"`
	CurrencySymbol string           `json:"currency_symbol"`
}

// SendInvoiceResponse describes a delivered invoice.
type SendInvoiceResponse struct {
	To        string        `json:"to" example:"billing@client.example"`
	FileName  string        `json:"file_name" example:"invoice_INV-001_20240309-140506.pdf"`
	PageCount int           `json:"page_count" example:"1"`
	Totals    domain.Totals `json:"totals"`
}

// CurrencyListResponse documents the currencies endpoint.
type CurrencyListResponse struct {
	Success bool                `json:"success" example:"true"`
	Data    []currency.Currency `json:"data"`
}

// CatalogListResponse documents the catalog search endpoint.
type CatalogListResponse struct {
	Success bool            `json:"success" example:"true"`
	Data    []catalog.Entry `json:"data"`
	Meta    ListMeta        `json:"meta"`
}
