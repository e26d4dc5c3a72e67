package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoiceforge/internal/catalog"
	"invoiceforge/internal/currency"
	"invoiceforge/internal/domain"
)

// CatalogHandler serves reference data: the saved-item catalog and the
// currency table.
type CatalogHandler struct {
	catalog *catalog.Catalog
	errors  errorHandler
}

// NewCatalogHandler creates a new CatalogHandler. cat may be nil when no
// catalog is configured.
func NewCatalogHandler(cat *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: cat, errors: newErrorHandler(logger)}
}

// Currencies handles GET /api/v1/currencies
// @Summary      List currencies
// @Description  Currency codes with the symbol used when formatting amounts
// @Tags         reference
// @Produce      json
// @Success      200 {object} CurrencyListResponse
// @Router       /currencies [get]
func (h *CatalogHandler) Currencies(c *gin.Context) {
	list := currency.List()
	RespondList(c, list, len(list))
}

// SearchItems handles GET /api/v1/catalog/items
// @Summary      Search saved items
// @Description  Case-insensitive substring search on item descriptions
// @Tags         catalog
// @Produce      json
// @Param        q query string false "Search term"
// @Success      200 {object} CatalogListResponse
// @Failure      503 {object} APIResponse
// @Router       /catalog/items [get]
func (h *CatalogHandler) SearchItems(c *gin.Context) {
	if h.catalog == nil {
		h.errors.handle(c, domain.ErrCatalogUnavailable)
		return
	}
	found := h.catalog.Search(c.Query("q"))
	if found == nil {
		found = []catalog.Entry{}
	}
	RespondList(c, found, len(found))
}

// LineItems handles POST /api/v1/catalog/line-items
// @Summary      Convert saved items to line items
// @Description  Builds invoice line items with auto-computed amounts from catalog entries
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        body body CatalogLineItemsRequest true "Catalog entry IDs"
// @Success      200 {object} APIResponse{data=[]domain.LineItem}
// @Failure      400 {object} APIResponse
// @Failure      503 {object} APIResponse
// @Router       /catalog/line-items [post]
func (h *CatalogHandler) LineItems(c *gin.Context) {
	if h.catalog == nil {
		h.errors.handle(c, domain.ErrCatalogUnavailable)
		return
	}

	var req CatalogLineItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errors.bindError(c, err)
		return
	}

	entries := make([]catalog.Entry, 0, len(req.IDs))
	for _, id := range req.IDs {
		e, ok := h.catalog.Get(id)
		if !ok {
			h.errors.handle(c, fmt.Errorf("%w: catalog id %d", domain.ErrItemIndexOutOfRange, id))
			return
		}
		entries = append(entries, e)
	}
	RespondOK(c, catalog.ToLineItems(entries))
}
