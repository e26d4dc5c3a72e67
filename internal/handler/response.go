package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *ListMeta   `json:"meta,omitempty"`
}

// APIError holds error details in the response.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ListMeta describes a list response.
type ListMeta struct {
	Total int `json:"total"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondList sends a 200 success response with list metadata.
func RespondList(c *gin.Context, data interface{}, total int) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &ListMeta{Total: total}})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge, "REQUEST_TOO_LARGE", "request body exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUnsupportedImageFormat):
		return http.StatusBadRequest, "UNSUPPORTED_IMAGE_FORMAT", "unsupported image format; allowed: png, jpeg"
	case errors.Is(err, domain.ErrInvalidImage):
		return http.StatusBadRequest, "INVALID_IMAGE", "image data could not be decoded"
	case errors.Is(err, domain.ErrImageTooLarge):
		return http.StatusRequestEntityTooLarge, "IMAGE_TOO_LARGE", "image exceeds maximum allowed size"
	case errors.Is(err, domain.ErrInvalidInvoice):
		return http.StatusBadRequest, "INVALID_INVOICE", "invoice data is malformed"
	case errors.Is(err, domain.ErrUnknownCurrency):
		return http.StatusBadRequest, "UNKNOWN_CURRENCY", "unknown currency code; supply currency_symbol to use it anyway"
	case errors.Is(err, domain.ErrItemIndexOutOfRange):
		return http.StatusBadRequest, "ITEM_INDEX_OUT_OF_RANGE", "item index out of range"
	case errors.Is(err, domain.ErrUnknownItemField):
		return http.StatusBadRequest, "UNKNOWN_ITEM_FIELD", "unknown item field; allowed: quantity, unit_price, description, amount"
	case errors.Is(err, domain.ErrRecipientRequired):
		return http.StatusBadRequest, "RECIPIENT_REQUIRED", "email recipient is required"
	case errors.Is(err, domain.ErrAssetNotFound):
		return http.StatusNotFound, "ASSET_NOT_FOUND", "image asset not found"
	case errors.Is(err, domain.ErrAssetStoreDisabled):
		return http.StatusNotImplemented, "ASSET_STORE_DISABLED", "asset_key images require asset storage to be configured"
	case errors.Is(err, domain.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable, "CATALOG_UNAVAILABLE", "item catalog is not available"
	case errors.Is(err, domain.ErrEmailFailed):
		return http.StatusBadGateway, "EMAIL_FAILED", "invoice email delivery failed"
	case errors.Is(err, domain.ErrRenderFailed):
		return http.StatusInternalServerError, "RENDER_FAILED", "document rendering failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// errorHandler maps errors to responses and logs the ones that are ours.
type errorHandler struct {
	logger *zap.Logger
}

func newErrorHandler(logger *zap.Logger) errorHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return errorHandler{logger: logger}
}

// handle maps a domain error and sends the appropriate error response.
func (e errorHandler) handle(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		e.logger.Error("internal error",
			zap.String("request_id", c.GetString(middleware.RequestIDKey)),
			zap.String("code", code),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	RespondError(c, status, code, msg)
}

// bindError reports a request body that failed to decode or validate.
func (e errorHandler) bindError(c *gin.Context, err error) {
	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		e.handle(c, err)
		return
	}
	RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
}
