package domain

import "errors"

var (
	ErrUnsupportedImageFormat = errors.New("unsupported image format; only PNG and JPEG are allowed")
	ErrInvalidImage           = errors.New("image data could not be decoded")
	ErrImageTooLarge          = errors.New("image exceeds maximum allowed size")
	ErrInvalidInvoice         = errors.New("invoice data is malformed")
	ErrUnknownCurrency        = errors.New("unknown currency code")
	ErrAssetNotFound          = errors.New("image asset not found")
	ErrAssetStoreDisabled     = errors.New("asset storage is not configured")
	ErrRenderFailed           = errors.New("document rendering failed")
	ErrEmailFailed            = errors.New("invoice email delivery failed")
	ErrCatalogUnavailable     = errors.New("item catalog is not available")
	ErrItemIndexOutOfRange    = errors.New("item index out of range")
	ErrUnknownItemField       = errors.New("unknown item field")
	ErrInvalidGeometry        = errors.New("page geometry is invalid")
	ErrRecipientRequired      = errors.New("email recipient is required")
)
