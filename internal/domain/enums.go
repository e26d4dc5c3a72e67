package domain

// ImageFormat is a raster format the PDF backend can embed.
type ImageFormat string

const (
	ImageFormatPNG  ImageFormat = "png"
	ImageFormatJPEG ImageFormat = "jpeg"
)

// AllowedImageTypes maps accepted MIME content types to ImageFormat.
var AllowedImageTypes = map[string]ImageFormat{
	"image/png":  ImageFormatPNG,
	"image/jpeg": ImageFormatJPEG,
	"image/jpg":  ImageFormatJPEG,
}

// ItemField names an editable field of a LineItem.
type ItemField string

const (
	ItemFieldQuantity    ItemField = "quantity"
	ItemFieldUnitPrice   ItemField = "unit_price"
	ItemFieldDescription ItemField = "description"
	ItemFieldAmount      ItemField = "amount"
)

// NumericItemFields are coerced to "0" when edited with non-numeric text.
var NumericItemFields = map[ItemField]bool{
	ItemFieldQuantity:  true,
	ItemFieldUnitPrice: true,
	ItemFieldAmount:    true,
}

// ValidationSeverity is how serious a failed invoice check is.
type ValidationSeverity string

const (
	ValidationSeverityError   ValidationSeverity = "error"
	ValidationSeverityWarning ValidationSeverity = "warning"
)

// ValidationStatus summarises all checks run against an invoice.
type ValidationStatus string

const (
	ValidationStatusValid   ValidationStatus = "valid"
	ValidationStatusWarning ValidationStatus = "warning"
	ValidationStatusInvalid ValidationStatus = "invalid"
)

// FieldValidationStatus is the derived state of a single field path.
type FieldValidationStatus string

const (
	FieldStatusValid   FieldValidationStatus = "valid"
	FieldStatusUnsure  FieldValidationStatus = "unsure"
	FieldStatusInvalid FieldValidationStatus = "invalid"
)
