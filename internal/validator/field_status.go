package validator

import "invoiceforge/internal/domain"

// FieldStatus represents the computed validation state for a single field path.
type FieldStatus struct {
	Status   domain.FieldValidationStatus `json:"status"`
	Messages []string                     `json:"messages"`
}

// ComputeFieldStatuses derives per-field statuses from findings. A field with
// any error finding is invalid; one with only warnings is unsure.
func ComputeFieldStatuses(findings []Finding) map[string]*FieldStatus {
	statuses := make(map[string]*FieldStatus)
	for _, f := range findings {
		fs, ok := statuses[f.FieldPath]
		if !ok {
			fs = &FieldStatus{Status: domain.FieldStatusValid, Messages: []string{}}
			statuses[f.FieldPath] = fs
		}
		if f.Severity == domain.ValidationSeverityError {
			fs.Status = domain.FieldStatusInvalid
		} else if fs.Status != domain.FieldStatusInvalid {
			fs.Status = domain.FieldStatusUnsure
		}
		fs.Messages = append(fs.Messages, f.Message)
	}
	return statuses
}
