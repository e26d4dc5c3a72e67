// Package validator runs pre-flight checks against invoice data before it
// is laid out or sent. Checks never change the data; they only report.
package validator

import (
	"context"

	"invoiceforge/internal/domain"
)

// Validator is the interface for a single built-in check.
type Validator interface {
	Validate(ctx context.Context, data *domain.InvoiceData) []Result
	RuleKey() string
	RuleName() string
	Severity() domain.ValidationSeverity
}

// Result is the outcome of a check against one field path.
type Result struct {
	Passed        bool
	FieldPath     string
	ExpectedValue string
	ActualValue   string
	Message       string
}
