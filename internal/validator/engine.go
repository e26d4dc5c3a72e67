package validator

import (
	"context"

	"go.uber.org/zap"

	"invoiceforge/internal/domain"
)

// Finding is a failed check as reported to callers.
type Finding struct {
	RuleKey       string                    `json:"rule_key"`
	RuleName      string                    `json:"rule_name"`
	Severity      domain.ValidationSeverity `json:"severity"`
	FieldPath     string                    `json:"field_path"`
	ExpectedValue string                    `json:"expected_value,omitempty"`
	ActualValue   string                    `json:"actual_value,omitempty"`
	Message       string                    `json:"message"`
}

// Report is the outcome of running every registered check.
type Report struct {
	Status   domain.ValidationStatus `json:"status"`
	Checked  int                     `json:"checked"`
	Findings []Finding               `json:"findings"`
	Fields   map[string]*FieldStatus `json:"fields"`
}

// Engine orchestrates invoice validation.
type Engine struct {
	registry *Registry
	logger   *zap.Logger
}

// NewEngine creates a new validation engine. A nil registry means the
// built-in rules.
func NewEngine(registry *Registry, logger *zap.Logger) *Engine {
	if registry == nil {
		registry = DefaultRegistry()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{registry: registry, logger: logger.Named("validator")}
}

// Check runs all registered rules against data. It stops early when ctx is
// cancelled and reports what it had checked so far.
func (e *Engine) Check(ctx context.Context, data *domain.InvoiceData) *Report {
	report := &Report{Findings: []Finding{}}
	hasError := false
	hasWarning := false

	for _, v := range e.registry.All() {
		if ctx.Err() != nil {
			e.logger.Debug("validation cancelled", zap.Int("checked", report.Checked))
			break
		}
		for _, r := range v.Validate(ctx, data) {
			report.Checked++
			if r.Passed {
				continue
			}
			report.Findings = append(report.Findings, Finding{
				RuleKey:       v.RuleKey(),
				RuleName:      v.RuleName(),
				Severity:      v.Severity(),
				FieldPath:     r.FieldPath,
				ExpectedValue: r.ExpectedValue,
				ActualValue:   r.ActualValue,
				Message:       r.Message,
			})
			if v.Severity() == domain.ValidationSeverityError {
				hasError = true
			} else {
				hasWarning = true
			}
		}
	}

	switch {
	case hasError:
		report.Status = domain.ValidationStatusInvalid
	case hasWarning:
		report.Status = domain.ValidationStatusWarning
	default:
		report.Status = domain.ValidationStatusValid
	}
	report.Fields = ComputeFieldStatuses(report.Findings)

	e.logger.Debug("invoice validated",
		zap.String("status", string(report.Status)),
		zap.Int("checked", report.Checked),
		zap.Int("findings", len(report.Findings)),
	)
	return report
}
