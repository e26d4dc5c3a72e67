package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoiceforge/internal/domain"
	"invoiceforge/internal/service"
	"invoiceforge/internal/validator"
)

// MockInvoiceService is a mock implementation of service.InvoiceService.
type MockInvoiceService struct {
	mock.Mock
}

func (m *MockInvoiceService) Totals(data domain.InvoiceData) domain.InvoiceData {
	args := m.Called(data)
	return args.Get(0).(domain.InvoiceData)
}

func (m *MockInvoiceService) EditItem(input service.ItemEditInput) (*service.ItemEditResult, error) {
	args := m.Called(input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ItemEditResult), args.Error(1)
}

func (m *MockInvoiceService) Layout(ctx context.Context, data domain.InvoiceData) (*service.LayoutResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LayoutResult), args.Error(1)
}

func (m *MockInvoiceService) Export(ctx context.Context, data domain.InvoiceData) (*service.ExportResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockInvoiceService) ExportCSV(ctx context.Context, data domain.InvoiceData) (*service.CSVResult, error) {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CSVResult), args.Error(1)
}

func (m *MockInvoiceService) Send(ctx context.Context, input service.SendInput) (*service.ExportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ExportResult), args.Error(1)
}

func (m *MockInvoiceService) Check(ctx context.Context, data domain.InvoiceData) *validator.Report {
	args := m.Called(ctx, data)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*validator.Report)
}
