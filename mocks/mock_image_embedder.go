package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"invoiceforge/internal/domain"
)

// MockImageEmbedder is a mock implementation of layout.ImageEmbedder.
type MockImageEmbedder struct {
	mock.Mock
}

func (m *MockImageEmbedder) Embed(ctx context.Context, data []byte, mimeType string) (domain.ImageHandle, error) {
	args := m.Called(ctx, data, mimeType)
	return args.Get(0).(domain.ImageHandle), args.Error(1)
}
