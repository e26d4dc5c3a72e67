package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// MockAssetStore is a mock implementation of port.AssetStore.
type MockAssetStore struct {
	mock.Mock
}

func (m *MockAssetStore) Download(ctx context.Context, bucket, key string) ([]byte, error) {
	args := m.Called(ctx, bucket, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}
