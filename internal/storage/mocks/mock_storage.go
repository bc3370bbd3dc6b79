package mocks

import (
	"context"
	"io"

	"github.com/rihla-travel/portal/internal/storage"
	"github.com/stretchr/testify/mock"
)

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) Save(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	args := m.Called(ctx, key, r, size, contentType)
	return args.Error(0)
}

func (m *MockStorage) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockStorage) URL(key string) string {
	return storage.PublicURL("https://cdn.example.com/uploads", key)
}

func (m *MockStorage) List(ctx context.Context, prefix string) ([]storage.Object, error) {
	args := m.Called(ctx, prefix)
	objs, _ := args.Get(0).([]storage.Object)
	return objs, args.Error(1)
}
