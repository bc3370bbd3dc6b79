package mocks

import (
	"context"

	"github.com/rihla-travel/portal/internal/model"
	"github.com/rihla-travel/portal/internal/repository"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Insert(ctx context.Context, app *model.Application) error {
	args := m.Called(ctx, app)
	return args.Error(0)
}

func (m *MockApplicationRepository) Select(ctx context.Context, q repository.Query) ([]model.Row, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Row), args.Error(1)
}

func (m *MockApplicationRepository) ByID(ctx context.Context, table string, columns []string, id string) (model.Row, error) {
	args := m.Called(ctx, table, columns, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Row), args.Error(1)
}

func (m *MockApplicationRepository) ReferencedValues(ctx context.Context, table string, columns []string) (map[string]struct{}, error) {
	args := m.Called(ctx, table, columns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]struct{}), args.Error(1)
}
