// Package apitest содержит мок шлюза записей для тестов клиента.
package apitest

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/capacityx/apontamentos/client/internal/api"
	"github.com/capacityx/apontamentos/models"
)

// MockClient реализует api.Client на базе testify/mock.
type MockClient struct {
	mock.Mock
}

var _ api.Client = (*MockClient)(nil)

func (m *MockClient) ListApontamentos(ctx context.Context) ([]models.Apontamento, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *MockClient) GetApontamento(ctx context.Context, id int64) (*models.Apontamento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *MockClient) CreateApontamento(ctx context.Context, a models.Apontamento) (*models.Apontamento, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *MockClient) UpdateApontamento(
	ctx context.Context,
	id int64,
	a models.Apontamento,
) (*models.Apontamento, error) {
	args := m.Called(ctx, id, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *MockClient) DeleteApontamento(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
