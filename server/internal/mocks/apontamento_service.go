package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/capacityx/apontamentos/models"
)

// ApontamentoService - мок services.ApontamentoService.
type ApontamentoService struct {
	mock.Mock
}

func (m *ApontamentoService) List(ctx context.Context) ([]models.Apontamento, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoService) Get(ctx context.Context, id int64) (*models.Apontamento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoService) Create(ctx context.Context, a models.Apontamento) (*models.Apontamento, error) {
	args := m.Called(ctx, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoService) Update(ctx context.Context, id int64, a models.Apontamento) (*models.Apontamento, error) {
	args := m.Called(ctx, id, a)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
