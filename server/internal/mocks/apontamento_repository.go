// Package mocks содержит testify-моки интерфейсов сервера.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/capacityx/apontamentos/models"
)

// ApontamentoRepository - мок repository.ApontamentoRepository.
type ApontamentoRepository struct {
	mock.Mock
}

func (m *ApontamentoRepository) List(ctx context.Context) ([]models.Apontamento, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoRepository) GetByID(ctx context.Context, id int64) (*models.Apontamento, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Apontamento), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoRepository) Create(ctx context.Context, a *models.Apontamento) (int64, error) {
	args := m.Called(ctx, a)
	return args.Get(0).(int64), args.Error(1) //nolint:errcheck // Допустимо для моков
}

func (m *ApontamentoRepository) Update(ctx context.Context, a *models.Apontamento) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *ApontamentoRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	args := m.Called(ctx, id, at)
	return args.Error(0)
}
