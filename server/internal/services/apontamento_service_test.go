package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/capacityx/apontamentos/models"
	"github.com/capacityx/apontamentos/server/internal/mocks"
	"github.com/capacityx/apontamentos/server/internal/repository"
	"github.com/capacityx/apontamentos/server/internal/services"
)

var fixedNow = time.Date(2026, 10, 16, 12, 0, 0, 0, time.UTC)

func newService(t *testing.T) (services.ApontamentoService, *mocks.ApontamentoRepository) {
	t.Helper()
	repo := new(mocks.ApontamentoRepository)
	svc := services.NewApontamentoService(repo, zaptest.NewLogger(t).Sugar(),
		services.WithClock(func() time.Time { return fixedNow }))
	return svc, repo
}

func validRecord() models.Apontamento {
	return models.Apontamento{
		IDUsuario: "matheus@gmail.com",
		Projeto:   "Reforma",
		Horas:     "08:00",
		Descricao: "Troca de piso",
		Data:      time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestApontamentoService_CreateValidation(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(a *models.Apontamento)
		expectedMsg string
	}{
		{name: "Нет пользователя", mutate: func(a *models.Apontamento) { a.IDUsuario = "" }, expectedMsg: "id_usuario"},
		{name: "Пустой проект", mutate: func(a *models.Apontamento) { a.Projeto = "  " }, expectedMsg: "projeto"},
		{name: "Нет описания", mutate: func(a *models.Apontamento) { a.Descricao = "" }, expectedMsg: "descricao"},
		{
			name:        "Несколько полей",
			mutate:      func(a *models.Apontamento) { a.Horas = ""; a.Projeto = "" },
			expectedMsg: "projeto, horas",
		},
		{name: "Неверный формат часов", mutate: func(a *models.Apontamento) { a.Horas = "8:00" }, expectedMsg: "HH:mm"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			a := validRecord()
			tt.mutate(&a)

			rec, err := svc.Create(context.Background(), a)
			require.ErrorIs(t, err, services.ErrInvalidApontamento)
			assert.Contains(t, err.Error(), tt.expectedMsg)
			assert.Nil(t, rec)
			repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		})
	}
}

func TestApontamentoService_Create(t *testing.T) {
	svc, repo := newService(t)
	deletedAt := fixedNow
	a := validRecord()
	a.ID = 77
	a.DataDeExclusao = &deletedAt

	repo.On("Create", mock.Anything, mock.MatchedBy(func(in *models.Apontamento) bool {
		return in.ID == 0 && in.DataDeExclusao == nil
	})).Return(int64(5), nil).Once()

	rec, err := svc.Create(context.Background(), a)
	require.NoError(t, err)
	assert.Equal(t, int64(5), rec.ID)
	assert.Nil(t, rec.DataDeExclusao)
	repo.AssertExpectations(t)
}

func TestApontamentoService_Update(t *testing.T) {
	tests := []struct {
		name        string
		mockSetup   func(repo *mocks.ApontamentoRepository)
		expectedErr error
	}{
		{
			name: "Успешное обновление",
			mockSetup: func(repo *mocks.ApontamentoRepository) {
				repo.On("Update", mock.Anything, mock.MatchedBy(func(in *models.Apontamento) bool {
					return in.ID == 3
				})).Return(nil).Once()
				stored := validRecord()
				stored.ID = 3
				repo.On("GetByID", mock.Anything, int64(3)).Return(&stored, nil).Once()
			},
		},
		{
			name: "Запись не найдена",
			mockSetup: func(repo *mocks.ApontamentoRepository) {
				repo.On("Update", mock.Anything, mock.Anything).Return(repository.ErrNotFound).Once()
			},
			expectedErr: services.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo := newService(t)
			tt.mockSetup(repo)

			a := validRecord()
			a.ID = 99 // ID из тела игнорируется
			rec, err := svc.Update(context.Background(), 3, a)
			if tt.expectedErr != nil {
				require.ErrorIs(t, err, tt.expectedErr)
				assert.Nil(t, rec)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(3), rec.ID)
			}
			repo.AssertExpectations(t)
		})
	}
}

func TestApontamentoService_Delete(t *testing.T) {
	t.Run("Отметка времени удаления", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("SoftDelete", mock.Anything, int64(4), fixedNow).Return(nil).Once()

		require.NoError(t, svc.Delete(context.Background(), 4))
		repo.AssertExpectations(t)
	})

	t.Run("Запись не найдена", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("SoftDelete", mock.Anything, int64(4), fixedNow).Return(repository.ErrNotFound).Once()

		require.ErrorIs(t, svc.Delete(context.Background(), 4), services.ErrNotFound)
	})

	t.Run("Ошибка хранилища", func(t *testing.T) {
		svc, repo := newService(t)
		repo.On("SoftDelete", mock.Anything, int64(4), fixedNow).Return(errors.New("disk full")).Once()

		err := svc.Delete(context.Background(), 4)
		require.Error(t, err)
		assert.NotErrorIs(t, err, services.ErrNotFound)
		assert.Contains(t, err.Error(), "disk full")
	})
}

func TestApontamentoService_ListAndGet(t *testing.T) {
	svc, repo := newService(t)
	recs := []models.Apontamento{validRecord()}
	repo.On("List", mock.Anything).Return(recs, nil).Once()
	repo.On("GetByID", mock.Anything, int64(9)).Return(nil, repository.ErrNotFound).Once()

	got, err := svc.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recs, got)

	_, err = svc.Get(context.Background(), 9)
	require.ErrorIs(t, err, services.ErrNotFound)
}
