// Package repository хранит записи apontamento в PostgreSQL или в JSON-файле.
package repository

import (
	"context"
	"errors"
	"time"

	"github.com/capacityx/apontamentos/models"
)

// ErrNotFound возвращается, если записи с указанным ID нет.
var ErrNotFound = errors.New("apontamento não encontrado")

// ApontamentoRepository определяет методы хранения записей.
// List возвращает и мягко удаленные записи: их отбрасывает клиент.
type ApontamentoRepository interface {
	List(ctx context.Context) ([]models.Apontamento, error)
	GetByID(ctx context.Context, id int64) (*models.Apontamento, error)
	// Create сохраняет запись и возвращает назначенный ID.
	Create(ctx context.Context, a *models.Apontamento) (int64, error)
	// Update перезаписывает поля записи a.ID, не трогая data_de_exclusao.
	Update(ctx context.Context, a *models.Apontamento) error
	// SoftDelete проставляет data_de_exclusao.
	SoftDelete(ctx context.Context, id int64, at time.Time) error
}
