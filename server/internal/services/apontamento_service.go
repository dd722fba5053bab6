// Package services содержит бизнес-логику сервера записей.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/capacityx/apontamentos/models"
	"github.com/capacityx/apontamentos/server/internal/repository"
)

var (
	// ErrInvalidApontamento возвращается, если запись не прошла проверку.
	ErrInvalidApontamento = errors.New("dados do apontamento inválidos")
	// ErrNotFound возвращается, если записи нет.
	ErrNotFound = errors.New("apontamento não encontrado")
)

// Формат HH:mm, как его проверяет клиент.
var hoursPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// ApontamentoService определяет операции над записями.
type ApontamentoService interface {
	List(ctx context.Context) ([]models.Apontamento, error)
	Get(ctx context.Context, id int64) (*models.Apontamento, error)
	Create(ctx context.Context, a models.Apontamento) (*models.Apontamento, error)
	Update(ctx context.Context, id int64, a models.Apontamento) (*models.Apontamento, error)
	Delete(ctx context.Context, id int64) error
}

// Убедимся, что apontamentoService удовлетворяет интерфейсу ApontamentoService.
var _ ApontamentoService = (*apontamentoService)(nil)

type apontamentoService struct {
	repo repository.ApontamentoRepository
	log  *zap.SugaredLogger
	now  func() time.Time
}

// Option настраивает сервис.
type Option func(*apontamentoService)

// WithClock подменяет источник времени для отметки удаления.
func WithClock(now func() time.Time) Option {
	return func(s *apontamentoService) {
		s.now = now
	}
}

// NewApontamentoService создает новый экземпляр сервиса записей.
func NewApontamentoService(
	repo repository.ApontamentoRepository,
	log *zap.SugaredLogger,
	opts ...Option,
) ApontamentoService {
	s := &apontamentoService{repo: repo, log: log, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *apontamentoService) List(ctx context.Context) ([]models.Apontamento, error) {
	recs, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка записей: %w", err)
	}
	return recs, nil
}

func (s *apontamentoService) Get(ctx context.Context, id int64) (*models.Apontamento, error) {
	rec, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	return rec, nil
}

// Create проверяет запись и сохраняет ее. ID и отметка удаления из запроса игнорируются.
func (s *apontamentoService) Create(ctx context.Context, a models.Apontamento) (*models.Apontamento, error) {
	if err := validate(a); err != nil {
		s.log.Infow("[ApontamentoService] Запись отклонена", "error", err)
		return nil, err
	}
	a.ID = 0
	a.DataDeExclusao = nil

	id, err := s.repo.Create(ctx, &a)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания записи: %w", err)
	}
	a.ID = id
	s.log.Infow("[ApontamentoService] Запись создана", "id", id, "usuario", a.IDUsuario)
	return &a, nil
}

// Update заменяет поля записи id. ID берется из пути запроса, а не из тела.
func (s *apontamentoService) Update(ctx context.Context, id int64, a models.Apontamento) (*models.Apontamento, error) {
	if err := validate(a); err != nil {
		s.log.Infow("[ApontamentoService] Обновление отклонено", "id", id, "error", err)
		return nil, err
	}
	a.ID = id
	if err := s.repo.Update(ctx, &a); err != nil {
		return nil, mapRepoErr(err)
	}

	stored, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoErr(err)
	}
	s.log.Infow("[ApontamentoService] Запись обновлена", "id", id)
	return stored, nil
}

// Delete помечает запись удаленной текущим временем.
func (s *apontamentoService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.SoftDelete(ctx, id, s.now().UTC()); err != nil {
		return mapRepoErr(err)
	}
	s.log.Infow("[ApontamentoService] Запись удалена", "id", id)
	return nil
}

// validate повторяет проверку обязательных полей клиента.
func validate(a models.Apontamento) error {
	required := []struct {
		name  string
		value string
	}{
		{"id_usuario", a.IDUsuario},
		{"projeto", a.Projeto},
		{"horas", a.Horas},
		{"descricao", a.Descricao},
	}
	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: campos obrigatórios ausentes: %s", ErrInvalidApontamento, strings.Join(missing, ", "))
	}
	if !hoursPattern.MatchString(a.Horas) {
		return fmt.Errorf("%w: horas deve estar no formato HH:mm", ErrInvalidApontamento)
	}
	return nil
}

func mapRepoErr(err error) error {
	if errors.Is(err, repository.ErrNotFound) {
		return ErrNotFound
	}
	return fmt.Errorf("ошибка хранилища: %w", err)
}
