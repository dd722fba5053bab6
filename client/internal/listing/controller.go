// Package listing реализует состояние экрана списка записей: загрузку,
// поиск и фильтры, подтверждение удаления и обновление после изменений.
package listing

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/capacityx/apontamentos/models"
)

// Ошибки контроллера списка.
var (
	ErrFetch            = errors.New("Erro ao carregar apontamentos.") //nolint:stylecheck,revive // Текст показывается пользователю
	ErrNoPendingDelete  = errors.New("nenhum apontamento selecionado para exclusão")
	ErrDeleteInProgress = errors.New("exclusão já em andamento")
)

// Gateway - часть шлюза записей, необходимая списку.
type Gateway interface {
	ListApontamentos(ctx context.Context) ([]models.Apontamento, error)
	DeleteApontamento(ctx context.Context, id int64) error
}

// State - снимок состояния контроллера для отрисовки.
type State struct {
	Loading         bool
	Refreshing      bool
	Deleting        bool
	Err             error
	Search          string
	Filter          Filter
	PendingDeleteID int64
	HasPending      bool
	ConfirmVisible  bool
	Total           int
}

// Controller хранит последний загруженный набор активных записей.
// Мьютекс защищает состояние и не удерживается во время сетевых вызовов,
// поэтому поиск работает по последнему снимку, пока идет загрузка.
type Controller struct {
	mu      sync.Mutex
	gateway Gateway
	now     func() time.Time

	records        []models.Apontamento
	loading        bool
	refreshing     bool
	deleting       bool
	err            error
	search         string
	filter         Filter
	pendingID      *int64
	confirmVisible bool

	// seq растет с каждой загрузкой; результат применяет только последняя.
	seq uint64
}

// Option настраивает Controller.
type Option func(*Controller)

// WithClock задает источник текущего времени для фильтра по периоду.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithFilter задает начальный фильтр.
func WithFilter(f Filter) Option {
	return func(c *Controller) {
		c.filter = f
	}
}

// New создает контроллер списка.
func New(gw Gateway, opts ...Option) *Controller {
	c := &Controller{
		gateway: gw,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fetch загружает записи и заменяет коллекцию целиком, отбрасывая удаленные.
// Ошибка сохраняется до следующей успешной загрузки.
// Если за время запроса началась более новая загрузка, результат отбрасывается.
func (c *Controller) Fetch(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	// При обновлении выставлен только refreshing.
	if !c.refreshing {
		c.loading = true
	}
	c.mu.Unlock()

	// Флаги снимаются и при панике шлюза.
	defer func() {
		c.mu.Lock()
		if seq == c.seq {
			c.loading = false
			c.refreshing = false
		}
		c.mu.Unlock()
	}()

	recs, err := c.gateway.ListApontamentos(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if seq != c.seq {
		slog.Debug("Результат устаревшей загрузки отброшен", "seq", seq, "current", c.seq)
		return nil
	}
	if err != nil {
		c.err = fmt.Errorf("%w: %w", ErrFetch, err)
		slog.Error("Ошибка загрузки записей", "error", err)
		return c.err
	}

	active := make([]models.Apontamento, 0, len(recs))
	for _, r := range recs {
		if r.Excluido() {
			continue
		}
		active = append(active, r)
	}
	c.records = active
	c.err = nil
	slog.Info("Записи загружены", "count", len(active), "deleted", len(recs)-len(active))
	return nil
}

// Refresh выставляет флаг обновления и выполняет Fetch.
func (c *Controller) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.refreshing = true
	c.mu.Unlock()
	return c.Fetch(ctx)
}

// SetSearch задает строку поиска.
func (c *Controller) SetSearch(search string) {
	c.mu.Lock()
	c.search = search
	c.mu.Unlock()
}

// SetFilter заменяет фильтр целиком.
func (c *Controller) SetFilter(f Filter) {
	c.mu.Lock()
	c.filter = f
	c.mu.Unlock()
}

// CycleWindow переключает период на следующий и возвращает его.
func (c *Controller) CycleWindow() TimeWindow {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Window = c.filter.Window.Next()
	return c.filter.Window
}

// CycleWarranty переключает фильтр по гарантии на следующий и возвращает его.
func (c *Controller) CycleWarranty() WarrantyFilter {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.filter.Warranty = c.filter.Warranty.Next()
	return c.filter.Warranty
}

// VisibleRecords возвращает записи, прошедшие поиск и фильтры.
// Коллекция не изменяется; результат - новая копия.
func (c *Controller) VisibleRecords() []models.Apontamento {
	c.mu.Lock()
	records := c.records
	search := c.search
	filter := c.filter
	c.mu.Unlock()

	return Project(records, search, filter, c.now())
}

// Project применяет поиск и фильтры к набору записей на момент now.
func Project(records []models.Apontamento, search string, f Filter, now time.Time) []models.Apontamento {
	needle := strings.ToLower(search)
	out := make([]models.Apontamento, 0, len(records))
	for _, r := range records {
		if needle != "" &&
			!strings.Contains(strings.ToLower(r.Projeto), needle) &&
			!strings.Contains(strings.ToLower(r.Descricao), needle) {
			continue
		}
		if !f.Warranty.Match(r.Garantia) {
			continue
		}
		if !f.Window.Contains(r.Data, now) {
			continue
		}
		out = append(out, r)
	}
	return out
}

// Records возвращает копию всех активных записей.
func (c *Controller) Records() []models.Apontamento {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Apontamento, len(c.records))
	copy(out, c.records)
	return out
}

// RequestDelete запоминает запись для удаления и открывает подтверждение.
func (c *Controller) RequestDelete(id int64) {
	c.mu.Lock()
	c.pendingID = &id
	c.confirmVisible = true
	c.mu.Unlock()
	slog.Debug("Запрошено удаление", "id", id)
}

// CancelDelete закрывает подтверждение без обращения к шлюзу.
func (c *Controller) CancelDelete() {
	c.mu.Lock()
	c.pendingID = nil
	c.confirmVisible = false
	c.mu.Unlock()
}

// ConfirmDelete удаляет выбранную запись и после успеха один раз перезагружает список.
// При ошибке подтверждение остается открытым. Ошибка перезагрузки хранится в State.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	c.mu.Lock()
	if c.pendingID == nil {
		c.mu.Unlock()
		return ErrNoPendingDelete
	}
	if c.deleting {
		c.mu.Unlock()
		return ErrDeleteInProgress
	}
	id := *c.pendingID
	c.deleting = true
	c.mu.Unlock()

	err := c.gateway.DeleteApontamento(ctx, id)

	c.mu.Lock()
	c.deleting = false
	if err != nil {
		c.mu.Unlock()
		slog.Error("Ошибка удаления записи", "id", id, "error", err)
		return fmt.Errorf("erro ao excluir apontamento %d: %w", id, err)
	}
	c.pendingID = nil
	c.confirmVisible = false
	c.mu.Unlock()
	slog.Info("Запись удалена", "id", id)

	if fetchErr := c.Fetch(ctx); fetchErr != nil {
		slog.Warn("Список не обновлен после удаления", "error", fetchErr)
	}
	return nil
}

// State возвращает снимок состояния.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := State{
		Loading:        c.loading,
		Refreshing:     c.refreshing,
		Deleting:       c.deleting,
		Err:            c.err,
		Search:         c.search,
		Filter:         c.filter,
		ConfirmVisible: c.confirmVisible,
		Total:          len(c.records),
	}
	if c.pendingID != nil {
		s.PendingDeleteID = *c.pendingID
		s.HasPending = true
	}
	return s
}
