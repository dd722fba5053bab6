// Package form реализует состояние, валидацию и отправку формы записи,
// общие для экранов создания и редактирования.
package form

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/capacityx/apontamentos/models"
)

// Ошибки контроллера формы.
var (
	ErrInvalidForm      = errors.New("Corrija os campos destacados antes de salvar.") //nolint:stylecheck,revive // Текст показывается пользователю
	ErrUnknownField     = errors.New("campo desconhecido")
	ErrNotLoaded        = errors.New("apontamento ainda não carregado")
	ErrSubmitInProgress = errors.New("envio já em andamento")
)

// Gateway - часть шлюза записей, необходимая форме.
type Gateway interface {
	GetApontamento(ctx context.Context, id int64) (*models.Apontamento, error)
	CreateApontamento(ctx context.Context, a models.Apontamento) (*models.Apontamento, error)
	UpdateApontamento(ctx context.Context, id int64, a models.Apontamento) (*models.Apontamento, error)
}

// Mode - режим формы.
type Mode int

const (
	ModeCreate Mode = iota // Новая запись
	ModeEdit               // Существующая запись, идентифицируется по ID
)

func (m Mode) String() string {
	if m == ModeEdit {
		return "edit"
	}
	return "create"
}

// Controller владеет черновиком одной записи до его отправки.
// Мьютекс защищает состояние и никогда не удерживается во время сетевых вызовов.
type Controller struct {
	mu      sync.Mutex
	gateway Gateway
	mode    Mode
	id      int64
	labels  map[string]string
	now     func() time.Time

	draft             models.Apontamento
	errors            map[string]string
	submitting        bool
	datePickerVisible bool
	loading           bool
	loaded            bool
	loadErr           error
}

// Option настраивает Controller.
type Option func(*Controller)

// WithLabels переопределяет подписи полей (недостающие берутся по умолчанию).
func WithLabels(labels map[string]string) Option {
	return func(c *Controller) {
		for k, v := range labels {
			c.labels[k] = v
		}
	}
}

// WithClock задает источник текущего времени.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithUsuario предзаполняет id_usuario нового черновика.
func WithUsuario(idUsuario string) Option {
	return func(c *Controller) {
		c.draft.IDUsuario = idUsuario
	}
}

func newController(gw Gateway, mode Mode, id int64, opts []Option) *Controller {
	c := &Controller{
		gateway: gw,
		mode:    mode,
		id:      id,
		labels:  DefaultLabels(),
		now:     time.Now,
		errors:  make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// NewCreate создает контроллер для новой записи с черновиком по умолчанию.
func NewCreate(gw Gateway, opts ...Option) *Controller {
	c := newController(gw, ModeCreate, 0, opts)
	c.draft.Data = c.now()
	c.draft.Garantia = false
	c.loaded = true
	return c
}

// NewEdit создает контроллер редактирования. Черновик недоступен до Load.
func NewEdit(gw Gateway, id int64, opts ...Option) *Controller {
	return newController(gw, ModeEdit, id, opts)
}

// Load загружает запись для редактирования. В режиме создания ничего не делает.
func (c *Controller) Load(ctx context.Context) error {
	c.mu.Lock()
	if c.mode != ModeEdit {
		c.mu.Unlock()
		return nil
	}
	c.loading = true
	c.loadErr = nil
	id := c.id
	c.mu.Unlock()

	slog.Debug("Загрузка записи для редактирования", "id", id)
	rec, err := c.gateway.GetApontamento(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.loading = false
	if err != nil {
		slog.Error("Ошибка загрузки записи", "id", id, "error", err)
		c.loadErr = err
		return err
	}
	c.draft = *rec
	c.draft.ID = id
	c.loaded = true
	c.errors = make(map[string]string)
	slog.Info("Запись загружена", "id", id)
	return nil
}

// SetField обновляет поле черновика и сразу перепроверяет только это поле.
func (c *Controller) SetField(name, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNotLoaded
	}
	if err := setFieldValue(&c.draft, name, value); err != nil {
		return err
	}
	c.errors[name] = validateField(c.labels[name], name, value)
	return nil
}

// SetDate записывает выбранную дату и закрывает выбор даты.
func (c *Controller) SetDate(t time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.loaded {
		return ErrNotLoaded
	}
	c.draft.Data = t
	c.errors[FieldData] = ""
	c.datePickerVisible = false
	return nil
}

// OpenDatePicker показывает выбор даты.
func (c *Controller) OpenDatePicker() {
	c.mu.Lock()
	c.datePickerVisible = true
	c.mu.Unlock()
}

// CloseDatePicker скрывает выбор даты без изменения черновика.
func (c *Controller) CloseDatePicker() {
	c.mu.Lock()
	c.datePickerVisible = false
	c.mu.Unlock()
}

// ValidateAll заново проверяет все обязательные поля по текущему черновику.
// Возвращает сообщения для каждого обязательного поля (пустая строка - поле валидно).
func (c *Controller) ValidateAll() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateAllLocked()
}

func (c *Controller) validateAllLocked() map[string]string {
	result := make(map[string]string, len(RequiredFields()))
	for _, name := range RequiredFields() {
		value, _ := fieldValue(&c.draft, name)
		msg := validateField(c.labels[name], name, value)
		result[name] = msg
		c.errors[name] = msg
	}
	return result
}

// HasErrors сообщает, есть ли в карте хотя бы одно непустое сообщение.
func HasErrors(errs map[string]string) bool {
	for _, msg := range errs {
		if msg != "" {
			return true
		}
	}
	return false
}

// Submit проверяет черновик и отправляет его в шлюз (создание или обновление).
// При ошибке валидации шлюз не вызывается и возвращается ErrInvalidForm.
// При ошибке шлюза черновик остается нетронутым для повторной попытки.
func (c *Controller) Submit(ctx context.Context) (*models.Apontamento, error) {
	c.mu.Lock()
	if !c.loaded {
		c.mu.Unlock()
		return nil, ErrNotLoaded
	}
	if c.submitting {
		c.mu.Unlock()
		return nil, ErrSubmitInProgress
	}
	if errs := c.validateAllLocked(); HasErrors(errs) {
		c.mu.Unlock()
		slog.Info("Отправка формы отклонена валидацией", "mode", c.mode.String(), "errors", errs)
		return nil, ErrInvalidForm
	}
	c.submitting = true
	draft := c.draft
	mode, id := c.mode, c.id
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	var (
		saved *models.Apontamento
		err   error
	)
	switch mode {
	case ModeEdit:
		saved, err = c.gateway.UpdateApontamento(ctx, id, draft)
	default:
		saved, err = c.gateway.CreateApontamento(ctx, draft)
	}
	if err != nil {
		slog.Error("Ошибка сохранения записи", "mode", mode.String(), "id", id, "error", err)
		return nil, fmt.Errorf("erro ao salvar: %w", err)
	}
	slog.Info("Запись сохранена", "mode", mode.String(), "id", saved.ID)
	return saved, nil
}

// Draft возвращает копию черновика.
func (c *Controller) Draft() models.Apontamento {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.draft
}

// Value возвращает строковое значение поля черновика.
func (c *Controller) Value(name string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fieldValue(&c.draft, name)
}

// FieldError возвращает текущее сообщение об ошибке поля.
func (c *Controller) FieldError(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors[name]
}

// Errors возвращает копию карты ошибок.
func (c *Controller) Errors() map[string]string {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]string, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// Label возвращает подпись поля.
func (c *Controller) Label(name string) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	if label, ok := c.labels[name]; ok {
		return label
	}
	return name
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) ID() int64 { return c.id }

func (c *Controller) Submitting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.submitting
}

func (c *Controller) DatePickerVisible() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.datePickerVisible
}

// Loading сообщает, что идет начальная загрузка записи (режим редактирования).
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Loaded сообщает, что черновик доступен для редактирования.
func (c *Controller) Loaded() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loaded
}

// LoadErr возвращает ошибку последней загрузки.
func (c *Controller) LoadErr() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadErr
}
