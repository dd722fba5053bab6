package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/capacityx/apontamentos/models"
)

const (
	// Базовый путь ресурса записей.
	apontamentoPath = "/apontamento"
	// Заголовок для корреляции запросов в логах клиента и сервера.
	requestIDHeader = "X-Request-ID"
	// Сколько байт тела ошибки читаем для сообщения.
	maxErrorBodyBytes = 1024
)

// ErrNotFound сигнализирует, что запись не найдена на сервере (404).
var ErrNotFound = errors.New("apontamento não encontrado")

// StatusError описывает ответ сервера с неуспешным статусом.
type StatusError struct {
	StatusCode int
	Message    string // Тело ответа (обрезанное), если сервер его прислал
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("erro do servidor: status %d", e.StatusCode)
	}
	return fmt.Sprintf("erro do servidor: status %d: %s", e.StatusCode, e.Message)
}

// Is позволяет сравнивать 404 с ErrNotFound через errors.Is.
func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// Client определяет интерфейс шлюза записей (CRUD над /apontamento).
type Client interface {
	// ListApontamentos получает полный список записей.
	ListApontamentos(ctx context.Context) ([]models.Apontamento, error)
	// GetApontamento получает одну запись по ID.
	GetApontamento(ctx context.Context, id int64) (*models.Apontamento, error)
	// CreateApontamento создает запись; ID назначает сервер.
	CreateApontamento(ctx context.Context, a models.Apontamento) (*models.Apontamento, error)
	// UpdateApontamento обновляет запись с указанным ID.
	UpdateApontamento(ctx context.Context, id int64, a models.Apontamento) (*models.Apontamento, error)
	// DeleteApontamento удаляет запись с указанным ID.
	DeleteApontamento(ctx context.Context, id int64) error
}

// httpClient реализует интерфейс Client поверх HTTP/JSON.
type httpClient struct {
	baseURL    string       // Базовый URL сервера, например "http://localhost:3000"
	httpClient *http.Client // HTTP клиент для выполнения запросов
}

// Option настраивает httpClient.
type Option func(*httpClient)

// WithTimeout задает таймаут HTTP клиента. Ноль оставляет поведение по умолчанию.
func WithTimeout(timeout time.Duration) Option {
	return func(c *httpClient) {
		if timeout > 0 {
			c.httpClient.Timeout = timeout
		}
	}
}

// WithHTTPClient подменяет HTTP клиент (например, в тестах).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// NewHTTPClient создает новый экземпляр шлюза.
func NewHTTPClient(baseURL string, opts ...Option) Client {
	c := &httpClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ListApontamentos выполняет GET /apontamento.
func (c *httpClient) ListApontamentos(ctx context.Context) ([]models.Apontamento, error) {
	var list []models.Apontamento
	if err := c.do(ctx, http.MethodGet, c.collectionURL(), nil, &list); err != nil {
		return nil, fmt.Errorf("erro ao listar apontamentos: %w", err)
	}
	if list == nil {
		list = []models.Apontamento{}
	}
	return list, nil
}

// GetApontamento выполняет GET /apontamento/{id}.
func (c *httpClient) GetApontamento(ctx context.Context, id int64) (*models.Apontamento, error) {
	var a models.Apontamento
	if err := c.do(ctx, http.MethodGet, c.itemURL(id), nil, &a); err != nil {
		return nil, fmt.Errorf("erro ao carregar apontamento %d: %w", id, err)
	}
	return &a, nil
}

// CreateApontamento выполняет POST /apontamento. ID в теле не передается.
func (c *httpClient) CreateApontamento(ctx context.Context, a models.Apontamento) (*models.Apontamento, error) {
	a.ID = 0 // omitempty убирает поле из JSON
	var created models.Apontamento
	if err := c.do(ctx, http.MethodPost, c.collectionURL(), a, &created); err != nil {
		return nil, fmt.Errorf("erro ao criar apontamento: %w", err)
	}
	return &created, nil
}

// UpdateApontamento выполняет PUT /apontamento/{id} с полным телом записи.
func (c *httpClient) UpdateApontamento(
	ctx context.Context,
	id int64,
	a models.Apontamento,
) (*models.Apontamento, error) {
	a.ID = id
	var updated models.Apontamento
	if err := c.do(ctx, http.MethodPut, c.itemURL(id), a, &updated); err != nil {
		return nil, fmt.Errorf("erro ao atualizar apontamento %d: %w", id, err)
	}
	return &updated, nil
}

// DeleteApontamento выполняет DELETE /apontamento/{id}.
func (c *httpClient) DeleteApontamento(ctx context.Context, id int64) error {
	if err := c.do(ctx, http.MethodDelete, c.itemURL(id), nil, nil); err != nil {
		return fmt.Errorf("erro ao excluir apontamento %d: %w", id, err)
	}
	return nil
}

func (c *httpClient) collectionURL() string {
	return c.baseURL + apontamentoPath
}

func (c *httpClient) itemURL(id int64) string {
	return c.baseURL + apontamentoPath + "/" + url.PathEscape(strconv.FormatInt(id, 10))
}

// do выполняет запрос: кодирует body (если не nil) и декодирует ответ в out (если не nil).
func (c *httpClient) do(ctx context.Context, method, target string, body, out any) error {
	var reader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("erro ao codificar requisição: %w", err)
		}
		reader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("erro ao criar requisição: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set(requestIDHeader, requestID)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Error("Ошибка выполнения запроса",
			"method", method, "url", target, "request_id", requestID, "error", err)
		return fmt.Errorf("erro de rede: %w", err)
	}
	defer resp.Body.Close()

	slog.Debug("Ответ сервера получен",
		"method", method,
		"url", target,
		"status", resp.StatusCode,
		"request_id", requestID,
		"duration", time.Since(started),
	)

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return readStatusError(resp)
	}

	if out == nil {
		// Тело не нужно, но дочитываем его для переиспользования соединения
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err = json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("erro ao decodificar resposta: %w", err)
	}
	return nil
}

// readStatusError формирует StatusError, читая начало тела ответа.
func readStatusError(resp *http.Response) error {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
	return &StatusError{
		StatusCode: resp.StatusCode,
		Message:    strings.TrimSpace(string(data)),
	}
}
