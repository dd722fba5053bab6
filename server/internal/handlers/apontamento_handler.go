// Package handlers содержит HTTP-обработчики ресурса /apontamento.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/capacityx/apontamentos/models"
	"github.com/capacityx/apontamentos/server/internal/services"
)

// maxBodyBytes ограничивает размер тела запроса.
const maxBodyBytes = 1 << 20

// ApontamentoHandler обрабатывает HTTP-запросы, связанные с записями.
type ApontamentoHandler struct {
	service services.ApontamentoService
	log     *zap.SugaredLogger
}

// NewApontamentoHandler создает новый экземпляр ApontamentoHandler.
func NewApontamentoHandler(s services.ApontamentoService, log *zap.SugaredLogger) *ApontamentoHandler {
	return &ApontamentoHandler{service: s, log: log}
}

// Routes регистрирует маршруты /apontamento на роутере.
func (h *ApontamentoHandler) Routes(r chi.Router) {
	r.Route("/apontamento", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.Get)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
}

// List обрабатывает GET /apontamento. Мягко удаленные записи тоже возвращаются.
func (h *ApontamentoHandler) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context())
	if err != nil {
		h.fail(w, "List", err)
		return
	}
	h.writeJSON(w, http.StatusOK, recs)
}

// Get обрабатывает GET /apontamento/{id}.
func (h *ApontamentoHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Get(r.Context(), id)
	if err != nil {
		h.fail(w, "Get", err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// Create обрабатывает POST /apontamento.
func (h *ApontamentoHandler) Create(w http.ResponseWriter, r *http.Request) {
	a, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Create(r.Context(), a)
	if err != nil {
		h.fail(w, "Create", err)
		return
	}
	h.writeJSON(w, http.StatusCreated, rec)
}

// Update обрабатывает PUT /apontamento/{id}.
func (h *ApontamentoHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	a, ok := h.decode(w, r)
	if !ok {
		return
	}
	rec, err := h.service.Update(r.Context(), id, a)
	if err != nil {
		h.fail(w, "Update", err)
		return
	}
	h.writeJSON(w, http.StatusOK, rec)
}

// Delete обрабатывает DELETE /apontamento/{id}: запись помечается удаленной.
func (h *ApontamentoHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		h.fail(w, "Delete", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *ApontamentoHandler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		h.log.Debugw("[ApontamentoHandler] Неверный ID", "id", raw)
		http.Error(w, "ID inválido", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}

func (h *ApontamentoHandler) decode(w http.ResponseWriter, r *http.Request) (models.Apontamento, bool) {
	var a models.Apontamento
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&a); err != nil {
		h.log.Debugw("[ApontamentoHandler] Ошибка разбора тела запроса", "error", err)
		http.Error(w, "Corpo da requisição inválido", http.StatusBadRequest)
		return a, false
	}
	return a, true
}

// fail переводит ошибку сервиса в HTTP-статус.
func (h *ApontamentoHandler) fail(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, services.ErrInvalidApontamento):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, services.ErrNotFound):
		http.Error(w, "Apontamento não encontrado", http.StatusNotFound)
	default:
		h.log.Errorw("[ApontamentoHandler] Внутренняя ошибка", "op", op, "error", err)
		http.Error(w, "Erro interno do servidor", http.StatusInternalServerError)
	}
}

func (h *ApontamentoHandler) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Warnw("[ApontamentoHandler] Ошибка кодирования ответа", "error", err)
	}
}
