package tui

import (
	"strings"

	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/models"
)

// formatRecordDetails формирует строку описания записи для списка:
// описание, дата "às" часы, наблюдение и признак гарантии.
func formatRecordDetails(rec models.Apontamento) string {
	parts := make([]string, 0, 4)
	if rec.Descricao != "" {
		parts = append(parts, rec.Descricao)
	}
	parts = append(parts, formatDateHours(rec))
	if rec.Observacao != "" {
		parts = append(parts, "Obs: "+rec.Observacao)
	}
	parts = append(parts, "Garantia: "+form.FormatGarantia(rec.Garantia))
	return strings.Join(parts, " | ")
}

// formatDateHours возвращает "dd/MM/yyyy às HH:mm".
func formatDateHours(rec models.Apontamento) string {
	date := form.FormatDate(rec.Data)
	if rec.Horas == "" {
		return date
	}
	return date + " às " + rec.Horas
}

// describeFilter возвращает краткое описание активных фильтров.
func describeFilter(f listing.Filter) string {
	return f.Window.String() + " | " + f.Warranty.String()
}

// recordIDs извлекает идентификаторы записей (для логов).
func recordIDs(recs []models.Apontamento) []int64 {
	ids := make([]int64, 0, len(recs))
	for _, r := range recs {
		ids = append(ids, r.ID)
	}
	return ids
}
