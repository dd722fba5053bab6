package listing

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeWindow - фильтр по периоду относительно текущего момента.
type TimeWindow int

const (
	WindowAll        TimeWindow = iota // Без ограничения
	WindowLast7Days                    // Последние 7 дней
	WindowLast30Days                   // Последние 30 дней
)

// Days возвращает длину периода в днях (0 - без ограничения).
func (w TimeWindow) Days() int {
	switch w {
	case WindowLast7Days:
		return 7
	case WindowLast30Days:
		return 30
	default:
		return 0
	}
}

// Contains сообщает, попадает ли дата в период: data >= now - N дней.
// Верхняя граница не проверяется.
func (w TimeWindow) Contains(data, now time.Time) bool {
	days := w.Days()
	if days == 0 {
		return true
	}
	return !data.Before(now.AddDate(0, 0, -days))
}

// Next возвращает следующий период по кругу.
func (w TimeWindow) Next() TimeWindow {
	switch w {
	case WindowAll:
		return WindowLast7Days
	case WindowLast7Days:
		return WindowLast30Days
	default:
		return WindowAll
	}
}

func (w TimeWindow) String() string {
	switch w {
	case WindowLast7Days:
		return "Últimos 7 dias"
	case WindowLast30Days:
		return "Últimos 30 dias"
	default:
		return "Todos"
	}
}

// ParseTimeWindow разбирает период: "", "all", "7" или "30".
func ParseTimeWindow(s string) (TimeWindow, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "all", "todos":
		return WindowAll, nil
	case "7":
		return WindowLast7Days, nil
	case "30":
		return WindowLast30Days, nil
	default:
		return WindowAll, fmt.Errorf("período inválido %q: use 7 ou 30", s)
	}
}

// WarrantyFilter - фильтр по признаку гарантии.
type WarrantyFilter int

const (
	WarrantyAll   WarrantyFilter = iota // Любые записи
	WarrantyTrue                        // Только с гарантией
	WarrantyFalse                       // Только без гарантии
)

// Match сообщает, проходит ли значение гарантии фильтр.
func (f WarrantyFilter) Match(garantia bool) bool {
	switch f {
	case WarrantyTrue:
		return garantia
	case WarrantyFalse:
		return !garantia
	default:
		return true
	}
}

// Next возвращает следующий фильтр по кругу.
func (f WarrantyFilter) Next() WarrantyFilter {
	switch f {
	case WarrantyAll:
		return WarrantyTrue
	case WarrantyTrue:
		return WarrantyFalse
	default:
		return WarrantyAll
	}
}

func (f WarrantyFilter) String() string {
	switch f {
	case WarrantyTrue:
		return "Garantia: Sim"
	case WarrantyFalse:
		return "Garantia: Não"
	default:
		return "Garantia: Todos"
	}
}

// ParseWarrantyFilter разбирает фильтр: пустая строка - все, иначе bool.
func ParseWarrantyFilter(s string) (WarrantyFilter, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "all") {
		return WarrantyAll, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return WarrantyAll, fmt.Errorf("valor inválido para garantia %q: %w", s, err)
	}
	if b {
		return WarrantyTrue, nil
	}
	return WarrantyFalse, nil
}

// Filter объединяет период и гарантию; условия применяются через И.
type Filter struct {
	Window   TimeWindow
	Warranty WarrantyFilter
}
