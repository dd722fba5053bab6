package form

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/capacityx/apontamentos/models"
)

// Имена полей совпадают с ключами JSON записи.
const (
	FieldIDUsuario              = "id_usuario"
	FieldIDCategoria            = "id_categoria"
	FieldIDCliente              = "id_cliente"
	FieldIDItemProjetoCategoria = "id_item_projeto_categoria"
	FieldData                   = "data"
	FieldHoras                  = "horas"
	FieldDescricao              = "descricao"
	FieldProjeto                = "projeto"
	FieldExtra                  = "extra"
	FieldStatusExtra            = "status_extra"
	FieldRespostaExtra          = "resposta_extra"
	FieldObservacao             = "observacao"
	FieldGarantia               = "garantia"
)

// DateLayout - формат отображения и ввода даты (dd/MM/yyyy).
const DateLayout = "02/01/2006"

// Сообщения валидации.
const (
	requiredSuffix   = " é obrigatório"
	hoursFormatError = "Horas deve estar no formato HH:mm"
)

// hoursPattern проверяет только форму строки: две цифры, двоеточие, две цифры.
var hoursPattern = regexp.MustCompile(`^\d{2}:\d{2}$`)

// RequiredFields - поля, без которых запись не отправляется.
func RequiredFields() []string {
	return []string{FieldIDUsuario, FieldProjeto, FieldHoras, FieldDescricao}
}

// TextFields - текстовые поля формы в порядке отображения.
func TextFields() []string {
	return []string{
		FieldIDUsuario,
		FieldIDCategoria,
		FieldIDCliente,
		FieldIDItemProjetoCategoria,
		FieldHoras,
		FieldDescricao,
		FieldProjeto,
		FieldExtra,
		FieldStatusExtra,
		FieldRespostaExtra,
		FieldObservacao,
	}
}

// DefaultLabels возвращает подписи полей по умолчанию.
func DefaultLabels() map[string]string {
	return map[string]string{
		FieldIDUsuario:              "Usuário",
		FieldIDCategoria:            "Categoria",
		FieldIDCliente:              "Cliente",
		FieldIDItemProjetoCategoria: "Item Projeto/Categoria",
		FieldData:                   "Data",
		FieldHoras:                  "Horas",
		FieldDescricao:              "Descrição",
		FieldProjeto:                "Projeto",
		FieldExtra:                  "Extra",
		FieldStatusExtra:            "Status Extra",
		FieldRespostaExtra:          "Resposta Extra",
		FieldObservacao:             "Observação",
		FieldGarantia:               "Garantia",
	}
}

func isRequired(name string) bool {
	for _, f := range RequiredFields() {
		if f == name {
			return true
		}
	}
	return false
}

// validateField возвращает сообщение об ошибке для одного поля или пустую строку.
// Необязательные поля не проверяются.
func validateField(label, name, value string) string {
	if !isRequired(name) {
		return ""
	}
	if strings.TrimSpace(value) == "" {
		return label + requiredSuffix
	}
	if name == FieldHoras && !hoursPattern.MatchString(value) {
		return hoursFormatError
	}
	return ""
}

// fieldValue возвращает строковое представление поля записи.
func fieldValue(a *models.Apontamento, name string) (string, error) {
	switch name {
	case FieldIDUsuario:
		return a.IDUsuario, nil
	case FieldIDCategoria:
		return a.IDCategoria, nil
	case FieldIDCliente:
		return a.IDCliente, nil
	case FieldIDItemProjetoCategoria:
		return a.IDItemProjetoCategoria, nil
	case FieldData:
		if a.Data.IsZero() {
			return "", nil
		}
		return a.Data.Format(DateLayout), nil
	case FieldHoras:
		return a.Horas, nil
	case FieldDescricao:
		return a.Descricao, nil
	case FieldProjeto:
		return a.Projeto, nil
	case FieldExtra:
		return a.Extra, nil
	case FieldStatusExtra:
		return a.StatusExtra, nil
	case FieldRespostaExtra:
		return a.RespostaExtra, nil
	case FieldObservacao:
		return a.Observacao, nil
	case FieldGarantia:
		return strconv.FormatBool(a.Garantia), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
}

// setFieldValue записывает строковое значение в поле записи.
func setFieldValue(a *models.Apontamento, name, value string) error {
	switch name {
	case FieldIDUsuario:
		a.IDUsuario = value
	case FieldIDCategoria:
		a.IDCategoria = value
	case FieldIDCliente:
		a.IDCliente = value
	case FieldIDItemProjetoCategoria:
		a.IDItemProjetoCategoria = value
	case FieldData:
		t, err := ParseDate(value)
		if err != nil {
			return err
		}
		a.Data = t
	case FieldHoras:
		a.Horas = value
	case FieldDescricao:
		a.Descricao = value
	case FieldProjeto:
		a.Projeto = value
	case FieldExtra:
		a.Extra = value
	case FieldStatusExtra:
		a.StatusExtra = value
	case FieldRespostaExtra:
		a.RespostaExtra = value
	case FieldObservacao:
		a.Observacao = value
	case FieldGarantia:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("valor inválido para garantia %q: %w", value, err)
		}
		a.Garantia = b
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	return nil
}

// FormatDate возвращает дату в формате dd/MM/yyyy; пустая дата - "--/--/----".
func FormatDate(t time.Time) string {
	if t.IsZero() {
		return "--/--/----"
	}
	return t.Format(DateLayout)
}

// FormatGarantia возвращает признак гарантии для отображения.
func FormatGarantia(b bool) string {
	if b {
		return "Sim"
	}
	return "Não"
}

// ParseDate разбирает дату в формате dd/MM/yyyy или RFC 3339.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if t, err := time.ParseInLocation(DateLayout, value, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("data inválida %q: use o formato dd/mm/aaaa", value)
}
