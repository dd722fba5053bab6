package tui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/capacityx/apontamentos/client/internal/form"
)

// mountForm открывает форму. В режиме редактирования запускает загрузку записи.
func (m *model) mountForm(ctrl *form.Controller) tea.Cmd {
	m.screenGen++
	m.state = formScreen
	m.form = ctrl
	m.formInputs = initFormInputs(ctrl)
	m.formFocusedField = 0
	m.datePickerError = ""
	slog.Info("Переход к форме", "mode", ctrl.Mode().String(), "id", ctrl.ID(), "gen", m.screenGen)

	cmds := []tea.Cmd{tea.ClearScreen, textinput.Blink}
	if ctrl.Mode() == form.ModeEdit {
		cmds = append(cmds, loadRecordCmd(ctrl, m.screenGen))
	}
	return tea.Batch(cmds...)
}

// formTitle возвращает заголовок формы по режиму.
func (m *model) formTitle() string {
	if m.form.Mode() == form.ModeEdit {
		return fmt.Sprintf("Editar Apontamento #%d", m.form.ID())
	}
	return "Novo Apontamento"
}

// updateFormScreen обрабатывает сообщения экрана формы.
func (m *model) updateFormScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		return m.updateFocusedFormInput(msg)
	}

	// Во время загрузки и отправки ввод игнорируется, кроме выхода
	if m.form.Loading() || m.form.Submitting() {
		return m, nil
	}
	if m.form.DatePickerVisible() {
		return m.updateDatePicker(keyMsg)
	}

	switch keyMsg.String() {
	case keyEsc:
		return m, m.mountList()
	}

	if !m.form.Loaded() {
		return m, nil
	}

	switch keyMsg.String() {
	case keySave:
		return m, submitFormCmd(m.form, m.screenGen)
	case keyDatePick:
		value, _ := m.form.Value(form.FieldData)
		m.dateInput.SetValue(value)
		m.dateInput.CursorEnd()
		m.dateInput.Focus()
		m.datePickerError = ""
		m.form.OpenDatePicker()
		return m, textinput.Blink
	case keyTab, keyDown, keyEnter:
		return m, m.focusFormField(m.formFocusedField + 1)
	case keyShiftTab, keyUp:
		return m, m.focusFormField(m.formFocusedField - 1)
	case keySpace:
		if m.garantiaFocused() {
			m.toggleGarantia()
			return m, nil
		}
	}
	return m.updateFocusedFormInput(msg)
}

// updateFocusedFormInput передает сообщение активному полю и записывает значение в черновик.
func (m *model) updateFocusedFormInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.garantiaFocused() || m.formFocusedField >= len(m.formInputs) {
		return m, nil
	}
	idx := m.formFocusedField
	before := m.formInputs[idx].Value()
	var cmd tea.Cmd
	m.formInputs[idx], cmd = m.formInputs[idx].Update(msg)

	if value := m.formInputs[idx].Value(); value != before && m.form.Loaded() {
		name := form.TextFields()[idx]
		if err := m.form.SetField(name, value); err != nil {
			slog.Warn("Не удалось обновить поле", "field", name, "error", err)
		}
	}
	return m, cmd
}

// toggleGarantia переключает признак гарантии.
func (m *model) toggleGarantia() {
	current := m.form.Draft().Garantia
	if err := m.form.SetField(form.FieldGarantia, strconv.FormatBool(!current)); err != nil {
		slog.Warn("Не удалось переключить гарантию", "error", err)
	}
}

// updateDatePicker обрабатывает ввод даты в формате dd/mm/aaaa.
func (m *model) updateDatePicker(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyEsc:
		m.form.CloseDatePicker()
		m.dateInput.Blur()
		m.datePickerError = ""
		return m, nil
	case keyEnter:
		t, err := form.ParseDate(m.dateInput.Value())
		if err != nil {
			m.datePickerError = err.Error()
			return m, nil
		}
		if err = m.form.SetDate(t); err != nil {
			m.datePickerError = err.Error()
			return m, nil
		}
		m.dateInput.Blur()
		m.datePickerError = ""
		return m, nil
	}
	var cmd tea.Cmd
	m.dateInput, cmd = m.dateInput.Update(keyMsg)
	return m, cmd
}

// handleRecordLoaded обновляет поля формы после загрузки записи.
func (m *model) handleRecordLoaded(msg recordLoadedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.screenGen || m.state != formScreen || m.form == nil {
		slog.Debug("Результат загрузки записи для покинутого экрана проигнорирован", "gen", msg.gen)
		return m, nil
	}
	if msg.err != nil {
		m.showAlert("Erro ao carregar apontamento: " + msg.err.Error())
		return m, nil
	}
	m.formInputs = initFormInputs(m.form)
	m.formFocusedField = 0
	return m, textinput.Blink
}

// handleFormSubmitted обрабатывает результат отправки формы.
func (m *model) handleFormSubmitted(msg formSubmittedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.screenGen || m.state != formScreen || m.form == nil {
		slog.Debug("Результат отправки для покинутого экрана проигнорирован", "gen", msg.gen)
		return m, nil
	}
	switch {
	case errors.Is(msg.err, form.ErrInvalidForm):
		// Ошибки полей остаются у полей после закрытия сообщения
		m.showAlert(form.ErrInvalidForm.Error())
		return m, nil
	case msg.err != nil:
		m.showAlert(msg.err.Error())
		return m, nil
	}

	status := "Apontamento criado com sucesso"
	if m.form.Mode() == form.ModeEdit {
		status = "Apontamento atualizado com sucesso"
	}
	listCmd := m.mountList()
	_, statusCmd := m.setStatusMessage(status)
	return m, tea.Batch(listCmd, statusCmd)
}

// viewFormScreen отображает форму.
func (m *model) viewFormScreen() string {
	if m.form == nil {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.formTitle()) + "\n\n")

	if m.form.Loading() {
		b.WriteString(m.spinner.View() + " Carregando apontamento...\n")
		return b.String()
	}
	if !m.form.Loaded() {
		if err := m.form.LoadErr(); err != nil {
			b.WriteString(errorStyle.Render("Não foi possível carregar o apontamento.") + "\n")
		}
		return b.String()
	}

	names := form.TextFields()
	for i, name := range names {
		if i >= len(m.formInputs) {
			break
		}
		b.WriteString(m.viewFormField(name, m.formInputs[i].View(), i == m.formFocusedField))
		if name == form.FieldIDItemProjetoCategoria {
			b.WriteString(m.viewDateField())
		}
	}

	cursor := "  "
	if m.garantiaFocused() {
		cursor = "> "
	}
	garantia := form.FormatGarantia(m.form.Draft().Garantia)
	b.WriteString(fmt.Sprintf("%s%s: [%s]\n", cursor, m.form.Label(form.FieldGarantia), garantia))

	if m.form.Submitting() {
		b.WriteString("\n" + m.spinner.View() + " Salvando...\n")
	}
	return b.String()
}

// viewFormField отображает подпись, поле ввода и ошибку поля.
func (m *model) viewFormField(name, inputView string, focused bool) string {
	cursor := "  "
	if focused {
		cursor = "> "
	}
	line := fmt.Sprintf("%s%s: %s\n", cursor, m.form.Label(name), inputView)
	if msg := m.form.FieldError(name); msg != "" {
		line += "    " + errorStyle.Render(msg) + "\n"
	}
	return line
}

// viewDateField отображает дату и, если открыт, выбор даты.
func (m *model) viewDateField() string {
	value, _ := m.form.Value(form.FieldData)
	line := fmt.Sprintf("  %s: %s %s\n", m.form.Label(form.FieldData), value, subtleStyle.Render("(Ctrl+T)"))
	if !m.form.DatePickerVisible() {
		return line
	}
	line += "    " + m.dateInput.View() + subtleStyle.Render(" Enter: confirmar, Esc: cancelar") + "\n"
	if m.datePickerError != "" {
		line += "    " + errorStyle.Render(m.datePickerError) + "\n"
	}
	return line
}
