package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// Количество полей, обрабатываемых handleCredentialsInput (email/senha).
	numCredentialFields = 2
)

// setCredentialsFocus переносит фокус на поле с индексом idx (0 или 1).
func setCredentialsFocus(input1, input2 *textinput.Model, idx int) {
	if idx == 0 {
		input2.Blur()
		input1.Focus()
		return
	}
	input1.Blur()
	input2.Focus()
}

// handleCredentialsKeys обрабатывает нажатия Tab, Shift+Tab и Enter в полях ввода.
// Возвращает модель, команду и флаг, указывающий, была ли клавиша обработана.
func (m *model) handleCredentialsKeys(
	keyMsg tea.KeyMsg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd, bool) {
	switch keyMsg.String() {
	case keyTab, keyDown:
		*focusedFieldIdx = (*focusedFieldIdx + 1) % numCredentialFields
		setCredentialsFocus(input1, input2, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyShiftTab, keyUp:
		*focusedFieldIdx = (*focusedFieldIdx + numCredentialFields - 1) % numCredentialFields
		setCredentialsFocus(input1, input2, *focusedFieldIdx)
		return m, textinput.Blink, true
	case keyEnter:
		if *focusedFieldIdx == 0 {
			*focusedFieldIdx = 1
			setCredentialsFocus(input1, input2, 1)
			return m, textinput.Blink, true
		}
		// Активно второе поле - вызываем действие
		model, cmd := onEnterCmd()
		return model, cmd, true
	default:
		return m, nil, false
	}
}

// handleCredentialsInput обрабатывает ввод в двух полях (email/senha),
// переключение фокуса между ними и действие по Enter.
func (m *model) handleCredentialsInput(
	msg tea.Msg,
	input1 *textinput.Model,
	input2 *textinput.Model,
	focusedFieldIdx *int,
	onEnterCmd func() (tea.Model, tea.Cmd),
) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		newModel, keyCmd, handled := m.handleCredentialsKeys(keyMsg, input1, input2, focusedFieldIdx, onEnterCmd)
		if handled {
			return newModel, keyCmd
		}
	}

	activeInput := input1
	if *focusedFieldIdx == 1 {
		activeInput = input2
	}
	var cmd tea.Cmd
	*activeInput, cmd = activeInput.Update(msg)
	return m, cmd
}

// focusFormField переносит фокус формы на поле idx. Индекс len(formInputs)
// соответствует переключателю гарантии и не имеет поля ввода.
func (m *model) focusFormField(idx int) tea.Cmd {
	total := len(m.formInputs) + 1
	idx = ((idx % total) + total) % total
	m.formFocusedField = idx
	for i := range m.formInputs {
		if i == idx {
			m.formInputs[i].Focus()
		} else {
			m.formInputs[i].Blur()
		}
	}
	return textinput.Blink
}

// garantiaFocused сообщает, что фокус на переключателе гарантии.
func (m *model) garantiaFocused() bool {
	return m.formFocusedField == len(m.formInputs)
}
