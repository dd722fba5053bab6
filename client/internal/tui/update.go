package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Update обрабатывает входящие сообщения.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	// == Глобальные сообщения (не зависят от экрана) ==
	case tea.WindowSizeMsg:
		m.handleWindowSize(msg)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case clearStatusMsg:
		m.statusMessage = ""
		return m, nil

	case loginSuccessMsg:
		return m.handleLoginSuccess(msg)

	case LoginError:
		return m.handleLoginError(msg)

	case recordsFetchedMsg:
		return m.handleRecordsFetched(msg)

	case recordDeletedMsg:
		return m.handleRecordDeleted(msg)

	case recordLoadedMsg:
		return m.handleRecordLoaded(msg)

	case formSubmittedMsg:
		return m.handleFormSubmitted(msg)

	case tea.KeyMsg:
		if msg.String() == keyForceQuit {
			return m, tea.Quit
		}
		// Сообщение об ошибке блокирует экран до закрытия
		if m.alert != "" {
			switch msg.String() {
			case keyEnter, keyEsc:
				m.alert = ""
			}
			return m, nil
		}
	}

	// == Обновление компонентов в зависимости от состояния ==
	switch m.state {
	case loginScreen:
		return m.updateLoginScreen(msg)
	case listScreen:
		return m.updateListScreen(msg)
	case formScreen:
		return m.updateFormScreen(msg)
	default:
		return m, nil
	}
}

// handleWindowSize обновляет размеры компонентов.
func (m *model) handleWindowSize(msg tea.WindowSizeMsg) {
	m.width, m.height = msg.Width, msg.Height
	h, v := m.docStyle.GetFrameSize()
	listWidth := msg.Width - h
	listHeight := msg.Height - v - helpStatusHeightOffset

	m.recordList.SetSize(listWidth, listHeight)
	m.searchInput.Width = listWidth - inputOffset
	m.loginEmailInput.Width = listWidth - inputOffset
	m.loginPasswordInput.Width = listWidth - inputOffset
}
