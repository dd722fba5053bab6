package tui

import (
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// mountLogin открывает экран входа с пустыми полями.
func (m *model) mountLogin() tea.Cmd {
	m.screenGen++
	m.state = loginScreen
	m.loginInProgress = false
	m.loginError = ""
	m.loginEmailInput.SetValue("")
	m.loginPasswordInput.SetValue("")
	m.loginFocusedField = 0
	setCredentialsFocus(&m.loginEmailInput, &m.loginPasswordInput, 0)
	return tea.ClearScreen
}

// updateLoginScreen обрабатывает ввод данных для входа.
func (m *model) updateLoginScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	// Пока идет вход, ввод игнорируется
	if m.loginInProgress {
		if _, ok := msg.(tea.KeyMsg); ok {
			return m, nil
		}
	}

	loginAction := func() (tea.Model, tea.Cmd) {
		email := strings.TrimSpace(m.loginEmailInput.Value())
		password := m.loginPasswordInput.Value()
		m.loginInProgress = true
		m.loginError = ""
		slog.Info("Попытка входа", "email", email)
		return m, loginCmd(m.session, email, password)
	}

	return m.handleCredentialsInput(
		msg,
		&m.loginEmailInput,
		&m.loginPasswordInput,
		&m.loginFocusedField,
		loginAction,
	)
}

// handleLoginSuccess переходит к списку после успешного входа.
func (m *model) handleLoginSuccess(msg loginSuccessMsg) (tea.Model, tea.Cmd) {
	if m.state != loginScreen {
		return m, nil
	}
	m.loginInProgress = false
	m.loginError = ""
	slog.Info("Вход выполнен", "email", msg.user.Email)
	return m, m.mountList()
}

// handleLoginError показывает сообщение о неудачном входе; ввод можно повторить.
func (m *model) handleLoginError(msg LoginError) (tea.Model, tea.Cmd) {
	if m.state != loginScreen {
		return m, nil
	}
	m.loginInProgress = false
	m.loginError = msg.Error()
	m.loginPasswordInput.SetValue("")
	slog.Info("Неудачная попытка входа")
	return m, nil
}

// viewLoginScreen отображает экран входа.
func (m *model) viewLoginScreen() string {
	return m.viewCredentialsScreen(
		"Apontamentos - Entrar",
		"Pressione Enter para entrar",
		m.loginEmailInput,
		m.loginPasswordInput,
	)
}
