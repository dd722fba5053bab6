package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
)

// viewCredentialsScreen отображает общий экран ввода email/senha.
func (m *model) viewCredentialsScreen(title, hint string, emailInput, passwordInput textinput.Model) string {
	var b strings.Builder

	b.WriteString(titleStyle.Render(title) + "\n\n")
	b.WriteString(emailInput.View() + "\n")
	b.WriteString(passwordInput.View() + "\n\n")
	if m.loginInProgress {
		b.WriteString(m.spinner.View() + " Entrando...\n")
	} else {
		b.WriteString(subtleStyle.Render(hint) + "\n")
	}
	if m.loginError != "" {
		b.WriteString(errorStyle.Render(m.loginError) + "\n")
	}
	return b.String()
}
