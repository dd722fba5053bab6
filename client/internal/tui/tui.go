package tui

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/capacityx/apontamentos/client/internal/api"
	"github.com/capacityx/apontamentos/client/internal/session"
)

const (
	statusMessageTimeout     = 2 * time.Second // Время отображения статусных сообщений
	helpStatusHeightOffset   = 4               // Высота строк поиска, помощи и статуса
	docStyleMarginVertical   = 1
	docStyleMarginHorizontal = 2
)

//nolint:gochecknoglobals // Стили lipgloss неизменяемы
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#FAFAFA"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F25D94"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#04B575"))
	alertStyle  = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#F25D94")).
			Padding(1, 2)
)

// helpTextMap - подсказки по клавишам для каждого экрана.
//
//nolint:gochecknoglobals // Неизменяемая таблица подсказок
var helpTextMap = map[screenState]string{
	loginScreen: "(Tab: próximo campo, Enter: entrar, Ctrl+C: sair)",
	listScreen: "(/: buscar, w: período, g: garantia, r: atualizar, a: novo, " +
		"e/Enter: editar, d: excluir, L: sair da conta, q: sair)",
	formScreen: "(Tab/↑/↓: campos, Espaço: garantia, Ctrl+T: data, Ctrl+S: salvar, Esc: voltar)",
}

// Options - зависимости TUI.
type Options struct {
	Session   *session.Store
	Client    api.Client
	ServerURL string
	Debug     bool
}

// Init - команда, выполняемая при запуске приложения.
func (m *model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// setStatusMessage устанавливает статусное сообщение и запускает таймер для его очистки.
func (m *model) setStatusMessage(status string) (tea.Model, tea.Cmd) {
	m.statusMessage = status
	return m, clearStatusCmd(statusMessageTimeout)
}

// showAlert показывает блокирующее сообщение об ошибке.
func (m *model) showAlert(text string) {
	m.alert = text
	slog.Debug("Показано сообщение об ошибке", "screen", m.state.String(), "alert", text)
}

// getMainContentView возвращает основное содержимое для текущего состояния.
func (m *model) getMainContentView() string {
	switch m.state {
	case loginScreen:
		return m.viewLoginScreen()
	case listScreen:
		return m.viewListScreen()
	case formScreen:
		return m.viewFormScreen()
	default:
		return "Estado desconhecido!"
	}
}

// getContentAndHelp возвращает содержимое экрана и строку подсказки.
func (m *model) getContentAndHelp() (string, string) {
	mainContent := m.getMainContentView()
	help, ok := helpTextMap[m.state]
	if !ok {
		help = fmt.Sprintf("State: %s", m.state.String())
	}
	if m.alert != "" {
		help = "(Enter/Esc: fechar)"
	}
	return mainContent, help
}

// getDebugInfoString формирует отладочную информацию.
func (m *model) getDebugInfoString() string {
	var debugInfo strings.Builder
	debugInfo.WriteString(fmt.Sprintf(" [State: %s]\n", m.state.String()))
	debugInfo.WriteString(fmt.Sprintf(" [URL: %s]\n", m.serverURL))
	debugInfo.WriteString(fmt.Sprintf(" [Gen: %d]\n", m.screenGen))
	if m.session != nil {
		if user, ok := m.session.Current(); ok {
			debugInfo.WriteString(fmt.Sprintf(" [User: %s]\n", user.Email))
		}
	}
	if m.listing != nil {
		st := m.listing.State()
		debugInfo.WriteString(fmt.Sprintf(" [Records: %d, Loading: %t, Refreshing: %t]\n",
			st.Total, st.Loading, st.Refreshing))
	}
	return debugInfo.String()
}

// View отрисовывает пользовательский интерфейс.
func (m *model) View() string {
	mainContent, help := m.getContentAndHelp()
	if m.alert != "" {
		mainContent = alertStyle.Render(titleStyle.Render("Erro")+"\n\n"+m.alert) + "\n\n" + mainContent
	}

	var footer strings.Builder
	if m.statusMessage != "" {
		footer.WriteString("\n")
		footer.WriteString(statusStyle.Render(m.statusMessage))
	}
	if m.debugMode {
		footer.WriteString("\n\n---\nDebug:\n")
		footer.WriteString(m.getDebugInfoString())
	}

	styledContent := m.docStyle.Render(mainContent)
	return fmt.Sprintf("%s\n%s%s", styledContent, subtleStyle.Render(help), footer.String())
}

// Start запускает TUI приложение и блокируется до выхода из него.
func Start(opts Options) error {
	if opts.Session == nil {
		opts.Session = session.NewStore(session.DefaultUsers())
	}
	m := initModel(opts.Session, opts.Client, opts.ServerURL, opts.Debug)
	slog.Info("Запуск TUI", "server_url", opts.ServerURL, "debug_mode", opts.Debug)

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		slog.Error("Ошибка при запуске TUI", "error", err)
		return fmt.Errorf("erro ao executar a interface: %w", err)
	}
	slog.Info("TUI завершен")
	return nil
}
