package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/capacityx/apontamentos/client/internal/api"
	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/client/internal/session"
)

// Константы, используемые при инициализации.
const (
	initPasswordCharLimit = 64
	initEmailCharLimit    = 128
	initEmailWidth        = 30
	initSearchCharLimit   = 64
	initSearchWidth       = 40
	initFieldCharLimit    = 256
	initFieldWidth        = 50
	initDateCharLimit     = 10
	initDateWidth         = 12
)

// initLoginInputs инициализирует поля экрана входа.
func initLoginInputs() (textinput.Model, textinput.Model) {
	emailInput := textinput.New()
	emailInput.Placeholder = "Email"
	emailInput.CharLimit = initEmailCharLimit
	emailInput.Width = initEmailWidth
	emailInput.Focus()

	passwordInput := textinput.New()
	passwordInput.Placeholder = "Senha"
	passwordInput.CharLimit = initPasswordCharLimit
	passwordInput.Width = initEmailWidth
	passwordInput.EchoMode = textinput.EchoPassword
	return emailInput, passwordInput
}

// initRecordList инициализирует компонент списка записей.
// Фильтрация списка отключена: поиск выполняет контроллер списка.
func initRecordList() list.Model {
	delegate := list.NewDefaultDelegate()
	delegate.Styles.NormalTitle = delegate.Styles.NormalTitle.
		Foreground(lipgloss.Color("252"))
	delegate.Styles.NormalDesc = delegate.Styles.NormalDesc.
		Foreground(lipgloss.Color("245"))
	delegate.Styles.SelectedTitle = delegate.Styles.SelectedTitle.
		Foreground(lipgloss.Color("212")).
		BorderLeftForeground(lipgloss.Color("212"))
	delegate.Styles.SelectedDesc = delegate.Styles.SelectedDesc.
		Foreground(lipgloss.Color("240")).
		BorderLeftForeground(lipgloss.Color("212"))

	l := list.New([]list.Item{}, delegate, defaultListWidth, defaultListHeight)
	l.Title = "Apontamentos"
	l.SetShowHelp(false)
	l.SetShowStatusBar(true)
	l.SetFilteringEnabled(false)
	l.KeyMap.Quit.SetEnabled(false)
	l.SetStatusBarItemName("apontamento", "apontamentos")
	l.Styles.Title = list.DefaultStyles().Title.Bold(true)
	return l
}

// initSearchInput инициализирует поле поиска.
func initSearchInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "Buscar por projeto ou descrição"
	ti.Prompt = "🔍 "
	ti.CharLimit = initSearchCharLimit
	ti.Width = initSearchWidth
	return ti
}

// initFormInputs создает поля формы в порядке form.TextFields().
func initFormInputs(ctrl *form.Controller) []textinput.Model {
	names := form.TextFields()
	inputs := make([]textinput.Model, len(names))
	for i, name := range names {
		ti := textinput.New()
		ti.Placeholder = ctrl.Label(name)
		ti.CharLimit = initFieldCharLimit
		ti.Width = initFieldWidth
		if value, err := ctrl.Value(name); err == nil {
			ti.SetValue(value)
		}
		inputs[i] = ti
	}
	if len(inputs) > 0 {
		inputs[0].Focus()
	}
	return inputs
}

// initDateInput инициализирует поле выбора даты (dd/mm/aaaa).
func initDateInput() textinput.Model {
	ti := textinput.New()
	ti.Placeholder = "dd/mm/aaaa"
	ti.CharLimit = initDateCharLimit
	ti.Width = initDateWidth
	return ti
}

func initSpinner() spinner.Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	return s
}

// initDocStyle инициализирует основной стиль документа.
func initDocStyle() lipgloss.Style {
	return lipgloss.NewStyle().Margin(docStyleMarginVertical, docStyleMarginHorizontal)
}

// initModel создает начальное состояние модели.
func initModel(store *session.Store, apiClient api.Client, serverURL string, debugMode bool) model {
	emailInput, passwordInput := initLoginInputs()

	return model{
		state:              loginScreen,
		session:            store,
		apiClient:          apiClient,
		debugMode:          debugMode,
		serverURL:          serverURL,
		loginEmailInput:    emailInput,
		loginPasswordInput: passwordInput,
		recordList:         initRecordList(),
		searchInput:        initSearchInput(),
		dateInput:          initDateInput(),
		spinner:            initSpinner(),
		docStyle:           initDocStyle(),
		listing:            listing.New(apiClient),
	}
}
