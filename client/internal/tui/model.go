package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/capacityx/apontamentos/client/internal/api"
	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/client/internal/session"
	"github.com/capacityx/apontamentos/models"
)

// Состояния (экраны) приложения.
type screenState int

const (
	loginScreen screenState = iota // Экран входа
	listScreen                     // Экран списка записей
	formScreen                     // Экран создания/редактирования записи
)

func (s screenState) String() string {
	switch s {
	case loginScreen:
		return "loginScreen"
	case listScreen:
		return "listScreen"
	case formScreen:
		return "formScreen"
	default:
		return fmt.Sprintf("unknownScreen(%d)", int(s))
	}
}

// Константы для TUI.
const (
	defaultListWidth  = 80 // Стандартная ширина терминала для списка
	defaultListHeight = 20 // Стандартная высота терминала для списка
	inputOffset       = 4  // Отступ для полей ввода

	keyEnter     = "enter"
	keyQuit      = "q"
	keyEsc       = "esc"
	keyEdit      = "e"
	keyAdd       = "a"
	keyDelete    = "d"
	keyRefresh   = "r"
	keySearch    = "/"
	keyWindow    = "w"
	keyWarranty  = "g"
	keyLogout    = "L"
	keyConfirm   = "y"
	keyCancel    = "n"
	keyTab       = "tab"
	keyShiftTab  = "shift+tab"
	keyUp        = "up"
	keyDown      = "down"
	keySpace     = " "
	keySave      = "ctrl+s"
	keyDatePick  = "ctrl+t"
	keyForceQuit = "ctrl+c"
)

const invalidCredentialsMessage = "Email ou senha incorretos."

// recordItem представляет запись в списке. Реализует list.Item.
type recordItem struct {
	rec models.Apontamento
}

func (i recordItem) Title() string {
	if i.rec.Projeto == "" {
		return fmt.Sprintf("#%d", i.rec.ID)
	}
	return i.rec.Projeto
}

func (i recordItem) Description() string {
	return formatRecordDetails(i.rec)
}

func (i recordItem) FilterValue() string { return i.rec.Projeto + " " + i.rec.Descricao }

// model представляет состояние TUI приложения.
type model struct {
	state     screenState
	session   *session.Store
	apiClient api.Client
	debugMode bool
	serverURL string

	// screenGen увеличивается при каждом входе на экран; ответы команд
	// с другим поколением относятся к покинутому экрану и игнорируются.
	screenGen int

	// Вход
	loginEmailInput    textinput.Model
	loginPasswordInput textinput.Model
	loginFocusedField  int
	loginInProgress    bool
	loginError         string

	// Список
	listing       *listing.Controller
	recordList    list.Model
	searchInput   textinput.Model
	searchFocused bool

	// Форма
	form             *form.Controller
	formInputs       []textinput.Model // По одному на form.TextFields()
	formFocusedField int               // Индекс в formInputs; len(formInputs) - переключатель гарантии
	dateInput        textinput.Model
	datePickerError  string

	spinner       spinner.Model
	alert         string // Блокирующее сообщение об ошибке
	statusMessage string // Временное сообщение об успехе
	width         int
	height        int
	docStyle      lipgloss.Style
}

// --- Сообщения --- //

// Сообщение для очистки статуса.
type clearStatusMsg struct{}

type loginSuccessMsg struct {
	user models.User
}

type LoginError struct {
	err error
}

func (e LoginError) Error() string {
	return e.err.Error()
}

// recordsFetchedMsg - результат загрузки или обновления списка.
type recordsFetchedMsg struct {
	gen int
	err error
}

// recordDeletedMsg - результат подтвержденного удаления.
type recordDeletedMsg struct {
	gen int
	err error
}

// recordLoadedMsg - результат загрузки записи для редактирования.
type recordLoadedMsg struct {
	gen int
	err error
}

// formSubmittedMsg - результат отправки формы.
type formSubmittedMsg struct {
	gen   int
	saved *models.Apontamento
	err   error
}
