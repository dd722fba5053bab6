package tui

import (
	"context"
	"errors"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/client/internal/session"
)

var errInvalidCredentials = errors.New(invalidCredentialsMessage)

// clearStatusCmd возвращает команду, которая отправит clearStatusMsg через delay.
func clearStatusCmd(delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(_ time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}

// loginCmd проверяет учетные данные в хранилище сессии.
func loginCmd(store *session.Store, email, password string) tea.Cmd {
	return func() tea.Msg {
		if !store.Login(email, password) {
			return LoginError{err: errInvalidCredentials}
		}
		user, _ := store.Current()
		return loginSuccessMsg{user: user}
	}
}

// fetchRecordsCmd загружает список записей.
func fetchRecordsCmd(ctrl *listing.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		return recordsFetchedMsg{gen: gen, err: ctrl.Fetch(context.Background())}
	}
}

// refreshRecordsCmd обновляет список записей по запросу пользователя.
func refreshRecordsCmd(ctrl *listing.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		return recordsFetchedMsg{gen: gen, err: ctrl.Refresh(context.Background())}
	}
}

// deleteRecordCmd удаляет выбранную запись; контроллер сам перезагружает список.
func deleteRecordCmd(ctrl *listing.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		return recordDeletedMsg{gen: gen, err: ctrl.ConfirmDelete(context.Background())}
	}
}

// loadRecordCmd загружает запись в форму редактирования.
func loadRecordCmd(ctrl *form.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		return recordLoadedMsg{gen: gen, err: ctrl.Load(context.Background())}
	}
}

// submitFormCmd отправляет форму.
func submitFormCmd(ctrl *form.Controller, gen int) tea.Cmd {
	return func() tea.Msg {
		saved, err := ctrl.Submit(context.Background())
		return formSubmittedMsg{gen: gen, saved: saved, err: err}
	}
}
