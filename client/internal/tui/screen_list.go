package tui

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/capacityx/apontamentos/client/internal/form"
)

// mountList открывает экран списка и запускает загрузку записей.
func (m *model) mountList() tea.Cmd {
	m.screenGen++
	m.state = listScreen
	m.form = nil
	m.formInputs = nil
	m.searchFocused = false
	m.searchInput.Blur()
	m.recordList.Title = m.listTitle()
	m.syncRecordList()
	slog.Debug("Переход к списку записей", "gen", m.screenGen)
	return tea.Batch(tea.ClearScreen, fetchRecordsCmd(m.listing, m.screenGen))
}

// listTitle возвращает заголовок списка с именем пользователя.
func (m *model) listTitle() string {
	if m.session != nil {
		if user, ok := m.session.Current(); ok {
			return "Apontamentos · " + user.Name
		}
	}
	return "Apontamentos"
}

// syncRecordList переносит видимые записи контроллера в компонент списка.
func (m *model) syncRecordList() {
	visible := m.listing.VisibleRecords()
	items := make([]list.Item, len(visible))
	for i, rec := range visible {
		items[i] = recordItem{rec: rec}
	}
	_ = m.recordList.SetItems(items)
	slog.Debug("Список обновлен", "visible", len(items), "ids", recordIDs(visible))
}

// selectedRecordID возвращает ID выбранной записи.
func (m *model) selectedRecordID() (int64, bool) {
	item, ok := m.recordList.SelectedItem().(recordItem)
	if !ok {
		return 0, false
	}
	return item.rec.ID, true
}

// updateListScreen обрабатывает сообщения для экрана списка записей.
//
//nolint:gocyclo // Плоский роутинг клавиш
func (m *model) updateListScreen(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, isKey := msg.(tea.KeyMsg)
	if !isKey {
		var cmd tea.Cmd
		m.recordList, cmd = m.recordList.Update(msg)
		return m, cmd
	}

	if m.listing.State().ConfirmVisible {
		return m.updateDeleteConfirm(keyMsg)
	}
	if m.searchFocused {
		return m.updateSearchInput(keyMsg)
	}

	switch keyMsg.String() {
	case keyQuit:
		return m, tea.Quit
	case keySearch:
		m.searchFocused = true
		m.searchInput.Focus()
		return m, nil
	case keyWindow:
		w := m.listing.CycleWindow()
		slog.Debug("Фильтр по периоду", "window", w.String())
		m.syncRecordList()
		return m, nil
	case keyWarranty:
		g := m.listing.CycleWarranty()
		slog.Debug("Фильтр по гарантии", "warranty", g.String())
		m.syncRecordList()
		return m, nil
	case keyRefresh:
		if m.listing.State().Refreshing {
			return m, nil
		}
		return m, refreshRecordsCmd(m.listing, m.screenGen)
	case keyAdd:
		var opts []form.Option
		if user, ok := m.session.Current(); ok {
			opts = append(opts, form.WithUsuario(user.Email))
		}
		return m, m.mountForm(form.NewCreate(m.apiClient, opts...))
	case keyEdit, keyEnter:
		if m.listing.State().Err != nil {
			return m, nil
		}
		if id, ok := m.selectedRecordID(); ok {
			return m, m.mountForm(form.NewEdit(m.apiClient, id))
		}
		return m, nil
	case keyDelete:
		if m.listing.State().Err != nil {
			return m, nil
		}
		if id, ok := m.selectedRecordID(); ok {
			m.listing.RequestDelete(id)
		}
		return m, nil
	case keyLogout:
		m.session.Logout()
		slog.Info("Выход из учетной записи")
		return m, m.mountLogin()
	}

	var cmd tea.Cmd
	m.recordList, cmd = m.recordList.Update(msg)
	return m, cmd
}

// updateSearchInput обрабатывает ввод в поле поиска; фильтрация применяется сразу.
func (m *model) updateSearchInput(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch keyMsg.String() {
	case keyEnter, keyEsc, keyTab:
		m.searchFocused = false
		m.searchInput.Blur()
		return m, nil
	}
	var cmd tea.Cmd
	m.searchInput, cmd = m.searchInput.Update(keyMsg)
	m.listing.SetSearch(m.searchInput.Value())
	m.syncRecordList()
	return m, cmd
}

// updateDeleteConfirm обрабатывает диалог подтверждения удаления.
func (m *model) updateDeleteConfirm(keyMsg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.listing.State().Deleting {
		return m, nil
	}
	switch keyMsg.String() {
	case keyConfirm, "Y":
		return m, deleteRecordCmd(m.listing, m.screenGen)
	case keyCancel, "N", keyEsc:
		m.listing.CancelDelete()
	}
	return m, nil
}

// handleRecordsFetched применяет результат загрузки списка.
func (m *model) handleRecordsFetched(msg recordsFetchedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.screenGen || m.state != listScreen {
		slog.Debug("Результат загрузки для покинутого экрана проигнорирован", "gen", msg.gen)
		return m, nil
	}
	m.syncRecordList()
	return m, nil
}

// handleRecordDeleted применяет результат удаления.
func (m *model) handleRecordDeleted(msg recordDeletedMsg) (tea.Model, tea.Cmd) {
	if msg.gen != m.screenGen || m.state != listScreen {
		return m, nil
	}
	if msg.err != nil {
		m.showAlert(msg.err.Error())
		return m, nil
	}
	m.syncRecordList()
	return m.setStatusMessage("Apontamento excluído com sucesso")
}

// viewListScreen отображает экран списка.
func (m *model) viewListScreen() string {
	st := m.listing.State()
	var b strings.Builder

	b.WriteString(m.searchInput.View() + "\n")
	b.WriteString(subtleStyle.Render(describeFilter(st.Filter)) + "\n")

	switch {
	case st.Refreshing:
		b.WriteString(m.spinner.View() + " Atualizando...\n")
	case st.Loading:
		b.WriteString(m.spinner.View() + " Carregando apontamentos...\n")
	}

	if st.ConfirmVisible {
		b.WriteString("\n" + m.viewDeleteConfirm(st.PendingDeleteID, st.Deleting) + "\n")
		return b.String()
	}
	// Ошибка загрузки заменяет список до следующей успешной загрузки
	if st.Err != nil {
		b.WriteString("\n" + errorStyle.Render(st.Err.Error()) + "\n")
		return b.String()
	}

	if len(m.recordList.Items()) == 0 && !st.Loading {
		b.WriteString("\n" + subtleStyle.Render("Nenhum apontamento encontrado.") + "\n")
		return b.String()
	}
	b.WriteString(m.recordList.View())
	return b.String()
}

// viewDeleteConfirm отображает диалог подтверждения удаления.
func (m *model) viewDeleteConfirm(id int64, deleting bool) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Excluir apontamento") + "\n\n")
	b.WriteString(fmt.Sprintf("Tem certeza que deseja excluir o apontamento #%d?\n\n", id))
	if deleting {
		b.WriteString(m.spinner.View() + " Excluindo...")
	} else {
		b.WriteString(subtleStyle.Render("(y: sim, n/Esc: cancelar)"))
	}
	return alertStyle.Render(b.String())
}
