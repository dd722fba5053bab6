//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capacityx/apontamentos/client/internal/api/apitest"
	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/models"
)

func listFixture() []models.Apontamento {
	today := time.Now()
	return []models.Apontamento{
		{ID: 1, Projeto: "Reforma", Descricao: "Troca de piso", Data: today, Horas: "08:00", Garantia: true},
		{ID: 2, Projeto: "Pintura", Descricao: "Fachada", Data: today, Horas: "04:00"},
		{ID: 5, Projeto: "Hidráulica", Descricao: "Vazamento", Data: today.AddDate(0, 0, -60), Horas: "01:00"},
	}
}

// newListModel создает модель на экране списка с загруженными записями.
func newListModel(t *testing.T, gw *apitest.MockClient) *model {
	t.Helper()
	gw.On("ListApontamentos", mock.Anything).Return(listFixture(), nil).Once()
	m := newTestModel(t, gw)
	require.True(t, m.session.Login("matheus@gmail.com", "123456"))

	cmd := m.mountList()
	fetched, ok := findMsg[recordsFetchedMsg](execCmd(t, cmd))
	require.True(t, ok)
	m.Update(fetched)
	require.Len(t, m.recordList.Items(), 3)
	return m
}

func visibleIDs(m *model) []int64 {
	ids := []int64{}
	for _, it := range m.recordList.Items() {
		ids = append(ids, it.(recordItem).rec.ID) //nolint:errcheck,forcetypeassert // В списке только recordItem
	}
	return ids
}

func TestListScreen_Search(t *testing.T) {
	m := newListModel(t, &apitest.MockClient{})

	m.Update(keyRunes("/"))
	require.True(t, m.searchFocused)

	m.Update(keyRunes("refo"))
	assert.Equal(t, []int64{1}, visibleIDs(m))

	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searchFocused)
	assert.Equal(t, "refo", m.listing.State().Search)

	// После выхода из поиска клавиши снова управляют списком
	m.Update(keyRunes("g"))
	assert.Equal(t, listing.WarrantyTrue, m.listing.State().Filter.Warranty)
	assert.Equal(t, []int64{1}, visibleIDs(m))
}

func TestListScreen_Filters(t *testing.T) {
	m := newListModel(t, &apitest.MockClient{})

	m.Update(keyRunes("w"))
	assert.Equal(t, listing.WindowLast7Days, m.listing.State().Filter.Window)
	assert.Equal(t, []int64{1, 2}, visibleIDs(m))

	m.Update(keyRunes("g"))
	m.Update(keyRunes("g"))
	assert.Equal(t, listing.WarrantyFalse, m.listing.State().Filter.Warranty)
	assert.Equal(t, []int64{2}, visibleIDs(m))
	assert.Contains(t, m.View(), "Últimos 7 dias")
}

func TestListScreen_Refresh(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gw.On("ListApontamentos", mock.Anything).Return(listFixture()[:1], nil).Once()

	_, cmd := m.Update(keyRunes("r"))
	fetched, ok := findMsg[recordsFetchedMsg](execCmd(t, cmd))
	require.True(t, ok)
	m.Update(fetched)

	assert.Equal(t, []int64{1}, visibleIDs(m))
	assert.False(t, m.listing.State().Refreshing)
	gw.AssertExpectations(t)
}

func TestListScreen_FetchErrorReplacesList(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gw.On("ListApontamentos", mock.Anything).Return(nil, errors.New("offline")).Once()

	_, cmd := m.Update(keyRunes("r"))
	fetched, ok := findMsg[recordsFetchedMsg](execCmd(t, cmd))
	require.True(t, ok)
	m.Update(fetched)

	assert.Empty(t, m.alert)
	view := m.View()
	assert.Contains(t, view, "Erro ao carregar apontamentos.")
	assert.NotContains(t, view, "Reforma", "устаревший снимок не отображается")

	// Действия над записями недоступны, пока список не загружен
	_, cmd = m.Update(keyRunes("e"))
	assert.Nil(t, cmd)
	assert.Equal(t, listScreen, m.state)
	m.Update(keyRunes("d"))
	assert.False(t, m.listing.State().ConfirmVisible)

	// Успешное обновление возвращает список
	gw.On("ListApontamentos", mock.Anything).Return(listFixture(), nil).Once()
	_, cmd = m.Update(keyRunes("r"))
	fetched, ok = findMsg[recordsFetchedMsg](execCmd(t, cmd))
	require.True(t, ok)
	m.Update(fetched)
	assert.NotContains(t, m.View(), "Erro ao carregar apontamentos.")
	assert.Contains(t, m.View(), "Reforma")
	gw.AssertExpectations(t)
}

func TestListScreen_DeleteThenFetchFails(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gw.On("DeleteApontamento", mock.Anything, int64(1)).Return(nil).Once()
	gw.On("ListApontamentos", mock.Anything).Return(nil, errors.New("offline")).Once()

	m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	deleted, ok := findMsg[recordDeletedMsg](execCmd(t, cmd))
	require.True(t, ok)
	require.NoError(t, deleted.err)
	m.Update(deleted)

	view := m.View()
	assert.Contains(t, view, "Erro ao carregar apontamentos.")
	assert.NotContains(t, view, "Troca de piso")

	// Повторное удаление той же записи невозможно
	m.Update(keyRunes("d"))
	assert.False(t, m.listing.State().ConfirmVisible)
	gw.AssertNumberOfCalls(t, "DeleteApontamento", 1)
}

func TestListScreen_DeleteCancel(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)

	m.Update(keyRunes("d"))
	require.True(t, m.listing.State().ConfirmVisible)
	assert.Contains(t, m.View(), "Tem certeza que deseja excluir o apontamento #1?")

	// Пока открыт диалог, клавиши списка не работают
	_, cmd := m.Update(keyRunes("q"))
	assert.Nil(t, cmd)

	m.Update(keyRunes("n"))
	assert.False(t, m.listing.State().ConfirmVisible)
	gw.AssertNotCalled(t, "DeleteApontamento", mock.Anything, mock.Anything)
}

func TestListScreen_DeleteConfirm(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gw.On("DeleteApontamento", mock.Anything, int64(1)).Return(nil).Once()
	gw.On("ListApontamentos", mock.Anything).Return(listFixture()[1:], nil).Once()

	m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	deleted, ok := findMsg[recordDeletedMsg](execCmd(t, cmd))
	require.True(t, ok)
	require.NoError(t, deleted.err)

	m.Update(deleted)
	assert.False(t, m.listing.State().ConfirmVisible)
	assert.Equal(t, []int64{2, 5}, visibleIDs(m))
	assert.Equal(t, "Apontamento excluído com sucesso", m.statusMessage)
	gw.AssertNumberOfCalls(t, "DeleteApontamento", 1)
	gw.AssertNumberOfCalls(t, "ListApontamentos", 2)
}

func TestListScreen_DeleteError(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gw.On("DeleteApontamento", mock.Anything, int64(1)).Return(errors.New("erro do servidor: status 500")).Once()

	m.Update(keyRunes("d"))
	_, cmd := m.Update(keyRunes("y"))
	deleted, ok := findMsg[recordDeletedMsg](execCmd(t, cmd))
	require.True(t, ok)

	m.Update(deleted)
	assert.Contains(t, m.alert, "status 500")
	assert.True(t, m.listing.State().ConfirmVisible)
}

func TestListScreen_StaleFetchIgnored(t *testing.T) {
	gw := &apitest.MockClient{}
	m := newListModel(t, gw)
	gen := m.screenGen

	m.Update(keyRunes("a"))
	require.Equal(t, formScreen, m.state)

	// Ответ для покинутого экрана списка
	_, cmd := m.Update(recordsFetchedMsg{gen: gen})
	assert.Nil(t, cmd)
	assert.Equal(t, formScreen, m.state)
}

func TestListScreen_OpenForms(t *testing.T) {
	t.Run("Новая запись с пользователем сессии", func(t *testing.T) {
		m := newListModel(t, &apitest.MockClient{})

		m.Update(keyRunes("a"))
		require.Equal(t, formScreen, m.state)
		require.NotNil(t, m.form)
		assert.Equal(t, form.ModeCreate, m.form.Mode())
		assert.Equal(t, "matheus@gmail.com", m.form.Draft().IDUsuario)
		assert.Equal(t, "matheus@gmail.com", m.formInputs[0].Value())
	})

	t.Run("Редактирование выбранной записи", func(t *testing.T) {
		gw := &apitest.MockClient{}
		m := newListModel(t, gw)
		gw.On("GetApontamento", mock.Anything, int64(1)).Return(&listFixture()[0], nil).Once()

		_, cmd := m.Update(keyRunes("e"))
		require.Equal(t, formScreen, m.state)
		assert.Equal(t, form.ModeEdit, m.form.Mode())
		assert.Equal(t, int64(1), m.form.ID())

		loaded, ok := findMsg[recordLoadedMsg](execCmd(t, cmd))
		require.True(t, ok)
		m.Update(loaded)
		assert.Equal(t, "Reforma", m.form.Draft().Projeto)
		gw.AssertExpectations(t)
	})
}

func TestListScreen_Logout(t *testing.T) {
	m := newListModel(t, &apitest.MockClient{})

	m.Update(keyRunes("L"))
	assert.Equal(t, loginScreen, m.state)
	_, loggedIn := m.session.Current()
	assert.False(t, loggedIn)
	assert.Empty(t, m.loginEmailInput.Value())
}

func TestListScreen_Quit(t *testing.T) {
	m := newListModel(t, &apitest.MockClient{})

	_, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestListScreen_EmptyView(t *testing.T) {
	gw := &apitest.MockClient{}
	gw.On("ListApontamentos", mock.Anything).Return([]models.Apontamento{}, nil).Once()
	m := newTestModel(t, gw)

	fetched, ok := findMsg[recordsFetchedMsg](execCmd(t, m.mountList()))
	require.True(t, ok)
	m.Update(fetched)
	assert.Contains(t, m.View(), "Nenhum apontamento encontrado.")
}
