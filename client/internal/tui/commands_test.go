//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capacityx/apontamentos/client/internal/api/apitest"
	"github.com/capacityx/apontamentos/client/internal/form"
	"github.com/capacityx/apontamentos/client/internal/listing"
	"github.com/capacityx/apontamentos/client/internal/session"
	"github.com/capacityx/apontamentos/models"
)

func TestLoginCmd(t *testing.T) {
	t.Run("Успешный вход", func(t *testing.T) {
		store := session.NewStore(session.DefaultUsers())
		msg := loginCmd(store, "joao@gmail.com", "012345")()

		success, ok := msg.(loginSuccessMsg)
		require.True(t, ok, "ожидалось loginSuccessMsg, получено %T", msg)
		assert.Equal(t, "João da Silva", success.user.Name)
	})

	t.Run("Неверные данные", func(t *testing.T) {
		store := session.NewStore(session.DefaultUsers())
		msg := loginCmd(store, "joao@gmail.com", "errada")()

		loginErr, ok := msg.(LoginError)
		require.True(t, ok, "ожидалось LoginError, получено %T", msg)
		assert.Equal(t, "Email ou senha incorretos.", loginErr.Error())
		_, loggedIn := store.Current()
		assert.False(t, loggedIn)
	})
}

func TestFetchRecordsCmd(t *testing.T) {
	gw := &apitest.MockClient{}
	gw.On("ListApontamentos", mock.Anything).Return([]models.Apontamento{{ID: 1}}, nil).Once()
	gw.On("ListApontamentos", mock.Anything).Return(nil, errors.New("offline")).Once()
	ctrl := listing.New(gw)

	msg, ok := fetchRecordsCmd(ctrl, 3)().(recordsFetchedMsg)
	require.True(t, ok)
	assert.Equal(t, 3, msg.gen)
	require.NoError(t, msg.err)

	msg, ok = refreshRecordsCmd(ctrl, 4)().(recordsFetchedMsg)
	require.True(t, ok)
	assert.Equal(t, 4, msg.gen)
	require.ErrorIs(t, msg.err, listing.ErrFetch)
	gw.AssertExpectations(t)
}

func TestDeleteRecordCmd_WithoutPending(t *testing.T) {
	ctrl := listing.New(&apitest.MockClient{})

	msg, ok := deleteRecordCmd(ctrl, 1)().(recordDeletedMsg)
	require.True(t, ok)
	require.ErrorIs(t, msg.err, listing.ErrNoPendingDelete)
}

func TestLoadAndSubmitCmds(t *testing.T) {
	gw := &apitest.MockClient{}
	rec := &models.Apontamento{ID: 9, IDUsuario: "u", Projeto: "P", Horas: "01:00", Descricao: "D"}
	gw.On("GetApontamento", mock.Anything, int64(9)).Return(rec, nil).Once()
	gw.On("UpdateApontamento", mock.Anything, int64(9), mock.Anything).Return(rec, nil).Once()

	ctrl := form.NewEdit(gw, 9)
	loaded, ok := loadRecordCmd(ctrl, 2)().(recordLoadedMsg)
	require.True(t, ok)
	require.NoError(t, loaded.err)
	assert.Equal(t, 2, loaded.gen)

	submitted, ok := submitFormCmd(ctrl, 2)().(formSubmittedMsg)
	require.True(t, ok)
	require.NoError(t, submitted.err)
	assert.Equal(t, int64(9), submitted.saved.ID)
	gw.AssertExpectations(t)
}

func TestClearStatusCmd(t *testing.T) {
	msg := clearStatusCmd(time.Millisecond)()
	assert.IsType(t, clearStatusMsg{}, msg)
}
