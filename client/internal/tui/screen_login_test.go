//nolint:testpackage // Это тесты в том же пакете для доступа к приватным компонентам
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/capacityx/apontamentos/client/internal/api/apitest"
	"github.com/capacityx/apontamentos/models"
)

// TestUpdateLoginScreen проверяет обработку клавиш на экране входа.
func TestUpdateLoginScreen(t *testing.T) {
	tests := []struct {
		name            string
		inputMsg        tea.Msg
		initialField    int
		expectedField   int
		expectedCmd     bool
		expectInFlight  bool
		emailFocused    bool
		passwordFocused bool
	}{
		{
			name:            "ПереключениеПоляВперед",
			inputMsg:        tea.KeyMsg{Type: tea.KeyTab},
			initialField:    0,
			expectedField:   1,
			expectedCmd:     true,
			passwordFocused: true,
		},
		{
			name:          "ПереключениеПоляНазад",
			inputMsg:      tea.KeyMsg{Type: tea.KeyShiftTab},
			initialField:  1,
			expectedField: 0,
			expectedCmd:   true,
			emailFocused:  true,
		},
		{
			name:            "НажатиеEnter_ПервоеПоле",
			inputMsg:        tea.KeyMsg{Type: tea.KeyEnter},
			initialField:    0,
			expectedField:   1,
			expectedCmd:     true,
			passwordFocused: true,
		},
		{
			name:            "НажатиеEnter_ВтороеПоле_ОтправкаФормы",
			inputMsg:        tea.KeyMsg{Type: tea.KeyEnter},
			initialField:    1,
			expectedField:   1,
			expectedCmd:     true,
			expectInFlight:  true,
			passwordFocused: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestModel(t, &apitest.MockClient{})
			m.loginFocusedField = tt.initialField
			setCredentialsFocus(&m.loginEmailInput, &m.loginPasswordInput, tt.initialField)

			newM, cmd := m.Update(tt.inputMsg)
			result := asModel(t, newM)

			assert.Equal(t, loginScreen, result.state)
			assert.Equal(t, tt.expectedField, result.loginFocusedField)
			assert.Equal(t, tt.emailFocused, result.loginEmailInput.Focused())
			assert.Equal(t, tt.passwordFocused, result.loginPasswordInput.Focused())
			assert.Equal(t, tt.expectInFlight, result.loginInProgress)
			if tt.expectedCmd {
				assert.NotNil(t, cmd)
			} else {
				assert.Nil(t, cmd)
			}
		})
	}
}

// TestLoginFlow_Success проверяет переход к списку после успешного входа.
func TestLoginFlow_Success(t *testing.T) {
	gw := &apitest.MockClient{}
	gw.On("ListApontamentos", mock.Anything).Return([]models.Apontamento{{ID: 1, Projeto: "Reforma"}}, nil).Once()
	m := newTestModel(t, gw)

	m.Update(keyRunes("matheus@gmail.com"))
	m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m.Update(keyRunes("123456"))
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.True(t, m.loginInProgress)

	// Во время входа ввод игнорируется
	_, ignored := m.Update(keyRunes("x"))
	assert.Nil(t, ignored)
	assert.Equal(t, "123456", m.loginPasswordInput.Value())

	success, ok := findMsg[loginSuccessMsg](execCmd(t, cmd))
	require.True(t, ok)

	_, cmd = m.Update(success)
	assert.Equal(t, listScreen, m.state)
	assert.False(t, m.loginInProgress)
	assert.Equal(t, "Apontamentos · Matheus Nogueira", m.recordList.Title)

	fetched, ok := findMsg[recordsFetchedMsg](execCmd(t, cmd))
	require.True(t, ok)
	m.Update(fetched)
	assert.Len(t, m.recordList.Items(), 1)
	gw.AssertExpectations(t)
}

// TestLoginFlow_Failure проверяет сообщение при неверных данных.
func TestLoginFlow_Failure(t *testing.T) {
	m := newTestModel(t, &apitest.MockClient{})
	m.loginEmailInput.SetValue("matheus@gmail.com")
	m.loginPasswordInput.SetValue("errada")
	m.loginFocusedField = 1
	setCredentialsFocus(&m.loginEmailInput, &m.loginPasswordInput, 1)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	loginErr, ok := findMsg[LoginError](execCmd(t, cmd))
	require.True(t, ok)

	m.Update(loginErr)
	assert.Equal(t, loginScreen, m.state)
	assert.False(t, m.loginInProgress)
	assert.Equal(t, "Email ou senha incorretos.", m.loginError)
	assert.Empty(t, m.loginPasswordInput.Value())
	assert.Equal(t, "matheus@gmail.com", m.loginEmailInput.Value())
	assert.Contains(t, m.View(), "Email ou senha incorretos.")
}

// TestLoginResult_IgnoredOutsideLogin проверяет, что запоздавший результат входа не меняет экран.
func TestLoginResult_IgnoredOutsideLogin(t *testing.T) {
	m := newTestModel(t, &apitest.MockClient{})
	m.state = formScreen

	m.Update(LoginError{err: errInvalidCredentials})
	assert.Equal(t, formScreen, m.state)
	assert.Empty(t, m.loginError)
}
