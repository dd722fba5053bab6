package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/capacityx/apontamentos/client/internal/config"
	"github.com/capacityx/apontamentos/models"
)

// clearEnv убирает переменные окружения клиента на время теста.
func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvServerURL, "")
	t.Setenv(config.EnvTimeout, "")
	t.Setenv(config.EnvLogDir, "")
}

// newRecordsServer отдает фиксированный список по GET /apontamento.
func newRecordsServer(t *testing.T, records []models.Apontamento) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet || r.URL.Path != "/apontamento" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(records)
	}))
	t.Cleanup(srv.Close)
	return srv
}

// executeCmd выполняет корневую команду с аргументами и возвращает stdout.
func executeCmd(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestListCommand(t *testing.T) {
	clearEnv(t)
	now := time.Now()
	deletedAt := now.Add(-time.Hour)
	srv := newRecordsServer(t, []models.Apontamento{
		{ID: 1, Projeto: "Reforma", Descricao: "Troca de piso", Data: now, Horas: "08:00", Garantia: true},
		{ID: 2, Projeto: "Pintura", Descricao: "Fachada", Data: now.AddDate(0, 0, -20), Horas: "04:00"},
		{ID: 3, Projeto: "Reforma", Descricao: "Removido", Data: now, Horas: "01:00", DataDeExclusao: &deletedAt},
	})

	tests := []struct {
		name       string
		args       []string
		contains   []string
		notContain []string
	}{
		{
			name:       "Все активные записи",
			args:       nil,
			contains:   []string{"Reforma", "Pintura", "08:00", "Sim"},
			notContain: []string{"Removido"},
		},
		{
			name:       "Поиск",
			args:       []string{"--search", "PINT"},
			contains:   []string{"Pintura"},
			notContain: []string{"Reforma"},
		},
		{
			name:       "Период 7 дней",
			args:       []string{"--window", "7"},
			contains:   []string{"Reforma"},
			notContain: []string{"Pintura"},
		},
		{
			name:       "Без гарантии",
			args:       []string{"--garantia", "false"},
			contains:   []string{"Pintura"},
			notContain: []string{"Reforma"},
		},
		{
			name:     "Пустой результат",
			args:     []string{"--search", "nada"},
			contains: []string{"Nenhum apontamento encontrado."},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--server-url", srv.URL, "--log-dir", t.TempDir()}, tt.args...)
			out, err := executeCmd(t, args...)
			require.NoError(t, err)
			for _, s := range tt.contains {
				assert.Contains(t, out, s)
			}
			for _, s := range tt.notContain {
				assert.NotContains(t, out, s)
			}
		})
	}
}

func TestListCommand_InvalidFlags(t *testing.T) {
	clearEnv(t)

	tests := []struct {
		name        string
		args        []string
		expectedErr string
	}{
		{name: "Неверный период", args: []string{"--window", "15"}, expectedErr: "--window"},
		{name: "Неверная гарантия", args: []string{"--garantia", "talvez"}, expectedErr: "--garantia"},
		{name: "Неверный URL", args: []string{"--server-url", "ftp://host"}, expectedErr: "ошибка конфигурации"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := append([]string{"list", "--log-dir", t.TempDir()}, tt.args...)
			_, err := executeCmd(t, args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.expectedErr)
		})
	}
}

func TestListCommand_ServerError(t *testing.T) {
	clearEnv(t)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	_, err := executeCmd(t, "list", "--server-url", srv.URL, "--log-dir", t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Erro ao carregar apontamentos.")
}

func TestVersionCommand(t *testing.T) {
	out, err := executeCmd(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "Apontamentos Client")
	assert.Contains(t, out, "Version: dev")
	assert.Contains(t, out, "Commit Hash: N/A")
}

func TestPrintList(t *testing.T) {
	var buf bytes.Buffer
	err := printList(&buf, []models.Apontamento{
		{ID: 7, Projeto: "Reforma", Descricao: "Piso", Data: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Horas: "02:30"},
		{ID: 8, Projeto: "Sem data", Horas: "01:00", Garantia: true},
	})
	require.NoError(t, err)

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 3)
	assert.Contains(t, string(lines[0]), "PROJETO")
	assert.Contains(t, string(lines[1]), "01/10/2026")
	assert.Contains(t, string(lines[1]), "Não")
	assert.Contains(t, string(lines[2]), "--/--/----")
	assert.Contains(t, string(lines[2]), "Sim")
}

func TestSetupLogging(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested")

	closeLog, err := setupLogging(dir)
	require.NoError(t, err)
	defer closeLog()

	_, err = os.Lstat(filepath.Join(dir, logFileName))
	require.NoError(t, err, "ожидалась ссылка на текущий лог-файл")
}
