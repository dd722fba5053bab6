package main

import (
	"flag"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Вспомогательная функция для сброса флагов между тестами.
func resetFlags(t *testing.T, args ...string) {
	t.Helper()
	originalArgs := os.Args
	t.Cleanup(func() { os.Args = originalArgs })

	flag.CommandLine = flag.NewFlagSet("server", flag.ContinueOnError)
	os.Args = append([]string{"server"}, args...)
}

// clearServerEnv очищает переменные окружения сервера на время теста.
func clearServerEnv(t *testing.T) {
	t.Helper()
	t.Setenv(envServerPort, "")
	t.Setenv(envDatabaseDSN, "")
	t.Setenv(envDataFile, "")
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		env      map[string]string
		expected config
	}{
		{
			name:     "Значения по умолчанию",
			expected: config{Port: "3000", DataFile: "db.json"},
		},
		{
			name:     "Все параметры из флагов",
			args:     []string{"-port=8080", "-database-dsn=postgres://u:p@h/db", "-data-file=/tmp/a.json"},
			expected: config{Port: "8080", DatabaseDSN: "postgres://u:p@h/db", DataFile: "/tmp/a.json"},
		},
		{
			name: "Все параметры из переменных окружения",
			env: map[string]string{
				envServerPort:  "9090",
				envDatabaseDSN: "env_postgres://...",
				envDataFile:    "env.json",
			},
			expected: config{Port: "9090", DatabaseDSN: "env_postgres://...", DataFile: "env.json"},
		},
		{
			name:     "Флаг важнее переменной окружения",
			args:     []string{"-port=7070"},
			env:      map[string]string{envServerPort: "9090"},
			expected: config{Port: "7070", DataFile: "db.json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearServerEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			resetFlags(t, tt.args...)

			cfg, err := parseFlags()
			require.NoError(t, err)
			assert.Equal(t, tt.expected, *cfg)
		})
	}
}

func TestValueOrEnv(t *testing.T) {
	t.Setenv("TEST_ENV_VAR", "from_env")
	assert.Equal(t, "flag", valueOrEnv("flag", "TEST_ENV_VAR", "default"))
	assert.Equal(t, "from_env", valueOrEnv("", "TEST_ENV_VAR", "default"))

	t.Setenv("TEST_ENV_VAR", "")
	assert.Equal(t, "default", valueOrEnv("", "TEST_ENV_VAR", "default"))
}
