package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"
)

const (
	defaultServerPort = "3000"
	defaultDataFile   = "db.json"

	// Переменные окружения.
	envServerPort  = "SERVER_PORT"
	envDatabaseDSN = "DATABASE_DSN"
	envDataFile    = "DATA_FILE"
)

// config хранит конфигурацию сервера.
type config struct {
	Port string
	// DatabaseDSN включает хранилище PostgreSQL; без него записи хранятся в DataFile.
	DatabaseDSN string
	DataFile    string
}

// parseFlags разбирает флаги и переменные окружения, возвращает config или ошибку.
// Флаг имеет приоритет над переменной окружения.
func parseFlags() (*config, error) {
	cfg := &config{}

	flag.StringVar(&cfg.Port, "port", "",
		fmt.Sprintf("Порт HTTP-сервера (env: %s, default: %s)", envServerPort, defaultServerPort))
	flag.StringVar(&cfg.DatabaseDSN, "database-dsn", "",
		fmt.Sprintf("Строка подключения к PostgreSQL (env: %s)", envDatabaseDSN))
	flag.StringVar(&cfg.DataFile, "data-file", "",
		fmt.Sprintf("JSON-файл с записями, если БД не задана (env: %s, default: %s)", envDataFile, defaultDataFile))

	flag.Parse()

	cfg.Port = valueOrEnv(cfg.Port, envServerPort, defaultServerPort)
	cfg.DatabaseDSN = valueOrEnv(cfg.DatabaseDSN, envDatabaseDSN, "")
	cfg.DataFile = valueOrEnv(cfg.DataFile, envDataFile, defaultDataFile)

	if strings.TrimSpace(cfg.Port) == "" {
		return nil, errors.New("не указан порт (-port или " + envServerPort + ")")
	}
	if cfg.DatabaseDSN == "" && strings.TrimSpace(cfg.DataFile) == "" {
		return nil, errors.New("не указано хранилище (-database-dsn или -data-file)")
	}
	return cfg, nil
}

// valueOrEnv возвращает значение флага, иначе переменной окружения, иначе fallback.
func valueOrEnv(flagValue, env, fallback string) string {
	if flagValue != "" {
		return flagValue
	}
	if value, ok := os.LookupEnv(env); ok && value != "" {
		return value
	}
	return fallback
}
