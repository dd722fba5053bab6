// Package config собирает конфигурацию клиента из флагов, переменных окружения
// и значений по умолчанию (в порядке приоритета).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

const (
	// Значения по умолчанию.
	DefaultServerURL = "http://localhost:3000"
	DefaultLogDir    = "logs"

	// Переменные окружения.
	EnvServerURL = "APONTAMENTOS_SERVER_URL"
	EnvTimeout   = "APONTAMENTOS_TIMEOUT"
	EnvLogDir    = "APONTAMENTOS_LOG_DIR"

	// Имена флагов.
	flagServerURL = "server-url"
	flagTimeout   = "timeout"
	flagLogDir    = "log-dir"
	flagDebug     = "debug"
)

// Config хранит конфигурацию клиента.
type Config struct {
	ServerURL string
	// Timeout - таймаут HTTP-запросов; 0 означает настройки клиента по умолчанию.
	Timeout time.Duration
	LogDir  string
	Debug   bool
}

// RegisterFlags добавляет флаги клиента в набор.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.String(flagServerURL, "",
		fmt.Sprintf("URL сервиса apontamentos (env: %s, default: %s)", EnvServerURL, DefaultServerURL))
	fs.Duration(flagTimeout, 0,
		fmt.Sprintf("Таймаут HTTP-запросов, например 10s (env: %s)", EnvTimeout))
	fs.String(flagLogDir, "",
		fmt.Sprintf("Каталог лог-файлов (env: %s, default: %s)", EnvLogDir, DefaultLogDir))
	fs.Bool(flagDebug, false, "Включить режим отладки TUI")
}

// Load читает конфигурацию: флаг, если задан явно, иначе переменная окружения,
// иначе значение по умолчанию. Возвращает ошибку для невалидных значений.
func Load(fs *pflag.FlagSet) (*Config, error) {
	cfg := &Config{
		ServerURL: DefaultServerURL,
		LogDir:    DefaultLogDir,
	}

	if value, ok := os.LookupEnv(EnvServerURL); ok && value != "" {
		cfg.ServerURL = value
	}
	if value, ok := os.LookupEnv(EnvLogDir); ok && value != "" {
		cfg.LogDir = value
	}
	if value, ok := os.LookupEnv(EnvTimeout); ok && value != "" {
		d, err := time.ParseDuration(value)
		if err != nil {
			return nil, fmt.Errorf("valor inválido em %s: %w", EnvTimeout, err)
		}
		cfg.Timeout = d
	}

	if fs.Changed(flagServerURL) {
		value, err := fs.GetString(flagServerURL)
		if err != nil {
			return nil, err
		}
		cfg.ServerURL = value
	}
	if fs.Changed(flagLogDir) {
		value, err := fs.GetString(flagLogDir)
		if err != nil {
			return nil, err
		}
		cfg.LogDir = value
	}
	if fs.Changed(flagTimeout) {
		value, err := fs.GetDuration(flagTimeout)
		if err != nil {
			return nil, err
		}
		cfg.Timeout = value
	}
	if fs.Lookup(flagDebug) != nil {
		value, err := fs.GetBool(flagDebug)
		if err != nil {
			return nil, err
		}
		cfg.Debug = value
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет значения конфигурации.
func (c *Config) Validate() error {
	c.ServerURL = strings.TrimRight(strings.TrimSpace(c.ServerURL), "/")
	if c.ServerURL == "" {
		return errors.New("URL do servidor não informado (--server-url ou " + EnvServerURL + ")")
	}
	u, err := url.Parse(c.ServerURL)
	if err != nil {
		return fmt.Errorf("URL do servidor inválida %q: %w", c.ServerURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("URL do servidor inválida %q: esquema deve ser http ou https", c.ServerURL)
	}
	if u.Host == "" {
		return fmt.Errorf("URL do servidor inválida %q: host não informado", c.ServerURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("timeout negativo: %s", c.Timeout)
	}
	if c.LogDir == "" {
		c.LogDir = DefaultLogDir
	}
	return nil
}
