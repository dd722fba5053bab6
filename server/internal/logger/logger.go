// Package logger создает zap-логгер сервера.
package logger

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	envLogDev   = "LOG_DEV"
	envLogLevel = "LOG_LEVEL"
)

// Config задает уровень логирования и формат вывода.
type Config struct {
	Level string
	// Dev включает человекочитаемый формат zap для разработки.
	Dev bool
}

// ConfigFromEnv читает конфигурацию из LOG_DEV и LOG_LEVEL.
func ConfigFromEnv() Config {
	dev := os.Getenv(envLogDev) == "1"
	lvl := os.Getenv(envLogLevel)
	if lvl == "" {
		if dev {
			lvl = "debug"
		} else {
			lvl = "info"
		}
	}
	return Config{Level: lvl, Dev: dev}
}

func levelFromString(l string) zapcore.Level {
	switch strings.ToLower(l) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}

// New создает логгер: JSON в stdout для продакшена или development-конфигурацию zap.
func New(cfg Config) (*zap.Logger, error) {
	lvl := levelFromString(cfg.Level)
	if cfg.Dev {
		c := zap.NewDevelopmentConfig()
		c.Level = zap.NewAtomicLevelAt(lvl)
		return c.Build()
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.Lock(os.Stdout), lvl)
	return zap.New(core, zap.AddCaller(), zap.AddStacktrace(zapcore.ErrorLevel)), nil
}
