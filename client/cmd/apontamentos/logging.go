package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
)

const (
	logFileName     = "client.log"
	logRotationTime = 24 * time.Hour
	logMaxAge       = 7 * 24 * time.Hour
	logDirPerm      = 0o755
)

// setupLogging направляет slog в ротируемый файл внутри dir.
// Терминал занят TUI, поэтому в stdout ничего не пишется.
func setupLogging(dir string) (func(), error) {
	if err := os.MkdirAll(dir, logDirPerm); err != nil {
		return nil, fmt.Errorf("не удалось создать директорию для логов: %w", err)
	}
	logPath := filepath.Join(dir, logFileName)

	writer, err := rotatelogs.New(
		logPath+".%Y%m%d",
		rotatelogs.WithLinkName(logPath),
		rotatelogs.WithRotationTime(logRotationTime),
		rotatelogs.WithMaxAge(logMaxAge),
	)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть лог-файл: %w", err)
	}

	logHandler := slog.NewTextHandler(writer, &slog.HandlerOptions{Level: slog.LevelDebug})
	slog.SetDefault(slog.New(logHandler))
	slog.Info("Логгер инициализирован", "path", logPath)

	return func() {
		if closeErr := writer.Close(); closeErr != nil {
			fmt.Fprintf(os.Stderr, "Ошибка закрытия лог-файла: %v\n", closeErr)
		}
	}, nil
}
