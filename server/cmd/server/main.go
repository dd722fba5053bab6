package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/capacityx/apontamentos/server/internal/handlers"
	"github.com/capacityx/apontamentos/server/internal/logger"
	appmiddleware "github.com/capacityx/apontamentos/server/internal/middleware"
	"github.com/capacityx/apontamentos/server/internal/repository"
	"github.com/capacityx/apontamentos/server/internal/services"
)

const (
	defaultReadTimeout     = 10 * time.Second
	defaultWriteTimeout    = 10 * time.Second
	defaultIdleTimeout     = 30 * time.Second
	defaultShutdownTimeout = 5 * time.Second
)

// newPostgresDB подменяется в тестах.
//
//nolint:gochecknoglobals // Точка подмены для тестов
var newPostgresDB = repository.NewPostgresDB

// Структура для хранения инициализированных зависимостей.
type dependencies struct {
	db                 *sqlx.DB // nil, если используется файловое хранилище
	apontamentoHandler *handlers.ApontamentoHandler
}

// close освобождает ресурсы зависимостей.
func (d *dependencies) close(log *zap.SugaredLogger) {
	if d.db == nil {
		return
	}
	if err := d.db.Close(); err != nil {
		log.Warnw("Ошибка закрытия соединения с БД", "error", err)
	}
}

func main() {
	os.Exit(realMain())
}

// realMain инициализирует логгер и конфигурацию и возвращает код выхода.
func realMain() int {
	// .env необязателен
	_ = godotenv.Load()

	lg, err := logger.New(logger.ConfigFromEnv())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка инициализации логгера: %v\n", err)
		return 1
	}
	defer func() { _ = lg.Sync() }()
	log := lg.Sugar()

	cfg, err := parseFlags()
	if err != nil {
		log.Errorw("Ошибка конфигурации", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err = run(ctx, cfg, log); err != nil {
		log.Errorw("Ошибка выполнения сервера", "error", err)
		return 1
	}
	return 0
}

// run запускает сервер и блокируется до отмены ctx или ошибки сервера.
func run(ctx context.Context, cfg *config, log *zap.SugaredLogger) error {
	log.Info("Запуск сервера apontamentos...")

	deps, err := setupDependencies(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("ошибка инициализации зависимостей: %w", err)
	}
	defer deps.close(log)

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      setupRouter(deps.apontamentoHandler, log),
		ReadTimeout:  defaultReadTimeout,
		WriteTimeout: defaultWriteTimeout,
		IdleTimeout:  defaultIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Infow("HTTP-сервер запущен", "addr", server.Addr)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err = <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("ошибка запуска HTTP-сервера: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Получен сигнал завершения, останавливаем сервер...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), defaultShutdownTimeout)
	defer cancel()
	if err = server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("ошибка остановки сервера: %w", err)
	}
	log.Info("Сервер остановлен")
	return nil
}

// setupDependencies выбирает хранилище и собирает сервис и обработчики.
func setupDependencies(ctx context.Context, cfg *config, log *zap.SugaredLogger) (*dependencies, error) {
	deps := &dependencies{}

	var repo repository.ApontamentoRepository
	if cfg.DatabaseDSN != "" {
		db, err := newPostgresDB(ctx, cfg.DatabaseDSN, log)
		if err != nil {
			return nil, fmt.Errorf("ошибка инициализации БД: %w", err)
		}
		deps.db = db
		repo = repository.NewPostgresApontamentoRepository(db, log)
		log.Info("Используется хранилище PostgreSQL")
	} else {
		repo = repository.NewFileApontamentoRepository(cfg.DataFile, log)
		log.Infow("Используется файловое хранилище", "path", cfg.DataFile)
	}

	service := services.NewApontamentoService(repo, log)
	deps.apontamentoHandler = handlers.NewApontamentoHandler(service, log)
	return deps, nil
}

// setupRouter настраивает и возвращает роутер chi.
func setupRouter(h *handlers.ApontamentoHandler, log *zap.SugaredLogger) *chi.Mux {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(appmiddleware.RequestLogger(log))
	r.Use(middleware.Recoverer)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("pong\n"))
	})
	h.Routes(r)
	return r
}
