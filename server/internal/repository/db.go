package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq" // Драйвер PostgreSQL, импортируем для регистрации
	"go.uber.org/zap"
)

const (
	maxOpenConns    = 25              // Максимальное количество открытых соединений
	maxIdleConns    = 25              // Максимальное количество простаивающих соединений
	connMaxLifetime = 5 * time.Minute // Максимальное время жизни соединения
	connMaxIdleTime = 5 * time.Minute // Максимальное время простоя соединения
)

// schema создает таблицу записей при первом запуске.
const schema = `CREATE TABLE IF NOT EXISTS apontamentos (
	id BIGSERIAL PRIMARY KEY,
	id_usuario TEXT NOT NULL,
	id_categoria TEXT NOT NULL DEFAULT '',
	id_cliente TEXT NOT NULL DEFAULT '',
	id_item_projeto_categoria TEXT NOT NULL DEFAULT '',
	data TIMESTAMPTZ NOT NULL,
	horas TEXT NOT NULL,
	descricao TEXT NOT NULL,
	projeto TEXT NOT NULL,
	extra TEXT NOT NULL DEFAULT '',
	data_de_exclusao TIMESTAMPTZ NULL,
	status_extra TEXT NOT NULL DEFAULT '',
	resposta_extra TEXT NOT NULL DEFAULT '',
	observacao TEXT NOT NULL DEFAULT '',
	garantia BOOLEAN NOT NULL DEFAULT FALSE
)`

// NewPostgresDB создает и возвращает новое подключение к PostgreSQL.
func NewPostgresDB(ctx context.Context, dsn string, log *zap.SugaredLogger) (*sqlx.DB, error) {
	log.Info("Подключение к PostgreSQL...")

	db, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("ошибка подключения к БД: %w", err)
	}

	// Настройка пула соединений
	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	db.SetConnMaxIdleTime(connMaxIdleTime)

	if err = Migrate(ctx, db); err != nil {
		if closeErr := db.Close(); closeErr != nil {
			log.Warnw("Ошибка закрытия соединения с БД после неудачной миграции", "error", closeErr)
		}
		return nil, err
	}

	log.Info("Подключение к PostgreSQL успешно установлено.")
	return db, nil
}

// Migrate создает схему, если ее еще нет.
func Migrate(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ошибка создания схемы БД: %w", err)
	}
	return nil
}
