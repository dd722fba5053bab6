package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/capacityx/apontamentos/models"
)

const selectColumns = `id, id_usuario, id_categoria, id_cliente, id_item_projeto_categoria, data, horas,
	descricao, projeto, extra, data_de_exclusao, status_extra, resposta_extra, observacao, garantia`

// postgresApontamentoRepository реализует ApontamentoRepository для PostgreSQL.
type postgresApontamentoRepository struct {
	db  *sqlx.DB
	log *zap.SugaredLogger
}

// Убедимся, что postgresApontamentoRepository удовлетворяет интерфейсу.
var _ ApontamentoRepository = (*postgresApontamentoRepository)(nil)

// NewPostgresApontamentoRepository создает новый экземпляр репозитория записей.
func NewPostgresApontamentoRepository(db *sqlx.DB, log *zap.SugaredLogger) ApontamentoRepository {
	return &postgresApontamentoRepository{db: db, log: log}
}

func (r *postgresApontamentoRepository) List(ctx context.Context) ([]models.Apontamento, error) {
	query := `SELECT ` + selectColumns + ` FROM apontamentos ORDER BY id`
	recs := []models.Apontamento{}
	if err := r.db.SelectContext(ctx, &recs, query); err != nil {
		r.log.Errorw("[ApontamentoRepo] Ошибка при получении списка", "error", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение списка: %w", err)
	}
	r.log.Debugw("[ApontamentoRepo] Список получен", "count", len(recs))
	return recs, nil
}

func (r *postgresApontamentoRepository) GetByID(ctx context.Context, id int64) (*models.Apontamento, error) {
	query := `SELECT ` + selectColumns + ` FROM apontamentos WHERE id=$1`
	var rec models.Apontamento
	if err := r.db.GetContext(ctx, &rec, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		r.log.Errorw("[ApontamentoRepo] Ошибка при поиске записи", "id", id, "error", err)
		return nil, fmt.Errorf("ошибка выполнения запроса на получение записи: %w", err)
	}
	return &rec, nil
}

func (r *postgresApontamentoRepository) Create(ctx context.Context, a *models.Apontamento) (int64, error) {
	query := `INSERT INTO apontamentos (id_usuario, id_categoria, id_cliente, id_item_projeto_categoria, data, horas,
	descricao, projeto, extra, status_extra, resposta_extra, observacao, garantia)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13) RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		a.IDUsuario, a.IDCategoria, a.IDCliente, a.IDItemProjetoCategoria, a.Data, a.Horas,
		a.Descricao, a.Projeto, a.Extra, a.StatusExtra, a.RespostaExtra, a.Observacao, a.Garantia,
	).Scan(&id)
	if err != nil {
		r.log.Errorw("[ApontamentoRepo] Ошибка при создании записи", "error", err)
		return 0, fmt.Errorf("ошибка выполнения запроса на создание записи: %w", err)
	}
	r.log.Infow("[ApontamentoRepo] Запись создана", "id", id)
	return id, nil
}

func (r *postgresApontamentoRepository) Update(ctx context.Context, a *models.Apontamento) error {
	query := `UPDATE apontamentos SET id_usuario=$1, id_categoria=$2, id_cliente=$3, id_item_projeto_categoria=$4,
	data=$5, horas=$6, descricao=$7, projeto=$8, extra=$9, status_extra=$10, resposta_extra=$11,
	observacao=$12, garantia=$13 WHERE id=$14`
	res, err := r.db.ExecContext(ctx, query,
		a.IDUsuario, a.IDCategoria, a.IDCliente, a.IDItemProjetoCategoria, a.Data, a.Horas,
		a.Descricao, a.Projeto, a.Extra, a.StatusExtra, a.RespostaExtra, a.Observacao, a.Garantia, a.ID,
	)
	if err != nil {
		r.log.Errorw("[ApontamentoRepo] Ошибка при обновлении записи", "id", a.ID, "error", err)
		return fmt.Errorf("ошибка выполнения запроса на обновление записи: %w", err)
	}
	return r.expectOneRow(res, a.ID)
}

func (r *postgresApontamentoRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	query := `UPDATE apontamentos SET data_de_exclusao=$1 WHERE id=$2`
	res, err := r.db.ExecContext(ctx, query, at, id)
	if err != nil {
		r.log.Errorw("[ApontamentoRepo] Ошибка при удалении записи", "id", id, "error", err)
		return fmt.Errorf("ошибка выполнения запроса на удаление записи: %w", err)
	}
	if err = r.expectOneRow(res, id); err != nil {
		return err
	}
	r.log.Infow("[ApontamentoRepo] Запись помечена как удаленная", "id", id)
	return nil
}

// expectOneRow превращает нулевое число затронутых строк в ErrNotFound.
func (r *postgresApontamentoRepository) expectOneRow(res sql.Result, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("ошибка получения числа измененных строк: %w", err)
	}
	if n == 0 {
		r.log.Debugw("[ApontamentoRepo] Запись не найдена", "id", id)
		return ErrNotFound
	}
	return nil
}
