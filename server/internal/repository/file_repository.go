package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/gofrs/flock"
	"go.uber.org/zap"

	"github.com/capacityx/apontamentos/models"
)

const (
	lockRetryDelay = 50 * time.Millisecond
	dataFilePerm   = 0o644
)

// fileData повторяет формат db.json: коллекция под ключом "apontamento".
type fileData struct {
	Apontamento []models.Apontamento `json:"apontamento"`
}

// fileApontamentoRepository хранит записи в JSON-файле.
// Файл защищен flock, поэтому с ним могут работать несколько процессов.
type fileApontamentoRepository struct {
	path string
	lock *flock.Flock
	mu   sync.Mutex
	log  *zap.SugaredLogger
}

var _ ApontamentoRepository = (*fileApontamentoRepository)(nil)

// NewFileApontamentoRepository создает репозиторий поверх файла path.
// Отсутствующий файл считается пустой коллекцией и создается при первой записи.
func NewFileApontamentoRepository(path string, log *zap.SugaredLogger) ApontamentoRepository {
	return &fileApontamentoRepository{
		path: path,
		lock: flock.New(path + ".lock"),
		log:  log,
	}
}

func (r *fileApontamentoRepository) List(ctx context.Context) ([]models.Apontamento, error) {
	var recs []models.Apontamento
	err := r.read(ctx, func(d *fileData) error {
		recs = append([]models.Apontamento{}, d.Apontamento...)
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.log.Debugw("[FileRepo] Список получен", "count", len(recs))
	return recs, nil
}

func (r *fileApontamentoRepository) GetByID(ctx context.Context, id int64) (*models.Apontamento, error) {
	var rec *models.Apontamento
	err := r.read(ctx, func(d *fileData) error {
		i := d.indexOf(id)
		if i < 0 {
			return ErrNotFound
		}
		found := d.Apontamento[i]
		rec = &found
		return nil
	})
	return rec, err
}

func (r *fileApontamentoRepository) Create(ctx context.Context, a *models.Apontamento) (int64, error) {
	var id int64
	err := r.write(ctx, func(d *fileData) error {
		id = d.nextID()
		rec := *a
		rec.ID = id
		rec.DataDeExclusao = nil
		d.Apontamento = append(d.Apontamento, rec)
		return nil
	})
	if err != nil {
		return 0, err
	}
	r.log.Infow("[FileRepo] Запись создана", "id", id)
	return id, nil
}

func (r *fileApontamentoRepository) Update(ctx context.Context, a *models.Apontamento) error {
	return r.write(ctx, func(d *fileData) error {
		i := d.indexOf(a.ID)
		if i < 0 {
			return ErrNotFound
		}
		rec := *a
		rec.DataDeExclusao = d.Apontamento[i].DataDeExclusao
		d.Apontamento[i] = rec
		return nil
	})
}

func (r *fileApontamentoRepository) SoftDelete(ctx context.Context, id int64, at time.Time) error {
	err := r.write(ctx, func(d *fileData) error {
		i := d.indexOf(id)
		if i < 0 {
			return ErrNotFound
		}
		stamp := at
		d.Apontamento[i].DataDeExclusao = &stamp
		return nil
	})
	if err != nil {
		return err
	}
	r.log.Infow("[FileRepo] Запись помечена как удаленная", "id", id)
	return nil
}

// read выполняет fn над содержимым файла под разделяемой блокировкой.
func (r *fileApontamentoRepository) read(ctx context.Context, fn func(*fileData) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	locked, err := r.lock.TryRLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return fmt.Errorf("не удалось заблокировать файл данных: %w", lockErr(ctx, err))
	}
	defer r.unlock()

	d, err := r.load()
	if err != nil {
		return err
	}
	return fn(d)
}

// write выполняет fn под эксклюзивной блокировкой и сохраняет результат, если fn не вернул ошибку.
func (r *fileApontamentoRepository) write(ctx context.Context, fn func(*fileData) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	locked, err := r.lock.TryLockContext(ctx, lockRetryDelay)
	if err != nil || !locked {
		return fmt.Errorf("не удалось заблокировать файл данных: %w", lockErr(ctx, err))
	}
	defer r.unlock()

	d, err := r.load()
	if err != nil {
		return err
	}
	if err = fn(d); err != nil {
		return err
	}
	return r.save(d)
}

func (r *fileApontamentoRepository) unlock() {
	if err := r.lock.Unlock(); err != nil {
		r.log.Warnw("[FileRepo] Ошибка снятия блокировки", "path", r.path, "error", err)
	}
}

func (r *fileApontamentoRepository) load() (*fileData, error) {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, os.ErrNotExist) {
		return &fileData{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения файла данных: %w", err)
	}
	d := &fileData{}
	if len(raw) == 0 {
		return d, nil
	}
	if err = json.Unmarshal(raw, d); err != nil {
		return nil, fmt.Errorf("ошибка разбора файла данных %s: %w", r.path, err)
	}
	return d, nil
}

// save пишет во временный файл и переименовывает его, чтобы читатели не видели частичную запись.
func (r *fileApontamentoRepository) save(d *fileData) error {
	if d.Apontamento == nil {
		d.Apontamento = []models.Apontamento{}
	}
	raw, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("ошибка сериализации данных: %w", err)
	}
	tmp := filepath.Join(filepath.Dir(r.path), "."+filepath.Base(r.path)+".tmp")
	if err = os.WriteFile(tmp, raw, dataFilePerm); err != nil {
		return fmt.Errorf("ошибка записи файла данных: %w", err)
	}
	if err = os.Rename(tmp, r.path); err != nil {
		return fmt.Errorf("ошибка замены файла данных: %w", err)
	}
	return nil
}

func (d *fileData) indexOf(id int64) int {
	for i := range d.Apontamento {
		if d.Apontamento[i].ID == id {
			return i
		}
	}
	return -1
}

func (d *fileData) nextID() int64 {
	var maxID int64
	for _, a := range d.Apontamento {
		if a.ID > maxID {
			maxID = a.ID
		}
	}
	return maxID + 1
}

// lockErr возвращает причину неудачной блокировки.
func lockErr(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return errors.New("блокировка не получена")
}
