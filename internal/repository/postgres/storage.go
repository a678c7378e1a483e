package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"taskboard/internal/config"
	"taskboard/internal/logger"
	"taskboard/internal/models/category"
	"taskboard/internal/models/task"
	repo "taskboard/internal/repository"
	"taskboard/internal/seed"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

//go:embed migrations/*.sql
var migrations embed.FS

const slowQuery = 100 * time.Millisecond

const taskColumns = `id, title, description, category_id, priority, completed, completed_at, created_at, sort_order, due_date`

const categoryColumns = `id, name, color, icon`

type Storage struct {
	pool    *pgxpool.Pool
	connURL string
}

func New(ctx context.Context, cfg config.DatabaseConfig) (*Storage, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	if cfg.MaxConnections > 0 {
		poolConfig.MaxConns = cfg.MaxConnections
	}
	if cfg.MinConnections > 0 {
		poolConfig.MinConns = cfg.MinConnections
	}
	if cfg.IdleTimeout > 0 {
		poolConfig.MaxConnIdleTime = cfg.IdleTimeout
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool, connURL: cfg.URL}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	if err := s.pool.Ping(ctx); err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	return nil
}

// Migrate применяет встроенные миграции через golang-migrate
func (s *Storage) Migrate() error {
	logger.Info("Repository: Применение миграций")

	src, err := iofs.New(migrations, "migrations")
	if err != nil {
		return fmt.Errorf("источник миграций: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, migrateURL(s.connURL))
	if err != nil {
		return fmt.Errorf("инициализация миграций: %w", err)
	}
	defer func() {
		srcErr, dbErr := m.Close()
		if srcErr != nil || dbErr != nil {
			logger.Warn("Repository: Ошибка закрытия мигратора", zap.NamedError("source", srcErr), zap.NamedError("database", dbErr))
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		logger.Error("Repository: Ошибка применения миграций", err)
		return fmt.Errorf("применение миграций: %w", err)
	}

	logger.Info("Repository: Миграции применены")
	return nil
}

// драйвер pgx/v5 в golang-migrate регистрируется под схемой pgx5
func migrateURL(connURL string) string {
	for _, prefix := range []string{"postgres://", "postgresql://"} {
		if strings.HasPrefix(connURL, prefix) {
			return "pgx5://" + strings.TrimPrefix(connURL, prefix)
		}
	}
	return connURL
}

// Seed заполняет пустые таблицы начальными данными
func (s *Storage) Seed(ctx context.Context, ds seed.Dataset) error {
	var total int
	err := s.pool.QueryRow(ctx, `SELECT (SELECT COUNT(*) FROM categories) + (SELECT COUNT(*) FROM tasks)`).Scan(&total)
	if err != nil {
		return fmt.Errorf("проверка наполненности: %w", err)
	}
	if total > 0 {
		logger.Info("Repository: Таблицы уже заполнены, начальные данные пропущены")
		return nil
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"categories"},
			[]string{"id", "name", "color", "icon"},
			pgx.CopyFromSlice(len(ds.Categories), func(i int) ([]any, error) {
				c := ds.Categories[i]
				return []any{c.ID, c.Name, c.Color, c.Icon}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("копирование категорий: %w", err)
		}

		_, err = tx.CopyFrom(ctx,
			pgx.Identifier{"tasks"},
			[]string{"id", "title", "description", "category_id", "priority", "completed", "completed_at", "created_at", "sort_order", "due_date"},
			pgx.CopyFromSlice(len(ds.Tasks), func(i int) ([]any, error) {
				t := ds.Tasks[i]
				return []any{t.ID, t.Title, t.Description, t.CategoryID, string(t.Priority), t.Completed, t.CompletedAt, t.CreatedAt, t.Order, t.DueDate}, nil
			}),
		)
		if err != nil {
			return fmt.Errorf("копирование задач: %w", err)
		}

		logger.Info("Repository: Начальные данные загружены",
			zap.Int("categories", len(ds.Categories)),
			zap.Int("tasks", len(ds.Tasks)))
		return nil
	})
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(row scanner) (task.Task, error) {
	var (
		t        task.Task
		priority string
	)
	err := row.Scan(
		&t.ID,
		&t.Title,
		&t.Description,
		&t.CategoryID,
		&priority,
		&t.Completed,
		&t.CompletedAt,
		&t.CreatedAt,
		&t.Order,
		&t.DueDate,
	)
	t.Priority = task.Priority(priority)
	return t, err
}

func scanCategory(row scanner) (category.Category, error) {
	var c category.Category
	err := row.Scan(&c.ID, &c.Name, &c.Color, &c.Icon)
	return c, err
}

func logSlow(operation string, start time.Time) {
	if time.Since(start) > slowQuery {
		logger.Warn("Repository: Медленный запрос",
			zap.String("operation", operation),
			zap.Duration("ms", time.Since(start)))
	}
}

// Tasks

func (s *Storage) ListTasks(ctx context.Context) ([]task.Task, error) {
	start := time.Now()
	defer logSlow("list_tasks", start)

	rows, err := s.pool.Query(ctx, `SELECT `+taskColumns+` FROM tasks ORDER BY id`)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return tasks, nil
}

func (s *Storage) GetTask(ctx context.Context, id int64) (task.Task, error) {
	start := time.Now()
	defer logSlow("get_task", start)

	t, err := scanTask(s.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return task.Task{}, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err)
		return task.Task{}, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *Storage) CreateTask(ctx context.Context, taskToCreate task.Task) (task.Task, error) {
	start := time.Now()
	defer logSlow("create_task", start)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		// Id = max + 1, таблица блокируется до конца транзакции
		if _, err := tx.Exec(ctx, `LOCK TABLE tasks IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("блокировка таблицы: %w", err)
		}
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM tasks`).Scan(&taskToCreate.ID); err != nil {
			return fmt.Errorf("вычисление id: %w", err)
		}

		_, err := tx.Exec(ctx, `INSERT INTO tasks (`+taskColumns+`)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			taskToCreate.ID,
			taskToCreate.Title,
			taskToCreate.Description,
			taskToCreate.CategoryID,
			string(taskToCreate.Priority),
			taskToCreate.Completed,
			taskToCreate.CompletedAt,
			taskToCreate.CreatedAt,
			taskToCreate.Order,
			taskToCreate.DueDate,
		)
		return err
	})
	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return task.Task{}, fmt.Errorf("добавление задачи: %w", err)
	}

	return taskToCreate, nil
}

func (s *Storage) UpdateTask(ctx context.Context, id int64, apply func(*task.Task) error) (task.Task, error) {
	start := time.Now()
	defer logSlow("update_task", start)

	var updated task.Task
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := scanTask(tx.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repo.ErrNotFound
			}
			return fmt.Errorf("получение задачи: %w", err)
		}

		if err := apply(&current); err != nil {
			return err
		}
		current.ID = id

		_, err = tx.Exec(ctx, `UPDATE tasks
				SET title = $1,
					description = $2,
					category_id = $3,
					priority = $4,
					completed = $5,
					completed_at = $6,
					sort_order = $7,
					due_date = $8
				WHERE id = $9`,
			current.Title,
			current.Description,
			current.CategoryID,
			string(current.Priority),
			current.Completed,
			current.CompletedAt,
			current.Order,
			current.DueDate,
			id,
		)
		if err != nil {
			return fmt.Errorf("обновление задачи: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		if !errors.Is(err, repo.ErrNotFound) {
			logger.Error("Repository: Не удалось обновить задачу", err)
		}
		return task.Task{}, err
	}
	return updated, nil
}

func (s *Storage) DeleteTask(ctx context.Context, id int64) error {
	start := time.Now()
	defer logSlow("delete_task", start)

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err)
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// Categories

func (s *Storage) ListCategories(ctx context.Context) ([]category.Category, error) {
	start := time.Now()
	defer logSlow("list_categories", start)

	rows, err := s.pool.Query(ctx, `SELECT `+categoryColumns+` FROM categories ORDER BY id`)
	if err != nil {
		logger.Error("Repository: Не удалось получить категории", err)
		return nil, fmt.Errorf("получение категорий: %w", err)
	}
	defer rows.Close()

	categories := []category.Category{}
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование категории: %w", err)
		}
		categories = append(categories, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return categories, nil
}

func (s *Storage) GetCategory(ctx context.Context, id int64) (category.Category, error) {
	c, err := scanCategory(s.pool.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return category.Category{}, repo.ErrNotFound
		}
		return category.Category{}, fmt.Errorf("получение категории: %w", err)
	}
	return c, nil
}

func (s *Storage) CreateCategory(ctx context.Context, categoryToCreate category.Category) (category.Category, error) {
	start := time.Now()
	defer logSlow("create_category", start)

	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `LOCK TABLE categories IN SHARE ROW EXCLUSIVE MODE`); err != nil {
			return fmt.Errorf("блокировка таблицы: %w", err)
		}
		if err := tx.QueryRow(ctx, `SELECT COALESCE(MAX(id), 0) + 1 FROM categories`).Scan(&categoryToCreate.ID); err != nil {
			return fmt.Errorf("вычисление id: %w", err)
		}
		_, err := tx.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4)`,
			categoryToCreate.ID, categoryToCreate.Name, categoryToCreate.Color, categoryToCreate.Icon)
		return err
	})
	if err != nil {
		logger.Error("Repository: Не удалось добавить категорию", err)
		return category.Category{}, fmt.Errorf("добавление категории: %w", err)
	}
	return categoryToCreate, nil
}

func (s *Storage) UpdateCategory(ctx context.Context, id int64, apply func(*category.Category) error) (category.Category, error) {
	var updated category.Category
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := scanCategory(tx.QueryRow(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repo.ErrNotFound
			}
			return fmt.Errorf("получение категории: %w", err)
		}

		if err := apply(&current); err != nil {
			return err
		}
		current.ID = id

		_, err = tx.Exec(ctx, `UPDATE categories SET name = $1, color = $2, icon = $3 WHERE id = $4`,
			current.Name, current.Color, current.Icon, id)
		if err != nil {
			return fmt.Errorf("обновление категории: %w", err)
		}
		updated = current
		return nil
	})
	if err != nil {
		return category.Category{}, err
	}
	return updated, nil
}

func (s *Storage) DeleteCategory(ctx context.Context, id int64) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		var exists bool
		err := tx.QueryRow(ctx, `SELECT TRUE FROM categories WHERE id = $1 FOR UPDATE`, id).Scan(&exists)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return repo.ErrNotFound
			}
			return fmt.Errorf("получение категории: %w", err)
		}

		var referenced bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM tasks WHERE category_id = $1)`, id).Scan(&referenced); err != nil {
			return fmt.Errorf("проверка ссылок: %w", err)
		}
		if referenced {
			return repo.ErrHasTasks
		}

		if _, err := tx.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id); err != nil {
			return fmt.Errorf("удаление категории: %w", err)
		}
		return nil
	})
}

func (s *Storage) ActiveTaskCounts(ctx context.Context) (map[int64]int, error) {
	rows, err := s.pool.Query(ctx, `SELECT category_id, COUNT(*)
			FROM tasks
			WHERE category_id IS NOT NULL AND NOT completed
			GROUP BY category_id`)
	if err != nil {
		return nil, fmt.Errorf("подсчёт задач: %w", err)
	}
	defer rows.Close()

	counts := make(map[int64]int)
	for rows.Next() {
		var (
			id    int64
			count int
		)
		if err := rows.Scan(&id, &count); err != nil {
			return nil, fmt.Errorf("сканирование счётчика: %w", err)
		}
		counts[id] = count
	}
	return counts, rows.Err()
}
