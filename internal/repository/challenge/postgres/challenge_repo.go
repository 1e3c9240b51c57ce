package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"challengeTracker/internal/logger"
	chal "challengeTracker/internal/models/challenge"
	repo "challengeTracker/internal/repository"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

type Storage struct {
	pool *pgxpool.Pool
}

func New(ctx context.Context, connString string) (*Storage, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		logger.Error("Repository: Ошибка загрузки конфига", err)
		return nil, fmt.Errorf("загрузка конфига: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnIdleTime = time.Minute * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		logger.Error("Repository: Ошибка создания пула", err)
		return nil, fmt.Errorf("создание пула: %w", err)
	}

	err = pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return nil, fmt.Errorf("проверка соединения ping: %w", err)
	}

	logger.Info("Repository: Успешное создание подключения к PostgreSQL")
	return &Storage{pool: pool}, nil
}

func (s *Storage) Close() {
	s.pool.Close()
	logger.Info("Repository: Закрытие всех соединений PostgreSQL")
}

func (s *Storage) HealthCheck(ctx context.Context) error {
	err := s.pool.Ping(ctx)
	if err != nil {
		logger.Error("Repository: Неудачная проверка ping", err)
		return fmt.Errorf("проверка соединения ping: %w", err)
	}
	logger.Info("Repository: Соединение стабильно")
	return nil
}

func (s *Storage) Create(ctx context.Context, toCreate *chal.Challenge) error {
	start := time.Now()

	notes, err := marshalNotes(toCreate.Notes)
	if err != nil {
		return err
	}

	query := `INSERT INTO challenges
				(id, title, start_date, duration_days, status, is_archived, notes, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, NOW())`

	_, err = s.pool.Exec(ctx, query,
		toCreate.ID,
		toCreate.Title,
		toCreate.StartDate,
		toCreate.DurationDays,
		toCreate.Status,
		toCreate.IsArchived,
		notes,
	)

	if err != nil {
		logger.Error("Repository: Не удалось добавить челлендж", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление челленджа: %w", err)
	}

	if time.Since(start) > time.Millisecond*50 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) Update(ctx context.Context, toUpdate *chal.Challenge) error {
	start := time.Now()

	notes, err := marshalNotes(toUpdate.Notes)
	if err != nil {
		return err
	}

	query := `UPDATE challenges
			SET title = $1,
				start_date = $2,
				duration_days = $3,
				status = $4,
				is_archived = $5,
				notes = $6
			WHERE id = $7
			RETURNING id`

	var returned uuid.UUID
	err = s.pool.QueryRow(ctx, query,
		toUpdate.Title,
		toUpdate.StartDate,
		toUpdate.DurationDays,
		toUpdate.Status,
		toUpdate.IsArchived,
		notes,
		toUpdate.ID,
	).Scan(&returned)

	if err != nil {
		if err == pgx.ErrNoRows {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось обновить челлендж", err)
		return fmt.Errorf("обновление челленджа: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}
	return nil
}

func (s *Storage) GetByID(ctx context.Context, id uuid.UUID) (*chal.Challenge, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				start_date,
				duration_days,
				status,
				is_archived,
				notes
				FROM challenges
				WHERE id = $1`

	c, err := scanChallenge(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить челлендж", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение челленджа: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return c, nil
}

func (s *Storage) GetAll(ctx context.Context) ([]*chal.Challenge, error) {
	start := time.Now()

	query := `SELECT
				id,
				title,
				start_date,
				duration_days,
				status,
				is_archived,
				notes
				FROM challenges
				ORDER BY created_at`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить челленджи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение челленджей: %w", err)
	}

	defer rows.Close()

	challenges := []*chal.Challenge{}

	for rows.Next() {
		c, err := scanChallenge(rows)
		if err != nil {
			logger.Warn("Repository: Ошибка сканирования челленджа", zap.Error(err))
			continue
		}
		challenges = append(challenges, c)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленный запрос", zap.Duration("ms", time.Since(start)))
	}

	return challenges, nil
}

func (s *Storage) Delete(ctx context.Context, id uuid.UUID) error {
	start := time.Now()

	query := `DELETE FROM challenges
				WHERE id = $1
				RETURNING id`

	var returned uuid.UUID
	err := s.pool.QueryRow(ctx, query, id).Scan(&returned)

	if err != nil {
		if err == pgx.ErrNoRows {
			return repo.ErrNotFound
		}
		logger.Error("Repository: Удаление челленджа", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("удаление челленджа: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}

	return nil
}

// ReplaceAll выполняет массовое обновление одной транзакцией.
// Вызывается фоновой сверкой статусов.
func (s *Storage) ReplaceAll(ctx context.Context, challenges []*chal.Challenge) error {
	start := time.Now()

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		logger.Error("Repository: Не удалось открыть транзакцию", err)
		return fmt.Errorf("открытие транзакции: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `UPDATE challenges
			SET title = $1,
				start_date = $2,
				duration_days = $3,
				status = $4,
				is_archived = $5,
				notes = $6
			WHERE id = $7`

	for _, c := range challenges {
		notes, err := marshalNotes(c.Notes)
		if err != nil {
			return err
		}

		_, err = tx.Exec(ctx, query,
			c.Title,
			c.StartDate,
			c.DurationDays,
			c.Status,
			c.IsArchived,
			notes,
			c.ID,
		)
		if err != nil {
			logger.Error("Repository: Ошибка массового обновления", err, zap.String("challenge_id", c.ID.String()))
			return fmt.Errorf("массовое обновление: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		logger.Error("Repository: Не удалось закоммитить транзакцию", err)
		return fmt.Errorf("коммит транзакции: %w", err)
	}

	if time.Since(start) > time.Millisecond*100 {
		logger.Warn("Repository: Медленная операция", zap.Duration("ms", time.Since(start)))
	}

	return nil
}

func marshalNotes(notes []chal.Note) ([]byte, error) {
	if notes == nil {
		notes = []chal.Note{}
	}
	raw, err := json.Marshal(notes)
	if err != nil {
		return nil, fmt.Errorf("сериализация заметок: %w", err)
	}
	return raw, nil
}

func scanChallenge(row pgx.Row) (*chal.Challenge, error) {
	c := &chal.Challenge{}
	var notes []byte

	err := row.Scan(
		&c.ID,
		&c.Title,
		&c.StartDate,
		&c.DurationDays,
		&c.Status,
		&c.IsArchived,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(notes, &c.Notes); err != nil {
		return nil, fmt.Errorf("разбор заметок: %w", err)
	}
	return c, nil
}

func (s *Storage) Migrate(ctx context.Context) error {
	logger.Info("Попытка миграций")

	initUp, err := os.ReadFile("internal/migrations/001_init.up.sql")
	if err != nil {
		logger.Error("failed to read 001_init.up.sql", err)
		return err
	}

	indexesUp, err := os.ReadFile("internal/migrations/002_indexes.up.sql")
	if err != nil {
		logger.Error("failed to read 002_indexes.up.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initUp))
	if err != nil {
		logger.Error("failed to apply 001_init", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(indexesUp))
	if err != nil {
		logger.Error("failed to apply 002_indexes", err)
		return err
	}

	logger.Info("Миграции применены")
	return nil
}

func (s *Storage) Down(ctx context.Context) error {
	logger.Info("Откат миграций")

	indexesDown, err := os.ReadFile("internal/migrations/002_indexes.down.sql")
	if err != nil {
		logger.Error("failed to read 002_indexes.down.sql", err)
		return err
	}

	initDown, err := os.ReadFile("internal/migrations/001_init.down.sql")
	if err != nil {
		logger.Error("failed to read 001_init.down.sql", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(indexesDown))
	if err != nil {
		logger.Error("failed to rollback 002_indexes", err)
		return err
	}

	_, err = s.pool.Exec(ctx, string(initDown))
	if err != nil {
		logger.Error("failed to rollback 001_init", err)
		return err
	}

	logger.Info("Откат миграций выполнен")
	return nil
}
