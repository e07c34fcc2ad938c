package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gift-suggest-core/internal/domain/entity"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresConfig holds connection pool settings.
type PostgresConfig struct {
	URL             string
	MaxConnections  int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// NewPostgresPool creates and pings a connection pool.
func NewPostgresPool(ctx context.Context, cfg PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConnections
	if poolConfig.MaxConns == 0 {
		poolConfig.MaxConns = 10
	}
	poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	if poolConfig.MaxConnLifetime == 0 {
		poolConfig.MaxConnLifetime = time.Hour
	}
	poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	if poolConfig.MaxConnIdleTime == 0 {
		poolConfig.MaxConnIdleTime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return pool, nil
}

// PostgresPeople reads people and gifts. Every query is scoped to the
// calling user so foreign records look exactly like missing ones.
type PostgresPeople struct {
	pool *pgxpool.Pool
}

func NewPostgresPeople(pool *pgxpool.Pool) *PostgresPeople {
	return &PostgresPeople{pool: pool}
}

func (s *PostgresPeople) GetPerson(ctx context.Context, userID, personID string) (*entity.PersonContext, error) {
	query := `SELECT id::text, name, birthday::text, notes
		FROM people
		WHERE id = $1 AND user_id = $2`

	var p entity.PersonContext
	err := s.pool.QueryRow(ctx, query, personID, userID).Scan(&p.ID, &p.Name, &p.Birthday, &p.Notes)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, entity.ErrNotFound
		}
		return nil, fmt.Errorf("query person: %w", err)
	}
	return &p, nil
}

func (s *PostgresPeople) RecentGifts(ctx context.Context, userID, personID string, limit int) ([]entity.GiftHistoryItem, error) {
	query := `SELECT title, status
		FROM gifts
		WHERE person_id = $1 AND user_id = $2
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := s.pool.Query(ctx, query, personID, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("query gifts: %w", err)
	}

	items, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (entity.GiftHistoryItem, error) {
		var g entity.GiftHistoryItem
		err := row.Scan(&g.Title, &g.Status)
		return g, err
	})
	if err != nil {
		return nil, fmt.Errorf("scan gifts: %w", err)
	}
	return items, nil
}
