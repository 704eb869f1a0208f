package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/storage"
)

// Storage is a Postgres-backed implementation of the storage interface
type Storage struct {
	pool *pgxpool.Pool
}

// New connects to PostgreSQL and returns a storage handle.
// Run RunMigrations before first use.
func New(ctx context.Context, dsn string) (*Storage, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return &Storage{pool: pool}, nil
}

// NewWithPool creates a storage with an existing pool (for testing)
func NewWithPool(pool *pgxpool.Pool) *Storage {
	return &Storage{pool: pool}
}

// Close closes the connection pool
func (s *Storage) Close() {
	s.pool.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBan(ctx context.Context, ban *model.BannedPlayer) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO bans (unique_id, name, banned_at) VALUES ($1, $2, $3)`,
		ban.UniqueID, ban.Name, ban.BannedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ban for %q: %w", ban.UniqueID, err)
	}
	return nil
}

func (s *Storage) ListBans(ctx context.Context) ([]*model.BannedPlayer, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT unique_id, name, banned_at FROM bans ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying bans: %w", err)
	}
	defer rows.Close()

	var bans []*model.BannedPlayer
	for rows.Next() {
		var ban model.BannedPlayer
		if err := rows.Scan(&ban.UniqueID, &ban.Name, &ban.BannedAt); err != nil {
			return nil, fmt.Errorf("scanning ban row: %w", err)
		}
		bans = append(bans, &ban)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ban rows: %w", err)
	}
	return bans, nil
}

func (s *Storage) DeleteBan(ctx context.Context, uniqueID string) error {
	tag, err := s.pool.Exec(ctx,
		`DELETE FROM bans WHERE id = (
			SELECT id FROM bans WHERE unique_id = $1 ORDER BY id LIMIT 1
		)`, uniqueID,
	)
	if err != nil {
		return fmt.Errorf("deleting ban for %q: %w", uniqueID, err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrBanNotFound
	}
	return nil
}

func (s *Storage) IsBanned(ctx context.Context, uniqueID string) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM bans WHERE unique_id = $1)`, uniqueID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking ban for %q: %w", uniqueID, err)
	}
	return exists, nil
}
