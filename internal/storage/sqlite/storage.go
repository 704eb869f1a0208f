package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/storage"
)

// schema is applied once at open. The surrogate id keeps insertion order
// and lets duplicate bans for the same player id coexist.
const schema = `
CREATE TABLE IF NOT EXISTS bans (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	unique_id TEXT NOT NULL,
	name TEXT NOT NULL,
	banned_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_bans_unique_id ON bans(unique_id);
`

// Storage is a SQLite-backed implementation of the storage interface.
// It needs no external service, which suits a panel embedded in a game
// server process.
type Storage struct {
	db *sql.DB
}

// New opens (or creates) the database file at path and applies the schema
func New(path string) (*Storage, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite database: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	return s.db.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBan(ctx context.Context, ban *model.BannedPlayer) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO bans (unique_id, name, banned_at) VALUES (?, ?, ?)`,
		ban.UniqueID, ban.Name, ban.BannedAt,
	)
	if err != nil {
		return fmt.Errorf("inserting ban for %q: %w", ban.UniqueID, err)
	}
	return nil
}

func (s *Storage) ListBans(ctx context.Context) ([]*model.BannedPlayer, error) {
	rows, err := s.db.QueryContext(ctx,
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
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM bans WHERE id = (
			SELECT id FROM bans WHERE unique_id = ? ORDER BY id LIMIT 1
		)`, uniqueID,
	)
	if err != nil {
		return fmt.Errorf("deleting ban for %q: %w", uniqueID, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("deleting ban for %q: %w", uniqueID, err)
	}
	if affected == 0 {
		return model.ErrBanNotFound
	}
	return nil
}

func (s *Storage) IsBanned(ctx context.Context, uniqueID string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM bans WHERE unique_id = ?)`, uniqueID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("checking ban for %q: %w", uniqueID, err)
	}
	return exists, nil
}
