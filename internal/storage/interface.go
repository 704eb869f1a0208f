package storage

import (
	"context"

	"github.com/voidhawk/rconpanel/internal/model"
)

// Storage defines the interface for ban list persistence.
//
// Records are kept in insertion order and no uniqueness is enforced on the
// player id: saving two bans for the same id yields two records, and
// DeleteBan removes only the first of them.
type Storage interface {
	// SaveBan persists a new ban record
	SaveBan(ctx context.Context, ban *model.BannedPlayer) error

	// ListBans returns all ban records in insertion order
	ListBans(ctx context.Context) ([]*model.BannedPlayer, error)

	// DeleteBan removes the first record matching the given id.
	// Returns model.ErrBanNotFound if no record matches.
	DeleteBan(ctx context.Context, uniqueID string) error

	// IsBanned reports whether any record matches the given id
	IsBanned(ctx context.Context, uniqueID string) (bool, error)
}
