package memory

import (
	"context"
	"sync"

	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/storage"
)

// Storage is an in-memory implementation of the storage interface.
// Bans do not survive a restart; use one of the persistent backends for
// anything beyond development and tests.
type Storage struct {
	mu   sync.RWMutex
	bans []*model.BannedPlayer
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBan(ctx context.Context, ban *model.BannedPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record := *ban
	s.bans = append(s.bans, &record)
	return nil
}

func (s *Storage) ListBans(ctx context.Context) ([]*model.BannedPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	bans := make([]*model.BannedPlayer, len(s.bans))
	for i, b := range s.bans {
		record := *b
		bans[i] = &record
	}
	return bans, nil
}

func (s *Storage) DeleteBan(ctx context.Context, uniqueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, b := range s.bans {
		if b.UniqueID == uniqueID {
			s.bans = append(s.bans[:i], s.bans[i+1:]...)
			return nil
		}
	}
	return model.ErrBanNotFound
}

func (s *Storage) IsBanned(ctx context.Context, uniqueID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.bans {
		if b.UniqueID == uniqueID {
			return true, nil
		}
	}
	return false, nil
}
