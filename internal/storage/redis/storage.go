package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{client: client}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client) *Storage {
	return &Storage{client: client}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

func (s *Storage) SaveBan(ctx context.Context, ban *model.BannedPlayer) error {
	data, err := json.Marshal(ban)
	if err != nil {
		return err
	}
	return s.client.RPush(ctx, bansKey(), data).Err()
}

func (s *Storage) ListBans(ctx context.Context) ([]*model.BannedPlayer, error) {
	values, err := s.client.LRange(ctx, bansKey(), 0, -1).Result()
	if err != nil {
		return nil, err
	}

	bans := make([]*model.BannedPlayer, 0, len(values))
	for _, val := range values {
		var ban model.BannedPlayer
		if err := json.Unmarshal([]byte(val), &ban); err != nil {
			continue // Skip invalid data
		}
		bans = append(bans, &ban)
	}
	return bans, nil
}

func (s *Storage) DeleteBan(ctx context.Context, uniqueID string) error {
	element, err := s.firstMatch(ctx, uniqueID)
	if err != nil {
		return err
	}
	if element == "" {
		return model.ErrBanNotFound
	}

	// LREM with count 1 removes a single occurrence even when the same
	// record was stored more than once.
	return s.client.LRem(ctx, bansKey(), 1, element).Err()
}

func (s *Storage) IsBanned(ctx context.Context, uniqueID string) (bool, error) {
	element, err := s.firstMatch(ctx, uniqueID)
	if err != nil {
		return false, err
	}
	return element != "", nil
}

// firstMatch scans the ban list for the first element with the given id
// and returns the raw stored value, or "" when none matches.
func (s *Storage) firstMatch(ctx context.Context, uniqueID string) (string, error) {
	values, err := s.client.LRange(ctx, bansKey(), 0, -1).Result()
	if err != nil {
		return "", err
	}

	for _, val := range values {
		var ban model.BannedPlayer
		if err := json.Unmarshal([]byte(val), &ban); err != nil {
			continue
		}
		if ban.UniqueID == uniqueID {
			return val, nil
		}
	}
	return "", nil
}
