package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/voidhawk/rconpanel/internal/model"
)

type StorageSuite struct {
	suite.Suite
	mini    *miniredis.Miniredis
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.mini = miniredis.RunT(s.T())

	client := redis.NewClient(&redis.Options{
		Addr: s.mini.Addr(),
	})

	s.storage = NewWithClient(client)
	s.ctx = context.Background()
}

func (s *StorageSuite) TearDownTest() {
	if s.storage != nil {
		_ = s.storage.Close()
	}
	if s.mini != nil {
		s.mini.Close()
	}
}

func (s *StorageSuite) TestSaveAndListBans() {
	now := time.Now().UTC().Truncate(time.Second)
	err := s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_123", Name: "Player1", BannedAt: now})
	s.Require().NoError(err)
	err = s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_456", Name: "Player2", BannedAt: now})
	s.Require().NoError(err)

	bans, err := s.storage.ListBans(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(bans, 2)
	s.Equal("steam_123", bans[0].UniqueID)
	s.Equal("Player1", bans[0].Name)
	s.Equal("steam_456", bans[1].UniqueID)
}

func (s *StorageSuite) TestListBansEmpty() {
	bans, err := s.storage.ListBans(s.ctx)
	s.Require().NoError(err)
	s.Empty(bans)
}

func (s *StorageSuite) TestDuplicateBansCoexist() {
	ban := &model.BannedPlayer{UniqueID: "steam_123", Name: "Player1"}
	s.Require().NoError(s.storage.SaveBan(s.ctx, ban))
	s.Require().NoError(s.storage.SaveBan(s.ctx, ban))

	bans, err := s.storage.ListBans(s.ctx)
	s.Require().NoError(err)
	s.Len(bans, 2)
}

func (s *StorageSuite) TestDeleteBanRemovesFirstMatch() {
	_ = s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_123", Name: "First"})
	_ = s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_456", Name: "Other"})
	_ = s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_123", Name: "Second"})

	err := s.storage.DeleteBan(s.ctx, "steam_123")
	s.Require().NoError(err)

	bans, err := s.storage.ListBans(s.ctx)
	s.Require().NoError(err)
	s.Require().Len(bans, 2)
	s.Equal("Other", bans[0].Name)
	s.Equal("Second", bans[1].Name)
}

func (s *StorageSuite) TestDeleteBanRemovesOneIdenticalRecord() {
	ban := &model.BannedPlayer{UniqueID: "steam_123", Name: "Player1"}
	s.Require().NoError(s.storage.SaveBan(s.ctx, ban))
	s.Require().NoError(s.storage.SaveBan(s.ctx, ban))

	err := s.storage.DeleteBan(s.ctx, "steam_123")
	s.Require().NoError(err)

	bans, err := s.storage.ListBans(s.ctx)
	s.Require().NoError(err)
	s.Len(bans, 1)
}

func (s *StorageSuite) TestDeleteBanNotFound() {
	err := s.storage.DeleteBan(s.ctx, "nonexistent")
	s.ErrorIs(err, model.ErrBanNotFound)
}

func (s *StorageSuite) TestIsBanned() {
	_ = s.storage.SaveBan(s.ctx, &model.BannedPlayer{UniqueID: "steam_123", Name: "Player1"})

	banned, err := s.storage.IsBanned(s.ctx, "steam_123")
	s.Require().NoError(err)
	s.True(banned)

	banned, err = s.storage.IsBanned(s.ctx, "steam_456")
	s.Require().NoError(err)
	s.False(banned)
}
