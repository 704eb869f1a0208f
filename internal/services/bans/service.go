// Package bans implements the player/ban reconciliation logic.
package bans

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/voidhawk/rconpanel/internal/dependencies/clock"
	"github.com/voidhawk/rconpanel/internal/events"
	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/roster"
	"github.com/voidhawk/rconpanel/internal/storage"
)

// Service coordinates the ban store, the live roster and host notifications
type Service struct {
	storage storage.Storage
	roster  *roster.Roster
	bus     *events.Bus
	clock   clock.Clock
	logger  *slog.Logger
}

// New creates a new ban Service
func New(storage storage.Storage, roster *roster.Roster, bus *events.Bus, clock clock.Clock, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		roster:  roster,
		bus:     bus,
		clock:   clock,
		logger:  logger.With(slog.String("component", "bans")),
	}
}

// List returns all ban records
func (s *Service) List(ctx context.Context) ([]*model.BannedPlayer, error) {
	return s.storage.ListBans(ctx)
}

// IsBanned reports whether the given id has a ban record
func (s *Service) IsBanned(ctx context.Context, uniqueID string) (bool, error) {
	return s.storage.IsBanned(ctx, uniqueID)
}

// Ban records a ban snapshot for the player, removes them from the live
// roster and notifies the host so the real connection can be dropped.
//
// No uniqueness is enforced: banning an already-banned id adds a second
// record. A roster the host failed to keep in sync never fails the ban -
// the removal is a no-op then.
func (s *Service) Ban(ctx context.Context, player model.Player) error {
	if player.UniqueID == "" || player.Name == "" {
		return model.ErrInvalidPlayer
	}

	ban := &model.BannedPlayer{
		UniqueID: player.UniqueID,
		Name:     player.Name,
		BannedAt: s.clock.Now(),
	}
	if err := s.storage.SaveBan(ctx, ban); err != nil {
		return fmt.Errorf("saving ban for %q: %w", player.UniqueID, err)
	}

	s.roster.Remove(player.UniqueID)

	s.bus.Publish(model.Event{
		Type:      model.EventPlayerBanned,
		Timestamp: s.clock.Now(),
		Player:    player,
	})

	s.logger.Info("player banned",
		slog.String("player_id", player.UniqueID),
		slog.String("name", player.Name))
	return nil
}

// Unban removes the first ban record matching the given id. Unbanning an
// id with no record is a silent no-op; the roster is never touched.
func (s *Service) Unban(ctx context.Context, uniqueID string) error {
	err := s.storage.DeleteBan(ctx, uniqueID)
	if errors.Is(err, model.ErrBanNotFound) {
		s.logger.Debug("unban of unknown id ignored", slog.String("player_id", uniqueID))
		return nil
	}
	if err != nil {
		return fmt.Errorf("deleting ban for %q: %w", uniqueID, err)
	}

	s.logger.Info("player unbanned", slog.String("player_id", uniqueID))
	return nil
}

// Kick removes the player from the live roster and notifies the host.
// The ban store is untouched; kicking an id not on the roster is a no-op.
func (s *Service) Kick(ctx context.Context, uniqueID string) error {
	player, err := s.roster.Get(uniqueID)
	if errors.Is(err, model.ErrPlayerNotFound) {
		s.logger.Debug("kick of unknown id ignored", slog.String("player_id", uniqueID))
		return nil
	}
	if err != nil {
		return err
	}

	s.roster.Remove(uniqueID)

	s.bus.Publish(model.Event{
		Type:      model.EventPlayerKicked,
		Timestamp: s.clock.Now(),
		Player:    player,
	})

	s.logger.Info("player kicked",
		slog.String("player_id", player.UniqueID),
		slog.String("name", player.Name))
	return nil
}

// VisiblePlayers returns the roster entries that should be displayed:
// entries with a ban record are omitted with a warning, since a synced
// roster should never contain a banned player.
func (s *Service) VisiblePlayers(ctx context.Context) ([]model.Player, error) {
	var visible []model.Player
	for _, player := range s.roster.List() {
		banned, err := s.storage.IsBanned(ctx, player.UniqueID)
		if err != nil {
			return nil, fmt.Errorf("checking ban for %q: %w", player.UniqueID, err)
		}
		if banned {
			s.logger.Warn("banned player present on roster - omitting from player list; the host should remove banned players on connect",
				slog.String("player_id", player.UniqueID),
				slog.String("name", player.Name))
			continue
		}
		visible = append(visible, player)
	}
	return visible, nil
}
