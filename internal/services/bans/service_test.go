package bans

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidhawk/rconpanel/internal/dependencies/mocks"
	"github.com/voidhawk/rconpanel/internal/events"
	"github.com/voidhawk/rconpanel/internal/model"
	"github.com/voidhawk/rconpanel/internal/roster"
	"github.com/voidhawk/rconpanel/internal/storage/memory"
	"github.com/voidhawk/rconpanel/internal/testutil"
)

type fixture struct {
	service *Service
	storage *memory.Storage
	roster  *roster.Roster
	bus     *events.Bus
	clock   *mocks.MockClock
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	store := memory.New()
	ros := roster.New()
	bus := events.NewBus(testutil.NopLogger())
	clk := mocks.NewMockClock(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	return &fixture{
		service: New(store, ros, bus, clk, testutil.NopLogger()),
		storage: store,
		roster:  ros,
		bus:     bus,
		clock:   clk,
	}
}

func receiveEvent(t *testing.T, ch <-chan model.Event) model.Event {
	t.Helper()
	select {
	case event := <-ch:
		return event
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return model.Event{}
	}
}

func TestBanSnapshotsAndRemovesFromRoster(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.roster.Add(model.Player{UniqueID: "steam_123", Name: "Player1"})

	ch, cancel := f.bus.Subscribe()
	defer cancel()

	err := f.service.Ban(ctx, model.Player{UniqueID: "steam_123", Name: "Player1"})
	require.NoError(t, err)

	bans, err := f.storage.ListBans(ctx)
	require.NoError(t, err)
	require.Len(t, bans, 1)
	assert.Equal(t, "steam_123", bans[0].UniqueID)
	assert.Equal(t, "Player1", bans[0].Name)
	assert.Equal(t, f.clock.CurrentTime, bans[0].BannedAt)

	assert.Equal(t, 0, f.roster.Len())

	event := receiveEvent(t, ch)
	assert.Equal(t, model.EventPlayerBanned, event.Type)
	assert.Equal(t, "steam_123", event.Player.UniqueID)
}

func TestBanRejectsEmptyFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.roster.Add(model.Player{UniqueID: "steam_123", Name: "Player1"})

	err := f.service.Ban(ctx, model.Player{UniqueID: "", Name: "Player1"})
	assert.ErrorIs(t, err, model.ErrInvalidPlayer)

	err = f.service.Ban(ctx, model.Player{UniqueID: "steam_123", Name: ""})
	assert.ErrorIs(t, err, model.ErrInvalidPlayer)

	bans, err := f.storage.ListBans(ctx)
	require.NoError(t, err)
	assert.Empty(t, bans)
	assert.Equal(t, 1, f.roster.Len())
}

func TestBanOfDisconnectedPlayerStillRecorded(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.Ban(ctx, model.Player{UniqueID: "steam_123", Name: "Player1"})
	require.NoError(t, err)

	banned, err := f.service.IsBanned(ctx, "steam_123")
	require.NoError(t, err)
	assert.True(t, banned)
}

func TestBanTwiceYieldsTwoRecords(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	player := model.Player{UniqueID: "steam_123", Name: "Player1"}
	require.NoError(t, f.service.Ban(ctx, player))
	require.NoError(t, f.service.Ban(ctx, player))

	bans, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bans, 2)
}

func TestUnbanRemovesExactlyOneRecord(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	player := model.Player{UniqueID: "steam_123", Name: "Player1"}
	require.NoError(t, f.service.Ban(ctx, player))
	require.NoError(t, f.service.Ban(ctx, player))

	f.roster.Add(model.Player{UniqueID: "steam_456", Name: "Player2"})

	require.NoError(t, f.service.Unban(ctx, "steam_123"))

	bans, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Len(t, bans, 1)

	// Unban never touches the roster
	assert.Equal(t, 1, f.roster.Len())
}

func TestUnbanUnknownIDIsSilentNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	err := f.service.Unban(ctx, "nonexistent")
	assert.NoError(t, err)
}

func TestKickRemovesFromRosterAndNotifies(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.roster.Add(model.Player{UniqueID: "steam_123", Name: "Player1"})

	ch, cancel := f.bus.Subscribe()
	defer cancel()

	require.NoError(t, f.service.Kick(ctx, "steam_123"))

	assert.Equal(t, 0, f.roster.Len())

	bans, err := f.service.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, bans, "kick must not create a ban record")

	event := receiveEvent(t, ch)
	assert.Equal(t, model.EventPlayerKicked, event.Type)
	assert.Equal(t, "Player1", event.Player.Name)
}

func TestKickUnknownIDIsSilentNoOp(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	ch, cancel := f.bus.Subscribe()
	defer cancel()

	require.NoError(t, f.service.Kick(ctx, "nonexistent"))
	assert.Empty(t, ch)
}

func TestVisiblePlayersOmitsBanned(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	f.roster.Add(model.Player{UniqueID: "steam_123", Name: "Player1"})
	f.roster.Add(model.Player{UniqueID: "steam_456", Name: "Player2"})

	// Simulate a roster the host failed to keep in sync: the ban record
	// exists but the player was re-added.
	require.NoError(t, f.storage.SaveBan(ctx, &model.BannedPlayer{UniqueID: "steam_123", Name: "Player1"}))

	visible, err := f.service.VisiblePlayers(ctx)
	require.NoError(t, err)
	require.Len(t, visible, 1)
	assert.Equal(t, "steam_456", visible[0].UniqueID)
}
