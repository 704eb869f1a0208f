package rconpanel_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voidhawk/rconpanel"
)

// TestHostEmbedding drives the panel the way an external host would,
// touching only this package's exported surface.
func TestHostEmbedding(t *testing.T) {
	cfg := rconpanel.DefaultConfig()
	cfg.Panel.GameName = "Spacewar"

	app, err := rconpanel.New(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer app.Close()

	app.Roster.Add(rconpanel.Player{UniqueID: "steam_123", Name: "Griefer"})
	app.Roster.Add(rconpanel.Player{UniqueID: "steam_456", Name: "Regular"})

	eventCh, unsubscribe := app.Bus.Subscribe()
	defer unsubscribe()

	panel := rconpanel.Handler(cfg, app, nil)

	// Operator bans a player through the web surface
	form := url.Values{"unique_id": {"steam_123"}, "name": {"Griefer"}}
	req := httptest.NewRequest(http.MethodPost, "/ban_player", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	panel.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The host hears about it and can drop the connection
	select {
	case event := <-eventCh:
		assert.Equal(t, rconpanel.EventPlayerBanned, event.Type)
		assert.Equal(t, "steam_123", event.Player.UniqueID)
	case <-time.After(time.Second):
		t.Fatal("expected a ban event on the bus")
	}

	// The roster no longer lists the banned player
	require.Len(t, app.Roster.List(), 1)
	assert.Equal(t, "steam_456", app.Roster.List()[0].UniqueID)

	// And the ban list page shows the record
	req = httptest.NewRequest(http.MethodGet, "/ban_list", nil)
	rec = httptest.NewRecorder()
	panel.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Griefer (ID: steam_123)")
}
