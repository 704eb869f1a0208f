package model

import (
	"fmt"
	"time"
)

// Player represents a player currently connected to the game server.
// The host application creates these as players connect and removes them
// as they disconnect; the panel removes them on ban or kick.
type Player struct {
	UniqueID string `json:"unique_id"`
	Name     string `json:"name"`
}

// String formats the player the way the panel displays it.
func (p Player) String() string {
	return fmt.Sprintf("%s (ID: %s)", p.Name, p.UniqueID)
}

// BannedPlayer is a snapshot of a player at the time they were banned.
// It is persisted independently of the live roster, so it survives the
// player disconnecting and the server restarting.
//
// Nothing prevents two records sharing a UniqueID: banning the same id
// twice produces two records, and unban removes only the first.
type BannedPlayer struct {
	UniqueID string    `json:"unique_id"`
	Name     string    `json:"name"`
	BannedAt time.Time `json:"banned_at"`
}

func (b BannedPlayer) String() string {
	return fmt.Sprintf("%s (ID: %s)", b.Name, b.UniqueID)
}
