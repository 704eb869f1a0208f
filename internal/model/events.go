package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	// EventPlayerBanned is published when an operator bans a player.
	// The host should disconnect the corresponding live connection.
	EventPlayerBanned EventType = "player_banned"
	// EventPlayerKicked is published when an operator kicks a player.
	// The host should disconnect the corresponding live connection.
	EventPlayerKicked EventType = "player_kicked"
)

// Event is a notification to the host application
type Event struct {
	Type      EventType
	Timestamp time.Time
	Player    Player
}
