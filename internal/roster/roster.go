// Package roster holds the live list of connected players.
//
// The host application owns the roster: it adds players as they connect
// and removes them as they disconnect. The panel reads it for display and
// removes entries as a side effect of banning or kicking.
package roster

import (
	"sync"

	"github.com/voidhawk/rconpanel/internal/model"
)

// Roster is an ordered, mutable collection of connected players.
// All methods are safe for concurrent use.
type Roster struct {
	mu      sync.RWMutex
	players []model.Player
}

// New creates an empty roster
func New() *Roster {
	return &Roster{}
}

// Add appends a player in connection order.
// Adding an id that is already present is a no-op.
func (r *Roster) Add(player model.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.players {
		if p.UniqueID == player.UniqueID {
			return
		}
	}
	r.players = append(r.players, player)
}

// Remove deletes the player with the given id, preserving the order of
// the remaining entries. Removing an absent id is a no-op.
func (r *Roster) Remove(uniqueID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, p := range r.players {
		if p.UniqueID == uniqueID {
			r.players = append(r.players[:i], r.players[i+1:]...)
			return
		}
	}
}

// Get returns the player with the given id
func (r *Roster) Get(uniqueID string) (model.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.players {
		if p.UniqueID == uniqueID {
			return p, nil
		}
	}
	return model.Player{}, model.ErrPlayerNotFound
}

// List returns a copy of the roster in connection order
func (r *Roster) List() []model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	players := make([]model.Player, len(r.players))
	copy(players, r.players)
	return players
}

// Len returns the number of connected players
func (r *Roster) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.players)
}
