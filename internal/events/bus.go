// Package events delivers panel notifications to the host application.
//
// The panel never touches real network connections. When an operator bans
// or kicks a player, the panel removes the roster entry and publishes an
// event; the host subscribes and performs the actual disconnect.
package events

import (
	"log/slog"
	"sync"

	"github.com/voidhawk/rconpanel/internal/model"
)

// subscriberBuffer is the per-subscriber channel capacity. A subscriber
// that falls this far behind starts dropping events.
const subscriberBuffer = 16

// Bus fans events out to subscribers
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan model.Event
	nextID int
	logger *slog.Logger
}

// NewBus creates a new Bus
func NewBus(logger *slog.Logger) *Bus {
	return &Bus{
		subs:   make(map[int]chan model.Event),
		logger: logger.With(slog.String("component", "events")),
	}
}

// Subscribe registers a new subscriber and returns its channel along with
// an unsubscribe function. The channel is closed on unsubscribe.
func (b *Bus) Subscribe() (<-chan model.Event, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	ch := make(chan model.Event, subscriberBuffer)
	b.subs[id] = ch

	unsubscribe := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, unsubscribe
}

// Publish delivers an event to every subscriber. The send never blocks:
// a subscriber with a full buffer misses the event and a warning is
// logged instead.
func (b *Bus) Publish(event model.Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.subs) == 0 {
		b.logger.Warn("event published with no subscribers - the host will not disconnect this player",
			slog.String("type", string(event.Type)),
			slog.String("player_id", event.Player.UniqueID))
		return
	}

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.logger.Warn("event dropped - subscriber buffer full",
				slog.Int("subscriber", id),
				slog.String("type", string(event.Type)),
				slog.String("player_id", event.Player.UniqueID))
		}
	}
}

// SubscriberCount returns the number of active subscribers
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
