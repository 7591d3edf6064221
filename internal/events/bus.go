package events

import (
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// subscriberBuffer is the per-subscriber channel capacity.
const subscriberBuffer = 16

// Bus fans events out to subscribers without ever blocking the emitter.
// A subscriber whose buffer is full misses the event.
type Bus struct {
	subscribers map[chan Event]struct{}
	mu          sync.RWMutex
	log         zerolog.Logger
}

// NewBus creates a new event bus.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subscribers: make(map[chan Event]struct{}),
		log:         log.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a new subscriber.
func (b *Bus) Subscribe() chan Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan Event, subscriberBuffer)
	b.subscribers[ch] = struct{}{}

	b.log.Debug().
		Int("total_subscribers", len(b.subscribers)).
		Msg("New subscriber added")

	return ch
}

// Unsubscribe removes a subscriber and closes its channel.
func (b *Bus) Unsubscribe(ch chan Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if _, ok := b.subscribers[ch]; !ok {
		return
	}
	delete(b.subscribers, ch)
	close(ch)

	b.log.Debug().
		Int("total_subscribers", len(b.subscribers)).
		Msg("Subscriber removed")
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subscribers)
}

// Emit broadcasts an event to all subscribers.
func (b *Bus) Emit(module string, data EventData) {
	event := Event{
		Type:      data.EventType(),
		Timestamp: time.Now(),
		Module:    module,
		Data:      data,
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for ch := range b.subscribers {
		select {
		case ch <- event:
		default:
			b.log.Warn().
				Str("event_type", string(event.Type)).
				Msg("Subscriber channel full, event dropped")
		}
	}
}
