// internal/events/bus.go
package events

import (
	"strconv"
	"sync"
	"time"

	"outfit-orchestrator/internal/common/logger"
	"outfit-orchestrator/internal/common/metrics"
)

// OutfitWornEvent is broadcast when an outfit transitions to worn.
// ForceFresh tells listeners to bypass any memoized state.
type OutfitWornEvent struct {
	OutfitID   string    `json:"outfitId"`
	OutfitName string    `json:"outfitName"`
	Timestamp  time.Time `json:"timestamp"`
	ForceFresh bool      `json:"forceFresh"`
}

// Bus fans outfit-worn events out to in-process subscribers. Publishing
// never blocks; a subscriber whose buffer is full misses the event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[int]chan OutfitWornEvent
	nextID int
	buffer int
	log    logger.Logger
}

func NewBus(buffer int, log logger.Logger) *Bus {
	if buffer <= 0 {
		buffer = 8
	}
	return &Bus{
		subs:   make(map[int]chan OutfitWornEvent),
		buffer: buffer,
		log:    log,
	}
}

// Subscribe registers a listener. The returned cancel func must be called
// when the listener stops reading, after which the channel is closed.
func (b *Bus) Subscribe() (<-chan OutfitWornEvent, func()) {
	ch := make(chan OutfitWornEvent, b.buffer)

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = ch
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}
	return ch, cancel
}

// Publish delivers the event to every subscriber without blocking.
func (b *Bus) Publish(event OutfitWornEvent) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	metrics.EventsPublished.WithLabelValues(strconv.FormatBool(event.ForceFresh)).Inc()

	for id, ch := range b.subs {
		select {
		case ch <- event:
		default:
			b.log.Warn("dropping outfit worn event for slow subscriber", map[string]interface{}{
				"subscriber_id": id,
				"outfit_id":     event.OutfitID,
			})
		}
	}
}

// SubscriberCount reports the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}
