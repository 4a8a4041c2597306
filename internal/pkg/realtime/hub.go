package realtime

import (
	"sync"

	"github.com/tarpworks/payroll-backend/internal/domain/change"
)

type subscription struct {
	tables map[string]struct{}
}

func (s subscription) wants(table string) bool {
	if len(s.tables) == 0 {
		return true
	}
	_, ok := s.tables[table]
	return ok
}

// Hub fans change events out to subscribers filtered by table.
type Hub struct {
	mu          sync.RWMutex
	subscribers map[chan change.Event]subscription
}

// NewHub creates a new Hub instance
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[chan change.Event]subscription),
	}
}

// Subscribe registers a subscriber for tables (all tables when empty) and
// returns the event channel and cleanup function.
func (h *Hub) Subscribe(tables []string) (<-chan change.Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan change.Event, 32)
	sub := subscription{tables: make(map[string]struct{}, len(tables))}
	for _, t := range tables {
		sub.tables[t] = struct{}{}
	}
	h.subscribers[ch] = sub

	var once sync.Once
	cleanup := func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subscribers, ch)
			close(ch)
		})
	}

	return ch, cleanup
}

// Publish sends event to every interested subscriber. Slow subscribers miss
// events rather than block the publisher.
func (h *Hub) Publish(event change.Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for ch, sub := range h.subscribers {
		if !sub.wants(event.Table) {
			continue
		}
		select {
		case ch <- event:
		default:
		}
	}
}

// TotalSubscribers returns the number of active subscribers
func (h *Hub) TotalSubscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

var (
	_ change.Publisher  = (*Hub)(nil)
	_ change.Subscriber = (*Hub)(nil)
)
