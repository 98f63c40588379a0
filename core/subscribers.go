package orchestration

import (
	"log/slog"
	"sync"

	"github.com/voxmemo/voxmemo-core/core/events"
)

const defaultSubscriberCapacity = 16

// subscriberHub fans events out to subscriber channels. Delivery is
// best-effort and never blocks the orchestrator: when a subscriber's buffer
// is saturated the newest event for that subscriber is dropped and logged.
type subscriberHub struct {
	mu          sync.Mutex
	subscribers map[int]chan events.Event
	nextID      int
}

func newSubscriberHub() *subscriberHub {
	return &subscriberHub{subscribers: map[int]chan events.Event{}}
}

func (h *subscriberHub) subscribe(capacity int) (<-chan events.Event, func()) {
	if capacity <= 0 {
		capacity = defaultSubscriberCapacity
	}
	channel := make(chan events.Event, capacity)

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subscribers[id] = channel
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		if subscribed, ok := h.subscribers[id]; ok {
			delete(h.subscribers, id)
			close(subscribed)
		}
		h.mu.Unlock()
	}
	return channel, cancel
}

func (h *subscriberHub) publish(event events.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, channel := range h.subscribers {
		select {
		case channel <- event:
		default:
			logger.Warn("subscriber buffer saturated, dropping event",
				slog.String("kind", string(event.Kind())),
				slog.String("session_id", event.SessionID()))
		}
	}
}

func (h *subscriberHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, channel := range h.subscribers {
		delete(h.subscribers, id)
		close(channel)
	}
}
