// Package notifier implements the in-process fan-out of derived events
// to subscribers grouped by audience. Delivery is best-effort and
// at-most-once: a subscriber with a full buffer or no connection simply
// misses the notification.
package notifier

import (
	"fmt"
	"sync"

	"github.com/pulseboard/pulseboard/internal/domain"
	"github.com/rs/zerolog/log"
)

// GroupAll receives every published notification.
const GroupAll = "All"

// GroupUser names the per-user audience.
func GroupUser(id uint) string { return fmt.Sprintf("User_%d", id) }

// GroupRepository names the per-repository audience.
func GroupRepository(id uint) string { return fmt.Sprintf("Repository_%d", id) }

// GroupEventType names the per-event-type audience.
func GroupEventType(eventType string) string { return "WebhookEvent_" + eventType }

// Subscriber is one connected client. Notifications arrive on C until
// Unsubscribe closes it.
type Subscriber struct {
	C      chan domain.Notification
	groups []string
}

// Hub is the group-membership table and publisher. It holds no durable
// state: group membership lives only as long as the process.
type Hub struct {
	mu      sync.RWMutex
	groups  map[string]map[*Subscriber]struct{}
	bufSize int
}

// NewHub creates a Hub whose subscriber channels buffer bufSize
// notifications before drops begin.
func NewHub(bufSize int) *Hub {
	if bufSize <= 0 {
		bufSize = 16
	}
	return &Hub{
		groups:  make(map[string]map[*Subscriber]struct{}),
		bufSize: bufSize,
	}
}

// Subscribe registers a new subscriber for the given groups. A
// subscriber with no groups joins GroupAll.
func (h *Hub) Subscribe(groups ...string) *Subscriber {
	if len(groups) == 0 {
		groups = []string{GroupAll}
	}
	sub := &Subscriber{
		C:      make(chan domain.Notification, h.bufSize),
		groups: groups,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, g := range sub.groups {
		if h.groups[g] == nil {
			h.groups[g] = make(map[*Subscriber]struct{})
		}
		h.groups[g][sub] = struct{}{}
	}
	return sub
}

// Unsubscribe removes the subscriber from all its groups and closes its
// channel.
func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()

	removed := false
	for _, g := range sub.groups {
		if members, ok := h.groups[g]; ok {
			if _, present := members[sub]; present {
				delete(members, sub)
				removed = true
			}
			if len(members) == 0 {
				delete(h.groups, g)
			}
		}
	}
	if removed {
		close(sub.C)
	}
}

// SubscriberCount reports the number of subscribers in a group.
func (h *Hub) SubscriberCount(group string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.groups[group])
}

// Publish delivers a notification to every subscriber of the group, at
// most once per subscriber per call. Slow subscribers are skipped, not
// waited for.
func (h *Hub) Publish(group string, n domain.Notification) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.groups[group] {
		select {
		case sub.C <- n:
		default:
			log.Warn().Str("group", group).Str("notification", n.ID).Msg("subscriber buffer full, dropping notification")
		}
	}
}
