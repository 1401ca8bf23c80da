package service

import (
	"fmt"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/ajserber/roadwatch/internal/models"
)

// Toast is a transient "new hazard" notification for the presentation
// layer.
type Toast struct {
	Message  string            `json:"message"`
	Type     models.HazardType `json:"type"`
	PostedAt time.Time         `json:"posted_at"`
}

type expiringToast struct {
	Toast
	expiresAt time.Time
}

// notifier holds the currently visible toasts. Entries expire after a
// fixed TTL; expiry is evaluated lazily against the injected clock, so
// no background timers run and tests stay deterministic. Like
// selectionState it relies on the owning service's lock.
type notifier struct {
	clock clockwork.Clock
	ttl   time.Duration
	items []expiringToast
}

func newNotifier(clock clockwork.Clock, ttl time.Duration) *notifier {
	return &notifier{clock: clock, ttl: ttl}
}

func (n *notifier) push(hazardType models.HazardType) {
	now := n.clock.Now()
	n.items = append(n.items, expiringToast{
		Toast: Toast{
			Message:  fmt.Sprintf("New %s hazard reported!", hazardType),
			Type:     hazardType,
			PostedAt: now,
		},
		expiresAt: now.Add(n.ttl),
	})
}

// active prunes expired entries and returns the rest, oldest first.
func (n *notifier) active() []Toast {
	now := n.clock.Now()
	kept := n.items[:0]
	for _, item := range n.items {
		if item.expiresAt.After(now) {
			kept = append(kept, item)
		}
	}
	n.items = kept

	toasts := make([]Toast, len(n.items))
	for i, item := range n.items {
		toasts[i] = item.Toast
	}
	return toasts
}

func (n *notifier) clear() {
	n.items = nil
}
