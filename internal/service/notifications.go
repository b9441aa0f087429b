package service

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/oomerozdemir/TUAgiyim-frontend-sub000/internal/domain"
)

// DefaultNotificationLimit is how many toasts the feed keeps.
const DefaultNotificationLimit = 50

// Notifications is a bounded feed of user-facing toasts. The oldest entry is
// dropped once the feed is full.
type Notifications struct {
	mu    sync.Mutex
	items []domain.Notification
	limit int
	now   func() time.Time
}

// NewNotifications creates a feed holding at most limit entries.
func NewNotifications(limit int) *Notifications {
	if limit <= 0 {
		limit = DefaultNotificationLimit
	}
	return &Notifications{limit: limit, now: time.Now}
}

// Push appends a toast and returns it.
func (n *Notifications) Push(level domain.NotificationLevel, message string) domain.Notification {
	entry := domain.Notification{
		ID:        uuid.NewString(),
		Level:     level,
		Message:   message,
		CreatedAt: n.now().UTC(),
	}

	n.mu.Lock()
	defer n.mu.Unlock()
	n.items = append(n.items, entry)
	if over := len(n.items) - n.limit; over > 0 {
		n.items = slices.Delete(n.items, 0, over)
	}
	return entry
}

// List returns the feed, oldest first.
func (n *Notifications) List() []domain.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	out := slices.Clone(n.items)
	if out == nil {
		out = []domain.Notification{}
	}
	return out
}

// Dismiss removes the toast with id. It reports whether one was removed.
func (n *Notifications) Dismiss(id string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	i := slices.IndexFunc(n.items, func(e domain.Notification) bool { return e.ID == id })
	if i < 0 {
		return false
	}
	n.items = slices.Delete(n.items, i, i+1)
	return true
}
