// Package notify provides an in-memory persistent-notification center.
//
// Service calls publish their results here; a notification created with
// an ID that already exists replaces the previous one, so repeated calls
// do not accumulate.
package notify

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// ErrNotFound is returned when a notification ID is unknown.
var ErrNotFound = errors.New("notification not found")

// Notification is a persistent operator-facing message.
type Notification struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

// Center stores notifications in memory.
type Center struct {
	logger zerolog.Logger

	mu            sync.RWMutex
	notifications map[string]*Notification
}

// NewCenter creates an empty notification center.
func NewCenter(logger zerolog.Logger) *Center {
	return &Center{
		logger:        logger,
		notifications: make(map[string]*Notification),
	}
}

// Create stores a notification, replacing any existing one with the
// same ID. An empty ID gets a random one.
func (c *Center) Create(id, title, message string) Notification {
	if id == "" {
		id = "notify_" + uuid.New().String()[:8]
	}

	n := &Notification{
		ID:        id,
		Title:     title,
		Message:   message,
		CreatedAt: time.Now(),
	}

	c.mu.Lock()
	c.notifications[id] = n
	c.mu.Unlock()

	c.logger.Debug().
		Str("notification_id", id).
		Str("title", title).
		Msg("notification created")

	return *n
}

// Get returns the notification with the given ID.
func (c *Center) Get(id string) (Notification, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	n, ok := c.notifications[id]
	if !ok {
		return Notification{}, ErrNotFound
	}
	return *n, nil
}

// List returns all notifications, newest first.
func (c *Center) List() []Notification {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]Notification, 0, len(c.notifications))
	for _, n := range c.notifications {
		out = append(out, *n)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}

// Dismiss removes a notification.
func (c *Center) Dismiss(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.notifications[id]; !ok {
		return ErrNotFound
	}
	delete(c.notifications, id)
	return nil
}
