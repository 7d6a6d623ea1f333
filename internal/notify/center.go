// Package notify implements the append-only recent-events log: a
// bounded, most-recent-first buffer of user-facing notifications with
// read/unread state.
package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/storage"
)

// maxEntries caps the buffer; the oldest entry is evicted from the tail
// when a new one is prepended.
const maxEntries = 30

// Sink is the event capability the engines are constructed with. It is
// satisfied by *Center; engines that should stay silent get a Nop.
type Sink interface {
	Push(message string, typ domain.NotificationType)
}

// Nop is a Sink that discards every event.
type Nop struct{}

// Push implements Sink.
func (Nop) Push(string, domain.NotificationType) {}

// Center owns the notification buffer and its persistence.
type Center struct {
	mu     sync.Mutex
	kv     storage.KV
	log    zerolog.Logger
	now    func() time.Time
	items  []domain.Notification
	lastID uint64
}

// NewCenter creates a Center over the given store.
func NewCenter(kv storage.KV, log zerolog.Logger) *Center {
	return &Center{
		kv:  kv,
		log: log,
		now: time.Now,
	}
}

// Load populates the buffer from persistence, seeding the default
// entries and persisting them on first run.
func (c *Center) Load() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, ok, err := c.kv.Get(storage.KeyNotifications)
	if err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}
	if !ok {
		c.items = c.seed()
		return c.persistLocked()
	}
	if err := json.Unmarshal(data, &c.items); err != nil {
		return fmt.Errorf("load notifications: %w", err)
	}
	for _, n := range c.items {
		if n.ID > c.lastID {
			c.lastID = n.ID
		}
	}
	return nil
}

func (c *Center) seed() []domain.Notification {
	now := c.now()
	return []domain.Notification{
		{ID: c.nextIDLocked(), Message: `Nueva transacción: Depósito de Salario añadida.`, Type: domain.NotifyInfo, Timestamp: now.Add(-5 * time.Minute)},
		{ID: c.nextIDLocked(), Message: `Factura "Tarjeta de Crédito" vence pronto.`, Type: domain.NotifyWarning, Timestamp: now.Add(-2 * time.Hour)},
		{ID: c.nextIDLocked(), Message: `Meta de ahorro actualizada.`, Type: domain.NotifySuccess, Timestamp: now.Add(-24 * time.Hour), Read: true},
	}
}

func (c *Center) nextIDLocked() uint64 {
	id := uint64(c.now().UnixMilli())
	if id <= c.lastID {
		id = c.lastID + 1
	}
	c.lastID = id
	return id
}

func (c *Center) persistLocked() error {
	data, err := json.Marshal(c.items)
	if err != nil {
		return fmt.Errorf("save notifications: %w", err)
	}
	return c.kv.Set(storage.KeyNotifications, data)
}

// Push prepends a new notification and evicts beyond the cap.
func (c *Center) Push(message string, typ domain.NotificationType) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := domain.Notification{
		ID:        c.nextIDLocked(),
		Message:   message,
		Type:      typ,
		Timestamp: c.now(),
	}
	c.items = append([]domain.Notification{entry}, c.items...)
	if len(c.items) > maxEntries {
		c.items = c.items[:maxEntries]
	}
	if err := c.persistLocked(); err != nil {
		c.log.Error().Err(err).Msg("failed to persist notifications")
	}
}

// List returns a copy of the buffer, most recent first.
func (c *Center) List() []domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := make([]domain.Notification, len(c.items))
	copy(copied, c.items)
	return copied
}

// UnreadCount returns the number of unread entries.
func (c *Center) UnreadCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, n := range c.items {
		if !n.Read {
			count++
		}
	}
	return count
}

// HasUnreadWarning reports whether an unread warning whose message
// contains substr is already present. The projection engine uses it to
// avoid duplicate due-soon warnings for the same bill.
func (c *Center) HasUnreadWarning(substr string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, n := range c.items {
		if n.Type == domain.NotifyWarning && !n.Read && strings.Contains(n.Message, substr) {
			return true
		}
	}
	return false
}

// MarkRead marks one entry read. It persists only when the entry exists
// and was unread.
func (c *Center) MarkRead(id uint64) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].ID == id {
			if c.items[i].Read {
				return false
			}
			c.items[i].Read = true
			if err := c.persistLocked(); err != nil {
				c.log.Error().Err(err).Msg("failed to persist notifications")
			}
			return true
		}
	}
	return false
}

// MarkAllRead marks every entry read, persisting only if anything
// actually changed.
func (c *Center) MarkAllRead() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	changed := false
	for i := range c.items {
		if !c.items[i].Read {
			c.items[i].Read = true
			changed = true
		}
	}
	if changed {
		if err := c.persistLocked(); err != nil {
			c.log.Error().Err(err).Msg("failed to persist notifications")
		}
	}
	return changed
}

var _ Sink = (*Center)(nil)
