package notify

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/dromero/financepro/internal/domain"
	"github.com/dromero/financepro/internal/logger"
	"github.com/dromero/financepro/internal/storage"
)

// mockKV is an in-memory storage.KV that counts writes.
type mockKV struct {
	data   map[string][]byte
	writes int
}

func newMockKV() *mockKV {
	return &mockKV{data: make(map[string][]byte)}
}

func (m *mockKV) Get(key string) ([]byte, bool, error) {
	value, ok := m.data[key]
	return value, ok, nil
}

func (m *mockKV) Set(key string, value []byte) error {
	m.data[key] = value
	m.writes++
	return nil
}

func newTestCenter(t *testing.T, kv storage.KV) *Center {
	t.Helper()
	c := NewCenter(kv, logger.New())
	if err := c.Load(); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c
}

func TestCenterSeedsOnFirstRun(t *testing.T) {
	kv := newMockKV()
	c := newTestCenter(t, kv)

	items := c.List()
	if len(items) != 3 {
		t.Fatalf("List() returned %d entries, want 3 seeded", len(items))
	}
	if _, ok := kv.data[storage.KeyNotifications]; !ok {
		t.Error("seed was not persisted")
	}
	if c.UnreadCount() != 2 {
		t.Errorf("UnreadCount() = %d, want 2", c.UnreadCount())
	}
}

func TestCenterLoadExisting(t *testing.T) {
	kv := newMockKV()
	stored := []domain.Notification{
		{ID: 10, Message: "hola", Type: domain.NotifyInfo},
	}
	data, _ := json.Marshal(stored)
	kv.data[storage.KeyNotifications] = data

	c := newTestCenter(t, kv)
	items := c.List()
	if len(items) != 1 || items[0].Message != "hola" {
		t.Fatalf("List() = %+v, want the one stored entry", items)
	}
}

func TestCenterLoadMalformed(t *testing.T) {
	kv := newMockKV()
	kv.data[storage.KeyNotifications] = []byte("{not json")

	c := NewCenter(kv, logger.New())
	if err := c.Load(); err == nil {
		t.Fatal("Load() accepted malformed payload, want error")
	}
}

func TestCenterPushPrependsAndEvicts(t *testing.T) {
	kv := newMockKV()
	c := newTestCenter(t, kv)

	for i := 0; i < 40; i++ {
		c.Push(fmt.Sprintf("evento %d", i), domain.NotifyInfo)
	}

	items := c.List()
	if len(items) != maxEntries {
		t.Fatalf("List() returned %d entries, want capped at %d", len(items), maxEntries)
	}
	if items[0].Message != "evento 39" {
		t.Errorf("newest entry = %q, want evento 39", items[0].Message)
	}
}

func TestCenterHasUnreadWarning(t *testing.T) {
	kv := newMockKV()
	c := newTestCenter(t, kv)
	c.MarkAllRead()

	c.Push(`Factura "Netflix" vence en 3 días.`, domain.NotifyWarning)
	c.Push(`Factura "Alquiler" pagada.`, domain.NotifySuccess)

	if !c.HasUnreadWarning("Netflix") {
		t.Error("HasUnreadWarning(Netflix) = false, want true")
	}
	if c.HasUnreadWarning("Alquiler") {
		t.Error("HasUnreadWarning(Alquiler) = true for a success entry, want false")
	}

	c.MarkAllRead()
	if c.HasUnreadWarning("Netflix") {
		t.Error("HasUnreadWarning(Netflix) = true after MarkAllRead, want false")
	}
}

func TestCenterMarkRead(t *testing.T) {
	kv := newMockKV()
	c := newTestCenter(t, kv)

	items := c.List()
	unreadID := uint64(0)
	readID := uint64(0)
	for _, n := range items {
		if n.Read {
			readID = n.ID
		} else if unreadID == 0 {
			unreadID = n.ID
		}
	}

	before := kv.writes
	if !c.MarkRead(unreadID) {
		t.Error("MarkRead(unread) = false, want true")
	}
	if kv.writes != before+1 {
		t.Errorf("writes = %d, want exactly one persist after MarkRead", kv.writes-before)
	}

	// Already-read and unknown ids do not persist.
	before = kv.writes
	if c.MarkRead(readID) {
		t.Error("MarkRead(already read) = true, want false")
	}
	if c.MarkRead(999999) {
		t.Error("MarkRead(unknown) = true, want false")
	}
	if kv.writes != before {
		t.Errorf("writes changed by no-op MarkRead calls")
	}
}

func TestCenterMarkAllRead(t *testing.T) {
	kv := newMockKV()
	c := newTestCenter(t, kv)

	if !c.MarkAllRead() {
		t.Error("MarkAllRead() = false with unread entries, want true")
	}
	if c.UnreadCount() != 0 {
		t.Errorf("UnreadCount() = %d after MarkAllRead, want 0", c.UnreadCount())
	}

	before := kv.writes
	if c.MarkAllRead() {
		t.Error("MarkAllRead() = true with nothing unread, want false")
	}
	if kv.writes != before {
		t.Error("MarkAllRead persisted without changes")
	}
}
