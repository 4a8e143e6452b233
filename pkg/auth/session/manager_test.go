package session

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	redislib "github.com/redis/go-redis/v9"
)

type memoryStore struct {
	values map[string]string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{values: map[string]string{}}
}

func (m *memoryStore) Set(_ context.Context, key string, value any, _ time.Duration) error {
	m.values[key] = value.(string)
	return nil
}

func (m *memoryStore) Get(_ context.Context, key string) (string, error) {
	if v, ok := m.values[key]; ok {
		return v, nil
	}
	return "", redislib.Nil
}

func (m *memoryStore) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

type prefixKeyer struct{}

func (prefixKeyer) SessionKey(accessID string) string { return "cg:session:" + accessID }

func newTestManager() (*Manager, *memoryStore) {
	store := newMemoryStore()
	return &Manager{store: store, keyer: prefixKeyer{}, ttl: time.Hour}, store
}

func TestSessionLifecycle(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	ctx := context.Background()
	accessID := NewAccessID()

	if err := mgr.Create(ctx, accessID, uuid.New()); err != nil {
		t.Fatalf("create: %v", err)
	}

	ok, err := mgr.HasSession(ctx, accessID)
	if err != nil || !ok {
		t.Fatalf("expected live session, ok=%v err=%v", ok, err)
	}

	if err := mgr.Revoke(ctx, accessID); err != nil {
		t.Fatalf("revoke: %v", err)
	}

	ok, err = mgr.HasSession(ctx, accessID)
	if err != nil {
		t.Fatalf("has session: %v", err)
	}
	if ok {
		t.Fatal("revoked session must not validate")
	}
}

func TestSessionManagerValidatesInput(t *testing.T) {
	t.Parallel()

	mgr, _ := newTestManager()
	ctx := context.Background()

	if err := mgr.Create(ctx, "", uuid.New()); err == nil {
		t.Fatal("expected error for empty access id")
	}
	if err := mgr.Create(ctx, "abc", uuid.Nil); err == nil {
		t.Fatal("expected error for nil user id")
	}
	if _, err := mgr.HasSession(ctx, " "); err == nil {
		t.Fatal("expected error for blank access id")
	}
}
