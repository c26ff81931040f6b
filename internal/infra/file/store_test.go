package file

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"quizdeck-client/internal/domain"
)

func TestStoreSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, err := Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := store.Set(ctx, "token", "tok-123"); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := store.Set(ctx, "user", `{"id":"u1"}`); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Simulated restart.
	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	value, err := reopened.Get(ctx, "token")
	if err != nil || value != "tok-123" {
		t.Fatalf("expected persisted token, got %q (%v)", value, err)
	}
}

func TestStoreDeletePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")

	store, _ := Open(path)
	_ = store.Set(ctx, "token", "tok-123")
	if err := store.Delete(ctx, "token"); err != nil {
		t.Fatalf("delete: %v", err)
	}

	reopened, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if _, err := reopened.Get(ctx, "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected ErrKeyNotFound after restart, got %v", err)
	}
}

func TestStoreMissingFileStartsEmpty(t *testing.T) {
	store, err := Open(filepath.Join(t.TempDir(), "nested", "session.json"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if _, err := store.Get(context.Background(), "token"); !errors.Is(err, domain.ErrKeyNotFound) {
		t.Fatalf("expected empty store, got %v", err)
	}
}
