package session

import (
	"context"
	"testing"
	"time"
)

func TestMemoryStoreCreateResolve(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty session id")
	}

	if role := store.Resolve(ctx, id); role != RoleAdmin {
		t.Fatalf("expected admin role, got %q", role)
	}
}

func TestMemoryStoreResolveUnknown(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	if role := store.Resolve(context.Background(), "missing"); role != RoleNone {
		t.Fatalf("expected none role, got %q", role)
	}
}

func TestMemoryStoreRevoke(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	id, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	if err := store.Revoke(ctx, id); err != nil {
		t.Fatalf("Revoke err: %v", err)
	}
	if role := store.Resolve(ctx, id); role != RoleNone {
		t.Fatalf("expected none after revoke, got %q", role)
	}

	// Revoking again must stay silent.
	if err := store.Revoke(ctx, id); err != nil {
		t.Fatalf("second Revoke err: %v", err)
	}
}

func TestMemoryStoreExpiry(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	id, err := store.Create(ctx)
	if err != nil {
		t.Fatalf("Create err: %v", err)
	}

	current := time.Now()
	store.now = func() time.Time { return current.Add(2 * time.Minute) }

	if role := store.Resolve(ctx, id); role != RoleNone {
		t.Fatalf("expected none after expiry, got %q", role)
	}
}
