package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemoryTokenStore_RoundTrip(t *testing.T) {
	store := NewMemoryTokenStore()
	ctx := context.Background()

	if token, err := store.Load(ctx); err != nil || token != "" {
		t.Fatalf("expected empty store, got %q, %v", token, err)
	}

	if err := store.Save(ctx, "tok-1"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if token, _ := store.Load(ctx); token != "tok-1" {
		t.Fatalf("expected tok-1, got %q", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if token, _ := store.Load(ctx); token != "" {
		t.Fatalf("expected empty after clear, got %q", token)
	}
}

func TestFileTokenStore_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session", "token")
	store := NewFileTokenStore(path)
	ctx := context.Background()

	if token, err := store.Load(ctx); err != nil || token != "" {
		t.Fatalf("missing file must read as empty, got %q, %v", token, err)
	}

	if err := store.Save(ctx, "tok-file"); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if token, err := store.Load(ctx); err != nil || token != "tok-file" {
		t.Fatalf("expected tok-file, got %q, %v", token, err)
	}

	// Save replaces the previous token.
	if err := store.Save(ctx, "tok-next"); err != nil {
		t.Fatalf("overwrite failed: %v", err)
	}
	if token, _ := store.Load(ctx); token != "tok-next" {
		t.Fatalf("expected tok-next, got %q", token)
	}

	if err := store.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	if token, err := store.Load(ctx); err != nil || token != "" {
		t.Fatalf("expected empty after clear, got %q, %v", token, err)
	}
	// Clearing twice is a no-op.
	if err := store.Clear(ctx); err != nil {
		t.Fatalf("second clear must be a no-op: %v", err)
	}
}
