package kvstore

import (
	"context"
	"path/filepath"
	"testing"
)

func TestMemory_SetAndGet(t *testing.T) {
	// Arrange
	kv := NewMemory()
	ctx := context.Background()

	// Act
	if err := kv.Set(ctx, "k", "v1"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if err := kv.Set(ctx, "k", "v2"); err != nil {
		t.Fatalf("second set failed: %v", err)
	}
	value, ok, err := kv.Get(ctx, "k")

	// Assert
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || value != "v2" {
		t.Errorf("expected v2, got %q (ok=%v)", value, ok)
	}
}

func TestMemory_GetMissingKey(t *testing.T) {
	// Arrange
	kv := NewMemory()

	// Act
	value, ok, err := kv.Get(context.Background(), "missing")

	// Assert
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if ok || value != "" {
		t.Errorf("expected absent key, got %q (ok=%v)", value, ok)
	}
}

func TestFile_PersistsAcrossReopen(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "store.json")
	ctx := context.Background()

	first, err := NewFile(path)
	if err != nil {
		t.Fatalf("failed to create file store: %v", err)
	}
	if err := first.Set(ctx, "cart", `[{"id":1}]`); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	// Act
	second, err := NewFile(path)
	if err != nil {
		t.Fatalf("failed to reopen file store: %v", err)
	}
	value, ok, err := second.Get(ctx, "cart")

	// Assert
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !ok || value != `[{"id":1}]` {
		t.Errorf("expected persisted value after reopen, got %q (ok=%v)", value, ok)
	}
}

func TestFile_MissingFileStartsEmpty(t *testing.T) {
	// Arrange
	path := filepath.Join(t.TempDir(), "does-not-exist.json")

	// Act
	kv, err := NewFile(path)

	// Assert
	if err != nil {
		t.Fatalf("expected a missing file to be fine, got %v", err)
	}
	if _, ok, _ := kv.Get(context.Background(), "anything"); ok {
		t.Error("expected a fresh store to be empty")
	}
}
