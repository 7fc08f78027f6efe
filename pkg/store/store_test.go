package store

import (
	"context"
	"math/rand"
	"testing"

	"go-storefront/pkg/kvstore"
	"go-storefront/pkg/logger"
)

// testItem is a minimal entity for exercising the generic store
type testItem struct {
	ID  int `json:"id"`
	Qty int `json:"qty"`
}

func newTestStore(t *testing.T, kv kvstore.Store) *Store[int, testItem] {
	t.Helper()
	log := logger.New("test", "error")
	return New(context.Background(), Options[int, testItem]{
		KeyOf: func(i testItem) int { return i.ID },
		Merge: func(existing *testItem, incoming testItem) {
			existing.Qty += incoming.Qty
		},
		Snapshot: NewSnapshot[testItem](kv, "test-items", log),
		Log:      log,
	})
}

func TestUpsert_MergesOnDuplicateKey(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()

	// Act
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})
	s.Upsert(ctx, testItem{ID: 2, Qty: 5})
	s.Upsert(ctx, testItem{ID: 1, Qty: 2})

	// Assert
	items := s.All()
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].ID != 1 || items[0].Qty != 3 {
		t.Errorf("expected item 1 with qty 3, got %+v", items[0])
	}
	if items[1].ID != 2 || items[1].Qty != 5 {
		t.Errorf("expected item 2 with qty 5, got %+v", items[1])
	}
}

func TestUpsert_RandomSequenceKeepsOneEntityPerKey(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	rng := rand.New(rand.NewSource(42))
	want := make(map[int]int)

	// Act
	for i := 0; i < 500; i++ {
		id := rng.Intn(10)
		qty := rng.Intn(5) + 1
		want[id] += qty
		s.Upsert(ctx, testItem{ID: id, Qty: qty})
	}

	// Assert
	items := s.All()
	if len(items) != len(want) {
		t.Fatalf("expected %d distinct items, got %d", len(want), len(items))
	}
	seen := make(map[int]bool)
	for _, item := range items {
		if seen[item.ID] {
			t.Fatalf("duplicate entity for id %d", item.ID)
		}
		seen[item.ID] = true
		if item.Qty != want[item.ID] {
			t.Errorf("id %d: expected qty %d, got %d", item.ID, want[item.ID], item.Qty)
		}
	}
}

func TestRemove_AbsentKeyIsNoOp(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})

	// Act
	s.Remove(ctx, 99)

	// Assert
	if s.Len() != 1 {
		t.Errorf("expected 1 item, got %d", s.Len())
	}
}

func TestUpdate_AbsentKeyIsNoOp(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	called := false

	// Act
	s.Update(ctx, 99, func(i *testItem) { called = true })

	// Assert
	if called {
		t.Error("expected updater not to run for absent key")
	}
}

func TestAll_ReturnsIndependentCopy(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})

	// Act
	items := s.All()
	items[0].Qty = 999

	// Assert
	if got := s.All()[0].Qty; got != 1 {
		t.Errorf("mutating the returned slice leaked into the store: qty %d", got)
	}
}

func TestClear_EmptiesCollection(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})
	s.Upsert(ctx, testItem{ID: 2, Qty: 2})

	// Act
	s.Clear(ctx)

	// Assert
	if s.Len() != 0 {
		t.Errorf("expected empty store, got %d items", s.Len())
	}
}

func TestSubscribe_UnsubscribeRemovesCallback(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	calls := 0
	unsubscribe := s.Subscribe(func() { calls++ })

	// Act
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})
	unsubscribe()
	unsubscribe() // idempotent
	s.Upsert(ctx, testItem{ID: 2, Qty: 1})

	// Assert
	if calls != 1 {
		t.Errorf("expected 1 notification, got %d", calls)
	}
}

func TestSubscribe_DoubleSubscriptionIsNotDeduplicated(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	calls := 0
	fn := func() { calls++ }
	s.Subscribe(fn)
	s.Subscribe(fn)

	// Act
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})

	// Assert
	if calls != 2 {
		t.Errorf("expected the callback to run twice, got %d", calls)
	}
}

func TestSubscribe_PanickingCallbackDoesNotAbortRound(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	secondRan := false
	s.Subscribe(func() { panic("boom") })
	s.Subscribe(func() { secondRan = true })

	// Act
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})

	// Assert
	if !secondRan {
		t.Error("expected the second subscriber to run after the first panicked")
	}
}

func TestSubscribe_CallbackObservesPersistedState(t *testing.T) {
	// Arrange
	kv := kvstore.NewMemory()
	s := newTestStore(t, kv)
	ctx := context.Background()
	var seenLen int
	var persisted string
	s.Subscribe(func() {
		seenLen = s.Len()
		persisted, _, _ = kv.Get(context.Background(), "test-items")
	})

	// Act
	s.Upsert(ctx, testItem{ID: 1, Qty: 1})

	// Assert
	if seenLen != 1 {
		t.Errorf("expected the callback to see the new state, got len %d", seenLen)
	}
	if persisted != `[{"id":1,"qty":1}]` {
		t.Errorf("expected the snapshot to be durable before notification, got %q", persisted)
	}
}

func TestNew_ReloadsPersistedSnapshot(t *testing.T) {
	// Arrange
	kv := kvstore.NewMemory()
	ctx := context.Background()
	first := newTestStore(t, kv)
	first.Upsert(ctx, testItem{ID: 1, Qty: 2})
	first.Upsert(ctx, testItem{ID: 7, Qty: 4})

	// Act
	second := newTestStore(t, kv)

	// Assert
	items := second.All()
	if len(items) != 2 {
		t.Fatalf("expected 2 reloaded items, got %d", len(items))
	}
	if items[0] != (testItem{ID: 1, Qty: 2}) || items[1] != (testItem{ID: 7, Qty: 4}) {
		t.Errorf("reloaded collection differs: %+v", items)
	}
}

func TestNew_CorruptSnapshotFallsBackToEmpty(t *testing.T) {
	// Arrange
	kv := kvstore.NewMemory()
	if err := kv.Set(context.Background(), "test-items", "{not json"); err != nil {
		t.Fatalf("failed to seed corrupt value: %v", err)
	}

	// Act
	s := newTestStore(t, kv)

	// Assert
	if s.Len() != 0 {
		t.Errorf("expected empty store after corrupt snapshot, got %d items", s.Len())
	}
}

func TestFind_ReturnsEntityByKey(t *testing.T) {
	// Arrange
	s := newTestStore(t, kvstore.NewMemory())
	ctx := context.Background()
	s.Upsert(ctx, testItem{ID: 3, Qty: 9})

	// Act
	got, ok := s.Find(3)
	_, missing := s.Find(4)

	// Assert
	if !ok || got.Qty != 9 {
		t.Errorf("expected to find item 3 with qty 9, got %+v (ok=%v)", got, ok)
	}
	if missing {
		t.Error("expected item 4 to be absent")
	}
}
