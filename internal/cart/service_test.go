package cart

import (
	"context"
	"sync"
	"testing"

	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
)

type memoryStore struct {
	mu    sync.Mutex
	carts map[string][]StagedItem
}

func newMemoryStore() *memoryStore {
	return &memoryStore{carts: map[string][]StagedItem{}}
}

func (m *memoryStore) Load(_ context.Context, sessionID string) ([]StagedItem, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	items := m.carts[sessionID]
	out := make([]StagedItem, len(items))
	copy(out, items)
	return out, nil
}

func (m *memoryStore) Save(_ context.Context, sessionID string, items []StagedItem) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	saved := make([]StagedItem, len(items))
	copy(saved, items)
	m.carts[sessionID] = saved
	return nil
}

func (m *memoryStore) Clear(_ context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, sessionID)
	return nil
}

func newTestService(t *testing.T, maxItems int) (Service, *memoryStore) {
	t.Helper()
	store := newMemoryStore()
	svc, err := NewService(store, maxItems)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, store
}

func stagedItem(name string, boxes int) StagedItem {
	return StagedItem{TileName: name, BoxesNeeded: boxes}
}

func TestAddAndItems(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	count, err := svc.Add(ctx, "sess-1", stagedItem("first", 7))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected count 1, got %d", count)
	}

	count, err = svc.Add(ctx, "sess-1", stagedItem("second", 3))
	if err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if count != 2 {
		t.Fatalf("expected count 2, got %d", count)
	}

	items, err := svc.Items(ctx, "sess-1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 2 || items[0].TileName != "first" || items[1].TileName != "second" {
		t.Fatalf("unexpected items order: %+v", items)
	}
}

func TestCartsAreSessionScoped(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-a", stagedItem("a", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	items, err := svc.Items(ctx, "sess-b")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart for other session, got %+v", items)
	}
}

func TestRemoveAtShiftsRemaining(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	for _, name := range []string{"a", "b", "c"} {
		if _, err := svc.Add(ctx, "sess-1", stagedItem(name, 1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	if err := svc.RemoveAt(ctx, "sess-1", 1); err != nil {
		t.Fatalf("remove failed: %v", err)
	}

	items, err := svc.Items(ctx, "sess-1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 2 || items[0].TileName != "a" || items[1].TileName != "c" {
		t.Fatalf("unexpected items after removal: %+v", items)
	}
}

func TestRemoveAtRejectsOutOfRange(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", stagedItem("only", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}

	for _, index := range []int{-1, 1, 5} {
		err := svc.RemoveAt(ctx, "sess-1", index)
		appErr := pkgerrors.As(err)
		if appErr == nil || appErr.Code() != pkgerrors.CodeIndexRange {
			t.Fatalf("expected index range error for %d, got %v", index, err)
		}
	}
}

func TestAddEnforcesItemLimit(t *testing.T) {
	svc, _ := newTestService(t, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, err := svc.Add(ctx, "sess-1", stagedItem("x", 1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	_, err := svc.Add(ctx, "sess-1", stagedItem("overflow", 1))
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error at limit, got %v", err)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "sess-1", stagedItem("x", 1)); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := svc.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, err := svc.Items(ctx, "sess-1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestConcurrentRemovalsNeverDropWrongLine(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	const n = 20
	for i := 0; i < n; i++ {
		if _, err := svc.Add(ctx, "sess-1", stagedItem("x", 1)); err != nil {
			t.Fatalf("add failed: %v", err)
		}
	}

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = svc.RemoveAt(ctx, "sess-1", i)
		}(i)
	}
	wg.Wait()

	removed := 0
	for _, err := range errs {
		if err == nil {
			removed++
		} else if appErr := pkgerrors.As(err); appErr == nil || appErr.Code() != pkgerrors.CodeIndexRange {
			t.Fatalf("unexpected error: %v", err)
		}
	}

	items, err := svc.Items(ctx, "sess-1")
	if err != nil {
		t.Fatalf("items failed: %v", err)
	}
	if removed+len(items) != n {
		t.Fatalf("lost or duplicated lines: removed=%d remaining=%d", removed, len(items))
	}
}

func TestSessionIDRequired(t *testing.T) {
	svc, _ := newTestService(t, 100)
	ctx := context.Background()

	if _, err := svc.Add(ctx, "", stagedItem("x", 1)); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := svc.RemoveAt(ctx, "", 0); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if err := svc.Clear(ctx, ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
	if _, err := svc.Items(ctx, ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}
