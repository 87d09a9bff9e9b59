package cart

import (
	"context"
	"fmt"
	"sync"

	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
)

// Service exposes session cart operations. Mutations on the same session
// are serialized so concurrent removals cannot race index checks.
type Service interface {
	Items(ctx context.Context, sessionID string) ([]StagedItem, error)
	Add(ctx context.Context, sessionID string, item StagedItem) (int, error)
	RemoveAt(ctx context.Context, sessionID string, index int) error
	Clear(ctx context.Context, sessionID string) error
}

type service struct {
	store    Store
	maxItems int

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewService builds a cart service on top of the provided store.
func NewService(store Store, maxItems int) (Service, error) {
	if store == nil {
		return nil, fmt.Errorf("cart store required")
	}
	if maxItems <= 0 {
		return nil, fmt.Errorf("max items must be positive")
	}
	return &service{
		store:    store,
		maxItems: maxItems,
		locks:    map[string]*sync.Mutex{},
	}, nil
}

func (s *service) sessionLock(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	lock, ok := s.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		s.locks[sessionID] = lock
	}
	return lock
}

func (s *service) Items(ctx context.Context, sessionID string) ([]StagedItem, error) {
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}
	return s.store.Load(ctx, sessionID)
}

// Add appends an item and returns the new cart size.
func (s *service) Add(ctx context.Context, sessionID string, item StagedItem) (int, error) {
	if sessionID == "" {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return 0, err
	}
	if len(items) >= s.maxItems {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "cart item limit reached")
	}

	items = append(items, item)
	if err := s.store.Save(ctx, sessionID, items); err != nil {
		return 0, err
	}
	return len(items), nil
}

// RemoveAt drops the item at index. The index is validated against the
// cart as it exists under the lock, so a stale index from a concurrent
// removal is rejected rather than deleting the wrong line.
func (s *service) RemoveAt(ctx context.Context, sessionID string, index int) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	items, err := s.store.Load(ctx, sessionID)
	if err != nil {
		return err
	}
	if index < 0 || index >= len(items) {
		return pkgerrors.New(pkgerrors.CodeIndexRange, "invalid index")
	}

	items = append(items[:index], items[index+1:]...)
	return s.store.Save(ctx, sessionID, items)
}

func (s *service) Clear(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "session id is required")
	}

	lock := s.sessionLock(sessionID)
	lock.Lock()
	defer lock.Unlock()

	return s.store.Clear(ctx, sessionID)
}
