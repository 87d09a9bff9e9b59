package cart

import (
	"context"
	"encoding/json"
	"time"

	pkgerrors "github.com/rkotecha/tilebill-backend/pkg/errors"
	"github.com/rkotecha/tilebill-backend/pkg/redis"
)

// Store persists a session's staged items between requests.
type Store interface {
	Load(ctx context.Context, sessionID string) ([]StagedItem, error)
	Save(ctx context.Context, sessionID string, items []StagedItem) error
	Clear(ctx context.Context, sessionID string) error
}

type redisCartClient interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	CartKey(sessionID string) string
}

type redisStore struct {
	client redisCartClient
	ttl    time.Duration
}

// NewRedisStore builds a cart store holding one JSON document per session.
// Every save refreshes the TTL, so a cart expires only after the session
// goes idle for the full window.
func NewRedisStore(client redisCartClient, ttl time.Duration) Store {
	return &redisStore{client: client, ttl: ttl}
}

func (s *redisStore) Load(ctx context.Context, sessionID string) ([]StagedItem, error) {
	raw, err := s.client.Get(ctx, s.client.CartKey(sessionID))
	if err != nil {
		if redis.IsNil(err) {
			return []StagedItem{}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading cart")
	}

	var items []StagedItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decoding cart payload")
	}
	return items, nil
}

func (s *redisStore) Save(ctx context.Context, sessionID string, items []StagedItem) error {
	payload, err := json.Marshal(items)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encoding cart payload")
	}
	if err := s.client.Set(ctx, s.client.CartKey(sessionID), string(payload), s.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "saving cart")
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, s.client.CartKey(sessionID)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clearing cart")
	}
	return nil
}
