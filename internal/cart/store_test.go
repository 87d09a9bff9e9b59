package cart

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type fakeRedis struct {
	data map[string]string
	ttls map[string]time.Duration
}

func newFakeRedis() *fakeRedis {
	return &fakeRedis{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (f *fakeRedis) Set(_ context.Context, key string, value any, ttl time.Duration) error {
	f.data[key] = value.(string)
	f.ttls[key] = ttl
	return nil
}

func (f *fakeRedis) Get(_ context.Context, key string) (string, error) {
	v, ok := f.data[key]
	if !ok {
		return "", goredis.Nil
	}
	return v, nil
}

func (f *fakeRedis) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(f.data, key)
	}
	return nil
}

func (f *fakeRedis) CartKey(sessionID string) string {
	return "tb:cart:" + sessionID
}

func TestRedisStoreRoundTrip(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	items := []StagedItem{stagedItem("first", 7), stagedItem("second", 3)}
	if err := store.Save(ctx, "sess-1", items); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if client.ttls["tb:cart:sess-1"] != time.Hour {
		t.Fatalf("expected save to set the session TTL")
	}

	loaded, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(loaded) != 2 || loaded[0].TileName != "first" || loaded[1].BoxesNeeded != 3 {
		t.Fatalf("unexpected round trip: %+v", loaded)
	}
}

func TestRedisStoreMissingKeyIsEmptyCart(t *testing.T) {
	store := NewRedisStore(newFakeRedis(), time.Hour)

	items, err := store.Load(context.Background(), "never-seen")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty cart, got %+v", items)
	}
}

func TestRedisStoreClear(t *testing.T) {
	client := newFakeRedis()
	store := NewRedisStore(client, time.Hour)
	ctx := context.Background()

	if err := store.Save(ctx, "sess-1", []StagedItem{stagedItem("x", 1)}); err != nil {
		t.Fatalf("save failed: %v", err)
	}
	if err := store.Clear(ctx, "sess-1"); err != nil {
		t.Fatalf("clear failed: %v", err)
	}

	items, err := store.Load(ctx, "sess-1")
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected cleared cart, got %+v", items)
	}
}
