package booking

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

func TestCacheKey_MatchesPromptValues(t *testing.T) {
	a := scenarioQuery()
	if cacheKey(a) != cacheKey(scenarioQuery()) {
		t.Fatal("equal queries must share a key")
	}
	b := a
	b.Source = "mumbai central"
	if cacheKey(a) == cacheKey(b) {
		t.Fatal("stations that differ in case produce different prompts and must not share a key")
	}
	c := a
	c.PassengerCount = 3
	if cacheKey(a) == cacheKey(c) {
		t.Fatal("keys must differ for different passenger counts")
	}
}

// TestStoreRoundTrip needs a real Redis; it skips when RAILMATE_TEST_REDIS is not set.
func TestStoreRoundTrip(t *testing.T) {
	addr := os.Getenv("RAILMATE_TEST_REDIS")
	if addr == "" {
		t.Skip("RAILMATE_TEST_REDIS not set; skipping Redis-backed tests")
	}
	ctx := context.Background()
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })

	store := NewStore(rdb, time.Minute)
	q := scenarioQuery()
	q.Source = "Store Test " + time.Now().Format(time.RFC3339Nano)
	t.Cleanup(func() { rdb.Del(context.Background(), cacheKey(q)) })

	if _, ok, err := store.Get(ctx, q); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}
	want := Extract(wellFormed)
	if err := store.Set(ctx, q, want); err != nil {
		t.Fatalf("Set: %v", err)
	}
	got, ok, err := store.Get(ctx, q)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("got %+v want %+v", got, want)
	}
}
