package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	redisv9 "github.com/redis/go-redis/v9"

	"github.com/lumenchat/auth-service/internal/domain/auth/model"
)

func newCache(t *testing.T) (*RedisUserCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	t.Cleanup(mr.Close)

	client := redisv9.NewClient(&redisv9.Options{
		Addr: mr.Addr(),
	})
	return NewRedisUserCache(client, 5*time.Minute), mr
}

func TestRedisUserCache_SetGet(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "ada@x.com", FullName: "Ada", PasswordHash: "must-not-land-in-redis"}
	if err := cache.Set(ctx, u); err != nil {
		t.Fatalf("Set: %v", err)
	}

	got, ok, err := cache.Get(ctx, u.ID)
	if err != nil || !ok {
		t.Fatalf("Get: %v ok=%v", err, ok)
	}
	if got.Email != u.Email {
		t.Fatalf("want %s got %s", u.Email, got.Email)
	}
	if got.PasswordHash != "" {
		t.Fatal("cache entries must be sanitized")
	}
}

func TestRedisUserCache_Miss(t *testing.T) {
	cache, _ := newCache(t)

	_, ok, err := cache.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Fatal("unexpected hit")
	}
}

func TestRedisUserCache_Invalidate(t *testing.T) {
	cache, _ := newCache(t)
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "ada@x.com"}
	if err := cache.Set(ctx, u); err != nil {
		t.Fatal(err)
	}
	if err := cache.Invalidate(ctx, u.ID); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	if _, ok, _ := cache.Get(ctx, u.ID); ok {
		t.Fatal("entry survived invalidation")
	}
}

func TestRedisUserCache_TTLExpiry(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	u := model.User{ID: uuid.New(), Email: "ada@x.com"}
	if err := cache.Set(ctx, u); err != nil {
		t.Fatal(err)
	}

	mr.FastForward(6 * time.Minute)
	if _, ok, _ := cache.Get(ctx, u.ID); ok {
		t.Fatal("entry should have expired")
	}
}

func TestRedisUserCache_CorruptEntryIsAMiss(t *testing.T) {
	cache, mr := newCache(t)
	ctx := context.Background()

	id := uuid.New()
	mr.Set(userKey(id), "{not json")

	_, ok, err := cache.Get(ctx, id)
	if err != nil || ok {
		t.Fatalf("corrupt entry: ok=%v err=%v", ok, err)
	}
}
