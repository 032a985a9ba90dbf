package lock

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	t.Cleanup(func() { _ = client.Close() })
	if err := client.Ping(context.Background()).Err(); err != nil {
		t.Fatalf("redis ping: %v", err)
	}
	return client
}

func TestRedisLocker_ExclusiveAndReleases(t *testing.T) {
	client := newTestRedis(t)
	l := NewRedisLocker(client, RedisConfig{
		TTL:    time.Second,
		Wait:   100 * time.Millisecond,
		Prefix: "test:" + uuid.NewString() + ":",
	}, zerolog.Nop())

	unlock, err := l.Acquire(context.Background(), "queue:global")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}

	if _, err := l.Acquire(context.Background(), "queue:global"); !errors.Is(err, ErrTimeout) {
		t.Fatalf("second acquire err = %v, want ErrTimeout", err)
	}

	unlock()

	unlock2, err := l.Acquire(context.Background(), "queue:global")
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	unlock2()
}

func TestRedisLocker_StaleUnlockKeepsNewHolder(t *testing.T) {
	client := newTestRedis(t)
	prefix := "test:" + uuid.NewString() + ":"
	l := NewRedisLocker(client, RedisConfig{
		TTL:    50 * time.Millisecond,
		Wait:   time.Second,
		Prefix: prefix,
	}, zerolog.Nop())

	staleUnlock, err := l.Acquire(context.Background(), "k")
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	time.Sleep(100 * time.Millisecond)

	unlock, err := l.Acquire(context.Background(), "k")
	if err != nil {
		t.Fatalf("acquire after ttl: %v", err)
	}
	defer unlock()

	staleUnlock()

	exists, err := client.Exists(context.Background(), prefix+"k").Result()
	if err != nil {
		t.Fatalf("exists: %v", err)
	}
	if exists != 1 {
		t.Error("stale unlock must not release the current holder's lock")
	}
}
