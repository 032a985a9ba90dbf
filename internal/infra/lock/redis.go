package lock

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/registrar-queue/internal/httperr"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lease can never release somebody else's lock.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisConfig struct {
	// TTL bounds how long a crashed holder can block a scope.
	TTL time.Duration
	// Wait bounds how long Acquire retries before ErrTimeout.
	Wait time.Duration
	// Retry is the pause between SETNX attempts.
	Retry  time.Duration
	Prefix string
}

// RedisLocker is a Locker shared by every instance using the same Redis.
type RedisLocker struct {
	client *redis.Client
	cfg    RedisConfig
	log    zerolog.Logger
}

func NewRedisLocker(client *redis.Client, cfg RedisConfig, log zerolog.Logger) *RedisLocker {
	if cfg.TTL <= 0 {
		cfg.TTL = 10 * time.Second
	}
	if cfg.Retry <= 0 {
		cfg.Retry = 25 * time.Millisecond
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "registrar:lock:"
	}
	return &RedisLocker{client: client, cfg: cfg, log: log}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	if l.cfg.Wait > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.cfg.Wait)
		defer cancel()
	}

	redisKey := l.cfg.Prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.cfg.Retry)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.cfg.TTL).Result()
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return nil, waitError(ctxErr)
			}
			return nil, fmt.Errorf("%w: redis setnx %s: %v", httperr.ErrStoreUnavailable, redisKey, err)
		}
		if ok {
			return l.unlockFunc(redisKey, token), nil
		}

		select {
		case <-ctx.Done():
			return nil, waitError(ctx.Err())
		case <-ticker.C:
		}
	}
}

func (l *RedisLocker) unlockFunc(redisKey, token string) func() {
	released := false
	return func() {
		if released {
			return
		}
		released = true

		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()

		if err := releaseScript.Run(ctx, l.client, []string{redisKey}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
			l.log.Warn().Err(err).Str("key", redisKey).Msg("scope lock release failed, waiting for ttl")
		}
	}
}

func waitError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

var _ Locker = (*RedisLocker)(nil)
