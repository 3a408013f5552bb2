package lock

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/logger"
)

// releaseScript deletes the key only while it still holds our token, so an
// expired lock taken over by another caller is never released by us.
var releaseScript = redis.NewScript(`
if redis.call("get", KEYS[1]) == ARGV[1] then
	return redis.call("del", KEYS[1])
end
return 0
`)

type RedisLocker struct {
	client redis.UniversalClient
	prefix string
	opts   Options
}

func NewRedisLocker(client redis.UniversalClient, opts Options) *RedisLocker {
	return &RedisLocker{
		client: client,
		prefix: "salon:lock:",
		opts:   opts.withDefaults(),
	}
}

// NewRedisClient parses a redis:// URL and checks the server answers.
func NewRedisClient(ctx context.Context, url string) (*redis.Client, error) {
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return client, nil
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	fullKey := l.prefix + key
	token := uuid.NewString()

	err := retry(ctx, l.opts, func() (bool, error) {
		ok, err := l.client.SetNX(ctx, fullKey, token, l.opts.TTL).Result()
		if err != nil {
			return false, fmt.Errorf("redis setnx %s: %w", fullKey, err)
		}
		return ok, nil
	})
	if err != nil {
		return nil, err
	}

	return func() {
		// The caller's ctx may already be cancelled; release regardless.
		if err := releaseScript.Run(context.Background(), l.client, []string{fullKey}, token).Err(); err != nil {
			logger.Log.Warn("lock release failed", zap.String("key", fullKey), zap.Error(err))
		}
	}, nil
}

var _ Locker = (*RedisLocker)(nil)
