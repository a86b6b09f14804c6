package guard

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/kaviyasaravananibm/vibe-narrative/internal/domain"
)

const keyPrefix = "story-relay:inflight:"

// releaseScript deletes the marker only if it still holds our token, so a
// marker that expired and was re-acquired by a newer request survives.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisGuard shares in-flight markers between relay instances.
// Markers expire after ttl in case a release is lost.
type RedisGuard struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewRedisGuard(rdb *redis.Client, ttl time.Duration, logger *slog.Logger) *RedisGuard {
	return &RedisGuard{rdb: rdb, ttl: ttl, logger: logger}
}

func (g *RedisGuard) Acquire(ctx context.Context, sessionID string) (func(), error) {
	key := keyPrefix + sessionID
	token := uuid.NewString()

	ok, err := g.rdb.SetNX(ctx, key, token, g.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("acquire session guard: %w", err)
	}
	if !ok {
		return nil, domain.ErrSessionBusy
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// The request context may already be cancelled.
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := releaseScript.Run(ctx, g.rdb, []string{key}, token).Err(); err != nil {
				g.logger.Warn("release session guard", "session", sessionID, "error", err)
			}
		})
	}, nil
}

// Ping checks connectivity at startup.
func (g *RedisGuard) Ping(ctx context.Context) error {
	return g.rdb.Ping(ctx).Err()
}
