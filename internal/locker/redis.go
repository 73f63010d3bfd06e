package locker

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"

	"trainslot/internal/logger"
)

// releaseScript deletes the key only if it still holds our token, so a lock
// that expired and was re-acquired by another writer is never released by us.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

const retryInterval = 25 * time.Millisecond

// RedisLocker implements Locker with SET NX PX. The TTL bounds how long a
// crashed holder can block other writers; the database exclusion constraints
// keep correctness even if the key expires mid-region.
type RedisLocker struct {
	client   *redis.Client
	ttl      time.Duration
	newToken func() string
}

func NewRedisLocker(client *redis.Client, ttl time.Duration) *RedisLocker {
	return &RedisLocker{
		client:   client,
		ttl:      ttl,
		newToken: randomToken,
	}
}

func randomToken() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		// rand.Read failing means the process is in serious trouble anyway
		return time.Now().Format(time.RFC3339Nano)
	}
	return hex.EncodeToString(b)
}

func (l *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	token := l.newToken()

	for {
		ok, err := l.client.SetNX(ctx, key, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, ErrNotAcquired
			}
			return nil, err
		}
		if ok {
			return func() { l.release(key, token) }, nil
		}

		select {
		case <-time.After(retryInterval):
		case <-ctx.Done():
			return nil, ErrNotAcquired
		}
	}
}

func (l *RedisLocker) release(key, token string) {
	// Release happens on a fresh context: the request context may already be
	// cancelled, and an unreleased key would block the owner until TTL.
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := l.client.Eval(ctx, releaseScript, []string{key}, token).Err(); err != nil && err != redis.Nil {
		logger.Errorf("failed to release lock %s: %v", key, err)
	}
}
