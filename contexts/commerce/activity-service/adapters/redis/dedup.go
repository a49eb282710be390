package redisadapter

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domainerrors "orderflow/contexts/commerce/activity-service/domain/errors"
)

const keyPrefix = "orderflow:activity:dedup:"

// reserveScript stores ARGV[1] under KEYS[1] with a PX expiry of ARGV[2]
// unless the key exists. Returns 0 when reserved, 1 when the stored hash
// matches, -1 when it differs.
var reserveScript = redis.NewScript(`
local existing = redis.call("GET", KEYS[1])
if not existing then
    redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[2])
    return 0
end
if existing == ARGV[1] then
    return 1
end
return -1
`)

// releaseScript deletes KEYS[1] only while it still holds ARGV[1].
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
    return redis.call("DEL", KEYS[1])
end
return 0
`)

// DedupStore implements ports.EventDedupStore on Redis keys with TTL.
type DedupStore struct {
	client redis.UniversalClient
	now    func() time.Time
}

func NewDedupStore(client redis.UniversalClient) *DedupStore {
	return &DedupStore{
		client: client,
		now:    time.Now,
	}
}

// NewClient builds the client used by NewDedupStore.
func NewClient(addr string) *redis.Client {
	return redis.NewClient(&redis.Options{Addr: addr})
}

func (s *DedupStore) ReserveEvent(ctx context.Context, eventID string, payloadHash string, expiresAt time.Time) (bool, error) {
	ttl := expiresAt.Sub(s.now())
	if ttl < time.Millisecond {
		ttl = time.Millisecond
	}
	res, err := reserveScript.Run(ctx, s.client, []string{keyPrefix + eventID}, payloadHash, ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("redis reserve event %s: %w", eventID, err)
	}
	switch res {
	case 0:
		return false, nil
	case 1:
		return true, nil
	default:
		return false, domainerrors.ErrEventPayloadConflict
	}
}

func (s *DedupStore) ReleaseEvent(ctx context.Context, eventID string, payloadHash string) error {
	if err := releaseScript.Run(ctx, s.client, []string{keyPrefix + eventID}, payloadHash).Err(); err != nil {
		return fmt.Errorf("redis release event %s: %w", eventID, err)
	}
	return nil
}
