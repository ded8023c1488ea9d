package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if it still carries our token, so a
// holder whose lock expired cannot free someone else's.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// LockStore serialises transitions on a single booking across API instances.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireBookingLock attempts to lock the booking for ttl. It returns the
// token needed to release the lock, or "" if the lock is already held.
func (s *LockStore) AcquireBookingLock(ctx context.Context, bookingID string, ttl time.Duration) (string, error) {
	token := uuid.NewString()

	ok, err := s.client.SetNX(ctx, bookingLockKey(bookingID), token, ttl).Result()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}

	return token, nil
}

// ReleaseBookingLock releases the lock if token still owns it.
func (s *LockStore) ReleaseBookingLock(ctx context.Context, bookingID, token string) error {
	return releaseScript.Run(ctx, s.client, []string{bookingLockKey(bookingID)}, token).Err()
}

func bookingLockKey(bookingID string) string {
	return fmt.Sprintf("driveu:lock:booking:%s", bookingID)
}
