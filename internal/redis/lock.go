package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockStore handles distributed locking in Redis.
type LockStore struct {
	client *redis.Client
}

// NewLockStore creates a new LockStore.
func NewLockStore(client *redis.Client) *LockStore {
	return &LockStore{client: client}
}

// AcquireSubmissionLock attempts to acquire the in-flight lock for one
// wizard step submission. Returns true if acquired, false if a submit
// for the same flagship and step is already running.
func (s *LockStore) AcquireSubmissionLock(ctx context.Context, flagshipID, step string, ttl time.Duration) (bool, error) {
	key := submissionLockKey(flagshipID, step)

	ok, err := s.client.SetNX(ctx, key, "1", ttl).Result()
	if err != nil {
		return false, err
	}

	return ok, nil
}

// ReleaseSubmissionLock releases the in-flight lock once the upsert finishes.
func (s *LockStore) ReleaseSubmissionLock(ctx context.Context, flagshipID, step string) error {
	return s.client.Del(ctx, submissionLockKey(flagshipID, step)).Err()
}

func submissionLockKey(flagshipID, step string) string {
	return fmt.Sprintf("lock:wizard:%s:%s", flagshipID, step)
}
