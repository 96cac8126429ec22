package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"

	"musafir/internal/domain"
)

// CacheStore caches flagship reads in Redis. Live flagship pages are
// the hottest read path once registrations open.
type CacheStore struct {
	client *redis.Client
}

// NewCacheStore creates a new CacheStore.
func NewCacheStore(client *redis.Client) *CacheStore {
	return &CacheStore{client: client}
}

// FlagshipCacheTTL is short: drafts mutate on every wizard step.
const FlagshipCacheTTL = 30 * time.Second

const flagshipCachePrefix = "cache:flagship:"

// GetFlagship retrieves a flagship from cache. Returns nil on a miss.
func (s *CacheStore) GetFlagship(ctx context.Context, id string) (*domain.Flagship, error) {
	data, err := s.client.Get(ctx, flagshipCachePrefix+id).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var f domain.Flagship
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

// SetFlagship stores a flagship in cache.
func (s *CacheStore) SetFlagship(ctx context.Context, f *domain.Flagship) error {
	data, err := json.Marshal(f)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, flagshipCachePrefix+f.ID, data, FlagshipCacheTTL).Err()
}

// InvalidateFlagship drops a flagship from cache after a wizard write.
func (s *CacheStore) InvalidateFlagship(ctx context.Context, id string) error {
	return s.client.Del(ctx, flagshipCachePrefix+id).Err()
}
