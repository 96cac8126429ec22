package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"musafir/internal/domain"
)

// DraftStore holds in-progress wizard and registration drafts between
// pages. It replaces the browser local-storage hand-off of the original
// flow with typed, validated entries that expire on their own.
type DraftStore struct {
	client *redis.Client
}

// NewDraftStore creates a new DraftStore.
func NewDraftStore(client *redis.Client) *DraftStore {
	return &DraftStore{client: client}
}

// DraftTTL is how long an abandoned draft survives.
const DraftTTL = 7 * 24 * time.Hour

const (
	registrationDraftPrefix = "draft:registration:"
	activeFlagshipPrefix    = "draft:flagship:"
)

// SetRegistrationDraft stores a user's in-progress registration selections.
func (s *DraftStore) SetRegistrationDraft(ctx context.Context, userID string, draft *domain.RegistrationDraft) error {
	data, err := json.Marshal(draft)
	if err != nil {
		return err
	}
	key := registrationDraftKey(userID, draft.FlagshipID)
	return s.client.Set(ctx, key, data, DraftTTL).Err()
}

// GetRegistrationDraft retrieves a user's draft for a flagship.
// Returns nil on a miss; a malformed entry is an error, never a
// silently-empty draft.
func (s *DraftStore) GetRegistrationDraft(ctx context.Context, userID, flagshipID string) (*domain.RegistrationDraft, error) {
	data, err := s.client.Get(ctx, registrationDraftKey(userID, flagshipID)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, err
	}

	var draft domain.RegistrationDraft
	if err := json.Unmarshal(data, &draft); err != nil {
		return nil, fmt.Errorf("corrupt registration draft: %w", err)
	}
	return &draft, nil
}

// ClearRegistrationDraft removes a user's draft after submission or abandonment.
func (s *DraftStore) ClearRegistrationDraft(ctx context.Context, userID, flagshipID string) error {
	return s.client.Del(ctx, registrationDraftKey(userID, flagshipID)).Err()
}

// SetActiveFlagship remembers which flagship an admin's wizard session
// is editing.
func (s *DraftStore) SetActiveFlagship(ctx context.Context, userID, flagshipID string) error {
	return s.client.Set(ctx, activeFlagshipPrefix+userID, flagshipID, DraftTTL).Err()
}

// GetActiveFlagship returns the flagship an admin's wizard session is
// editing, empty on a miss.
func (s *DraftStore) GetActiveFlagship(ctx context.Context, userID string) (string, error) {
	id, err := s.client.Get(ctx, activeFlagshipPrefix+userID).Result()
	if err != nil {
		if err == redis.Nil {
			return "", nil
		}
		return "", err
	}
	return id, nil
}

// ClearActiveFlagship forgets the wizard session, called on Success or abandon.
func (s *DraftStore) ClearActiveFlagship(ctx context.Context, userID string) error {
	return s.client.Del(ctx, activeFlagshipPrefix+userID).Err()
}

func registrationDraftKey(userID, flagshipID string) string {
	return fmt.Sprintf("%s%s:%s", registrationDraftPrefix, userID, flagshipID)
}
