package redis

import (
	"context"
	"time"

	"musafir/internal/domain"
)

// DraftStoreInterface defines the interface for draft hand-off storage.
type DraftStoreInterface interface {
	SetRegistrationDraft(ctx context.Context, userID string, draft *domain.RegistrationDraft) error
	GetRegistrationDraft(ctx context.Context, userID, flagshipID string) (*domain.RegistrationDraft, error)
	ClearRegistrationDraft(ctx context.Context, userID, flagshipID string) error
	SetActiveFlagship(ctx context.Context, userID, flagshipID string) error
	GetActiveFlagship(ctx context.Context, userID string) (string, error)
	ClearActiveFlagship(ctx context.Context, userID string) error
}

// LockStoreInterface defines the interface for submission locking.
type LockStoreInterface interface {
	AcquireSubmissionLock(ctx context.Context, flagshipID, step string, ttl time.Duration) (bool, error)
	ReleaseSubmissionLock(ctx context.Context, flagshipID, step string) error
}

// CacheStoreInterface defines the interface for flagship caching.
type CacheStoreInterface interface {
	GetFlagship(ctx context.Context, id string) (*domain.Flagship, error)
	SetFlagship(ctx context.Context, f *domain.Flagship) error
	InvalidateFlagship(ctx context.Context, id string) error
}

// Ensure concrete types implement interfaces.
var (
	_ DraftStoreInterface = (*DraftStore)(nil)
	_ LockStoreInterface  = (*LockStore)(nil)
	_ CacheStoreInterface = (*CacheStore)(nil)
)
