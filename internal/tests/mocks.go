package tests

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"musafir/internal/domain"
	"musafir/internal/repository"
)

// ──────────────────────────────────────────────
// MOCK FLAGSHIP REPOSITORY
// ──────────────────────────────────────────────

// MockFlagshipRepository is a mock implementation of FlagshipRepository.
type MockFlagshipRepository struct {
	mu        sync.RWMutex
	flagships map[string]*domain.Flagship

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockFlagshipRepository creates a new mock flagship repository.
func NewMockFlagshipRepository() *MockFlagshipRepository {
	return &MockFlagshipRepository{
		flagships: make(map[string]*domain.Flagship),
	}
}

// AddFlagship seeds a flagship into the mock repository.
func (m *MockFlagshipRepository) AddFlagship(f *domain.Flagship) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flagships[f.ID] = f
}

func (m *MockFlagshipRepository) Create(ctx context.Context, f *domain.Flagship) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.flagships[f.ID] = f
	return nil
}

func (m *MockFlagshipRepository) GetByID(ctx context.Context, id string) (*domain.Flagship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.flagships[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	// Return a copy to avoid mutation issues.
	copy := *f
	return &copy, nil
}

func (m *MockFlagshipRepository) List(ctx context.Context, filter repository.FlagshipFilter) ([]*domain.Flagship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Flagship
	for _, f := range m.flagships {
		if filter.Status != "" && f.Status != filter.Status {
			continue
		}
		if filter.Category != "" && f.Category != filter.Category {
			continue
		}
		if filter.Visibility != "" && f.Visibility != filter.Visibility {
			continue
		}
		copy := *f
		out = append(out, &copy)
	}
	return out, nil
}

func (m *MockFlagshipRepository) Update(ctx context.Context, f *domain.Flagship) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.flagships[f.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *f
	m.flagships[f.ID] = &copy
	return nil
}

// ──────────────────────────────────────────────
// MOCK REGISTRATION REPOSITORY
// ──────────────────────────────────────────────

// MockRegistrationRepository is a mock implementation of RegistrationRepository.
type MockRegistrationRepository struct {
	mu            sync.RWMutex
	registrations map[string]*domain.Registration

	// FlagshipEndDates lets the mock answer the passport queries
	// without a join. Keyed by flagship ID.
	FlagshipEndDates map[string]time.Time

	// Counters for verification
	CreateCallCount int32
	UpdateCallCount int32

	// Error injection
	CreateError error
	UpdateError error
}

// NewMockRegistrationRepository creates a new mock registration repository.
func NewMockRegistrationRepository() *MockRegistrationRepository {
	return &MockRegistrationRepository{
		registrations:    make(map[string]*domain.Registration),
		FlagshipEndDates: make(map[string]time.Time),
	}
}

// AddRegistration seeds a registration into the mock repository.
func (m *MockRegistrationRepository) AddRegistration(reg *domain.Registration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.registrations[reg.ID] = reg
}

func (m *MockRegistrationRepository) Create(ctx context.Context, reg *domain.Registration) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.registrations {
		if existing.UserID == reg.UserID && existing.FlagshipID == reg.FlagshipID {
			return repository.ErrDuplicate
		}
	}
	m.registrations[reg.ID] = reg
	return nil
}

func (m *MockRegistrationRepository) GetByID(ctx context.Context, id string) (*domain.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	reg, ok := m.registrations[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *reg
	return &copy, nil
}

func (m *MockRegistrationRepository) GetByUserAndFlagship(ctx context.Context, userID, flagshipID string) (*domain.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, reg := range m.registrations {
		if reg.UserID == userID && reg.FlagshipID == flagshipID {
			copy := *reg
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRegistrationRepository) ListByFlagship(ctx context.Context, flagshipID string) ([]*domain.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Registration
	for _, reg := range m.registrations {
		if reg.FlagshipID == flagshipID {
			copy := *reg
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockRegistrationRepository) ListByUserBefore(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error) {
	return m.listByUser(userID, func(end time.Time) bool { return end.Before(cutoff) })
}

func (m *MockRegistrationRepository) ListByUserAfter(ctx context.Context, userID string, cutoff time.Time) ([]*domain.Registration, error) {
	return m.listByUser(userID, func(end time.Time) bool { return !end.Before(cutoff) })
}

func (m *MockRegistrationRepository) listByUser(userID string, match func(time.Time) bool) ([]*domain.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Registration
	for _, reg := range m.registrations {
		if reg.UserID != userID {
			continue
		}
		if match(m.FlagshipEndDates[reg.FlagshipID]) {
			copy := *reg
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockRegistrationRepository) Update(ctx context.Context, reg *domain.Registration) error {
	atomic.AddInt32(&m.UpdateCallCount, 1)
	if m.UpdateError != nil {
		return m.UpdateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.registrations[reg.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *reg
	m.registrations[reg.ID] = &copy
	return nil
}

func (m *MockRegistrationRepository) CountByStatus(ctx context.Context, flagshipID string) (map[domain.RegistrationStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.RegistrationStatus]int)
	for _, reg := range m.registrations {
		if reg.FlagshipID == flagshipID {
			out[reg.Status]++
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────
// MOCK PAYMENT REPOSITORY
// ──────────────────────────────────────────────

// MockPaymentRepository is a mock implementation of PaymentRepository.
type MockPaymentRepository struct {
	mu       sync.RWMutex
	payments map[string]*domain.Payment

	// Registrations maps registration ID to flagship ID for the
	// flagship-level sums.
	Registrations map[string]string

	CreateCallCount int32

	CreateError error
}

// NewMockPaymentRepository creates a new mock payment repository.
func NewMockPaymentRepository() *MockPaymentRepository {
	return &MockPaymentRepository{
		payments:      make(map[string]*domain.Payment),
		Registrations: make(map[string]string),
	}
}

// AddPayment seeds a payment into the mock repository.
func (m *MockPaymentRepository) AddPayment(p *domain.Payment) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
}

func (m *MockPaymentRepository) Create(ctx context.Context, p *domain.Payment) error {
	atomic.AddInt32(&m.CreateCallCount, 1)
	if m.CreateError != nil {
		return m.CreateError
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.payments[p.ID] = p
	return nil
}

func (m *MockPaymentRepository) GetByID(ctx context.Context, id string) (*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.payments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *p
	return &copy, nil
}

func (m *MockPaymentRepository) ListByRegistration(ctx context.Context, registrationID string) ([]*domain.Payment, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.Payment
	for _, p := range m.payments {
		if p.RegistrationID == registrationID {
			copy := *p
			out = append(out, &copy)
		}
	}
	return out, nil
}

func (m *MockPaymentRepository) UpdateStatus(ctx context.Context, id string, status domain.PaymentStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.payments[id]
	if !ok {
		return repository.ErrNotFound
	}
	p.Status = status
	return nil
}

func (m *MockPaymentRepository) SumApprovedByFlagship(ctx context.Context, flagshipID string) (int64, error) {
	return m.sumByStatus(flagshipID, domain.PaymentStatusApproved), nil
}

func (m *MockPaymentRepository) SumPendingByFlagship(ctx context.Context, flagshipID string) (int64, error) {
	return m.sumByStatus(flagshipID, domain.PaymentStatusPending), nil
}

func (m *MockPaymentRepository) sumByStatus(flagshipID string, status domain.PaymentStatus) int64 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var total int64
	for _, p := range m.payments {
		if p.Status == status && m.Registrations[p.RegistrationID] == flagshipID {
			total += p.Amount
		}
	}
	return total
}

// ──────────────────────────────────────────────
// MOCK REFUND REPOSITORY
// ──────────────────────────────────────────────

// MockRefundRepository is a mock implementation of RefundRepository.
type MockRefundRepository struct {
	mu      sync.RWMutex
	refunds map[string]*domain.Refund

	// Registrations maps registration ID to flagship ID for the
	// flagship-level counts.
	Registrations map[string]string
}

// NewMockRefundRepository creates a new mock refund repository.
func NewMockRefundRepository() *MockRefundRepository {
	return &MockRefundRepository{
		refunds:       make(map[string]*domain.Refund),
		Registrations: make(map[string]string),
	}
}

// AddRefund seeds a refund into the mock repository.
func (m *MockRefundRepository) AddRefund(r *domain.Refund) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunds[r.ID] = r
}

func (m *MockRefundRepository) Create(ctx context.Context, r *domain.Refund) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refunds[r.ID] = r
	return nil
}

func (m *MockRefundRepository) GetByID(ctx context.Context, id string) (*domain.Refund, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.refunds[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *r
	return &copy, nil
}

func (m *MockRefundRepository) GetPendingByRegistration(ctx context.Context, registrationID string) (*domain.Refund, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, r := range m.refunds {
		if r.RegistrationID == registrationID && r.Status == domain.RefundStatusPending {
			copy := *r
			return &copy, nil
		}
	}
	return nil, nil
}

func (m *MockRefundRepository) Update(ctx context.Context, r *domain.Refund) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.refunds[r.ID]; !ok {
		return repository.ErrNotFound
	}
	copy := *r
	m.refunds[r.ID] = &copy
	return nil
}

func (m *MockRefundRepository) CountByStatusForFlagship(ctx context.Context, flagshipID string) (map[domain.RefundStatus]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make(map[domain.RefundStatus]int)
	for _, r := range m.refunds {
		if m.Registrations[r.RegistrationID] == flagshipID {
			out[r.Status]++
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────
// MOCK USER / BANK REPOSITORIES
// ──────────────────────────────────────────────

// MockUserRepository is a mock implementation of UserRepository.
type MockUserRepository struct {
	mu    sync.RWMutex
	users map[string]*domain.User
}

// NewMockUserRepository creates a new mock user repository.
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{users: make(map[string]*domain.User)}
}

// AddUser seeds a user into the mock repository.
func (m *MockUserRepository) AddUser(u *domain.User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
}

func (m *MockUserRepository) Create(ctx context.Context, u *domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.users[u.ID] = u
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *u
	return &copy, nil
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, u := range m.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, repository.ErrNotFound
}

// MockBankAccountRepository is a mock implementation of BankAccountRepository.
type MockBankAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.BankAccount
}

// NewMockBankAccountRepository creates a new mock bank account repository.
func NewMockBankAccountRepository() *MockBankAccountRepository {
	return &MockBankAccountRepository{accounts: make(map[string]*domain.BankAccount)}
}

// AddAccount seeds a bank account into the mock repository.
func (m *MockBankAccountRepository) AddAccount(a *domain.BankAccount) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[a.ID] = a
}

func (m *MockBankAccountRepository) GetByID(ctx context.Context, id string) (*domain.BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.accounts[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	copy := *a
	return &copy, nil
}

func (m *MockBankAccountRepository) ListActive(ctx context.Context) ([]*domain.BankAccount, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*domain.BankAccount
	for _, a := range m.accounts {
		if a.Active {
			copy := *a
			out = append(out, &copy)
		}
	}
	return out, nil
}

// ──────────────────────────────────────────────
// MOCK REDIS STORES
// ──────────────────────────────────────────────

// MockDraftStore is an in-memory DraftStoreInterface.
type MockDraftStore struct {
	mu       sync.RWMutex
	drafts   map[string]*domain.RegistrationDraft
	sessions map[string]string
}

// NewMockDraftStore creates a new mock draft store.
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{
		drafts:   make(map[string]*domain.RegistrationDraft),
		sessions: make(map[string]string),
	}
}

func draftKey(userID, flagshipID string) string {
	return userID + ":" + flagshipID
}

func (m *MockDraftStore) SetRegistrationDraft(ctx context.Context, userID string, draft *domain.RegistrationDraft) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.drafts[draftKey(userID, draft.FlagshipID)] = draft
	return nil
}

func (m *MockDraftStore) GetRegistrationDraft(ctx context.Context, userID, flagshipID string) (*domain.RegistrationDraft, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	draft, ok := m.drafts[draftKey(userID, flagshipID)]
	if !ok {
		return nil, nil
	}
	copy := *draft
	return &copy, nil
}

func (m *MockDraftStore) ClearRegistrationDraft(ctx context.Context, userID, flagshipID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.drafts, draftKey(userID, flagshipID))
	return nil
}

func (m *MockDraftStore) SetActiveFlagship(ctx context.Context, userID, flagshipID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[userID] = flagshipID
	return nil
}

func (m *MockDraftStore) GetActiveFlagship(ctx context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sessions[userID], nil
}

func (m *MockDraftStore) ClearActiveFlagship(ctx context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// MockLockStore is an in-memory LockStoreInterface.
type MockLockStore struct {
	mu    sync.Mutex
	locks map[string]bool

	// AcquireResult forces the next acquire outcome when set.
	ForceHeld bool
}

// NewMockLockStore creates a new mock lock store.
func NewMockLockStore() *MockLockStore {
	return &MockLockStore{locks: make(map[string]bool)}
}

func (m *MockLockStore) AcquireSubmissionLock(ctx context.Context, flagshipID, step string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.ForceHeld {
		return false, nil
	}
	key := flagshipID + ":" + step
	if m.locks[key] {
		return false, nil
	}
	m.locks[key] = true
	return true, nil
}

func (m *MockLockStore) ReleaseSubmissionLock(ctx context.Context, flagshipID, step string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.locks, flagshipID+":"+step)
	return nil
}

// MockCacheStore is an in-memory CacheStoreInterface.
type MockCacheStore struct {
	mu        sync.RWMutex
	flagships map[string]*domain.Flagship

	SetCallCount        int32
	InvalidateCallCount int32
}

// NewMockCacheStore creates a new mock cache store.
func NewMockCacheStore() *MockCacheStore {
	return &MockCacheStore{flagships: make(map[string]*domain.Flagship)}
}

func (m *MockCacheStore) GetFlagship(ctx context.Context, id string) (*domain.Flagship, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	f, ok := m.flagships[id]
	if !ok {
		return nil, nil
	}
	copy := *f
	return &copy, nil
}

func (m *MockCacheStore) SetFlagship(ctx context.Context, f *domain.Flagship) error {
	atomic.AddInt32(&m.SetCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	copy := *f
	m.flagships[f.ID] = &copy
	return nil
}

func (m *MockCacheStore) InvalidateFlagship(ctx context.Context, id string) error {
	atomic.AddInt32(&m.InvalidateCallCount, 1)
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.flagships, id)
	return nil
}
