//go:build !integration

package usecase_test

import (
	"context"
	"fmt"
	"io"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"

	"github.com/Antonio1491/parksys-sub000/internal/domain"
	"github.com/Antonio1491/parksys-sub000/internal/domain/model"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/adapter"
	"github.com/Antonio1491/parksys-sub000/internal/domain/ports/repository"
	"github.com/Antonio1491/parksys-sub000/internal/usecase"
)

// =============================
// Repositories
// =============================

// ---- Mock ActivityRepository ----

type MockActivityRepo struct {
	mu    sync.RWMutex
	store map[string]*model.Activity

	FindByIDFunc func(ctx context.Context, tx repository.Tx, id string) (*model.Activity, error)
}

var _ repository.ActivityRepository = (*MockActivityRepo)(nil)

func NewMockActivityRepo() *MockActivityRepo {
	return &MockActivityRepo{store: make(map[string]*model.Activity)}
}

func (m *MockActivityRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.Activity, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, tx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	a, ok := m.store[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (m *MockActivityRepo) Save(ctx context.Context, tx repository.Tx, a *model.Activity) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *a
	m.store[a.ID] = &cp
	return nil
}

// ---- Mock RegistrationRepository ----

// MockRegistrationRepo enforces the payment-intent unique index the way
// the real table does, so duplicate-insert paths are exercisable in unit
// tests.
type MockRegistrationRepo struct {
	mu       sync.RWMutex
	byIntent map[string]*model.Registration

	SaveFunc func(ctx context.Context, tx repository.Tx, r *model.Registration) error
}

var _ repository.RegistrationRepository = (*MockRegistrationRepo)(nil)

func NewMockRegistrationRepo() *MockRegistrationRepo {
	return &MockRegistrationRepo{byIntent: make(map[string]*model.Registration)}
}

func (m *MockRegistrationRepo) Save(ctx context.Context, tx repository.Tx, r *model.Registration) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, r)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, exists := m.byIntent[r.PaymentIntentID]; exists {
		return domain.ErrDuplicateRegistration
	}
	cp := *r
	m.byIntent[r.PaymentIntentID] = &cp
	return nil
}

func (m *MockRegistrationRepo) FindByIntentID(ctx context.Context, tx repository.Tx, intentID string) (*model.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	r, ok := m.byIntent[intentID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *MockRegistrationRepo) ListByActivity(ctx context.Context, tx repository.Tx, activityID string, limit, offset int) ([]*model.Registration, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.Registration
	for _, r := range m.byIntent {
		if r.ActivityID == activityID {
			cp := *r
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ---- Mock OutboxRepository ----

type MockOutboxRepo struct {
	mu    sync.RWMutex
	store map[string]*model.EmailOutboxEntry

	SaveFunc     func(ctx context.Context, tx repository.Tx, e *model.EmailOutboxEntry) error
	MarkSentFunc func(ctx context.Context, tx repository.Tx, id string) error
}

var _ repository.OutboxRepository = (*MockOutboxRepo)(nil)

func NewMockOutboxRepo() *MockOutboxRepo {
	return &MockOutboxRepo{store: make(map[string]*model.EmailOutboxEntry)}
}

func (m *MockOutboxRepo) Save(ctx context.Context, tx repository.Tx, e *model.EmailOutboxEntry) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, tx, e)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *e
	m.store[e.ID] = &cp
	return nil
}

func (m *MockOutboxRepo) ListPending(ctx context.Context, tx repository.Tx, limit, maxAttempts int) ([]*model.EmailOutboxEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	var out []*model.EmailOutboxEntry
	for _, e := range m.store {
		if e.Status == model.OutboxStatusPending && e.Attempts < maxAttempts {
			cp := *e
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *MockOutboxRepo) MarkSent(ctx context.Context, tx repository.Tx, id string) error {
	if m.MarkSentFunc != nil {
		return m.MarkSentFunc(ctx, tx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	now := time.Now()
	e.Status = model.OutboxStatusSent
	e.SentAt = &now
	return nil
}

func (m *MockOutboxRepo) MarkFailed(ctx context.Context, tx repository.Tx, id, lastError string, maxAttempts int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.store[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Attempts++
	e.LastError = lastError
	if e.Attempts >= maxAttempts {
		e.Status = model.OutboxStatusFailed
	}
	return nil
}

// Entry returns a copy of a stored entry for assertions.
func (m *MockOutboxRepo) Entry(id string) (*model.EmailOutboxEntry, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.store[id]
	if !ok {
		return nil, false
	}
	cp := *e
	return &cp, true
}

// All returns copies of every stored entry, in ID order.
func (m *MockOutboxRepo) All() []*model.EmailOutboxEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]*model.EmailOutboxEntry, 0, len(m.store))
	for _, e := range m.store {
		cp := *e
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// =============================
// Adapters
// =============================

// ---- Mock PaymentGateway ----

type MockPaymentGateway struct {
	mu      sync.Mutex
	intents map[string]*model.PaymentIntent

	EnsureCustomerFunc func(ctx context.Context, info adapter.CustomerInfo) (string, error)
	CreateIntentFunc   func(ctx context.Context, req adapter.CreateIntentRequest) (*model.PaymentIntent, error)
	RetrieveIntentFunc func(ctx context.Context, id string) (*model.PaymentIntent, error)

	Calls struct {
		EnsureCustomer int
		CreateIntent   []adapter.CreateIntentRequest
		RetrieveIntent []string
	}
}

var _ adapter.PaymentGateway = (*MockPaymentGateway)(nil)

func NewMockPaymentGateway() *MockPaymentGateway {
	return &MockPaymentGateway{intents: make(map[string]*model.PaymentIntent)}
}

func (m *MockPaymentGateway) Name() string { return "mock" }

func (m *MockPaymentGateway) EnsureCustomer(ctx context.Context, info adapter.CustomerInfo) (string, error) {
	m.mu.Lock()
	m.Calls.EnsureCustomer++
	m.mu.Unlock()
	if m.EnsureCustomerFunc != nil {
		return m.EnsureCustomerFunc(ctx, info)
	}
	return "cus_mock", nil
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, req adapter.CreateIntentRequest) (*model.PaymentIntent, error) {
	m.mu.Lock()
	m.Calls.CreateIntent = append(m.Calls.CreateIntent, req)
	m.mu.Unlock()
	if m.CreateIntentFunc != nil {
		return m.CreateIntentFunc(ctx, req)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	intent := &model.PaymentIntent{
		ID:           fmt.Sprintf("pi_mock_%d", len(m.intents)+1),
		Amount:       req.AmountMinorUnits,
		Currency:     req.Currency,
		Status:       model.IntentStatusRequiresPaymentMethod,
		CustomerID:   req.CustomerID,
		ClientSecret: "cs_mock_secret",
		Metadata:     req.Metadata,
	}
	m.intents[intent.ID] = intent
	return intent, nil
}

func (m *MockPaymentGateway) RetrieveIntent(ctx context.Context, id string) (*model.PaymentIntent, error) {
	m.mu.Lock()
	m.Calls.RetrieveIntent = append(m.Calls.RetrieveIntent, id)
	m.mu.Unlock()
	if m.RetrieveIntentFunc != nil {
		return m.RetrieveIntentFunc(ctx, id)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	intent, ok := m.intents[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *intent
	return &cp, nil
}

// ---- Mock EmailQueue ----

type MockEmailQueue struct {
	mu       sync.Mutex
	Enqueued []string // recipients, in order

	EnqueueFunc func(ctx context.Context, to, templateID string, variables map[string]string) (bool, error)
}

var _ adapter.EmailQueue = (*MockEmailQueue)(nil)

func (m *MockEmailQueue) Enqueue(ctx context.Context, to, templateID string, variables map[string]string) (bool, error) {
	if m.EnqueueFunc != nil {
		return m.EnqueueFunc(ctx, to, templateID, variables)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Enqueued = append(m.Enqueued, to)
	return true, nil
}

// =============================
// Transaction manager and lock
// =============================

type MockTxManager struct {
	WithTxFunc func(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error
}

var _ repository.TransactionManager = (*MockTxManager)(nil)

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

// WithTx executes the function immediately with a nil transaction handle;
// the in-memory repositories ignore it anyway.
func (m *MockTxManager) WithTx(ctx context.Context, txOpt pgx.TxOptions, fn func(ctx context.Context, tx repository.Tx) error) error {
	if m.WithTxFunc != nil {
		return m.WithTxFunc(ctx, txOpt, fn)
	}
	return fn(ctx, nil)
}

// ---- Mock Locker ----

type MockLocker struct {
	mu   sync.Mutex
	held map[string]string

	TryLockFunc func(ctx context.Context, key string, ttl time.Duration) (string, error)
}

var _ usecase.Locker = (*MockLocker)(nil)

func NewMockLocker() *MockLocker {
	return &MockLocker{held: make(map[string]string)}
}

func (l *MockLocker) TryLock(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if l.TryLockFunc != nil {
		return l.TryLockFunc(ctx, key, ttl)
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, taken := l.held[key]; taken {
		return "", domain.ErrLockNotAcquired
	}
	token := fmt.Sprintf("tok-%d", len(l.held)+1)
	l.held[key] = token
	return token, nil
}

func (l *MockLocker) Unlock(ctx context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.held[key] == token {
		delete(l.held, key)
	}
	return nil
}

// newTestLogger creates a silent zerolog.Logger for use in tests.
// It writes to io.Discard to prevent logs from cluttering test output.
func newTestLogger() *zerolog.Logger {
	logger := zerolog.New(io.Discard)
	return &logger
}
