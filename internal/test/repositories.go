package test

import (
	"context"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
)

// BankStore keeps users, balances and sessions in memory. It is safe for concurrent use
// and mirrors the conditional withdraw of the SQL store.
type BankStore struct {
	// Err, when set, is returned by every operation.
	Err error
	// Now drives session expiry; time.Now when nil.
	Now func() time.Time

	mu       sync.Mutex
	next     int64
	users    map[string]*model.User
	byID     map[int64]*model.User
	sessions map[string]model.Session
}

// NewBankStore creates an empty store.
func NewBankStore() *BankStore {
	return &BankStore{
		next:     1,
		users:    make(map[string]*model.User),
		byID:     make(map[int64]*model.User),
		sessions: make(map[string]model.Session),
	}
}

// Users returns the user repository view of the store.
func (s *BankStore) Users() repository.UserRepository { return storeUsers{s} }

// Balances returns the balance repository view of the store.
func (s *BankStore) Balances() repository.BalanceRepository { return storeBalances{s} }

// Sessions returns the session repository view of the store.
func (s *BankStore) Sessions() repository.SessionRepository { return storeSessions{s} }

// HealthCheck reports the configured error.
func (s *BankStore) HealthCheck(context.Context) error { return s.Err }

// SessionCount returns the number of stored sessions, expired ones included.
func (s *BankStore) SessionCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// User returns a copy of the stored user.
func (s *BankStore) User(username string) (model.User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	usr, ok := s.users[username]
	if !ok {
		return model.User{}, false
	}
	return *usr, true
}

func (s *BankStore) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

type storeUsers struct{ s *BankStore }

func (r storeUsers) Create(_ context.Context, username, passwordHash string) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if _, exists := s.users[username]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	usr := &model.User{ID: s.next, Username: username, PasswordHash: passwordHash, Balance: decimal.Zero, CreatedAt: s.now()}
	s.next++
	s.users[username] = usr
	s.byID[usr.ID] = usr
	out := *usr
	return &out, nil
}

func (r storeUsers) GetByUsername(_ context.Context, username string) (*model.User, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	usr, ok := s.users[username]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	out := *usr
	return &out, nil
}

func (r storeUsers) Delete(_ context.Context, id int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	usr, ok := s.byID[id]
	if !ok {
		return domainErrors.ErrNotFound
	}
	for token, session := range s.sessions {
		if session.UserID == id {
			delete(s.sessions, token)
		}
	}
	delete(s.byID, id)
	delete(s.users, usr.Username)
	return nil
}

type storeBalances struct{ s *BankStore }

func (r storeBalances) Get(_ context.Context, userID int64) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	usr, ok := s.byID[userID]
	if !ok {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	return usr.Balance, nil
}

func (r storeBalances) Deposit(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	usr, ok := s.byID[userID]
	if !ok {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	usr.Balance = usr.Balance.Add(amount)
	return usr.Balance, nil
}

func (r storeBalances) Withdraw(_ context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return decimal.Zero, s.Err
	}
	usr, ok := s.byID[userID]
	if !ok {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	if usr.Balance.LessThan(amount) {
		return decimal.Zero, domainErrors.ErrInsufficientFunds
	}
	usr.Balance = usr.Balance.Sub(amount)
	return usr.Balance, nil
}

type storeSessions struct{ s *BankStore }

func (r storeSessions) Create(_ context.Context, session model.Session) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, exists := s.sessions[session.Token]; exists {
		return domainErrors.ErrAlreadyExists
	}
	if _, ok := s.byID[session.UserID]; !ok {
		return domainErrors.ErrNotFound
	}
	s.sessions[session.Token] = session
	return nil
}

func (r storeSessions) Resolve(_ context.Context, token string) (*model.Identity, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	session, ok := s.sessions[token]
	if !ok || session.Expired(s.now()) {
		return nil, domainErrors.ErrNotFound
	}
	usr, ok := s.byID[session.UserID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return &model.Identity{ID: usr.ID, Username: usr.Username}, nil
}

func (r storeSessions) Delete(_ context.Context, token string) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.sessions, token)
	return nil
}

func (r storeSessions) DeleteByUser(_ context.Context, userID int64) error {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for token, session := range s.sessions {
		if session.UserID == userID {
			delete(s.sessions, token)
		}
	}
	return nil
}

func (r storeSessions) DeleteExpired(_ context.Context) (int64, error) {
	s := r.s
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	now := s.now()
	var removed int64
	for token, session := range s.sessions {
		if session.Expired(now) {
			delete(s.sessions, token)
			removed++
		}
	}
	return removed, nil
}

var (
	_ repository.Factory       = (*BankStore)(nil)
	_ repository.HealthChecker = (*BankStore)(nil)
)
