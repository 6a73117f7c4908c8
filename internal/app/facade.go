package app

import (
	"context"
	"time"

	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
	"github.com/polkiloo/gobank/internal/usecase"
)

// BankFacade is the single entry point the HTTP layer and background jobs talk to.
type BankFacade struct {
	auth     *usecase.AuthUseCase
	accounts *usecase.AccountUseCase
	sessions *usecase.SessionUseCase
	health   repository.HealthChecker
}

func NewBankFacade(
	auth *usecase.AuthUseCase,
	accounts *usecase.AccountUseCase,
	sessions *usecase.SessionUseCase,
	health repository.HealthChecker,
) *BankFacade {
	return &BankFacade{auth: auth, accounts: accounts, sessions: sessions, health: health}
}

func (f *BankFacade) Register(ctx context.Context, ip, username, password string) error {
	_, err := f.auth.Register(ctx, ip, username, password)
	return err
}

func (f *BankFacade) Login(ctx context.Context, ip, username, password string) (string, error) {
	return f.auth.Login(ctx, ip, username, password)
}

func (f *BankFacade) Logout(ctx context.Context, token string) error {
	return f.sessions.Revoke(ctx, token)
}

func (f *BankFacade) ResolveSession(ctx context.Context, token string) (*model.Identity, error) {
	return f.sessions.Resolve(ctx, token)
}

func (f *BankFacade) Manage(ctx context.Context, ip string, identity model.Identity, action, amount string) (*model.Receipt, error) {
	return f.accounts.Manage(ctx, ip, identity, action, amount)
}

func (f *BankFacade) SessionTTL() time.Duration {
	return f.sessions.TTL()
}

func (f *BankFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *BankFacade) PurgeExpiredSessions(ctx context.Context) (int64, error) {
	return f.sessions.PurgeExpired(ctx)
}
