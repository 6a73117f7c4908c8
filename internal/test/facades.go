package test

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// BankFacadeStub provides controllable behaviour for HTTP layer tests.
type BankFacadeStub struct {
	RegisterFn func(ctx context.Context, ip, username, password string) error
	LoginFn    func(ctx context.Context, ip, username, password string) (string, error)
	LogoutFn   func(ctx context.Context, token string) error
	ResolveFn  func(ctx context.Context, token string) (*model.Identity, error)
	ManageFn   func(ctx context.Context, ip string, identity model.Identity, action, amount string) (*model.Receipt, error)
	HealthFn   func(ctx context.Context) error
	TTL        time.Duration
}

// Register succeeds unless overridden.
func (s BankFacadeStub) Register(ctx context.Context, ip, username, password string) error {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, ip, username, password)
	}
	return nil
}

// Login returns "token" unless overridden.
func (s BankFacadeStub) Login(ctx context.Context, ip, username, password string) (string, error) {
	if s.LoginFn != nil {
		return s.LoginFn(ctx, ip, username, password)
	}
	return "token", nil
}

// Logout succeeds unless overridden.
func (s BankFacadeStub) Logout(ctx context.Context, token string) error {
	if s.LogoutFn != nil {
		return s.LogoutFn(ctx, token)
	}
	return nil
}

// ResolveSession returns user 1 unless overridden.
func (s BankFacadeStub) ResolveSession(ctx context.Context, token string) (*model.Identity, error) {
	if s.ResolveFn != nil {
		return s.ResolveFn(ctx, token)
	}
	return &model.Identity{ID: 1, Username: "user"}, nil
}

// Manage returns a zero balance receipt unless overridden.
func (s BankFacadeStub) Manage(ctx context.Context, ip string, identity model.Identity, action, amount string) (*model.Receipt, error) {
	if s.ManageFn != nil {
		return s.ManageFn(ctx, ip, identity, action, amount)
	}
	return &model.Receipt{Action: model.Action(action), Balance: decimal.Zero}, nil
}

// SessionTTL returns the configured TTL.
func (s BankFacadeStub) SessionTTL() time.Duration {
	return s.TTL
}

// HealthCheck reports healthy unless overridden.
func (s BankFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
