package handlers

import (
	"context"
	"time"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// AuthFacade describes registration and session capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, ip, username, password string) error
	Login(ctx context.Context, ip, username, password string) (string, error)
	Logout(ctx context.Context, token string) error
	SessionTTL() time.Duration
}

// AccountFacade exposes balance operations.
type AccountFacade interface {
	Manage(ctx context.Context, ip string, identity model.Identity, action, amount string) (*model.Receipt, error)
}

// HealthFacade reports backing store availability.
type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// BankFacade aggregates the full set of operations used across handlers and middleware.
type BankFacade interface {
	AuthFacade
	AccountFacade
	HealthFacade
	ResolveSession(ctx context.Context, token string) (*model.Identity, error)
}
