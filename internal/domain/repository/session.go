package repository

import (
	"context"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// SessionRepository stores login sessions.
type SessionRepository interface {
	Create(ctx context.Context, session model.Session) error
	// Resolve returns the owner of a live session or ErrNotFound.
	Resolve(ctx context.Context, token string) (*model.Identity, error)
	Delete(ctx context.Context, token string) error
	DeleteByUser(ctx context.Context, userID int64) error
	DeleteExpired(ctx context.Context) (int64, error)
}
