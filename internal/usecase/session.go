package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
)

const tokenAttempts = 3

// SessionUseCase issues, resolves and revokes login sessions.
type SessionUseCase struct {
	sessions repository.SessionRepository
	tokens   pkgAuth.TokenGenerator
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionUseCase constructs SessionUseCase. A zero ttl keeps sessions until logout.
func NewSessionUseCase(sessions repository.SessionRepository, tokens pkgAuth.TokenGenerator, ttl time.Duration) *SessionUseCase {
	return &SessionUseCase{sessions: sessions, tokens: tokens, ttl: ttl, now: time.Now}
}

// TTL returns the configured session lifetime.
func (u *SessionUseCase) TTL() time.Duration {
	return u.ttl
}

// Create persists a new session for userID and returns its token.
func (u *SessionUseCase) Create(ctx context.Context, userID int64) (string, error) {
	session := model.Session{UserID: userID, CreatedAt: u.now()}
	if u.ttl > 0 {
		expires := session.CreatedAt.Add(u.ttl)
		session.ExpiresAt = &expires
	}

	for i := 0; i < tokenAttempts; i++ {
		token, err := u.tokens.NewToken()
		if err != nil {
			return "", fmt.Errorf("generate session token: %w", err)
		}
		session.Token = token

		err = u.sessions.Create(ctx, session)
		if err == nil {
			return token, nil
		}
		if !errors.Is(err, domainErrors.ErrAlreadyExists) {
			return "", err
		}
	}
	return "", fmt.Errorf("generate session token: %w", domainErrors.ErrAlreadyExists)
}

// Resolve returns the owner of token or ErrUnauthorized.
func (u *SessionUseCase) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	if token == "" {
		return nil, domainErrors.ErrUnauthorized
	}
	identity, err := u.sessions.Resolve(ctx, token)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrUnauthorized
		}
		return nil, err
	}
	return identity, nil
}

// Revoke deletes a session. Unknown or empty tokens are ignored.
func (u *SessionUseCase) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return u.sessions.Delete(ctx, token)
}

// RevokeAll deletes every session of userID.
func (u *SessionUseCase) RevokeAll(ctx context.Context, userID int64) error {
	return u.sessions.DeleteByUser(ctx, userID)
}

// PurgeExpired removes expired sessions. Without a ttl nothing can expire.
func (u *SessionUseCase) PurgeExpired(ctx context.Context) (int64, error) {
	if u.ttl <= 0 {
		return 0, nil
	}
	return u.sessions.DeleteExpired(ctx)
}
