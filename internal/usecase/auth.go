package usecase

import (
	"context"
	"errors"
	"fmt"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
	pkgAuth "github.com/polkiloo/gobank/internal/pkg/auth"
	"github.com/polkiloo/gobank/internal/pkg/ratelimit"
)

// AuthUseCase handles registration and login.
type AuthUseCase struct {
	users    repository.UserRepository
	hasher   pkgAuth.PasswordHasher
	sessions *SessionUseCase
	attempts ratelimit.AttemptCounter
	audit    SecurityAuditor
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(
	users repository.UserRepository,
	hasher pkgAuth.PasswordHasher,
	sessions *SessionUseCase,
	attempts ratelimit.AttemptCounter,
	audit SecurityAuditor,
) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, sessions: sessions, attempts: attempts, audit: audit}
}

// Register creates a new user with zero balance.
func (u *AuthUseCase) Register(ctx context.Context, ip, username, password string) (*model.User, error) {
	if username == "" || password == "" {
		u.audit.Warn(ctx, ip, "Registration attempt with missing credentials")
		return nil, domainErrors.ErrMissingCredentials
	}
	if len(password) > pkgAuth.MaxPasswordLength {
		u.audit.Warn(ctx, ip, "Registration attempt with oversized password for user: "+username)
		return nil, domainErrors.ErrPasswordTooLong
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrPasswordTooLong) {
			return nil, domainErrors.ErrPasswordTooLong
		}
		return nil, fmt.Errorf("hash password: %w", err)
	}

	usr, err := u.users.Create(ctx, username, hash)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			u.audit.Warn(ctx, ip, "Attempted to register existing user: "+username)
			return nil, domainErrors.ErrAlreadyExists
		}
		return nil, err
	}

	return usr, nil
}

// Login verifies credentials and opens a session. Every call counts against the
// brute-force limit of ip, including calls with correct credentials.
func (u *AuthUseCase) Login(ctx context.Context, ip, username, password string) (string, error) {
	count, err := u.attempts.Hit(ctx, ip)
	if err != nil {
		return "", fmt.Errorf("count login attempt: %w", err)
	}
	if count > ratelimit.MaxLoginAttempts {
		u.audit.Critical(ctx, ip, "Possible brute force attack detected from IP: "+ip)
		return "", domainErrors.ErrTooManyAttempts
	}

	if username == "" || password == "" {
		u.audit.Warn(ctx, ip, "Login attempt with missing credentials")
		return "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			u.audit.Warn(ctx, ip, "Failed login attempt for unknown user: "+username)
			return "", domainErrors.ErrInvalidCredentials
		}
		return "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		u.audit.Warn(ctx, ip, "Failed login attempt for user: "+username)
		return "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.sessions.Create(ctx, usr.ID)
	if err != nil {
		return "", err
	}
	return token, nil
}
