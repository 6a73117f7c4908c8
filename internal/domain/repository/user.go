package repository

import (
	"context"

	"github.com/polkiloo/gobank/internal/domain/model"
)

// UserRepository describes persistence operations for users.
type UserRepository interface {
	// Create inserts a user with zero balance. A taken username yields ErrAlreadyExists.
	Create(ctx context.Context, username, passwordHash string) (*model.User, error)
	GetByUsername(ctx context.Context, username string) (*model.User, error)
	Delete(ctx context.Context, id int64) error
}
