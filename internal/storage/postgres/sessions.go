package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
)

const foreignKeyViolation = "23503"

func (r *sessionRepository) Create(ctx context.Context, session model.Session) error {
	const query = `INSERT INTO sessions (cookie, user_id, expires_at) VALUES ($1, $2, $3)`
	if _, err := r.storage.pool.Exec(ctx, query, session.Token, session.UserID, session.ExpiresAt); err != nil {
		if isUniqueViolation(err) {
			return domainErrors.ErrAlreadyExists
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return domainErrors.ErrNotFound
		}
		return fmt.Errorf("insert session: %w", err)
	}
	return nil
}

func (r *sessionRepository) Resolve(ctx context.Context, token string) (*model.Identity, error) {
	const query = `SELECT users.id, users.username FROM sessions JOIN users ON users.id = sessions.user_id
                   WHERE sessions.cookie=$1 AND (sessions.expires_at IS NULL OR sessions.expires_at > NOW())`
	var id model.Identity
	if err := r.storage.pool.QueryRow(ctx, query, token).Scan(&id.ID, &id.Username); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}
	return &id, nil
}

func (r *sessionRepository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM sessions WHERE cookie=$1`
	if _, err := r.storage.pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteByUser(ctx context.Context, userID int64) error {
	const query = `DELETE FROM sessions WHERE user_id=$1`
	if _, err := r.storage.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete user sessions: %w", err)
	}
	return nil
}

func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	const query = `DELETE FROM sessions WHERE expires_at IS NOT NULL AND expires_at <= NOW()`
	tag, err := r.storage.pool.Exec(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	if n := tag.RowsAffected(); n > 0 {
		r.storage.logger.Debug("expired sessions removed", slog.Int64("count", n))
	}
	return tag.RowsAffected(), nil
}
