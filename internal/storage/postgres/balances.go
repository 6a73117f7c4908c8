package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
)

func (r *balanceRepository) Get(ctx context.Context, userID int64) (decimal.Decimal, error) {
	const query = `SELECT balance::text FROM users WHERE id=$1`
	return r.scanBalance(ctx, domainErrors.ErrNotFound, query, userID)
}

func (r *balanceRepository) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `UPDATE users SET balance = balance + $1::numeric WHERE id=$2 RETURNING balance::text`
	return r.scanBalance(ctx, domainErrors.ErrNotFound, query, amount.String(), userID)
}

// Withdraw checks funds and debits in one conditioned statement. When nothing was
// debited the user row is looked up again to tell a closed account from a short balance.
func (r *balanceRepository) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	const query = `UPDATE users SET balance = balance - $1::numeric WHERE id=$2 AND balance >= $1::numeric RETURNING balance::text`
	balance, err := r.scanBalance(ctx, domainErrors.ErrInsufficientFunds, query, amount.String(), userID)
	if !errors.Is(err, domainErrors.ErrInsufficientFunds) {
		return balance, err
	}

	var exists bool
	if err := r.storage.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id=$1)`, userID).Scan(&exists); err != nil {
		return decimal.Zero, fmt.Errorf("check user: %w", err)
	}
	if !exists {
		return decimal.Zero, domainErrors.ErrNotFound
	}
	return decimal.Zero, domainErrors.ErrInsufficientFunds
}

func (r *balanceRepository) scanBalance(ctx context.Context, noRows error, query string, args ...any) (decimal.Decimal, error) {
	var raw string
	if err := r.storage.pool.QueryRow(ctx, query, args...).Scan(&raw); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return decimal.Zero, noRows
		}
		return decimal.Zero, fmt.Errorf("balance query: %w", err)
	}
	balance, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("parse balance: %w", err)
	}
	return balance, nil
}
