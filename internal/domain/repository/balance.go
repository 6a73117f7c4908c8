package repository

import (
	"context"

	"github.com/shopspring/decimal"
)

// BalanceRepository mutates account balances. Every method is a single atomic
// statement and returns the balance after it.
type BalanceRepository interface {
	Get(ctx context.Context, userID int64) (decimal.Decimal, error)
	Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
	// Withdraw debits only when the balance covers amount, otherwise ErrInsufficientFunds.
	Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error)
}
