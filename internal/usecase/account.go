package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	domainErrors "github.com/polkiloo/gobank/internal/domain/errors"
	"github.com/polkiloo/gobank/internal/domain/model"
	"github.com/polkiloo/gobank/internal/domain/repository"
)

// AccountUseCase applies balance operations on behalf of an authenticated user.
type AccountUseCase struct {
	users    repository.UserRepository
	balances repository.BalanceRepository
	sessions *SessionUseCase
	audit    SecurityAuditor
}

// NewAccountUseCase constructs AccountUseCase.
func NewAccountUseCase(
	users repository.UserRepository,
	balances repository.BalanceRepository,
	sessions *SessionUseCase,
	audit SecurityAuditor,
) *AccountUseCase {
	return &AccountUseCase{users: users, balances: balances, sessions: sessions, audit: audit}
}

// Manage dispatches action for identity. rawAmount is only read by deposit and withdraw.
func (u *AccountUseCase) Manage(ctx context.Context, ip string, identity model.Identity, action, rawAmount string) (*model.Receipt, error) {
	act := model.Action(action)
	if !act.Valid() {
		u.audit.Warn(ctx, ip, "Invalid action attempted: "+action)
		return nil, domainErrors.ErrInvalidAction
	}

	var (
		balance decimal.Decimal
		err     error
	)
	switch act {
	case model.ActionDeposit:
		amount, ok := ParseAmount(rawAmount)
		if !ok {
			u.audit.Warn(ctx, ip, "Invalid deposit amount: "+rawAmount)
			return nil, domainErrors.ErrInvalidAmount
		}
		balance, err = u.Deposit(ctx, identity.ID, amount)
	case model.ActionWithdraw:
		amount, ok := ParseAmount(rawAmount)
		if !ok {
			u.audit.Warn(ctx, ip, "Invalid withdrawal amount: "+rawAmount)
			return nil, domainErrors.ErrInvalidAmount
		}
		balance, err = u.Withdraw(ctx, identity.ID, amount)
		if errors.Is(err, domainErrors.ErrInsufficientFunds) {
			u.audit.Warn(ctx, ip, fmt.Sprintf("Insufficient funds withdrawal attempt: %s, amount: %s", identity.Username, amount))
		}
	case model.ActionBalance:
		balance, err = u.Balance(ctx, identity.ID)
	case model.ActionClose:
		err = u.Close(ctx, identity.ID)
	}
	if err != nil {
		return nil, err
	}

	return &model.Receipt{Action: act, Balance: balance}, nil
}

// Deposit credits amount and returns the new balance.
func (u *AccountUseCase) Deposit(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, domainErrors.ErrInvalidAmount
	}
	return u.balances.Deposit(ctx, userID, amount)
}

// Withdraw debits amount if the balance covers it.
func (u *AccountUseCase) Withdraw(ctx context.Context, userID int64, amount decimal.Decimal) (decimal.Decimal, error) {
	if !validAmount(amount) {
		return decimal.Zero, domainErrors.ErrInvalidAmount
	}
	return u.balances.Withdraw(ctx, userID, amount)
}

// Balance returns the current balance.
func (u *AccountUseCase) Balance(ctx context.Context, userID int64) (decimal.Decimal, error) {
	return u.balances.Get(ctx, userID)
}

// Close revokes every session of the user and deletes the account.
func (u *AccountUseCase) Close(ctx context.Context, userID int64) error {
	if err := u.sessions.RevokeAll(ctx, userID); err != nil {
		return fmt.Errorf("revoke sessions: %w", err)
	}
	if err := u.users.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	return nil
}

const (
	// maxAmountLength bounds the textual form of an amount.
	maxAmountLength = 32
	// maxAmountExponent bounds the decimal exponent in both directions, so
	// 1e32 and 1e-32 are the extremes an amount can reach.
	maxAmountExponent = 32
)

// ParseAmount accepts a positive decimal number within amount bounds.
func ParseAmount(raw string) (decimal.Decimal, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" || len(raw) > maxAmountLength {
		return decimal.Zero, false
	}
	amount, err := decimal.NewFromString(raw)
	if err != nil || !validAmount(amount) {
		return decimal.Zero, false
	}
	return amount, true
}

func validAmount(amount decimal.Decimal) bool {
	if !amount.IsPositive() {
		return false
	}
	exp := amount.Exponent()
	return exp >= -maxAmountExponent && exp <= maxAmountExponent
}
