package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a bank customer.
type User struct {
	ID           int64
	Username     string
	PasswordHash string
	Balance      decimal.Decimal
	CreatedAt    time.Time
}

// Identity is the part of a user exposed to authenticated requests.
type Identity struct {
	ID       int64
	Username string
}
