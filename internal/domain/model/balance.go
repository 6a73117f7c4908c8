package model

import "github.com/shopspring/decimal"

// Action names an operation of the account management endpoint.
type Action string

const (
	ActionDeposit  Action = "deposit"
	ActionWithdraw Action = "withdraw"
	ActionBalance  Action = "balance"
	ActionClose    Action = "close"
)

// Valid reports whether the action is known.
func (a Action) Valid() bool {
	switch a {
	case ActionDeposit, ActionWithdraw, ActionBalance, ActionClose:
		return true
	}
	return false
}

// Receipt is the outcome of a successful account operation.
type Receipt struct {
	Action  Action
	Balance decimal.Decimal
}
