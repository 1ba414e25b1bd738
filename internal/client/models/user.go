package models

import (
	"github.com/shopspring/decimal"
)

// TxType is the kind of a transaction as reported by the backend.
type TxType string

const (
	TxDeposit  TxType = "deposit"
	TxWithdraw TxType = "withdraw"
)

// Transaction is one entry of a user's log. Time is a display string
// formatted by the backend.
type Transaction struct {
	Time         string          `json:"time"`
	Type         TxType          `json:"type"`
	Amount       decimal.Decimal `json:"amount"`
	BalanceAfter decimal.Decimal `json:"balance_after"`
}

// User is the identity and balance snapshot returned by /login and
// /user/{email}. Transactions are ordered oldest first.
type User struct {
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Age           int             `json:"age,omitempty"`
	AccountNumber string          `json:"account_no,omitempty"`
	Balance       decimal.Decimal `json:"balance"`
	Status        Status          `json:"status,omitempty"`
	Transactions  []Transaction   `json:"transactions,omitempty"`
}

// Role is decided once when a session is established.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleAdmin    Role = "admin"
)
