package models

import "github.com/shopspring/decimal"

// RosterEntry is one account as listed by /admin/users.
type RosterEntry struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	AccountNumber string `json:"account_no"`
	Status        Status `json:"status"`
}

// StatusCounts is the per-status account count from /admin/stats.
type StatusCounts struct {
	Active    int `json:"Active"`
	Suspended int `json:"Suspended"`
	Blocked   int `json:"Blocked"`
}

// Financials are bank-wide transaction totals from /admin/stats.
type Financials struct {
	Deposits    decimal.Decimal `json:"deposits"`
	Withdrawals decimal.Decimal `json:"withdrawals"`
}

// Stats is the /admin/stats payload.
type Stats struct {
	UserStatus StatusCounts `json:"user_status"`
	Financials Financials   `json:"financials"`
}
