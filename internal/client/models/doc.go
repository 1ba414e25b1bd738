// Package models defines the client-side view of the banking backend's data:
// users with their transaction log, admin roster entries and stats, and the
// one-time passcode challenge. Money is carried as decimal.Decimal.
package models
