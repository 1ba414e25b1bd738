// Package dashboard turns a user's transaction log into the figures shown on
// the dashboard, history and profile pages. Everything here is a pure
// function of its input: no I/O, no hidden state.
package dashboard

import (
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/shopspring/decimal"
)

// RecentLimit is the number of entries in the recent-activity feed.
const RecentLimit = 5

// AdminBalanceLabel is shown instead of a balance for the administrator,
// who has no personal account.
const AdminBalanceLabel = "Admin"

// Profile is the account snapshot shown on the profile page.
type Profile struct {
	Name          string
	Email         string
	AccountNumber string
	Balance       decimal.Decimal
}

// Summary holds the derived views of one user record.
type Summary struct {
	TotalDeposits    decimal.Decimal
	TotalWithdrawals decimal.Decimal

	// RecentActivity and FullHistory are most-recent-first.
	RecentActivity []models.Transaction
	FullHistory    []models.Transaction

	Profile Profile
}

// HasActivity is false when there is nothing to list, in which case the
// caller renders an explicit "no transactions" line.
func (s Summary) HasActivity() bool {
	return len(s.RecentActivity) > 0
}

// Aggregate computes the Summary of user. Transactions are taken as the
// backend sent them: nothing is validated, unknown types count towards
// neither total, and user.Transactions is not modified.
func Aggregate(user models.User) Summary {
	txs := user.Transactions

	sum := Summary{
		TotalDeposits:    decimal.Zero,
		TotalWithdrawals: decimal.Zero,
		FullHistory:      reversed(txs),
		Profile: Profile{
			Name:          user.Name,
			Email:         user.Email,
			AccountNumber: user.AccountNumber,
			Balance:       user.Balance,
		},
	}

	for _, t := range txs {
		switch t.Type {
		case models.TxDeposit:
			sum.TotalDeposits = sum.TotalDeposits.Add(t.Amount)
		case models.TxWithdraw:
			sum.TotalWithdrawals = sum.TotalWithdrawals.Add(t.Amount)
		}
	}

	n := min(RecentLimit, len(sum.FullHistory))
	sum.RecentActivity = append(make([]models.Transaction, 0, n), sum.FullHistory[:n]...)

	return sum
}

// View is what the dashboard page renders for the current identity.
type View struct {
	// Admin is set for the administrator; Summary is then empty and
	// BalanceLabel carries the placeholder.
	Admin        bool
	BalanceLabel string
	Summary      Summary
}

// Build aggregates the identity's user record, or skips aggregation entirely
// for the administrator.
func Build(id session.Identity) View {
	if id.IsAdmin() {
		return View{Admin: true, BalanceLabel: AdminBalanceLabel}
	}

	s := Aggregate(id.User)
	return View{BalanceLabel: s.Profile.Balance.String(), Summary: s}
}

func reversed(txs []models.Transaction) []models.Transaction {
	out := make([]models.Transaction, len(txs))
	for i, t := range txs {
		out[len(txs)-1-i] = t
	}
	return out
}
