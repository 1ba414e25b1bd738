package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/dmitrijs2005/bankclient/internal/client/dashboard"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/shopspring/decimal"
)

var tones = map[string]string{
	"green":  "\033[32m",
	"orange": "\033[33m",
	"red":    "\033[31m",
}

const colorReset = "\033[0m"

// paint wraps s in the ANSI colour for tone when colour output is on.
func (a *App) paint(tone, s string) string {
	code, ok := tones[tone]
	if !a.color || !ok {
		return s
	}
	return code + s + colorReset
}

func money(d decimal.Decimal) string {
	return "Rs. " + d.String()
}

func (a *App) renderTransactions(txs []models.Transaction) {
	if len(txs) == 0 {
		a.println("No transactions yet.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tTYPE\tAMOUNT\tBALANCE")
	for _, t := range txs {
		tone := ""
		switch t.Type {
		case models.TxDeposit:
			tone = "green"
		case models.TxWithdraw:
			tone = "red"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n",
			t.Time, a.paint(tone, strings.ToUpper(string(t.Type))), money(t.Amount), money(t.BalanceAfter))
	}
	_ = tw.Flush()
}

func (a *App) renderDashboard(v dashboard.View) {
	if v.Admin {
		a.printf("Balance: %s\n", v.BalanceLabel)
		a.println("Use 'users' to manage accounts.")
		return
	}

	s := v.Summary
	a.printf("Welcome, %s\n", s.Profile.Name)
	a.printf("Balance: Rs. %s\n", v.BalanceLabel)
	a.printf("Total deposits: %s\n", a.paint("green", money(s.TotalDeposits)))
	a.printf("Total withdrawals: %s\n", a.paint("red", money(s.TotalWithdrawals)))
	a.println()
	a.println("Recent activity:")
	a.renderTransactions(s.RecentActivity)
}

func (a *App) renderProfile(p dashboard.Profile) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", p.Name)
	fmt.Fprintf(tw, "Email:\t%s\n", p.Email)
	fmt.Fprintf(tw, "Account:\t%s\n", p.AccountNumber)
	fmt.Fprintf(tw, "Balance:\t%s\n", money(p.Balance))
	_ = tw.Flush()
}

func (a *App) renderRoster(r services.Roster) {
	st := r.Stats
	a.printf("Accounts: %s / %s / %s\n",
		a.paint("green", fmt.Sprintf("%d Active", st.UserStatus.Active)),
		a.paint("orange", fmt.Sprintf("%d Suspended", st.UserStatus.Suspended)),
		a.paint("red", fmt.Sprintf("%d Blocked", st.UserStatus.Blocked)))
	a.printf("Deposits: %s  Withdrawals: %s\n", money(st.Financials.Deposits), money(st.Financials.Withdrawals))
	a.println()

	if len(r.Entries) == 0 {
		a.println("No accounts yet.")
		return
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tEMAIL\tACCOUNT\tSTATUS\tACTIONS")
	for _, row := range r.Entries {
		actions := make([]string, 0, len(row.Transitions))
		for _, s := range row.Transitions {
			actions = append(actions, string(s))
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			row.Entry.Name, row.Entry.Email, row.Entry.AccountNumber,
			a.paint(row.Tone, string(row.Status)), strings.Join(actions, ", "))
	}
	_ = tw.Flush()
}
