// Package statement renders a customer's plain-text bank statement and
// stores it, either in a local directory or in an S3-compatible bucket.
package statement

import (
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

const (
	rule       = "--------------------------------"
	timeLayout = "2006-01-02 15:04:05"
)

// FileName is the conventional statement file name for user.
func FileName(user models.User) string {
	return "Statement_" + user.AccountNumber + ".txt"
}

// Render produces the statement text. Transactions are listed oldest first,
// in the order the backend keeps them.
func Render(user models.User, generatedAt time.Time) []byte {
	var b strings.Builder

	b.WriteString("BANK STATEMENT\n")
	fmt.Fprintf(&b, "Generated on: %s\n", generatedAt.Format(timeLayout))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Name: %s\n", user.Name)
	fmt.Fprintf(&b, "Account: %s\n", user.AccountNumber)
	fmt.Fprintf(&b, "Balance: Rs. %s\n\n", user.Balance.String())
	b.WriteString("TRANSACTIONS:\n")
	b.WriteString(rule + "\n")

	for _, t := range user.Transactions {
		fmt.Fprintf(&b, "%s | %s | Rs. %s | Bal: %s\n",
			t.Time, strings.ToUpper(string(t.Type)), t.Amount.String(), t.BalanceAfter.String())
	}

	return []byte(b.String())
}
