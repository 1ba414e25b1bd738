package cli

import (
	"context"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/dashboard"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/statement"
	"github.com/shopspring/decimal"
)

// now is a test seam for statement timestamps.
var now = time.Now

const (
	draftDeposit  = "deposit"
	draftWithdraw = "withdraw"
)

func (a *App) Dashboard(ctx context.Context) error {
	v, err := a.accountService.Dashboard(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.renderDashboard(v)
	return nil
}

// History lists every transaction, newest first.
func (a *App) History(ctx context.Context) error {
	v, err := a.customerView(ctx)
	if err != nil {
		return err
	}
	a.renderTransactions(v.Summary.FullHistory)
	return nil
}

func (a *App) Profile(ctx context.Context) error {
	v, err := a.customerView(ctx)
	if err != nil {
		return err
	}
	a.renderProfile(v.Summary.Profile)
	return nil
}

func (a *App) customerView(ctx context.Context) (dashboard.View, error) {
	if a.isAdmin() {
		return dashboard.View{}, a.fail(services.ErrNotPermitted)
	}
	v, err := a.accountService.Dashboard(ctx)
	if err != nil {
		return dashboard.View{}, a.fail(err)
	}
	return v, nil
}

func (a *App) Deposit(ctx context.Context) error {
	amount, err := a.readAmount(draftDeposit)
	if err != nil {
		return err
	}

	balance, err := a.accountService.Deposit(ctx, amount)
	if err != nil {
		return a.fail(err)
	}

	delete(a.drafts, draftDeposit)
	a.println(a.paint("green", "Deposit successful. New balance: "+money(balance)))
	return nil
}

// Withdraw asks for the PIN every time.
func (a *App) Withdraw(ctx context.Context) error {
	amount, err := a.readAmount(draftWithdraw)
	if err != nil {
		return err
	}
	pin, err := getPassword(a.out, "Enter PIN")
	if err != nil {
		return err
	}

	balance, err := a.accountService.Withdraw(ctx, amount, pin)
	if err != nil {
		return a.fail(err)
	}

	delete(a.drafts, draftWithdraw)
	a.println(a.paint("green", "Withdrawal successful. New balance: "+money(balance)))
	return nil
}

// readAmount prompts with the kept draft for op as the default. Whatever is
// typed becomes the new draft, valid or not.
func (a *App) readAmount(op string) (decimal.Decimal, error) {
	if !a.isLoggedIn() {
		return decimal.Zero, a.fail(services.ErrNotAuthenticated)
	}
	if a.isAdmin() {
		return decimal.Zero, a.fail(services.ErrNotPermitted)
	}

	text, err := getDefaultText(a.reader, "Enter amount", a.drafts[op], a.out)
	if err != nil {
		return decimal.Zero, err
	}
	if a.drafts == nil {
		a.drafts = map[string]string{}
	}
	a.drafts[op] = text

	amount, err := decimal.NewFromString(text)
	if err != nil {
		a.println(a.paint("red", "Invalid amount"))
		return decimal.Zero, err
	}
	return amount, nil
}

// Statement saves the current user's statement through the configured sink.
func (a *App) Statement(ctx context.Context) error {
	if a.isAdmin() {
		return a.fail(services.ErrNotPermitted)
	}

	user, err := a.accountService.Refresh(ctx)
	if err != nil {
		id, ok := a.authService.Current()
		if !ok {
			return a.fail(err)
		}
		user = id.User
	}

	location, err := a.sink.Save(ctx, statement.FileName(user), statement.Render(user, now()))
	if err != nil {
		return a.fail(err)
	}
	a.println("Statement saved to " + location)
	return nil
}
