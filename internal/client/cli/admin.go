package cli

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
)

func (a *App) Users(ctx context.Context) error {
	r, err := a.adminService.Roster(ctx)
	if err != nil {
		return a.fail(err)
	}
	a.renderRoster(r)
	return nil
}

// SetStatus picks an account and one of the statuses it is not already in,
// asks for confirmation and applies the change.
func (a *App) SetStatus(ctx context.Context) error {
	r, err := a.adminService.Roster(ctx)
	if err != nil {
		return a.fail(err)
	}

	email, err := getSimpleText(a.reader, "Enter account email", a.out)
	if err != nil {
		return err
	}
	idx := slices.IndexFunc(r.Entries, func(row services.RosterRow) bool { return row.Entry.Email == email })
	if idx < 0 {
		a.println(a.paint("red", "No such account: "+email))
		return nil
	}
	row := r.Entries[idx]

	options := make([]string, 0, len(row.Transitions))
	for _, s := range row.Transitions {
		options = append(options, string(s))
	}
	prompt := fmt.Sprintf("Current status: %s. New status (%s)", row.Status, strings.Join(options, ", "))
	text, err := getSimpleText(a.reader, prompt, a.out)
	if err != nil {
		return err
	}
	status, err := models.ParseStatus(text)
	if err != nil {
		return a.fail(fmt.Errorf("%w: %v", services.ErrInvalidStatus, err))
	}
	if !slices.Contains(row.Transitions, status) {
		a.printf("%s is already %s.\n", email, status)
		return nil
	}

	ok, err := confirm(a.reader, fmt.Sprintf("Are you sure you want to set %s to %s?", email, status), a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Status change cancelled.")
		return nil
	}

	updated, err := a.adminService.ChangeStatus(ctx, email, status)
	if err != nil {
		return a.fail(err)
	}
	a.println(a.paint("green", fmt.Sprintf("User status updated to %s", status)))
	a.renderRoster(updated)
	return nil
}
