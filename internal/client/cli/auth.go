package cli

import (
	"context"
	"errors"
	"strconv"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
)

// Interactive input helpers, swapped out in tests.
var (
	getSimpleText  = GetSimpleText
	getDefaultText = GetDefaultText
	getPassword    = GetPassword
	confirm        = Confirm
)

// Register asks for name, age, email and PIN and creates the account. It
// does not log the user in.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter full name", a.out)
	if err != nil {
		return err
	}
	ageText, err := getSimpleText(a.reader, "Enter age", a.out)
	if err != nil {
		return err
	}
	age, err := strconv.Atoi(ageText)
	if err != nil {
		a.println(a.paint("red", "Age must be a number"))
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	pin, err := getPassword(a.out, "Choose a 4-digit PIN")
	if err != nil {
		return err
	}

	req := client.RegisterRequest{Name: name, Age: age, Email: email, Pin: pin}
	if err := a.authService.Register(ctx, req); err != nil {
		return a.fail(err)
	}

	a.println(a.paint("green", "Account created successfully. You can log in now."))
	return nil
}

// Login runs the two-step handshake. The credential prompts are skipped
// while an earlier challenge is still pending, so the user goes straight to
// the OTP prompt. Customers land on the dashboard, the administrator on the
// account roster.
func (a *App) Login(ctx context.Context) error {
	if a.isLoggedIn() {
		return a.fail(session.ErrAlreadyAuthenticated)
	}

	if a.authService.CredentialsEditable() {
		email, err := getDefaultText(a.reader, "Enter email", a.authService.LastEmail(ctx), a.out)
		if err != nil {
			return err
		}
		pin, err := getPassword(a.out, "Enter PIN")
		if err != nil {
			return err
		}

		otp, err := a.authService.SubmitCredentials(ctx, email, pin)
		if err != nil {
			return a.fail(err)
		}
		a.printf("Your OTP is: %s\n", otp)
	}

	return a.enterOtp(ctx)
}

func (a *App) enterOtp(ctx context.Context) error {
	for {
		code, err := getSimpleText(a.reader, "Enter OTP (empty line to go back)", a.out)
		if err != nil {
			return err
		}
		if code == "" {
			a.println("OTP entry paused. Run 'login' to continue or 'cancel' to start over.")
			return nil
		}

		id, err := a.authService.SubmitOtp(ctx, code)
		if errors.Is(err, session.ErrOtpMismatch) {
			_ = a.fail(err)
			continue
		}
		if err != nil {
			return a.fail(err)
		}

		a.printf("Login successful. Welcome, %s!\n", id.User.Name)
		if id.IsAdmin() {
			return a.Users(ctx)
		}
		return a.Dashboard(ctx)
	}
}

// Cancel abandons a login that is waiting for its OTP and re-enables the
// credential prompts.
func (a *App) Cancel(ctx context.Context) error {
	if a.authService.Phase() != session.AwaitingOtp {
		a.println("Nothing to cancel.")
		return nil
	}
	a.authService.Reset(ctx)
	a.println("Login cancelled.")
	return nil
}

// Logout asks for confirmation, then clears the session.
func (a *App) Logout(ctx context.Context) error {
	if !a.isLoggedIn() {
		a.println("Not logged in.")
		return nil
	}

	ok, err := confirm(a.reader, "Are you sure you want to log out?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		a.println("Logout cancelled.")
		return nil
	}

	a.authService.Reset(ctx)
	clear(a.drafts)
	a.println("Logged out.")
	return nil
}
