package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/dashboard"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/shopspring/decimal"
)

type fakeAuth struct {
	phase    session.Phase
	identity *session.Identity

	lastEmail string

	// SubmitCredentials
	credEmail string
	credPin   string
	credOTP   models.OTP
	credErr   error

	// SubmitOtp
	otpCodes []string
	otpWant  string
	otpUser  models.User
	otpRole  models.Role

	regReq client.RegisterRequest
	regErr error

	resetCalls int
	pingErr    error
}

func (f *fakeAuth) SubmitCredentials(_ context.Context, email, pin string) (models.OTP, error) {
	f.credEmail, f.credPin = email, pin
	if f.credErr != nil {
		return "", f.credErr
	}
	f.phase = session.AwaitingOtp
	return f.credOTP, nil
}

func (f *fakeAuth) SubmitOtp(_ context.Context, code string) (session.Identity, error) {
	f.otpCodes = append(f.otpCodes, code)
	if f.phase != session.AwaitingOtp {
		return session.Identity{}, session.ErrNoPendingChallenge
	}
	if code != f.otpWant {
		return session.Identity{}, session.ErrOtpMismatch
	}
	role := f.otpRole
	if role == "" {
		role = models.RoleCustomer
	}
	id := session.Identity{User: f.otpUser, Role: role}
	f.identity = &id
	f.phase = session.Authenticated
	return id, nil
}

func (f *fakeAuth) Reset(context.Context) {
	f.resetCalls++
	f.identity = nil
	f.phase = session.Anonymous
}

func (f *fakeAuth) Register(_ context.Context, req client.RegisterRequest) error {
	f.regReq = req
	return f.regErr
}

func (f *fakeAuth) LastEmail(context.Context) string { return f.lastEmail }

func (f *fakeAuth) Current() (session.Identity, bool) {
	if f.identity == nil {
		return session.Identity{}, false
	}
	return *f.identity, true
}

func (f *fakeAuth) Phase() session.Phase { return f.phase }

func (f *fakeAuth) CredentialsEditable() bool { return f.phase == session.Anonymous }

func (f *fakeAuth) Ping(context.Context) error { return f.pingErr }

func (f *fakeAuth) Close(context.Context) error { return nil }

type fakeAccount struct {
	view    dashboard.View
	viewErr error

	user       models.User
	refreshErr error

	depositRet  decimal.Decimal
	depositErr  error
	withdrawRet decimal.Decimal
	withdrawErr error

	amounts []decimal.Decimal
	pins    []string
}

func (f *fakeAccount) Refresh(context.Context) (models.User, error) { return f.user, f.refreshErr }

func (f *fakeAccount) Dashboard(context.Context) (dashboard.View, error) { return f.view, f.viewErr }

func (f *fakeAccount) Deposit(_ context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	f.amounts = append(f.amounts, amount)
	return f.depositRet, f.depositErr
}

func (f *fakeAccount) Withdraw(_ context.Context, amount decimal.Decimal, pin string) (decimal.Decimal, error) {
	f.amounts = append(f.amounts, amount)
	f.pins = append(f.pins, pin)
	return f.withdrawRet, f.withdrawErr
}

type fakeAdmin struct {
	roster    services.Roster
	rosterErr error

	changed    []string
	changeErr  error
	changedRet services.Roster
}

func (f *fakeAdmin) Roster(context.Context) (services.Roster, error) { return f.roster, f.rosterErr }

func (f *fakeAdmin) ChangeStatus(_ context.Context, email string, status models.Status) (services.Roster, error) {
	f.changed = append(f.changed, email+"="+string(status))
	return f.changedRet, f.changeErr
}

type fakeSink struct {
	name string
	body string
	err  error
}

func (f *fakeSink) Save(_ context.Context, name string, body []byte) (string, error) {
	f.name, f.body = name, string(body)
	if f.err != nil {
		return "", f.err
	}
	return "/tmp/" + name, nil
}

// testApp builds an App over fakes. Output is collected in the returned
// buffer and input lines are read from input.
func testApp(auth *fakeAuth, input string) (*App, *bytes.Buffer) {
	var out bytes.Buffer
	return &App{
		authService:    auth,
		accountService: &fakeAccount{},
		adminService:   &fakeAdmin{},
		sink:           &fakeSink{},
		logger:         logging.Discard(),
		reader:         bufio.NewReader(bytes.NewBufferString(input)),
		out:            &out,
		drafts:         map[string]string{},
	}, &out
}

func customer(email string) *session.Identity {
	return &session.Identity{User: models.User{Name: "Asha", Email: email}, Role: models.RoleCustomer}
}

func admin() *session.Identity {
	return &session.Identity{User: models.User{Name: "Admin", Email: "admin@login.com"}, Role: models.RoleAdmin}
}

// stubPIN makes getPassword return the queued PINs in order and records the
// prompts it was called with.
func stubPIN(t *testing.T, pins ...string) *[]string {
	t.Helper()
	var prompts []string
	orig := getPassword
	getPassword = func(_ io.Writer, prompt string) (string, error) {
		prompts = append(prompts, prompt)
		if len(pins) == 0 {
			return "", io.EOF
		}
		p := pins[0]
		pins = pins[1:]
		return p, nil
	}
	t.Cleanup(func() { getPassword = orig })
	return &prompts
}
