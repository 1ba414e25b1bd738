// Package services contains the application services behind the terminal
// client: the two-step login handshake, account operations and the
// administrator roster.
package services

import (
	"context"
	"database/sql"
	"sync/atomic"
	"time"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/dbx"
	"github.com/dmitrijs2005/bankclient/internal/logging"
)

// AuthService drives the login handshake for the CLI.
//
// Contract:
//   - SubmitCredentials: check email and PIN with the backend and hold the
//     returned challenge. Fails fast while a challenge is pending.
//   - SubmitOtp: compare a code with the pending challenge. Mismatches may be
//     retried without limit.
//   - Reset: log out, or abandon a pending handshake.
//   - Register: create an account; the session is not touched.
//   - LastEmail: the email of the last completed login on this machine.
//   - Ping / Close: backend liveness and teardown.
type AuthService interface {
	SubmitCredentials(ctx context.Context, email, pin string) (models.OTP, error)
	SubmitOtp(ctx context.Context, code string) (session.Identity, error)
	Reset(ctx context.Context)
	Register(ctx context.Context, req client.RegisterRequest) error
	LastEmail(ctx context.Context) string

	Current() (session.Identity, bool)
	Phase() session.Phase
	CredentialsEditable() bool

	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}

// now is a test seam.
var now = time.Now

type authService struct {
	client   client.Client
	db       *sql.DB
	session  *session.Session
	logger   logging.Logger
	inFlight atomic.Bool
}

// NewAuthService binds the handshake to a backend client, the session it
// owns and the local database used to remember the last email. db may be
// nil, in which case nothing is remembered.
func NewAuthService(c client.Client, db *sql.DB, sess *session.Session, logger logging.Logger) AuthService {
	return &authService{client: c, db: db, session: sess, logger: logger}
}

func (a *authService) SubmitCredentials(ctx context.Context, email, pin string) (models.OTP, error) {
	switch a.session.Phase() {
	case session.AwaitingOtp:
		return "", session.ErrHandshakeInProgress
	case session.Authenticated:
		return "", session.ErrAlreadyAuthenticated
	}
	if !a.inFlight.CompareAndSwap(false, true) {
		return "", session.ErrHandshakeInProgress
	}
	defer a.inFlight.Store(false)

	log := a.logger.With("email", email)

	res, err := a.client.Login(ctx, email, pin)
	if err != nil {
		log.Info(ctx, "credentials not accepted", "error", err)
		return "", rejected(ErrCredentialsRejected, err)
	}

	if err := a.session.Begin(res.User, res.OTP); err != nil {
		return "", err
	}
	log.Info(ctx, "otp issued", "phase", a.session.Phase().String())
	return res.OTP, nil
}

func (a *authService) SubmitOtp(ctx context.Context, code string) (session.Identity, error) {
	id, err := a.session.Verify(code)
	if err != nil {
		return session.Identity{}, err
	}

	log := a.logger.With("email", id.User.Email)
	log.Info(ctx, "session established", "role", string(id.Role), "phase", a.session.Phase().String())

	if err := a.remember(ctx, id.User.Email); err != nil {
		log.Warn(ctx, "failed to remember login", "error", err)
	}
	return id, nil
}

func (a *authService) remember(ctx context.Context, email string) error {
	if a.db == nil {
		return nil
	}
	return dbx.WithTx(ctx, a.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).RememberLogin(ctx, email, now())
	})
}

func (a *authService) Reset(ctx context.Context) {
	a.session.Reset()
	a.logger.Info(ctx, "session cleared")

	if a.db == nil {
		return
	}
	if err := metadata.NewSQLiteRepository(a.db).ForgetLoginTime(ctx); err != nil {
		a.logger.Warn(ctx, "failed to clear login time", "error", err)
	}
}

func (a *authService) Register(ctx context.Context, req client.RegisterRequest) error {
	if err := a.client.Register(ctx, req); err != nil {
		return rejected(ErrRegistrationRejected, err)
	}
	a.logger.Info(ctx, "account registered", "email", req.Email)
	return nil
}

func (a *authService) LastEmail(ctx context.Context) string {
	if a.db == nil {
		return ""
	}
	ll, err := metadata.NewSQLiteRepository(a.db).LastLogin(ctx)
	if err != nil {
		a.logger.Warn(ctx, "failed to read last login", "error", err)
	}
	return ll.Email
}

func (a *authService) Current() (session.Identity, bool) {
	return a.session.Identity()
}

func (a *authService) Phase() session.Phase {
	return a.session.Phase()
}

func (a *authService) CredentialsEditable() bool {
	return a.session.CredentialsEditable()
}

// Ping proxies a liveness check to the underlying client.
func (a *authService) Ping(ctx context.Context) error {
	return a.client.Ping(ctx)
}

// Close releases resources held by the underlying client.
func (a *authService) Close(ctx context.Context) error {
	return a.client.Close()
}
