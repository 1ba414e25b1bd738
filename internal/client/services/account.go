package services

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/dashboard"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/logging"
	"github.com/shopspring/decimal"
)

// AccountService runs money movements for the logged-in customer and keeps
// the session's user snapshot in step with the backend. Balances are never
// adjusted locally; every success is followed by a re-fetch.
type AccountService interface {
	Refresh(ctx context.Context) (models.User, error)
	Dashboard(ctx context.Context) (dashboard.View, error)
	Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, amount decimal.Decimal, pin string) (decimal.Decimal, error)
}

type accountService struct {
	client  client.Client
	session *session.Session
	logger  logging.Logger
}

func NewAccountService(c client.Client, sess *session.Session, logger logging.Logger) AccountService {
	return &accountService{client: c, session: sess, logger: logger}
}

// Refresh fetches the current user's record and stores it in the session.
// The administrator has no record and gets the session snapshot back.
func (s *accountService) Refresh(ctx context.Context) (models.User, error) {
	id, ok := s.session.Identity()
	if !ok {
		return models.User{}, ErrNotAuthenticated
	}
	if id.IsAdmin() {
		return id.User, nil
	}

	user, err := s.client.GetUser(ctx, id.User.Email)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch user data", "email", id.User.Email, "error", err)
		return models.User{}, err
	}
	s.session.UpdateUser(user)
	return user, nil
}

// Dashboard refreshes the snapshot and builds the dashboard from it. A failed
// refresh is logged and the last known snapshot is shown instead.
func (s *accountService) Dashboard(ctx context.Context) (dashboard.View, error) {
	if _, ok := s.session.Identity(); !ok {
		return dashboard.View{}, ErrNotAuthenticated
	}

	s.resync(ctx)

	id, ok := s.session.Identity()
	if !ok {
		return dashboard.View{}, ErrNotAuthenticated
	}
	return dashboard.Build(id), nil
}

func (s *accountService) Deposit(ctx context.Context, amount decimal.Decimal) (decimal.Decimal, error) {
	id, err := s.customer(amount)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := s.client.Deposit(ctx, id.User.Email, amount)
	if err != nil {
		return decimal.Zero, rejected(ErrOperationRejected, err)
	}
	s.logger.Info(ctx, "deposit accepted", "email", id.User.Email)

	s.resync(ctx)
	return balance, nil
}

// Withdraw needs the PIN on every call; it is passed through and never kept.
func (s *accountService) Withdraw(ctx context.Context, amount decimal.Decimal, pin string) (decimal.Decimal, error) {
	id, err := s.customer(amount)
	if err != nil {
		return decimal.Zero, err
	}

	balance, err := s.client.Withdraw(ctx, id.User.Email, amount, pin)
	if err != nil {
		return decimal.Zero, rejected(ErrOperationRejected, err)
	}
	s.logger.Info(ctx, "withdrawal accepted", "email", id.User.Email)

	s.resync(ctx)
	return balance, nil
}

// resync refreshes the snapshot after a change. On failure (already logged by
// Refresh) the last known snapshot stays in the session.
func (s *accountService) resync(ctx context.Context) {
	if _, err := s.Refresh(ctx); err != nil {
		s.logger.Debug(ctx, "keeping last known snapshot")
	}
}

func (s *accountService) customer(amount decimal.Decimal) (session.Identity, error) {
	id, ok := s.session.Identity()
	if !ok {
		return session.Identity{}, ErrNotAuthenticated
	}
	if id.IsAdmin() {
		return session.Identity{}, ErrNotPermitted
	}
	if !amount.IsPositive() {
		return session.Identity{}, ErrInvalidAmount
	}
	return id, nil
}
