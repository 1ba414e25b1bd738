package services

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/shopspring/decimal"
)

// fakeClient implements client.Client for service unit tests.
type fakeClient struct {
	LoginRet *client.LoginResult
	LoginErr error
	// LoginHook runs inside Login before it returns.
	LoginHook func()

	RegisterErr error

	GetUserRet models.User
	GetUserErr error

	DepositRet  decimal.Decimal
	DepositErr  error
	WithdrawRet decimal.Decimal
	WithdrawErr error

	ListUsersRet []models.RosterEntry
	ListUsersErr error
	StatsRet     models.Stats
	StatsErr     error

	SetUserStatusRet string
	SetUserStatusErr error

	PingErr  error
	CloseErr error

	LastLoginEmail   string
	LastLoginPin     string
	LastRegister     client.RegisterRequest
	LastGetUserEmail string
	LastAmount       decimal.Decimal
	LastPin          string
	LastStatusEmail  string
	LastStatus       models.Status

	LoginCalls     int
	GetUserCalls   int
	ListUsersCalls int
}

func (f *fakeClient) Login(ctx context.Context, email, pin string) (*client.LoginResult, error) {
	f.LoginCalls++
	f.LastLoginEmail = email
	f.LastLoginPin = pin
	if f.LoginHook != nil {
		f.LoginHook()
	}
	if f.LoginErr != nil {
		return nil, f.LoginErr
	}
	return f.LoginRet, nil
}

func (f *fakeClient) Register(ctx context.Context, req client.RegisterRequest) error {
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeClient) GetUser(ctx context.Context, email string) (models.User, error) {
	f.GetUserCalls++
	f.LastGetUserEmail = email
	return f.GetUserRet, f.GetUserErr
}

func (f *fakeClient) Deposit(ctx context.Context, email string, amount decimal.Decimal) (decimal.Decimal, error) {
	f.LastAmount = amount
	return f.DepositRet, f.DepositErr
}

func (f *fakeClient) Withdraw(ctx context.Context, email string, amount decimal.Decimal, pin string) (decimal.Decimal, error) {
	f.LastAmount = amount
	f.LastPin = pin
	return f.WithdrawRet, f.WithdrawErr
}

func (f *fakeClient) ListUsers(ctx context.Context) ([]models.RosterEntry, error) {
	f.ListUsersCalls++
	return f.ListUsersRet, f.ListUsersErr
}

func (f *fakeClient) Stats(ctx context.Context) (models.Stats, error) {
	return f.StatsRet, f.StatsErr
}

func (f *fakeClient) SetUserStatus(ctx context.Context, email string, status models.Status) (string, error) {
	f.LastStatusEmail = email
	f.LastStatus = status
	return f.SetUserStatusRet, f.SetUserStatusErr
}

func (f *fakeClient) Ping(ctx context.Context) error { return f.PingErr }

func (f *fakeClient) Close() error { return f.CloseErr }
