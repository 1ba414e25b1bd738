package client

import (
	"context"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/shopspring/decimal"
)

// LoginResult is the successful /login response: the user record and the
// passcode challenge to be verified on the client.
type LoginResult struct {
	User models.User `json:"user"`
	OTP  models.OTP  `json:"otp"`
}

// RegisterRequest is the /register payload.
type RegisterRequest struct {
	Name  string `json:"name"`
	Age   int    `json:"age"`
	Email string `json:"email"`
	Pin   string `json:"pin"`
}

// Client is the backend API consumed by the services.
type Client interface {
	Login(ctx context.Context, email, pin string) (*LoginResult, error)
	Register(ctx context.Context, req RegisterRequest) error
	GetUser(ctx context.Context, email string) (models.User, error)
	Deposit(ctx context.Context, email string, amount decimal.Decimal) (decimal.Decimal, error)
	Withdraw(ctx context.Context, email string, amount decimal.Decimal, pin string) (decimal.Decimal, error)
	ListUsers(ctx context.Context) ([]models.RosterEntry, error)
	Stats(ctx context.Context) (models.Stats, error)
	SetUserStatus(ctx context.Context, email string, status models.Status) (string, error)
	Ping(ctx context.Context) error
	Close() error
}
