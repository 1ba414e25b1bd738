// Package metadata stores small client-side key/value facts in the local
// SQLite database, such as the email of the last successful login.
package metadata

import (
	"context"
	"time"
)

const (
	// KeyLastEmail is the email of the last account that completed the OTP step.
	KeyLastEmail = "last_email"
	// KeyLastLoginAt is the RFC 3339 time of that login. Logout removes it.
	KeyLastLoginAt = "last_login_at"
)

type Repository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string]string, error)
	Clear(ctx context.Context) error

	RememberLogin(ctx context.Context, email string, at time.Time) error
	ForgetLoginTime(ctx context.Context) error
	LastLogin(ctx context.Context) (LastLogin, error)
}
