package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
)

// UserMessage turns an error into the line shown to the user. Backend
// rejections are shown with the backend's own wording.
func UserMessage(err error) string {
	var apiErr *client.APIError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &apiErr):
		return apiErr.Message
	case errors.Is(err, client.ErrUnavailable):
		return "Server connection failed"
	case errors.Is(err, session.ErrOtpMismatch):
		return "Incorrect OTP"
	case errors.Is(err, session.ErrHandshakeInProgress):
		return "A login is waiting for its OTP. Run 'login' to enter it or 'cancel' to start over."
	case errors.Is(err, session.ErrAlreadyAuthenticated):
		return "Already logged in."
	case errors.Is(err, services.ErrNotAuthenticated):
		return "Please log in first."
	case errors.Is(err, services.ErrNotPermitted):
		return "Not available for this account."
	case errors.Is(err, services.ErrInvalidAmount):
		return "Amount must be positive"
	case errors.Is(err, services.ErrInvalidStatus):
		return "Unknown status. Use Active, Suspended or Blocked."
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return "Request cancelled"
	default:
		return err.Error()
	}
}
