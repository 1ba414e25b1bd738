package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/services"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	blocked := &client.APIError{StatusCode: http.StatusForbidden, Message: "Your account has been BLOCKED. Contact Admin."}

	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "backend wording", err: fmt.Errorf("%w: %w", services.ErrCredentialsRejected, blocked), want: blocked.Message},
		{name: "unavailable", err: fmt.Errorf("%w: dial tcp: refused", client.ErrUnavailable), want: "Server connection failed"},
		{name: "otp mismatch", err: session.ErrOtpMismatch, want: "Incorrect OTP"},
		{name: "already logged in", err: session.ErrAlreadyAuthenticated, want: "Already logged in."},
		{name: "not logged in", err: services.ErrNotAuthenticated, want: "Please log in first."},
		{name: "not permitted", err: services.ErrNotPermitted, want: "Not available for this account."},
		{name: "amount", err: services.ErrInvalidAmount, want: "Amount must be positive"},
		{name: "cancelled", err: context.Canceled, want: "Request cancelled"},
		{name: "other", err: errors.New("boom"), want: "boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}

func TestUserMessage_HandshakeInProgress(t *testing.T) {
	msg := UserMessage(session.ErrHandshakeInProgress)
	assert.Contains(t, msg, "'login'")
	assert.Contains(t, msg, "'cancel'")
}
