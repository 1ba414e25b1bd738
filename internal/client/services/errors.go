package services

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
)

var (
	ErrCredentialsRejected  = errors.New("credentials rejected")
	ErrRegistrationRejected = errors.New("registration rejected")
	ErrOperationRejected    = errors.New("operation rejected")
	ErrNotAuthenticated     = errors.New("not logged in")
	ErrNotPermitted         = errors.New("not permitted for this account")
	ErrInvalidAmount        = errors.New("amount must be positive")
	ErrInvalidStatus        = errors.New("unknown account status")
)

// rejected tags a backend refusal with kind. Anything that is not an
// *client.APIError (connectivity, cancellation) is returned unchanged.
func rejected(kind, err error) error {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return fmt.Errorf("%w: %w", kind, err)
	}
	return err
}
