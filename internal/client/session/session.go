// Package session holds the client-side authentication state: the pending
// one-time-passcode handshake and, once it completes, the authenticated
// identity.
//
// A Session moves through three phases:
//
//	Anonymous --Begin--> AwaitingOtp --Verify(ok)--> Authenticated
//	    ^                    |  ^                         |
//	    |                    +--+ Verify(mismatch)        |
//	    +----------------------Reset----------------------+
//
// The passcode is issued by the backend and compared here, on the client.
// That mirrors the backend contract and is not a secure protocol.
package session

import (
	"errors"
	"sync"

	"github.com/dmitrijs2005/bankclient/internal/client/models"
)

// Phase is the handshake state.
type Phase int

const (
	Anonymous Phase = iota
	AwaitingOtp
	Authenticated
)

func (p Phase) String() string {
	switch p {
	case Anonymous:
		return "anonymous"
	case AwaitingOtp:
		return "awaiting-otp"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

var (
	ErrHandshakeInProgress  = errors.New("a login is already waiting for its one-time passcode")
	ErrAlreadyAuthenticated = errors.New("already logged in")
	ErrNoPendingChallenge   = errors.New("no one-time passcode is pending")
	ErrOtpMismatch          = errors.New("incorrect OTP")
)

// Identity is the authenticated user together with the role decided when the
// session was established.
type Identity struct {
	User models.User
	Role models.Role
}

// IsAdmin reports whether the identity is the reserved administrator.
func (i Identity) IsAdmin() bool {
	return i.Role == models.RoleAdmin
}

// Session is safe for concurrent use, but it is meant to be owned by a single
// controller.
type Session struct {
	mu         sync.Mutex
	adminEmail string

	phase            Phase
	pendingUser      *models.User
	pendingChallenge models.OTP
	active           *Identity
}

// New returns an Anonymous session. adminEmail is the reserved identity that
// receives RoleAdmin on verification; it is compared by exact equality.
func New(adminEmail string) *Session {
	return &Session{adminEmail: adminEmail}
}

// Begin records the user and challenge returned by a successful credential
// check and moves the session to AwaitingOtp.
func (s *Session) Begin(user models.User, challenge models.OTP) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch s.phase {
	case AwaitingOtp:
		return ErrHandshakeInProgress
	case Authenticated:
		return ErrAlreadyAuthenticated
	}

	u := user
	s.pendingUser = &u
	s.pendingChallenge = challenge
	s.phase = AwaitingOtp
	return nil
}

// Verify compares code with the pending challenge. On a match the pending
// user becomes the active identity; on a mismatch nothing changes, so the
// caller may retry as often as it likes.
func (s *Session) Verify(code string) (Identity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != AwaitingOtp {
		return Identity{}, ErrNoPendingChallenge
	}
	if !s.pendingChallenge.Matches(code) {
		return Identity{}, ErrOtpMismatch
	}

	id := Identity{User: *s.pendingUser, Role: s.roleFor(s.pendingUser.Email)}
	s.active = &id
	s.pendingUser = nil
	s.pendingChallenge = ""
	s.phase = Authenticated
	return id, nil
}

// Reset drops all pending and active state.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.phase = Anonymous
	s.pendingUser = nil
	s.pendingChallenge = ""
	s.active = nil
}

// UpdateUser replaces the active identity's user snapshot with a fresh copy
// from the backend. The role is not re-evaluated. It is a no-op unless the
// session is Authenticated for the same email.
func (s *Session) UpdateUser(user models.User) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Authenticated || s.active.User.Email != user.Email {
		return false
	}
	s.active.User = user
	return true
}

func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// Pending returns the user and challenge of an in-progress handshake.
func (s *Session) Pending() (models.User, models.OTP, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != AwaitingOtp {
		return models.User{}, "", false
	}
	return *s.pendingUser, s.pendingChallenge, true
}

// Identity returns the authenticated identity, if any.
func (s *Session) Identity() (Identity, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.phase != Authenticated {
		return Identity{}, false
	}
	return *s.active, true
}

// CredentialsEditable reports whether email and PIN may be entered, which is
// only the case when no handshake is pending or complete.
func (s *Session) CredentialsEditable() bool {
	return s.Phase() == Anonymous
}

func (s *Session) roleFor(email string) models.Role {
	if s.adminEmail != "" && email == s.adminEmail {
		return models.RoleAdmin
	}
	return models.RoleCustomer
}
