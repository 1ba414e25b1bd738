package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bankclient/internal/client/client"
	"github.com/dmitrijs2005/bankclient/internal/client/models"
	"github.com/dmitrijs2005/bankclient/internal/client/session"
	"github.com/dmitrijs2005/bankclient/internal/logging"
)

// RosterRow is one account in the administrator's table.
type RosterRow struct {
	Entry models.RosterEntry
	// Status is Entry.Status with a missing value read as Active.
	Status      models.Status
	Tone        string
	Transitions []models.Status
}

// Roster is the administrator's view: every account plus bank-wide stats.
type Roster struct {
	Entries []RosterRow
	Stats   models.Stats
}

type AdminService interface {
	Roster(ctx context.Context) (Roster, error)
	ChangeStatus(ctx context.Context, email string, status models.Status) (Roster, error)
}

type adminService struct {
	client  client.Client
	session *session.Session
	logger  logging.Logger
}

func NewAdminService(c client.Client, sess *session.Session, logger logging.Logger) AdminService {
	return &adminService{client: c, session: sess, logger: logger}
}

func (s *adminService) Roster(ctx context.Context) (Roster, error) {
	if err := s.requireAdmin(); err != nil {
		return Roster{}, err
	}
	return s.fetch(ctx)
}

// ChangeStatus asks the backend to move email to status and, on success,
// returns the roster as re-fetched afterwards.
func (s *adminService) ChangeStatus(ctx context.Context, email string, status models.Status) (Roster, error) {
	if err := s.requireAdmin(); err != nil {
		return Roster{}, err
	}
	if !status.Valid() {
		return Roster{}, fmt.Errorf("%w: %q", ErrInvalidStatus, status)
	}

	msg, err := s.client.SetUserStatus(ctx, email, status)
	if err != nil {
		return Roster{}, rejected(ErrOperationRejected, err)
	}
	s.logger.Info(ctx, msg, "email", email, "status", string(status))

	return s.fetch(ctx)
}

func (s *adminService) fetch(ctx context.Context) (Roster, error) {
	entries, err := s.client.ListUsers(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch users", "error", err)
		return Roster{}, err
	}
	stats, err := s.client.Stats(ctx)
	if err != nil {
		s.logger.Error(ctx, "failed to fetch stats", "error", err)
		return Roster{}, err
	}

	rows := make([]RosterRow, 0, len(entries))
	for _, e := range entries {
		st := e.Status.Normalize()
		rows = append(rows, RosterRow{
			Entry:       e,
			Status:      st,
			Tone:        st.Tone(),
			Transitions: st.Transitions(),
		})
	}
	return Roster{Entries: rows, Stats: stats}, nil
}

func (s *adminService) requireAdmin() error {
	id, ok := s.session.Identity()
	if !ok {
		return ErrNotAuthenticated
	}
	if !id.IsAdmin() {
		return ErrNotPermitted
	}
	return nil
}
