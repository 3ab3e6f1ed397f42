// Package storage defines the persistence contracts for the backend service.
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/studydesk/studydesk/internal/services/backend/plan"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/user"
)

// ErrNotFound indicates a missing record.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken indicates an email already bound to another account.
var ErrEmailTaken = errors.New("email already registered")

// UserStore persists user accounts keyed by id and unique email.
type UserStore interface {
	PutUser(ctx context.Context, u user.User) error
	GetUser(ctx context.Context, id string) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	ConfirmEmail(ctx context.Context, id string, at time.Time) error
}

// SessionStore persists durable web sessions.
type SessionStore interface {
	PutSession(ctx context.Context, s session.Session) error
	GetSession(ctx context.Context, id string) (session.Session, error)
	RevokeSession(ctx context.Context, id string, at time.Time) error
}

// PlanStore persists user-scoped study plans.
type PlanStore interface {
	PutStudyPlan(ctx context.Context, p plan.StudyPlan) error
	// ListStudyPlans returns a user's plans ordered by creation time descending.
	ListStudyPlans(ctx context.Context, userID string) ([]plan.StudyPlan, error)
}

// Store aggregates every backend persistence concern behind one handle.
type Store interface {
	UserStore
	SessionStore
	PlanStore
}
