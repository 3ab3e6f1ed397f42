// Package httpapi exposes the backend service over a JSON HTTP API.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/studydesk/studydesk/internal/platform/id"
	"github.com/studydesk/studydesk/internal/services/backend/plan"
	"github.com/studydesk/studydesk/internal/services/backend/session"
	"github.com/studydesk/studydesk/internal/services/backend/storage"
	"github.com/studydesk/studydesk/internal/services/backend/user"
)

// Provider-facing error messages. Web clients match on these substrings, so
// the exact wording is part of the API contract.
var (
	ErrInvalidCredentials = errors.New("Invalid login credentials")
	ErrUserRegistered     = errors.New("User already registered")
	ErrEmailNotConfirmed  = errors.New("Email not confirmed")
)

// Options configures a backend API service.
type Options struct {
	Store  storage.Store
	Signer *session.Signer
	// SessionTTL bounds issued sessions; zero means session.DefaultTTL.
	SessionTTL time.Duration
	// RequireEmailConfirmation keeps new accounts locked out of login until
	// their email is confirmed.
	RequireEmailConfirmation bool

	Clock       func() time.Time
	IDGenerator func() (string, error)
}

// Service implements the backend operations behind the HTTP handlers.
type Service struct {
	store                    storage.Store
	signer                   *session.Signer
	sessionTTL               time.Duration
	requireEmailConfirmation bool
	clock                    func() time.Time
	idGenerator              func() (string, error)
}

// NewService builds a backend API service.
func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Signer == nil {
		return nil, errors.New("token signer is required")
	}
	svc := &Service{
		store:                    opts.Store,
		signer:                   opts.Signer,
		sessionTTL:               opts.SessionTTL,
		requireEmailConfirmation: opts.RequireEmailConfirmation,
		clock:                    opts.Clock,
		idGenerator:              opts.IDGenerator,
	}
	if svc.clock == nil {
		svc.clock = time.Now
	}
	if svc.idGenerator == nil {
		svc.idGenerator = id.NewID
	}
	return svc, nil
}

// Grant is an issued session with its bearer token.
type Grant struct {
	Token   string
	Session session.Session
	User    user.User
}

// SignUp registers a new account and signs it in when confirmation is not
// required.
func (s *Service) SignUp(ctx context.Context, email, password, fullName string) (Grant, error) {
	normalized := user.NormalizeEmail(email)
	if _, err := s.store.GetUserByEmail(ctx, normalized); err == nil {
		return Grant{}, ErrUserRegistered
	} else if !errors.Is(err, storage.ErrNotFound) {
		return Grant{}, fmt.Errorf("lookup email: %w", err)
	}

	u, err := user.CreateUser(user.CreateUserInput{Email: normalized, Password: password, FullName: fullName}, s.clock, s.idGenerator)
	if err != nil {
		return Grant{}, err
	}
	if !s.requireEmailConfirmation {
		confirmedAt := s.clock().UTC()
		u.EmailConfirmedAt = &confirmedAt
	}
	if err := s.store.PutUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrEmailTaken) {
			return Grant{}, ErrUserRegistered
		}
		return Grant{}, fmt.Errorf("put user: %w", err)
	}

	if s.requireEmailConfirmation {
		return Grant{User: u}, nil
	}
	return s.issueGrant(ctx, u)
}

// SignIn exchanges credentials for a session grant.
func (s *Service) SignIn(ctx context.Context, email, password string) (Grant, error) {
	u, err := s.store.GetUserByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return Grant{}, ErrInvalidCredentials
		}
		return Grant{}, fmt.Errorf("lookup email: %w", err)
	}
	if !user.CheckPassword(u, password) {
		return Grant{}, ErrInvalidCredentials
	}
	if !u.Confirmed() {
		return Grant{}, ErrEmailNotConfirmed
	}
	return s.issueGrant(ctx, u)
}

// SignOut revokes the session referenced by the token. Revoking a session
// that is already gone is treated as settled.
func (s *Service) SignOut(ctx context.Context, token string) error {
	sessionID, _, err := s.signer.Parse(token)
	if err != nil {
		return err
	}
	if err := s.store.RevokeSession(ctx, sessionID, s.clock().UTC()); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

// SessionUser resolves the active session and user behind a token.
func (s *Service) SessionUser(ctx context.Context, token string) (session.Session, user.User, error) {
	sessionID, _, err := s.signer.Parse(token)
	if err != nil {
		return session.Session{}, user.User{}, err
	}
	sess, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return session.Session{}, user.User{}, session.ErrExpired
		}
		return session.Session{}, user.User{}, fmt.Errorf("get session: %w", err)
	}
	if !sess.ActiveAt(s.clock().UTC()) {
		return session.Session{}, user.User{}, session.ErrExpired
	}
	u, err := s.store.GetUser(ctx, sess.UserID)
	if err != nil {
		return session.Session{}, user.User{}, fmt.Errorf("get session user: %w", err)
	}
	return sess, u, nil
}

// Profile loads a user's display profile.
func (s *Service) Profile(ctx context.Context, userID string) (user.User, error) {
	return s.store.GetUser(ctx, userID)
}

// StudyPlans lists a user's plans ordered by creation time descending.
func (s *Service) StudyPlans(ctx context.Context, userID string) ([]plan.StudyPlan, error) {
	return s.store.ListStudyPlans(ctx, userID)
}

// CreatePlan stores a new study plan owned by the user.
func (s *Service) CreatePlan(ctx context.Context, userID, title, subject string) (plan.StudyPlan, error) {
	p, err := plan.New(userID, title, subject, s.clock, s.idGenerator)
	if err != nil {
		return plan.StudyPlan{}, err
	}
	if err := s.store.PutStudyPlan(ctx, p); err != nil {
		return plan.StudyPlan{}, fmt.Errorf("put study plan: %w", err)
	}
	return p, nil
}

// ConfirmEmail marks the account behind an email address as confirmed,
// unlocking login when confirmation is required. Confirming an already
// confirmed account is treated as settled.
func (s *Service) ConfirmEmail(ctx context.Context, email string) error {
	u, err := s.store.GetUserByEmail(ctx, user.NormalizeEmail(email))
	if err != nil {
		return fmt.Errorf("lookup email: %w", err)
	}
	if u.Confirmed() {
		return nil
	}
	if err := s.store.ConfirmEmail(ctx, u.ID, s.clock().UTC()); err != nil {
		return fmt.Errorf("confirm email: %w", err)
	}
	return nil
}

func (s *Service) issueGrant(ctx context.Context, u user.User) (Grant, error) {
	sess, err := session.New(u.ID, s.sessionTTL, s.clock, s.idGenerator)
	if err != nil {
		return Grant{}, fmt.Errorf("create session: %w", err)
	}
	if err := s.store.PutSession(ctx, sess); err != nil {
		return Grant{}, fmt.Errorf("put session: %w", err)
	}
	token, err := s.signer.Sign(sess)
	if err != nil {
		return Grant{}, err
	}
	return Grant{Token: token, Session: sess, User: u}, nil
}
