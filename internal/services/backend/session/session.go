// Package session provides durable backend web sessions and their tokens.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/studydesk/studydesk/internal/platform/id"
)

// DefaultTTL is the default session lifetime.
const DefaultTTL = 7 * 24 * time.Hour

// ErrExpired indicates a session past its expiry or revoked.
var ErrExpired = errors.New("session expired")

// Session is a durable authenticated web session.
//
// Sessions are the unit of revocation: tokens reference a session id so a
// sign-out invalidates every copy of the token immediately.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// ActiveAt reports whether the session is valid at the given instant.
func (s Session) ActiveAt(at time.Time) bool {
	if s.RevokedAt != nil {
		return false
	}
	return s.ExpiresAt.After(at)
}

// New creates a session for a user with the given lifetime.
func New(userID string, ttl time.Duration, now func() time.Time, idGenerator func() (string, error)) (Session, error) {
	if userID == "" {
		return Session{}, errors.New("user id is required")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	sessionID, err := idGenerator()
	if err != nil {
		return Session{}, fmt.Errorf("generate session id: %w", err)
	}

	createdAt := now().UTC()
	return Session{
		ID:        sessionID,
		UserID:    userID,
		CreatedAt: createdAt,
		ExpiresAt: createdAt.Add(ttl),
	}, nil
}
