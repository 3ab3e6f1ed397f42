// Package plan provides the study-plan records owned by backend users.
package plan

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/studydesk/studydesk/internal/platform/id"
)

var (
	// ErrEmptyUserID indicates a plan without an owner.
	ErrEmptyUserID = errors.New("user id is required")
	// ErrEmptyTitle indicates a plan without a title.
	ErrEmptyTitle = errors.New("title is required")
)

// StudyPlan is a user-scoped planning record surfaced on the dashboard.
type StudyPlan struct {
	ID        string
	UserID    string
	Title     string
	Subject   string
	CreatedAt time.Time
}

// New creates a study plan owned by a user.
func New(userID, title, subject string, now func() time.Time, idGenerator func() (string, error)) (StudyPlan, error) {
	userID = strings.TrimSpace(userID)
	title = strings.TrimSpace(title)
	if userID == "" {
		return StudyPlan{}, ErrEmptyUserID
	}
	if title == "" {
		return StudyPlan{}, ErrEmptyTitle
	}
	if now == nil {
		now = time.Now
	}
	if idGenerator == nil {
		idGenerator = id.NewID
	}

	planID, err := idGenerator()
	if err != nil {
		return StudyPlan{}, fmt.Errorf("generate plan id: %w", err)
	}

	return StudyPlan{
		ID:        planID,
		UserID:    userID,
		Title:     title,
		Subject:   strings.TrimSpace(subject),
		CreatedAt: now().UTC(),
	}, nil
}
