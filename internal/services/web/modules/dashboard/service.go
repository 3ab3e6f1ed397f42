package dashboard

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/studydesk/studydesk/internal/services/web/module"
	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

// Profile is the identity record behind the app shell chrome.
type Profile struct {
	UserID   string
	Email    string
	FullName string
}

// Plan is one study plan row fetched for the recent-plans panel.
type Plan struct {
	Title     string
	Subject   string
	CreatedAt time.Time
}

// Gateway performs identity and study-plan reads for the app shell.
type Gateway interface {
	// CurrentUser resolves a session token to its owning profile.
	CurrentUser(ctx context.Context, token string) (Profile, error)
	Profile(ctx context.Context, token, userID string) (Profile, error)
	// RecentPlans lists the caller's study plans, newest first.
	RecentPlans(ctx context.Context, token string) ([]Plan, error)
	SignOut(ctx context.Context, token string) error
}

type unavailableGateway struct{}

func (unavailableGateway) CurrentUser(context.Context, string) (Profile, error) {
	return Profile{}, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

func (unavailableGateway) Profile(context.Context, string, string) (Profile, error) {
	return Profile{}, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

func (unavailableGateway) RecentPlans(context.Context, string) ([]Plan, error) {
	return nil, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

func (unavailableGateway) SignOut(context.Context, string) error {
	return apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

type service struct {
	gateway Gateway
}

func newService(gateway Gateway) service {
	if gateway == nil {
		gateway = unavailableGateway{}
	}
	return service{gateway: gateway}
}

// bootstrap resolves the session and fetches the fresh profile, in that
// order. Any failure means the visitor belongs on the auth page.
func (s service) bootstrap(ctx context.Context, token string) (module.Viewer, error) {
	current, err := s.gateway.CurrentUser(ctx, token)
	if err != nil {
		return module.Viewer{}, err
	}
	profile, err := s.gateway.Profile(ctx, token, current.UserID)
	if err != nil {
		return module.Viewer{}, err
	}
	displayName := strings.TrimSpace(profile.FullName)
	if displayName == "" {
		displayName = "User"
	}
	return module.Viewer{
		DisplayName: displayName,
		Email:       profile.Email,
		Initials:    webtemplates.Initials(displayName),
	}, nil
}

func (s service) recentPlans(ctx context.Context, token string) ([]webtemplates.PlanView, error) {
	plans, err := s.gateway.RecentPlans(ctx, token)
	if err != nil {
		return nil, err
	}
	views := make([]webtemplates.PlanView, 0, len(plans))
	for _, p := range plans {
		views = append(views, webtemplates.PlanView{
			Title:     p.Title,
			Subject:   p.Subject,
			CreatedAt: p.CreatedAt,
		})
	}
	return views, nil
}

func (s service) signOut(ctx context.Context, token string) error {
	return s.gateway.SignOut(ctx, token)
}

// sessionLive reports whether the token still resolves to a session.
// The second return distinguishes a definitive no from a lookup failure.
func (s service) sessionLive(ctx context.Context, token string) (bool, bool) {
	_, err := s.gateway.CurrentUser(ctx, token)
	if err == nil {
		return true, true
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) && appErr.Kind == apperrors.KindUnauthorized {
		return false, true
	}
	return false, false
}
