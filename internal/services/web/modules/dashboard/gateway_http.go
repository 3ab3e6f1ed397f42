package dashboard

import (
	"context"
	"errors"
	"net/http"

	"github.com/studydesk/studydesk/internal/services/web/integration/backendapi"
	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
)

// BackendClient exposes the identity and study-plan operations the shell needs.
type BackendClient interface {
	CurrentUser(ctx context.Context, token string) (backendapi.Session, backendapi.User, error)
	Profile(ctx context.Context, token, userID string) (backendapi.User, error)
	StudyPlans(ctx context.Context, token string) ([]backendapi.StudyPlan, error)
	SignOut(ctx context.Context, token string) error
}

// NewHTTPGateway builds the production dashboard gateway from the backend client.
func NewHTTPGateway(client BackendClient) Gateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client BackendClient
}

func (g httpGateway) CurrentUser(ctx context.Context, token string) (Profile, error) {
	_, u, err := g.client.CurrentUser(ctx, token)
	if err != nil {
		return Profile{}, mapBackendError(err)
	}
	return toProfile(u), nil
}

func (g httpGateway) Profile(ctx context.Context, token, userID string) (Profile, error) {
	u, err := g.client.Profile(ctx, token, userID)
	if err != nil {
		return Profile{}, mapBackendError(err)
	}
	return toProfile(u), nil
}

func (g httpGateway) RecentPlans(ctx context.Context, token string) ([]Plan, error) {
	plans, err := g.client.StudyPlans(ctx, token)
	if err != nil {
		return nil, mapBackendError(err)
	}
	out := make([]Plan, 0, len(plans))
	for _, p := range plans {
		out = append(out, Plan{Title: p.Title, Subject: p.Subject, CreatedAt: p.CreatedAt})
	}
	return out, nil
}

func (g httpGateway) SignOut(ctx context.Context, token string) error {
	if err := g.client.SignOut(ctx, token); err != nil {
		return mapBackendError(err)
	}
	return nil
}

func toProfile(u backendapi.User) Profile {
	return Profile{UserID: u.ID, Email: u.Email, FullName: u.FullName}
}

func mapBackendError(err error) error {
	var apiErr backendapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Status {
		case http.StatusUnauthorized:
			return apperrors.E(apperrors.KindUnauthorized, apiErr.Message)
		case http.StatusForbidden:
			return apperrors.E(apperrors.KindForbidden, apiErr.Message)
		case http.StatusNotFound:
			return apperrors.E(apperrors.KindNotFound, apiErr.Message)
		}
	}
	return apperrors.E(apperrors.KindUnavailable, "")
}
