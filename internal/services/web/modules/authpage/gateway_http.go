package authpage

import (
	"context"
	"errors"
	"net/http"

	"github.com/studydesk/studydesk/internal/services/web/integration/backendapi"
	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
)

// IdentityClient exposes the identity operations the auth page needs.
type IdentityClient interface {
	SignIn(ctx context.Context, email, password string) (backendapi.Grant, error)
	SignUp(ctx context.Context, email, password, fullName string) (backendapi.Grant, error)
	CurrentUser(ctx context.Context, token string) (backendapi.Session, backendapi.User, error)
}

// NewHTTPGateway builds the production auth gateway from the identity client.
func NewHTTPGateway(client IdentityClient) Gateway {
	if client == nil {
		return unavailableGateway{}
	}
	return httpGateway{client: client}
}

type httpGateway struct {
	client IdentityClient
}

func (g httpGateway) SignIn(ctx context.Context, email, password string) (Grant, error) {
	grant, err := g.client.SignIn(ctx, email, password)
	if err != nil {
		return Grant{}, mapIdentityError(err)
	}
	return toGrant(grant), nil
}

func (g httpGateway) SignUp(ctx context.Context, email, password, fullName string) (Grant, error) {
	grant, err := g.client.SignUp(ctx, email, password, fullName)
	if err != nil {
		return Grant{}, mapIdentityError(err)
	}
	return toGrant(grant), nil
}

func (g httpGateway) SessionFor(ctx context.Context, token string) (bool, error) {
	_, _, err := g.client.CurrentUser(ctx, token)
	if err != nil {
		var apiErr backendapi.Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized {
			return false, nil
		}
		return false, mapIdentityError(err)
	}
	return true, nil
}

func toGrant(grant backendapi.Grant) Grant {
	return Grant{
		Token:    grant.AccessToken,
		UserID:   grant.User.ID,
		Email:    grant.User.Email,
		FullName: grant.User.FullName,
	}
}

// mapIdentityError keeps client-caused API messages user-visible and hides
// transport and server failures behind the unavailable kind.
func mapIdentityError(err error) error {
	var apiErr backendapi.Error
	if errors.As(err, &apiErr) && apiErr.Status < http.StatusInternalServerError {
		return apperrors.E(apperrors.KindInvalidInput, apiErr.Message)
	}
	return apperrors.E(apperrors.KindUnavailable, "")
}
