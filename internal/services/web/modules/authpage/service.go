package authpage

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

const (
	minPasswordLength = 6

	// Post-success redirect delays keep the confirmation visible before navigation.
	signInRedirectDelayMS = 1000
	signUpRedirectDelayMS = 1500

	errorAutoClearMS = 5000
)

// Grant is the issued session produced by a successful auth submission.
type Grant struct {
	Token    string
	UserID   string
	Email    string
	FullName string
}

// Gateway performs identity operations for the auth page.
type Gateway interface {
	SignIn(ctx context.Context, email, password string) (Grant, error)
	SignUp(ctx context.Context, email, password, fullName string) (Grant, error)
	// SessionFor reports whether a session token still resolves to a user.
	SessionFor(ctx context.Context, token string) (bool, error)
}

type unavailableGateway struct{}

func (unavailableGateway) SignIn(context.Context, string, string) (Grant, error) {
	return Grant{}, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

func (unavailableGateway) SignUp(context.Context, string, string, string) (Grant, error) {
	return Grant{}, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
}

func (unavailableGateway) SessionFor(context.Context, string) (bool, error) {
	return false, apperrors.E(apperrors.KindUnavailable, "identity service is not configured")
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

// submission is one parsed auth form post.
type submission struct {
	Mode     webtemplates.AuthMode
	Email    string
	Password string
	FullName string
}

// outcome drives the post-submit render: either a grant plus success message
// with a scheduled redirect, or an error message. Never both.
type outcome struct {
	Grant           Grant
	Granted         bool
	SuccessMessage  string
	ErrorMessage    string
	RedirectDelayMS int
}

func (s service) submit(ctx context.Context, sub submission) outcome {
	sub.Email = strings.TrimSpace(sub.Email)
	sub.FullName = strings.TrimSpace(sub.FullName)
	if sub.Mode != webtemplates.AuthModeSignUp {
		sub.Mode = webtemplates.AuthModeSignIn
	}

	// Validation guards fail before any network call.
	if len(sub.Password) < minPasswordLength {
		return outcome{ErrorMessage: "Password must be at least 6 characters long"}
	}
	if sub.Mode == webtemplates.AuthModeSignUp && sub.FullName == "" {
		return outcome{ErrorMessage: "Please enter your full name"}
	}

	if sub.Mode == webtemplates.AuthModeSignUp {
		grant, err := s.gateway.SignUp(ctx, sub.Email, sub.Password, sub.FullName)
		if err != nil {
			return outcome{ErrorMessage: presentAuthError(err)}
		}
		return outcome{
			Grant:           grant,
			Granted:         grant.Token != "",
			SuccessMessage:  "Account created successfully! Redirecting...",
			RedirectDelayMS: signUpRedirectDelayMS,
		}
	}

	grant, err := s.gateway.SignIn(ctx, sub.Email, sub.Password)
	if err != nil {
		return outcome{ErrorMessage: presentAuthError(err)}
	}
	return outcome{
		Grant:           grant,
		Granted:         grant.Token != "",
		SuccessMessage:  "Signed in successfully! Redirecting...",
		RedirectDelayMS: signInRedirectDelayMS,
	}
}

// signedIn reports whether the token still maps to a live session. Lookup
// failures degrade to signed-out so the auth page stays reachable.
func (s service) signedIn(ctx context.Context, token string) bool {
	if strings.TrimSpace(token) == "" {
		return false
	}
	ok, err := s.gateway.SessionFor(ctx, token)
	return err == nil && ok
}

// presentAuthError maps provider failures onto user-facing copy. The three
// documented provider messages get friendly equivalents; typed errors keep
// their message; anything else gets the generic fallback.
func presentAuthError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "Invalid login credentials"):
		return "Invalid email or password"
	case strings.Contains(msg, "User already registered"):
		return "An account with this email already exists"
	case strings.Contains(msg, "Email not confirmed"):
		return "Please verify your email address"
	}
	var appErr apperrors.Error
	if errors.As(err, &appErr) && strings.TrimSpace(appErr.Message) != "" {
		return appErr.Message
	}
	return "An error occurred. Please try again."
}
