package authpage

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/studydesk/studydesk/internal/services/web/platform/errors"
	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

func TestSubmitShortPasswordSkipsNetwork(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	svc := newService(gateway)

	result := svc.submit(context.Background(), submission{
		Mode:     webtemplates.AuthModeSignIn,
		Email:    "ada@example.com",
		Password: "short",
	})

	if result.ErrorMessage != "Password must be at least 6 characters long" {
		t.Fatalf("ErrorMessage = %q", result.ErrorMessage)
	}
	if gateway.signInCalls != 0 || gateway.signUpCalls != 0 {
		t.Fatal("gateway called despite failed guard")
	}
}

func TestSubmitSignUpRequiresFullName(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{}
	svc := newService(gateway)

	result := svc.submit(context.Background(), submission{
		Mode:     webtemplates.AuthModeSignUp,
		Email:    "ada@example.com",
		Password: "hunter22",
		FullName: "   ",
	})

	if result.ErrorMessage != "Please enter your full name" {
		t.Fatalf("ErrorMessage = %q", result.ErrorMessage)
	}
	if gateway.signUpCalls != 0 {
		t.Fatal("gateway called despite failed guard")
	}
}

func TestSubmitSignInSuccess(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{signInGrant: Grant{Token: "token-123", UserID: "user-1"}}
	svc := newService(gateway)

	result := svc.submit(context.Background(), submission{
		Mode:     webtemplates.AuthModeSignIn,
		Email:    "  ada@example.com  ",
		Password: "hunter22",
	})

	if !result.Granted || result.Grant.Token != "token-123" {
		t.Fatalf("result = %+v", result)
	}
	if result.SuccessMessage != "Signed in successfully! Redirecting..." {
		t.Fatalf("SuccessMessage = %q", result.SuccessMessage)
	}
	if result.RedirectDelayMS != 1000 {
		t.Fatalf("RedirectDelayMS = %d, want 1000", result.RedirectDelayMS)
	}
	if result.ErrorMessage != "" {
		t.Fatalf("ErrorMessage = %q, want empty", result.ErrorMessage)
	}
	if gateway.lastEmail != "ada@example.com" {
		t.Fatalf("email not trimmed: %q", gateway.lastEmail)
	}
}

func TestSubmitSignUpSuccess(t *testing.T) {
	t.Parallel()

	gateway := &fakeGateway{signUpGrant: Grant{Token: "token-456"}}
	svc := newService(gateway)

	result := svc.submit(context.Background(), submission{
		Mode:     webtemplates.AuthModeSignUp,
		Email:    "ada@example.com",
		Password: "hunter22",
		FullName: "Ada Lovelace",
	})

	if result.SuccessMessage != "Account created successfully! Redirecting..." {
		t.Fatalf("SuccessMessage = %q", result.SuccessMessage)
	}
	if result.RedirectDelayMS != 1500 {
		t.Fatalf("RedirectDelayMS = %d, want 1500", result.RedirectDelayMS)
	}
	if gateway.lastFullName != "Ada Lovelace" {
		t.Fatalf("full name = %q", gateway.lastFullName)
	}
}

func TestSubmitSignUpWithoutTokenIsNotGranted(t *testing.T) {
	t.Parallel()

	// Email-confirmation-pending signups return a user but no token.
	gateway := &fakeGateway{signUpGrant: Grant{UserID: "user-1"}}
	svc := newService(gateway)

	result := svc.submit(context.Background(), submission{
		Mode:     webtemplates.AuthModeSignUp,
		Email:    "ada@example.com",
		Password: "hunter22",
		FullName: "Ada Lovelace",
	})
	if result.Granted {
		t.Fatal("tokenless grant reported as granted")
	}
}

func TestPresentAuthError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "invalid credentials",
			err:  apperrors.E(apperrors.KindInvalidInput, "Invalid login credentials"),
			want: "Invalid email or password",
		},
		{
			name: "already registered",
			err:  apperrors.E(apperrors.KindInvalidInput, "User already registered"),
			want: "An account with this email already exists",
		},
		{
			name: "unconfirmed email",
			err:  apperrors.E(apperrors.KindInvalidInput, "Email not confirmed"),
			want: "Please verify your email address",
		},
		{
			name: "typed message passes through",
			err:  apperrors.E(apperrors.KindInvalidInput, "email is required"),
			want: "email is required",
		},
		{
			name: "opaque failure gets generic copy",
			err:  errors.New("dial tcp: connection refused"),
			want: "An error occurred. Please try again.",
		},
		{
			name: "unavailable without message gets generic copy",
			err:  apperrors.E(apperrors.KindUnavailable, ""),
			want: "An error occurred. Please try again.",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := presentAuthError(tc.err); got != tc.want {
				t.Fatalf("presentAuthError = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestSignedIn(t *testing.T) {
	t.Parallel()

	svc := newService(&fakeGateway{sessionOK: true})
	if !svc.signedIn(context.Background(), "token-123") {
		t.Fatal("live session reported signed out")
	}

	svc = newService(&fakeGateway{sessionOK: false})
	if svc.signedIn(context.Background(), "token-123") {
		t.Fatal("dead session reported signed in")
	}

	gateway := &fakeGateway{}
	svc = newService(gateway)
	if svc.signedIn(context.Background(), "   ") {
		t.Fatal("blank token reported signed in")
	}
	if gateway.sessionCalls != 0 {
		t.Fatal("gateway called for blank token")
	}

	svc = newService(&fakeGateway{sessionErr: errors.New("boom")})
	if svc.signedIn(context.Background(), "token-123") {
		t.Fatal("lookup failure reported signed in")
	}
}
