package templates

import (
	"context"
	"strings"
	"testing"
)

func TestAuthPageSignInMode(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := AuthPage(AuthPageData{
		Mode:             AuthModeSignIn,
		ErrorAutoClearMS: 5000,
		SubmitPath:       "/auth/submit",
		ToggleHref:       "/auth.html?mode=signup",
		AppRootPath:      "/",
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		`id="authForm"`, `id="authTitle"`, `id="submitButton"`, `id="toggleLink"`,
		`id="toggleText"`, `id="nameGroup"`, `id="fullName"`, `id="email"`,
		`id="password"`, `id="errorMessage"`, `id="successMessage"`,
		">Welcome Back<", ">Sign In<", "Don&#39;t have an account?",
		`href="/auth.html?mode=signup"`, `style="display:none"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("sign-in page missing %q", want)
		}
	}
	if strings.Contains(html, `id="fullName" name="full_name" type="text" autocomplete="name" value="" required`) {
		t.Fatal("full name required in sign-in mode")
	}
	if strings.Contains(html, "window.location.href") {
		t.Fatal("redirect scheduled without a success message")
	}
}

func TestAuthPageSignUpMode(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := AuthPage(AuthPageData{
		Mode:             AuthModeSignUp,
		FullName:         "Ada Lovelace",
		ErrorAutoClearMS: 5000,
		SubmitPath:       "/auth/submit",
		ToggleHref:       "/auth.html",
		AppRootPath:      "/",
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	for _, want := range []string{
		">Create Account<", "Already have an account?", "required>",
		`value="Ada Lovelace"`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("sign-up page missing %q", want)
		}
	}
	if strings.Contains(html, `id="nameGroup" class="form-group" style="display:none"`) {
		t.Fatal("name group hidden in sign-up mode")
	}
}

func TestAuthPageErrorAutoClear(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := AuthPage(AuthPageData{
		Mode:             AuthModeSignIn,
		ErrorMessage:     "Invalid email or password",
		ErrorAutoClearMS: 5000,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, `class="message message-error show"`) {
		t.Fatal("error message not shown")
	}
	if !strings.Contains(html, "}, 5000);") {
		t.Fatal("auto-clear timer not scheduled at 5000ms")
	}
	if strings.Contains(html, `class="message message-success show"`) {
		t.Fatal("success message shown alongside error")
	}
}

func TestAuthPageSuccessSchedulesRedirect(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := AuthPage(AuthPageData{
		Mode:            AuthModeSignIn,
		SuccessMessage:  "Signed in successfully! Redirecting...",
		RedirectDelayMS: 1000,
		AppRootPath:     "/",
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, `window.location.href = "/"; }, 1000);`) {
		t.Fatal("redirect not scheduled at 1000ms")
	}
	if !strings.Contains(html, `class="message message-success show"`) {
		t.Fatal("success message not shown")
	}
}

func TestAuthPageEscapesSubmittedValues(t *testing.T) {
	t.Parallel()

	var buf strings.Builder
	err := AuthPage(AuthPageData{
		Mode:     AuthModeSignUp,
		Email:    `" onfocus=alert(1) autofocus x="`,
		FullName: `Ada "the countess" Lovelace`,
	}).Render(context.Background(), &buf)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	html := buf.String()

	if !strings.Contains(html, `value="&#34; onfocus=alert(1) autofocus x=&#34;" required`) {
		t.Fatal("email value not attribute-escaped")
	}
	if !strings.Contains(html, `value="Ada &#34;the countess&#34; Lovelace"`) {
		t.Fatal("full name value not attribute-escaped")
	}
	if strings.Contains(html, `value="" onfocus=`) {
		t.Fatal("submitted quote terminated the value attribute")
	}
}
