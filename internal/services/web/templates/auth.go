package templates

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
)

// AuthMode selects which face of the auth form renders.
type AuthMode string

const (
	AuthModeSignIn AuthMode = "signin"
	AuthModeSignUp AuthMode = "signup"
)

// AuthPageData carries server-resolved state into the auth page render.
type AuthPageData struct {
	Mode     AuthMode
	Email    string
	FullName string
	// At most one of ErrorMessage and SuccessMessage is non-empty.
	ErrorMessage   string
	SuccessMessage string
	// RedirectDelayMS schedules the post-success navigation to AppRootPath.
	RedirectDelayMS  int
	ErrorAutoClearMS int
	SubmitPath       string
	ToggleHref       string
	AppRootPath      string
	Lang             string
	Loc              Localizer
}

// AuthPage renders the public sign-in / sign-up document.
func AuthPage(data AuthPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		signUp := data.Mode == AuthModeSignUp

		title := T(data.Loc, "Welcome Back")
		submitLabel := T(data.Loc, "Sign In")
		toggleText := T(data.Loc, "Don't have an account?")
		toggleLabel := T(data.Loc, "Sign Up")
		if signUp {
			title = T(data.Loc, "Create Account")
			submitLabel = T(data.Loc, "Create Account")
			toggleText = T(data.Loc, "Already have an account?")
			toggleLabel = T(data.Loc, "Sign In")
		}

		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n")
		fmt.Fprintf(&b, "<html lang=%q>\n", htmlLang(data.Lang))
		b.WriteString("<head>\n<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&b, "<title>%s | StudyDesk</title>\n", templ.EscapeString(title))
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/app.css\">\n</head>\n<body class=\"auth-page\">\n")

		b.WriteString("<main class=\"auth-card\">\n")
		fmt.Fprintf(&b, "<h1 id=\"authTitle\">%s</h1>\n", templ.EscapeString(title))

		fmt.Fprintf(&b, "<div id=\"errorMessage\" class=\"message message-error%s\" role=\"alert\">%s</div>\n",
			showClass(data.ErrorMessage), templ.EscapeString(data.ErrorMessage))
		fmt.Fprintf(&b, "<div id=\"successMessage\" class=\"message message-success%s\" role=\"status\">%s</div>\n",
			showClass(data.SuccessMessage), templ.EscapeString(data.SuccessMessage))

		fmt.Fprintf(&b, "<form id=\"authForm\" method=\"post\" action=\"%s\">\n", templ.EscapeString(data.SubmitPath))
		fmt.Fprintf(&b, "<input type=\"hidden\" name=\"mode\" value=\"%s\">\n", templ.EscapeString(string(data.Mode)))

		nameStyle := " style=\"display:none\""
		nameRequired := ""
		if signUp {
			nameStyle = ""
			nameRequired = " required"
		}
		fmt.Fprintf(&b, "<div id=\"nameGroup\" class=\"form-group\"%s>\n", nameStyle)
		fmt.Fprintf(&b, "<label for=\"fullName\">%s</label>\n", templ.EscapeString(T(data.Loc, "Full Name")))
		fmt.Fprintf(&b, "<input id=\"fullName\" name=\"full_name\" type=\"text\" autocomplete=\"name\" value=\"%s\"%s>\n",
			templ.EscapeString(data.FullName), nameRequired)
		b.WriteString("</div>\n")

		b.WriteString("<div class=\"form-group\">\n")
		fmt.Fprintf(&b, "<label for=\"email\">%s</label>\n", templ.EscapeString(T(data.Loc, "Email")))
		fmt.Fprintf(&b, "<input id=\"email\" name=\"email\" type=\"email\" autocomplete=\"email\" value=\"%s\" required>\n", templ.EscapeString(data.Email))
		b.WriteString("</div>\n")

		b.WriteString("<div class=\"form-group\">\n")
		fmt.Fprintf(&b, "<label for=\"password\">%s</label>\n", templ.EscapeString(T(data.Loc, "Password")))
		b.WriteString("<input id=\"password\" name=\"password\" type=\"password\" autocomplete=\"current-password\" required>\n")
		b.WriteString("</div>\n")

		fmt.Fprintf(&b, "<button id=\"submitButton\" type=\"submit\">%s</button>\n", templ.EscapeString(submitLabel))
		b.WriteString("</form>\n")

		fmt.Fprintf(&b, "<p class=\"auth-toggle\"><span id=\"toggleText\">%s</span> <a id=\"toggleLink\" href=\"%s\">%s</a></p>\n",
			templ.EscapeString(toggleText), templ.EscapeString(data.ToggleHref), templ.EscapeString(toggleLabel))
		b.WriteString("</main>\n")

		b.WriteString("<script>\n(function () {\n")
		fmt.Fprintf(&b, "  var errorMessage = document.getElementById('errorMessage');\n")
		fmt.Fprintf(&b, "  if (errorMessage && errorMessage.classList.contains('show')) {\n")
		fmt.Fprintf(&b, "    setTimeout(function () { errorMessage.classList.remove('show'); }, %d);\n", data.ErrorAutoClearMS)
		b.WriteString("  }\n")
		b.WriteString("  var form = document.getElementById('authForm');\n  var submitButton = document.getElementById('submitButton');\n")
		b.WriteString("  form.addEventListener('submit', function () {\n    submitButton.disabled = true;\n")
		fmt.Fprintf(&b, "    submitButton.innerHTML = '<span class=\"loading-spinner\"></span>%s';\n", templ.EscapeString(T(data.Loc, "Processing...")))
		b.WriteString("  });\n")
		if data.SuccessMessage != "" && data.RedirectDelayMS > 0 {
			fmt.Fprintf(&b, "  setTimeout(function () { window.location.href = %q; }, %d);\n", data.AppRootPath, data.RedirectDelayMS)
		}
		b.WriteString("})();\n</script>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

func showClass(message string) string {
	if strings.TrimSpace(message) == "" {
		return ""
	}
	return " show"
}

func htmlLang(lang string) string {
	if strings.TrimSpace(lang) == "" {
		return "en"
	}
	return lang
}
