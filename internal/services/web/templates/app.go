package templates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	module "github.com/studydesk/studydesk/internal/services/web/module"
)

// AppToast is a one-time notice surfaced on the next shell render.
type AppToast struct {
	Kind    string
	Message string
}

// AppPageData carries server-resolved state into the dashboard shell render.
type AppPageData struct {
	Viewer   module.Viewer
	DarkMode bool
	Toast    *AppToast

	LogoutPath     string
	PlansPath      string
	EventsPath     string
	AuthPagePath   string
	DarkModeCookie string
	Lang           string
	Loc            Localizer
}

// AppLayout renders the authenticated dashboard shell.
func AppLayout(data AppPageData) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		bodyClass := "app-page"
		if data.DarkMode {
			bodyClass += " dark-mode"
		}
		displayName := data.Viewer.DisplayName
		if strings.TrimSpace(displayName) == "" {
			displayName = T(data.Loc, "User")
		}

		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n")
		fmt.Fprintf(&b, "<html lang=%q>\n", htmlLang(data.Lang))
		b.WriteString("<head>\n<meta charset=\"utf-8\">\n<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
		fmt.Fprintf(&b, "<title>%s | StudyDesk</title>\n", templ.EscapeString(T(data.Loc, "Dashboard")))
		b.WriteString("<link rel=\"stylesheet\" href=\"/static/app.css\">\n</head>\n")
		fmt.Fprintf(&b, "<body class=%q>\n", bodyClass)

		b.WriteString("<header class=\"app-header\">\n")
		b.WriteString("<button id=\"sidebarToggle\" type=\"button\" aria-label=\"Toggle sidebar\">&#9776;</button>\n")
		b.WriteString("<div class=\"user-summary\">\n")
		fmt.Fprintf(&b, "<span id=\"userAvatar\" class=\"avatar\">%s</span>\n", templ.EscapeString(data.Viewer.Initials))
		fmt.Fprintf(&b, "<span id=\"userName\">%s</span>\n", templ.EscapeString(displayName))
		fmt.Fprintf(&b, "<span id=\"userEmail\">%s</span>\n", templ.EscapeString(data.Viewer.Email))
		b.WriteString("</div>\n")
		b.WriteString("<button id=\"darkModeToggle\" type=\"button\" aria-label=\"Toggle dark mode\">&#9681;</button>\n")
		fmt.Fprintf(&b, "<form id=\"logoutForm\" method=\"post\" action=%q><button id=\"logoutBtn\" type=\"submit\">%s</button></form>\n",
			data.LogoutPath, templ.EscapeString(T(data.Loc, "Log Out")))
		b.WriteString("</header>\n")

		b.WriteString("<nav id=\"sidebar\" class=\"sidebar\">\n<ul>\n")
		fmt.Fprintf(&b, "<li><a href=\"/\">%s</a></li>\n", templ.EscapeString(T(data.Loc, "Dashboard")))
		fmt.Fprintf(&b, "<li><a href=\"/\">%s</a></li>\n", templ.EscapeString(T(data.Loc, "Study Plans")))
		b.WriteString("</ul>\n</nav>\n")

		b.WriteString("<main class=\"app-main\">\n")
		fmt.Fprintf(&b, "<h1>%s</h1>\n", templ.EscapeString(T(data.Loc, "Welcome, %s", displayName)))
		fmt.Fprintf(&b, "<section id=\"plansContainer\" aria-label=\"%s\"></section>\n", templ.EscapeString(T(data.Loc, "Recent study plans")))
		b.WriteString("</main>\n")

		b.WriteString("<script>\n(function () {\n")
		if data.Toast != nil && strings.TrimSpace(data.Toast.Message) != "" {
			fmt.Fprintf(&b, "  alert(%s);\n", jsString(data.Toast.Message))
		}
		b.WriteString("  var sidebar = document.getElementById('sidebar');\n")
		b.WriteString("  var sidebarToggle = document.getElementById('sidebarToggle');\n")
		b.WriteString("  if (sidebarToggle && sidebar) {\n")
		b.WriteString("    sidebarToggle.addEventListener('click', function () { sidebar.classList.toggle('open'); });\n")
		b.WriteString("  }\n")
		b.WriteString("  document.addEventListener('click', function (e) {\n")
		b.WriteString("    if (sidebar && !sidebar.contains(e.target) && !(sidebarToggle && sidebarToggle.contains(e.target))) {\n")
		b.WriteString("      sidebar.classList.remove('open');\n    }\n  });\n")
		b.WriteString("  var darkModeToggle = document.getElementById('darkModeToggle');\n")
		b.WriteString("  if (darkModeToggle) {\n")
		b.WriteString("    darkModeToggle.addEventListener('click', function () {\n")
		b.WriteString("      document.body.classList.toggle('dark-mode');\n")
		b.WriteString("      var isDark = document.body.classList.contains('dark-mode');\n")
		fmt.Fprintf(&b, "      document.cookie = %q + '=' + isDark + '; path=/; max-age=31536000; samesite=lax';\n", data.DarkModeCookie)
		b.WriteString("    });\n  }\n")
		fmt.Fprintf(&b, "  var events = new EventSource(%q);\n", data.EventsPath)
		b.WriteString("  events.addEventListener('signed_out', function () {\n")
		fmt.Fprintf(&b, "    window.location.href = %q;\n  });\n", data.AuthPagePath)
		fmt.Fprintf(&b, "  fetch(%q).then(function (res) {\n", data.PlansPath)
		b.WriteString("    if (!res.ok) { throw new Error('plans fetch failed: ' + res.status); }\n")
		b.WriteString("    return res.text();\n")
		b.WriteString("  }).then(function (html) {\n")
		b.WriteString("    document.getElementById('plansContainer').innerHTML = html;\n")
		b.WriteString("  }).catch(function (err) { console.error(err); });\n")
		b.WriteString("})();\n</script>\n</body>\n</html>\n")

		_, err := io.WriteString(w, b.String())
		return err
	})
}

// jsString encodes s as a JavaScript string literal. JSON encoding with its
// default HTML escaping keeps a "</script>" inside s from terminating the
// surrounding script block.
func jsString(s string) string {
	encoded, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(encoded)
}
