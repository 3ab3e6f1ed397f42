package templates

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/a-h/templ"
)

// ErrorPage renders a minimal standalone error document.
func ErrorPage(statusCode int, lang string, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		text := http.StatusText(statusCode)
		if text == "" {
			text = http.StatusText(http.StatusInternalServerError)
		}
		var b strings.Builder
		b.WriteString("<!DOCTYPE html>\n")
		fmt.Fprintf(&b, "<html lang=%q>\n<head>\n<meta charset=\"utf-8\">\n", htmlLang(lang))
		fmt.Fprintf(&b, "<title>%d %s | StudyDesk</title>\n</head>\n<body class=\"error-page\">\n", statusCode, templ.EscapeString(text))
		fmt.Fprintf(&b, "<main><h1>%d</h1><p>%s</p>", statusCode, templ.EscapeString(T(loc, text)))
		fmt.Fprintf(&b, "<p><a href=\"/\">%s</a></p></main>\n", templ.EscapeString(T(loc, "Back to dashboard")))
		b.WriteString("</body>\n</html>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
