package templates

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/a-h/templ"
)

// PlanView is the render-ready projection of one study plan.
type PlanView struct {
	Title     string
	Subject   string
	CreatedAt time.Time
}

// PlansFragment renders the recent study plans list as an HTML fragment.
// An empty slice renders an empty-state note rather than nothing.
func PlansFragment(plans []PlanView, loc Localizer) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		fmt.Fprintf(&b, "<h2>%s</h2>\n", templ.EscapeString(T(loc, "Recent study plans")))
		if len(plans) == 0 {
			fmt.Fprintf(&b, "<p class=\"empty-state\">%s</p>\n", templ.EscapeString(T(loc, "No study plans yet.")))
			_, err := io.WriteString(w, b.String())
			return err
		}
		b.WriteString("<ul class=\"plan-list\">\n")
		for _, plan := range plans {
			b.WriteString("<li class=\"plan-item\">")
			fmt.Fprintf(&b, "<span class=\"plan-title\">%s</span>", templ.EscapeString(plan.Title))
			if strings.TrimSpace(plan.Subject) != "" {
				fmt.Fprintf(&b, " <span class=\"plan-subject\">%s</span>", templ.EscapeString(plan.Subject))
			}
			fmt.Fprintf(&b, " <time datetime=%q>%s</time>", plan.CreatedAt.UTC().Format(time.RFC3339), plan.CreatedAt.UTC().Format("Jan 2, 2006"))
			b.WriteString("</li>\n")
		}
		b.WriteString("</ul>\n")
		_, err := io.WriteString(w, b.String())
		return err
	})
}
