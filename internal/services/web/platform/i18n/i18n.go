// Package i18n resolves request languages and localizers for web rendering.
package i18n

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	webtemplates "github.com/studydesk/studydesk/internal/services/web/templates"
)

var supported = []language.Tag{
	language.AmericanEnglish,
	language.MustParse("pt-BR"),
}

var matcher = language.NewMatcher(supported)

// Supported returns the language tags the web UI can render.
func Supported() []language.Tag {
	return append([]language.Tag(nil), supported...)
}

// ResolveLocalizer picks a localizer from the request's Accept-Language
// header, falling back to American English.
func ResolveLocalizer(r *http.Request) (webtemplates.Localizer, string) {
	tag := supported[0]
	if r != nil {
		if accept := strings.TrimSpace(r.Header.Get("Accept-Language")); accept != "" {
			if tags, _, err := language.ParseAcceptLanguage(accept); err == nil {
				matched, _, _ := matcher.Match(tags...)
				tag = normalize(matched)
			}
		}
	}
	return message.NewPrinter(tag), tag.String()
}

func normalize(tag language.Tag) language.Tag {
	base, _ := tag.Base()
	for _, candidate := range supported {
		candidateBase, _ := candidate.Base()
		if base == candidateBase {
			return candidate
		}
	}
	return supported[0]
}
