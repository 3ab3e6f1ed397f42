package templates

import "strings"

// Initials derives an avatar badge from a display name: the first rune of
// each space-separated token, uppercased, capped at two characters.
func Initials(name string) string {
	var initials []rune
	for _, token := range strings.Fields(name) {
		runes := []rune(token)
		if len(runes) == 0 {
			continue
		}
		initials = append(initials, runes[0])
		if len(initials) == 2 {
			break
		}
	}
	return strings.ToUpper(string(initials))
}
