package certify

import (
	"regexp"
	"strings"
)

var placeholderPattern = regexp.MustCompile(`\{\{[^}]+\}\}`)

// FillPlaceholders substitutes every {{key}} occurrence in the template
// with its value from the token map. Tokens without a mapping are blanked
// afterwards instead of raising an error, so templates and field sets can
// drift across versions without breaking rendering.
func FillPlaceholders(html string, tokens map[string]string) string {
	result := html
	for key, value := range tokens {
		result = strings.ReplaceAll(result, "{{"+key+"}}", value)
	}
	return placeholderPattern.ReplaceAllString(result, "")
}
