package certify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFillPlaceholders_KnownToken(t *testing.T) {
	got := FillPlaceholders("Hello {{name}}", map[string]string{"name": "Ann"})
	assert.Equal(t, "Hello Ann", got)
}

func TestFillPlaceholders_UnknownTokenBlanked(t *testing.T) {
	got := FillPlaceholders("Hello {{name}}", map[string]string{})
	assert.Equal(t, "Hello ", got, "unknown tokens are blanked, never an error")
}

func TestFillPlaceholders_EmptyValueNeverLiteralNil(t *testing.T) {
	got := FillPlaceholders("Venue: {{venue}}.", map[string]string{"venue": ""})
	assert.Equal(t, "Venue: .", got)
	assert.NotContains(t, got, "<nil>")
	assert.NotContains(t, got, "undefined")
}

func TestFillPlaceholders_Idempotent(t *testing.T) {
	first := FillPlaceholders("Hello {{name}}", map[string]string{})
	second := FillPlaceholders(first, map[string]string{})
	assert.Equal(t, first, second)
}

func TestFillPlaceholders_MultipleOccurrences(t *testing.T) {
	tpl := "{{title}} — presented at {{title}} on {{eventDate}}"
	got := FillPlaceholders(tpl, map[string]string{"title": "Tech Fest", "eventDate": "01 March 2026"})
	assert.Equal(t, "Tech Fest — presented at Tech Fest on 01 March 2026", got)
}
