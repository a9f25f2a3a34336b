package certify

import (
	"testing"

	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
)

func TestResolveSettings_NoStoredSettings(t *testing.T) {
	cfg := ResolveSettings(nil, nil)

	defaults := DefaultConfig()
	assert.Equal(t, defaults, cfg, "missing settings document must yield pure defaults")
	assert.Equal(t, 1, cfg.TemplateID)
	assert.NotEmpty(t, cfg.CollegeName)
	assert.NotEmpty(t, cfg.Signatures[0].Name)
}

func TestResolveSettings_PartialOverride(t *testing.T) {
	stored := &model.CertificateSetting{
		TemplateID: 3,
	}

	cfg := ResolveSettings(stored, nil)
	defaults := DefaultConfig()

	assert.Equal(t, 3, cfg.TemplateID, "stored templateId must override the default")
	assert.Equal(t, defaults.CollegeName, cfg.CollegeName, "unset branding fields must stay at defaults")
	assert.Equal(t, defaults.LogoLeft, cfg.LogoLeft)
	assert.Equal(t, defaults.LogoRight, cfg.LogoRight)
	assert.Equal(t, defaults.Signatures, cfg.Signatures)
}

func TestResolveSettings_SignaturesApplyPositionally(t *testing.T) {
	stored := &model.CertificateSetting{
		Signatures: datatypes.NewJSONSlice([]model.SignatureSlot{
			{Name: "Dr. First", ImageURL: "https://img.example/sig1.png"},
			{},
			{Title: "Dean"},
			{Name: "Dr. Fourth"},
			{Name: "Dr. Fifth Ignored"},
		}),
	}

	cfg := ResolveSettings(stored, nil)
	defaults := DefaultConfig()

	assert.Equal(t, "Dr. First", cfg.Signatures[0].Name)
	assert.Equal(t, defaults.Signatures[0].Title, cfg.Signatures[0].Title, "empty fields must not override")
	assert.Equal(t, "https://img.example/sig1.png", cfg.Signatures[0].URL)
	assert.Equal(t, defaults.Signatures[1], cfg.Signatures[1])
	assert.Equal(t, "Dean", cfg.Signatures[2].Title)
	assert.Equal(t, "Dr. Fourth", cfg.Signatures[3].Name)
}

func TestResolveSettings_OverridePrecedence(t *testing.T) {
	stored := &model.CertificateSetting{
		TemplateID:   2,
		CustomFields: datatypes.NewJSONType(map[string]string{"chiefGuest": "Dr. Settings", "extra": "kept"}),
	}

	cfg := ResolveSettings(stored, map[string]string{
		"chiefGuest": "Dr. Request",
		"templateId": "5",
	})

	assert.Equal(t, 5, cfg.TemplateID, "request templateId wins over stored")
	assert.Equal(t, "Dr. Request", cfg.CustomFields["chiefGuest"], "request custom fields win over stored")
	assert.Equal(t, "kept", cfg.CustomFields["extra"])
}

func TestResolveSettings_InvalidTemplateOverrideIgnored(t *testing.T) {
	cfg := ResolveSettings(nil, map[string]string{"templateId": "42"})
	assert.Equal(t, 1, cfg.TemplateID, "out-of-range templateId override must be ignored")

	cfg = ResolveSettings(nil, map[string]string{"templateId": "abc"})
	assert.Equal(t, 1, cfg.TemplateID)
}

func TestEffectiveConfig_PlaceholdersSignatureDisplay(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Signatures[0].URL = "https://img.example/sig.png"
	cfg.Signatures[1].URL = ""

	tokens := cfg.Placeholders()

	require.Contains(t, tokens, "sig1Display")
	assert.Equal(t, "block", tokens["sig1Display"], "signature with image is visible")
	assert.Equal(t, "none", tokens["sig2Display"], "signature without image is hidden")
	assert.Equal(t, cfg.CollegeName, tokens["collegeName"])
}
