package certify

import (
	"strconv"

	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

// SignatureInfo is one resolved signature slot on a certificate.
type SignatureInfo struct {
	Name  string `json:"name"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// EffectiveConfig is the fully merged configuration used to render one
// certificate: system defaults overlaid by the event settings record,
// overlaid by request-supplied fields.
type EffectiveConfig struct {
	CollegeName    string            `json:"college_name"`
	CollegeTagline string            `json:"college_tagline"`
	LogoLeft       string            `json:"logo_left"`
	LogoRight      string            `json:"logo_right"`
	Signatures     [4]SignatureInfo  `json:"signatures"`
	TemplateID     int               `json:"template_id"`
	CustomFields   map[string]string `json:"custom_fields"`
}

// DefaultConfig returns the system base layer. Branding values come from
// config.yml when set, otherwise from the built-in institution defaults.
func DefaultConfig() EffectiveConfig {
	cfg := EffectiveConfig{
		CollegeName:    "DAV College Jalandhar",
		CollegeTagline: "NAAC Re-Accredited with Grade A | DBT-Star College Status | DST-FIST Supported",
		LogoLeft:       "https://via.placeholder.com/150?text=Left+Logo",
		LogoRight:      "https://via.placeholder.com/150?text=Right+Logo",
		Signatures: [4]SignatureInfo{
			{Name: "Dr. Dinesh Arora", Title: "Vice President IIC"},
			{Name: "Dr. Rajeev Puri", Title: "Convener IIC"},
			{Name: "Dr. Manav Aggarwal", Title: "Internship Coordinator"},
			{Name: "Dr. Rajesh Kumar", Title: "Principal"},
		},
		TemplateID:   1,
		CustomFields: map[string]string{},
	}

	if common.Config != nil {
		if common.Config.CollegeName != nil && *common.Config.CollegeName != "" {
			cfg.CollegeName = *common.Config.CollegeName
		}
		if common.Config.CollegeTagline != nil && *common.Config.CollegeTagline != "" {
			cfg.CollegeTagline = *common.Config.CollegeTagline
		}
		if common.Config.LogoLeft != nil && *common.Config.LogoLeft != "" {
			cfg.LogoLeft = *common.Config.LogoLeft
		}
		if common.Config.LogoRight != nil && *common.Config.LogoRight != "" {
			cfg.LogoRight = *common.Config.LogoRight
		}
	}

	return cfg
}

// ResolveSettings merges the three configuration layers in order:
// defaults, then the stored per-event settings record (only fields it
// actually sets), then the request-supplied overrides with highest
// precedence. A nil settings record yields pure defaults.
func ResolveSettings(settings *model.CertificateSetting, overrides map[string]string) EffectiveConfig {
	cfg := DefaultConfig()

	if settings != nil {
		if settings.TemplateID != 0 {
			cfg.TemplateID = settings.TemplateID
		}
		if settings.LogoLeft != "" {
			cfg.LogoLeft = settings.LogoLeft
		}
		if settings.LogoRight != "" {
			cfg.LogoRight = settings.LogoRight
		}

		// Signature entries apply positionally; entries beyond the
		// fourth slot are ignored.
		for i, sig := range settings.Signatures {
			if i >= len(cfg.Signatures) {
				break
			}
			if sig.Name != "" {
				cfg.Signatures[i].Name = sig.Name
			}
			if sig.Title != "" {
				cfg.Signatures[i].Title = sig.Title
			}
			if sig.ImageURL != "" {
				cfg.Signatures[i].URL = sig.ImageURL
			}
		}

		for key, value := range settings.CustomFields.Data() {
			cfg.CustomFields[key] = value
		}
	}

	for key, value := range overrides {
		if key == "templateId" {
			if id, err := strconv.Atoi(value); err == nil && id >= MinTemplateID && id <= MaxTemplateID {
				cfg.TemplateID = id
			}
			continue
		}
		cfg.CustomFields[key] = value
	}

	return cfg
}

// Placeholders flattens the config into the token map consumed by the
// placeholder renderer. Signature display flags are included so templates
// can switch between an image and a name-only line.
func (c EffectiveConfig) Placeholders() map[string]string {
	tokens := map[string]string{
		"collegeName":    c.CollegeName,
		"collegeTagline": c.CollegeTagline,
		"logoLeft":       c.LogoLeft,
		"logoRight":      c.LogoRight,
	}

	for i, sig := range c.Signatures {
		n := strconv.Itoa(i + 1)
		tokens["sig"+n+"Name"] = sig.Name
		tokens["sig"+n+"Title"] = sig.Title
		tokens["sig"+n+"Url"] = sig.URL
		if sig.URL != "" {
			tokens["sig"+n+"Display"] = "block"
		} else {
			tokens["sig"+n+"Display"] = "none"
		}
	}

	return tokens
}
