package payload

import "github.com/harnoor-dev/event-cert-api/type/shared/model"

type UpdateSettingsPayload struct {
	TemplateID            int                   `json:"template_id" validate:"omitempty,min=1,max=7"`
	LogoLeft              string                `json:"logo_left"`
	LogoRight             string                `json:"logo_right"`
	Signatures            []model.SignatureSlot `json:"signatures" validate:"max=4,dive"`
	CustomFields          map[string]string     `json:"custom_fields"`
	AutoSendAfterEventEnd *bool                 `json:"auto_send_after_event_end"`
}

type GenerateBulkPayload struct {
	EventID         string `json:"event_id" validate:"required"`
	SendEmail       *bool  `json:"send_email"`
	ForceRegenerate bool   `json:"force_regenerate"`
}

type ResendSinglePayload struct {
	EventID string `json:"event_id" validate:"required"`
	UserID  string `json:"user_id" validate:"required"`
}
