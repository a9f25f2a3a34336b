package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	settingmodel "github.com/harnoor-dev/event-cert-api/api/model/settingModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/internal/certify"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
	"gorm.io/datatypes"
)

// GetSettings returns both the stored settings record and the effective
// merged configuration the renderer would use right now.
func GetSettings(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")

	event, err := eventmodel.NewEventRepository(common.Gorm).GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if !event.CanEdit(userId) {
		return response.SendForbidden(c, "Only event admins can view certificate settings")
	}

	settings, settingsErr := settingmodel.NewSettingRepository(common.Gorm).GetByEvent(eventId)
	if settingsErr != nil {
		return response.SendInternalError(c, settingsErr)
	}

	return response.SendSuccess(c, "Settings fetched", fiber.Map{
		"settings":  settings,
		"effective": certify.ResolveSettings(settings, nil),
	})
}

// UpdateSettings stores the event's certificate configuration.
func UpdateSettings(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")

	event, err := eventmodel.NewEventRepository(common.Gorm).GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if !event.CanEdit(userId) {
		return response.SendForbidden(c, "Only event admins can change certificate settings")
	}

	body := new(payload.UpdateSettingsPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	settings := &model.CertificateSetting{
		EventID:      eventId,
		TemplateID:   body.TemplateID,
		LogoLeft:     body.LogoLeft,
		LogoRight:    body.LogoRight,
		Signatures:   datatypes.NewJSONSlice(body.Signatures),
		CustomFields: datatypes.NewJSONType(body.CustomFields),
	}
	if body.AutoSendAfterEventEnd != nil {
		settings.AutoSendAfterEventEnd = *body.AutoSendAfterEventEnd

		// Auto-send lives on the event where the scheduler query reads it.
		if _, err := eventmodel.NewEventRepository(common.Gorm).Update(eventId, map[string]any{
			"auto_send_after_event_end": *body.AutoSendAfterEventEnd,
		}); err != nil {
			return response.SendError(c, "Failed to update auto-send flag")
		}
	}

	saved, saveErr := settingmodel.NewSettingRepository(common.Gorm).Upsert(settings)
	if saveErr != nil {
		return response.SendError(c, "Failed to save settings")
	}

	slog.Info("Certificate UpdateSettings successful", "event_id", eventId, "user_id", userId)
	return response.SendSuccess(c, "Settings saved", fiber.Map{
		"settings":  saved,
		"effective": certify.ResolveSettings(saved, nil),
	})
}
