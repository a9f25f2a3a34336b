package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/internal/certify"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// GenerateBulk runs the certificate pipeline for every present attendee of
// an event, optionally delivering by email in the same pass.
func GenerateBulk(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	body := new(payload.GenerateBulkPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	event, err := eventmodel.NewEventRepository(common.Gorm).GetById(body.EventID)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if !event.CanEdit(userId) {
		return response.SendForbidden(c, "Only event admins can generate certificates")
	}

	sendEmail := true
	if body.SendEmail != nil {
		sendEmail = *body.SendEmail
	}

	result, genErr := service.GenerateForEvent(c.Context(), body.EventID, certify.Options{
		SendEmail:       sendEmail,
		SavePDF:         true,
		ForceRegenerate: body.ForceRegenerate,
	})
	if genErr != nil {
		slog.Error("Certificate GenerateBulk failed", "error", genErr, "event_id", body.EventID)
		return response.SendError(c, "Certificate generation failed")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(userId, "certificates_generated", body.EventID, map[string]any{
		"total":      result.Total,
		"send_email": sendEmail,
	})

	slog.Info("Certificate GenerateBulk completed", "event_id", body.EventID, "total", result.Total)
	return response.SendSuccess(c, "Certificate generation completed", result)
}
