package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// ResendSingle re-sends one participant's certificate, regenerating the
// PDF when the stored file has gone missing.
func ResendSingle(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	body := new(payload.ResendSinglePayload)
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
		return response.SendForbidden(c, "Only event admins can resend certificates")
	}

	if err := service.ResendSingle(c.Context(), body.EventID, body.UserID); err != nil {
		slog.Error("Certificate ResendSingle failed", "error", err, "event_id", body.EventID, "user_id", body.UserID)
		return response.SendFailed(c, err.Error())
	}

	slog.Info("Certificate ResendSingle completed", "event_id", body.EventID, "user_id", body.UserID)
	return response.SendSuccess(c, "Certificate resent")
}
