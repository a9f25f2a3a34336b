package certificate_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// ResendFailed retries every failed delivery for the event that is still
// under the retry ceiling.
func ResendFailed(c *fiber.Ctx) error {
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
		return response.SendForbidden(c, "Only event admins can resend certificates")
	}

	result, resendErr := service.ResendFailed(c.Context(), eventId)
	if resendErr != nil {
		slog.Error("Certificate ResendFailed failed", "error", resendErr, "event_id", eventId)
		return response.SendError(c, "Resend failed")
	}

	slog.Info("Certificate ResendFailed completed", "event_id", eventId, "total", result.Total, "success", result.Success)
	return response.SendSuccess(c, "Resend completed", result)
}
