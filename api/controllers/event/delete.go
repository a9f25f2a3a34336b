package event_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

func Delete(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")
	events := eventmodel.NewEventRepository(common.Gorm)

	event, err := events.GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}

	// Deletion is restricted to the creator; co-admins can only edit.
	if event.CreatedBy != userId {
		return response.SendForbidden(c, "Only the creator can delete this event")
	}

	if err := events.Delete(eventId); err != nil {
		return response.SendError(c, "Failed to delete event")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(userId, "event_deleted", eventId, nil)

	slog.Info("Event Delete successful", "event_id", eventId, "user_id", userId)
	return response.SendSuccess(c, "Event deleted")
}
