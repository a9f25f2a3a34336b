package event_controller

import (
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Join registers the caller as a participant, either by event id or by the
// short join code.
func Join(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	identifier := c.Params("eventId")
	events := eventmodel.NewEventRepository(common.Gorm)

	event, err := events.GetById(identifier)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	joinedByCode := false
	if event == nil {
		event, err = events.GetByCode(identifier)
		if err != nil {
			return response.SendInternalError(c, err)
		}
		joinedByCode = true
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}

	// A private event's id is not an invitation; only its join code is.
	if event.Privacy == "private" && !joinedByCode {
		return response.SendForbidden(c, "Private events can only be joined with their join code")
	}

	if !event.IsActive {
		return response.SendFailed(c, "This event is no longer active")
	}
	if event.ExpiryDate != nil && time.Now().After(*event.ExpiryDate) {
		return response.SendFailed(c, "This event has expired")
	}

	if err := events.AddParticipant(event.ID, userId); err != nil {
		if errors.Is(err, eventmodel.ErrAdminParticipant) {
			return response.SendFailed(c, err.Error())
		}
		return response.SendError(c, "Failed to join event")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(userId, "event_joined", event.ID, nil)

	slog.Info("Event Join successful", "event_id", event.ID, "user_id", userId)
	return response.SendSuccess(c, "Joined event", fiber.Map{"event_id": event.ID})
}
