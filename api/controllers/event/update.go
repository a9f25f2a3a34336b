package event_controller

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

func Update(c *fiber.Ctx) error {
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
	if !event.CanEdit(userId) {
		return response.SendForbidden(c, "Only the creator or a co-admin can edit this event")
	}

	body := new(payload.UpdateEventPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	updates := map[string]any{}
	if body.Title != "" {
		updates["title"] = body.Title
	}
	if body.Description != "" {
		updates["description"] = body.Description
	}
	if body.Venue != "" {
		updates["venue"] = body.Venue
	}
	if body.Department != "" {
		updates["department"] = body.Department
	}
	if body.OrganiserName != "" {
		updates["organiser_name"] = body.OrganiserName
	}
	if body.Privacy != "" {
		updates["privacy"] = body.Privacy
	}
	if body.EventDate != "" {
		eventDate, parseErr := time.Parse(time.RFC3339, body.EventDate)
		if parseErr != nil {
			return response.SendFailed(c, "event_date must be an RFC3339 timestamp")
		}
		updates["event_date"] = eventDate
	}
	if body.ExpiryDate != "" {
		expiryDate, parseErr := time.Parse(time.RFC3339, body.ExpiryDate)
		if parseErr != nil {
			return response.SendFailed(c, "expiry_date must be an RFC3339 timestamp")
		}
		updates["expiry_date"] = expiryDate
	}
	if body.AttendeeUploadEnabled != nil {
		updates["attendee_upload_enabled"] = *body.AttendeeUploadEnabled
	}
	if body.AutoSendAfterEventEnd != nil {
		updates["auto_send_after_event_end"] = *body.AutoSendAfterEventEnd
	}
	if body.IsActive != nil {
		updates["is_active"] = *body.IsActive
	}

	if len(updates) == 0 {
		return response.SendFailed(c, "Nothing to update")
	}

	updated, updateErr := events.Update(eventId, updates)
	if updateErr != nil {
		return response.SendError(c, "Failed to update event")
	}

	slog.Info("Event Update successful", "event_id", eventId, "user_id", userId)
	return response.SendSuccess(c, "Event updated", updated)
}
