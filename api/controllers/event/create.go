package event_controller

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

func Create(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	body := new(payload.CreateEventPayload)
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	eventDate, err := time.Parse(time.RFC3339, body.EventDate)
	if err != nil {
		return response.SendFailed(c, "event_date must be an RFC3339 timestamp")
	}

	var expiryDate *time.Time
	if body.ExpiryDate != "" {
		parsed, parseErr := time.Parse(time.RFC3339, body.ExpiryDate)
		if parseErr != nil {
			return response.SendFailed(c, "expiry_date must be an RFC3339 timestamp")
		}
		if parsed.Before(eventDate) {
			return response.SendFailed(c, "expiry_date cannot be before event_date")
		}
		expiryDate = &parsed
	}

	privacy := body.Privacy
	if privacy == "" {
		privacy = "public"
	}

	event, createErr := eventmodel.NewEventRepository(common.Gorm).Create(&model.Event{
		Title:                 body.Title,
		Description:           body.Description,
		Venue:                 body.Venue,
		Department:            body.Department,
		OrganiserName:         body.OrganiserName,
		EventDate:             eventDate,
		ExpiryDate:            expiryDate,
		Privacy:               privacy,
		IsActive:              true,
		AttendeeUploadEnabled: body.AttendeeUploadEnabled,
		AutoSendAfterEventEnd: body.AutoSendAfterEventEnd,
		CreatedBy:             userId,
	})
	if createErr != nil {
		return response.SendError(c, "Failed to create event")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(userId, "event_created", event.ID, map[string]any{
		"title": event.Title,
	})

	slog.Info("Event Create successful", "event_id", event.ID, "user_id", userId)
	return response.SendSuccess(c, "Event created", event)
}
