package event_controller

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	usermodel "github.com/harnoor-dev/event-cert-api/api/model/userModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// AddCoAdmin grants a user co-admin rights on the event. Only the creator
// manages the co-admin list.
func AddCoAdmin(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")
	targetId := c.Params("userId")

	events := eventmodel.NewEventRepository(common.Gorm)

	event, err := events.GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if event.CreatedBy != userId {
		return response.SendForbidden(c, "Only the creator can manage co-admins")
	}

	target, err := usermodel.NewUserRepository(common.Gorm).GetById(targetId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if target == nil {
		return response.SendNotFound(c, "User not found")
	}

	if err := events.AddCoAdmin(eventId, targetId); err != nil {
		if errors.Is(err, eventmodel.ErrCoAdminLimit) || errors.Is(err, eventmodel.ErrCreatorCoAdmin) {
			return response.SendFailed(c, err.Error())
		}
		return response.SendError(c, "Failed to add co-admin")
	}

	slog.Info("Event AddCoAdmin successful", "event_id", eventId, "target_id", targetId)
	return response.SendSuccess(c, "Co-admin added")
}

// RemoveCoAdmin revokes co-admin rights.
func RemoveCoAdmin(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")
	targetId := c.Params("userId")

	events := eventmodel.NewEventRepository(common.Gorm)

	event, err := events.GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if event.CreatedBy != userId {
		return response.SendForbidden(c, "Only the creator can manage co-admins")
	}

	if err := events.RemoveCoAdmin(eventId, targetId); err != nil {
		return response.SendError(c, "Failed to remove co-admin")
	}

	slog.Info("Event RemoveCoAdmin successful", "event_id", eventId, "target_id", targetId)
	return response.SendSuccess(c, "Co-admin removed")
}
