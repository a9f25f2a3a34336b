package event_controller

import (
	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

func GetAll(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	events, err := eventmodel.NewEventRepository(common.Gorm).ListVisible(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}

	return response.SendSuccess(c, "Events fetched", events)
}
