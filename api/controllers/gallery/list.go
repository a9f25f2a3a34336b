package gallery_controller

import (
	"github.com/gofiber/fiber/v2"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	gallerymodel "github.com/harnoor-dev/event-cert-api/api/model/galleryModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

func List(c *fiber.Ctx) error {
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
	if event.Privacy == "private" && !event.CanEdit(userId) && !event.IsParticipant(userId) {
		return response.SendForbidden(c, "This event is private")
	}

	images, listErr := gallerymodel.NewGalleryRepository(common.Gorm).ListByEvent(eventId)
	if listErr != nil {
		return response.SendInternalError(c, listErr)
	}

	return response.SendSuccess(c, "Gallery fetched", images)
}
