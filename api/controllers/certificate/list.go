package certificate_controller

import (
	"github.com/gofiber/fiber/v2"
	certificatemodel "github.com/harnoor-dev/event-cert-api/api/model/certificateModel"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// List returns delivery stats plus the most recent certificates for an
// event, capped at 100 records.
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
	if !event.CanEdit(userId) {
		return response.SendForbidden(c, "Only event admins can list certificates")
	}

	certs := certificatemodel.NewCertificateRepository(common.Gorm)

	stats, statsErr := certs.StatsByEvent(eventId)
	if statsErr != nil {
		return response.SendInternalError(c, statsErr)
	}

	records, listErr := certs.ListByEvent(eventId, 100)
	if listErr != nil {
		return response.SendInternalError(c, listErr)
	}

	return response.SendSuccess(c, "Certificates fetched", fiber.Map{
		"stats":        stats,
		"certificates": records,
	})
}
