package attendance_controller

import (
	"github.com/gofiber/fiber/v2"
	attendancemodel "github.com/harnoor-dev/event-cert-api/api/model/attendanceModel"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// List returns the event's attendance records. Restricted to the creator
// and co-admins.
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
		return response.SendForbidden(c, "Only event admins can view attendance")
	}

	records, listErr := attendancemodel.NewAttendanceRepository(common.Gorm).ListByEvent(eventId)
	if listErr != nil {
		return response.SendInternalError(c, listErr)
	}

	return response.SendSuccess(c, "Attendance fetched", records)
}
