package attendance_controller

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	attendancemodel "github.com/harnoor-dev/event-cert-api/api/model/attendanceModel"
	eventmodel "github.com/harnoor-dev/event-cert-api/api/model/eventModel"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Mark records the caller's attendance at an event. The event must be
// active, unexpired, and joined beforehand.
func Mark(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	eventId := c.Params("eventId")

	body := new(payload.MarkAttendancePayload)
	if err := c.BodyParser(body); err != nil && len(c.Body()) > 0 {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	event, err := eventmodel.NewEventRepository(common.Gorm).GetById(eventId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if event == nil {
		return response.SendNotFound(c, "Event not found")
	}
	if !event.IsActive {
		return response.SendFailed(c, "This event is no longer active")
	}
	if event.ExpiryDate != nil && time.Now().After(*event.ExpiryDate) {
		return response.SendFailed(c, "This event has expired")
	}
	if !event.IsParticipant(userId) && !event.CanEdit(userId) {
		return response.SendForbidden(c, "Join the event before marking attendance")
	}

	record, markErr := attendancemodel.NewAttendanceRepository(common.Gorm).Mark(eventId, userId, body.Status)
	if markErr != nil {
		return response.SendError(c, "Failed to mark attendance")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(userId, "attendance_marked", eventId, map[string]any{
		"status": record.Status,
	})

	slog.Info("Attendance Mark successful", "event_id", eventId, "user_id", userId, "status", record.Status)
	return response.SendSuccess(c, "Attendance marked", record)
}
