package auth_controller

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// History returns the caller's recent activity log, newest first.
func History(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	limit, _ := strconv.ParseInt(c.Query("limit"), 10, 64)

	entries, err := historymodel.NewHistoryRepository(common.Mongo).ListByUser(userId, limit)
	if err != nil {
		return response.SendError(c, "Failed to fetch activity history")
	}

	return response.SendSuccess(c, "History fetched", entries)
}
