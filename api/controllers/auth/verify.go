package auth_controller

import (
	"github.com/gofiber/fiber/v2"
	usermodel "github.com/harnoor-dev/event-cert-api/api/model/userModel"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// Verify returns the authenticated user's profile, confirming the token
// is still valid.
func Verify(c *fiber.Ctx) error {
	userId, ok := middleware.GetUserFromContext(c)
	if !ok {
		return response.SendUnauthorized(c, "Not authenticated")
	}

	user, err := usermodel.NewUserRepository(common.Gorm).GetById(userId)
	if err != nil {
		return response.SendInternalError(c, err)
	}
	if user == nil {
		return response.SendUnauthorized(c, "User no longer exists")
	}

	return response.SendSuccess(c, "Token valid", fiber.Map{"user": user})
}
