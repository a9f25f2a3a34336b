package auth_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	usermodel "github.com/harnoor-dev/event-cert-api/api/model/userModel"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
	"github.com/harnoor-dev/event-cert-api/type/shared/model"
)

func Register(c *fiber.Ctx) error {
	body := new(payload.RegisterPayload)

	// Parse Body to struct
	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	// Validate Body structure
	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	users := usermodel.NewUserRepository(common.Gorm)

	// Check if email is already registered
	if dupUser, err := users.GetByEmail(body.Email); dupUser != nil || err != nil {
		if dupUser != nil {
			return response.SendFailed(c, "Email already registered")
		}
		return response.SendInternalError(c, err)
	}

	hashedPassword, hashErr := util.HashPassword(body.Password)
	if hashErr != nil {
		return response.SendError(c, "Password hashing failed")
	}

	createdUser, createErr := users.Create(&model.User{
		FirstName:  body.FirstName,
		LastName:   body.LastName,
		Email:      body.Email,
		Password:   hashedPassword,
		Department: body.Department,
	})
	if createErr != nil {
		return response.SendError(c, "Failed to create user")
	}

	slog.Info("Auth Register successful", "user_id", createdUser.ID, "email", createdUser.Email)
	return response.SendSuccess(c, "User Registered", fiber.Map{
		"id":    createdUser.ID,
		"email": createdUser.Email,
	})
}
