package auth_controller

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	historymodel "github.com/harnoor-dev/event-cert-api/api/model/historyModel"
	usermodel "github.com/harnoor-dev/event-cert-api/api/model/userModel"
	"github.com/harnoor-dev/event-cert-api/common"
	"github.com/harnoor-dev/event-cert-api/common/util"
	"github.com/harnoor-dev/event-cert-api/type/payload"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

func Login(c *fiber.Ctx) error {
	body := new(payload.LoginPayload)

	if err := c.BodyParser(body); err != nil {
		return response.SendError(c, "Failed to parse body")
	}

	if err := util.ValidateStruct(body); err != nil {
		errors := util.GetValidationErrors(err)
		return response.SendFailed(c, errors[0])
	}

	users := usermodel.NewUserRepository(common.Gorm)

	user, queryErr := users.GetByEmail(body.Email)
	if user == nil {
		if queryErr != nil {
			slog.Error("Auth Login database query failed", "error", queryErr, "email", body.Email)
			return response.SendInternalError(c, queryErr)
		}
		slog.Info("Auth Login attempt with non-existent user", "email", body.Email)
		return response.SendFailed(c, "Invalid email or password")
	}

	if isPasswordMatch := util.CheckPassword(body.Password, user.Password); !isPasswordMatch {
		slog.Warn("Auth Login failed password check", "email", body.Email)
		return response.SendFailed(c, "Invalid email or password")
	}

	authToken, err := util.GenerateAuthToken(user.ID)
	if err != nil {
		slog.Error("Auth Login JWT generation failed", "error", err, "user_id", user.ID)
		return response.SendError(c, "Failed to generate JWT Token")
	}

	historymodel.NewHistoryRepository(common.Mongo).Record(user.ID, "login", "", nil)

	slog.Info("Auth Login successful", "user_id", user.ID)
	return response.SendSuccess(c, "Login Successfully", fiber.Map{
		"token": authToken,
		"user":  user,
	})
}
