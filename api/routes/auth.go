package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	auth_controller "github.com/harnoor-dev/event-cert-api/api/controllers/auth"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
)

func SetupAuthRoutes(router fiber.Router) {
	authGroup := router.Group("auth")

	// Credential endpoints get a tight per-IP limit against brute force.
	limited := middleware.RateLimit(10, time.Minute)

	authGroup.Post("register", limited, auth_controller.Register)
	authGroup.Post("login", limited, auth_controller.Login)
	authGroup.Get("verify", middleware.AuthMiddleware(), auth_controller.Verify)
	authGroup.Get("history", middleware.AuthMiddleware(), auth_controller.History)
}
