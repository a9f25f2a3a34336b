package certificate_controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/harnoor-dev/event-cert-api/internal/certify"
	"github.com/harnoor-dev/event-cert-api/type/response"
)

// GetTemplates lists the fixed certificate designs.
func GetTemplates(c *fiber.Ctx) error {
	return response.SendSuccess(c, "Templates fetched", certify.Templates())
}
