package routes

import (
	"time"

	"github.com/gofiber/fiber/v2"
	certificate_controller "github.com/harnoor-dev/event-cert-api/api/controllers/certificate"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
)

func SetupCertificateRoutes(router fiber.Router) {
	certificateGroup := router.Group("certificates")

	// Public endpoints reachable from the QR code on a printed certificate.
	certificateGroup.Get("verify/:certificateId", middleware.RateLimit(30, time.Minute), certificate_controller.Verify)
	certificateGroup.Get("templates", certificate_controller.GetTemplates)

	certificateGroup.Use(middleware.AuthMiddleware())

	certificateGroup.Get("settings/:eventId", certificate_controller.GetSettings)
	certificateGroup.Post("settings/:eventId", certificate_controller.UpdateSettings)
	certificateGroup.Get("preview/:eventId?", certificate_controller.Preview)
	certificateGroup.Post("generate-bulk", certificate_controller.GenerateBulk)
	certificateGroup.Post("resend-failed/:eventId", certificate_controller.ResendFailed)
	certificateGroup.Post("resend-single", certificate_controller.ResendSingle)
	certificateGroup.Get("list/:eventId", certificate_controller.List)
}
