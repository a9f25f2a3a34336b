package routes

import (
	"github.com/gofiber/adaptor/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func Init(router fiber.Router) {
	router.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := router.Group("api")

	SetupAuthRoutes(api)
	SetupEventRoutes(api)
	SetupCertificateRoutes(api)
	SetupGalleryRoutes(api)
}
