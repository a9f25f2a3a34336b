package routes

import (
	"github.com/gofiber/fiber/v2"
	gallery_controller "github.com/harnoor-dev/event-cert-api/api/controllers/gallery"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
)

func SetupGalleryRoutes(router fiber.Router) {
	galleryGroup := router.Group("gallery")

	galleryGroup.Use(middleware.AuthMiddleware())

	galleryGroup.Delete(":imageId", gallery_controller.Delete)
}
