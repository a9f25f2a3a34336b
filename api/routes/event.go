package routes

import (
	"github.com/gofiber/fiber/v2"
	attendance_controller "github.com/harnoor-dev/event-cert-api/api/controllers/attendance"
	event_controller "github.com/harnoor-dev/event-cert-api/api/controllers/event"
	gallery_controller "github.com/harnoor-dev/event-cert-api/api/controllers/gallery"
	"github.com/harnoor-dev/event-cert-api/api/middleware"
)

func SetupEventRoutes(router fiber.Router) {
	eventGroup := router.Group("events")

	eventGroup.Use(middleware.AuthMiddleware())

	eventGroup.Post("", event_controller.Create)
	eventGroup.Get("", event_controller.GetAll)
	eventGroup.Get(":eventId", event_controller.GetById)
	eventGroup.Put(":eventId", event_controller.Update)
	eventGroup.Delete(":eventId", event_controller.Delete)
	eventGroup.Post(":eventId/join", event_controller.Join)
	eventGroup.Post(":eventId/coadmins/:userId", event_controller.AddCoAdmin)
	eventGroup.Delete(":eventId/coadmins/:userId", event_controller.RemoveCoAdmin)

	eventGroup.Post(":eventId/attendance", attendance_controller.Mark)
	eventGroup.Get(":eventId/attendance", attendance_controller.List)

	eventGroup.Post(":eventId/gallery", gallery_controller.Upload)
	eventGroup.Get(":eventId/gallery", gallery_controller.List)
}
